// Package logging assembles the structured slog loggers used across cutboard.
//
// It owns the console/JSON handler selection, centralizes level and output
// plumbing, and exposes typed attribute helpers so editor and cache code tag
// log lines with document kinds, story ids, and resource paths the same way
// everywhere. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
