// Package config loads and validates cutboard's TOML configuration.
//
// It owns the config schema (paths, logging, thumbnail decoding, master
// storyboard properties), locates the active config file, expands and
// normalizes every path field, and applies defaults for anything a user
// leaves unset. Load returns a fully validated Config; other packages never
// re-check config values.
package config
