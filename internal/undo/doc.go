// Package undo records structural snapshots of a storyboard document and
// replays them for undo/redo.
//
// The engine keeps an ordered stack of deep-copy snapshots with a cursor.
// Consecutive pushes for the same feature and the same touched clip coalesce
// into one entry so a drag or slider adjustment never floods the stack, and
// group brackets collapse a multi-step logical operation into a single undo
// step. Popped snapshots are authoritative: the caller replaces the live
// document wholesale and must re-validate any story ids held by open
// dialogs against the restored state.
package undo
