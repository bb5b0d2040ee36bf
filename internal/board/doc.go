// Package board owns the canonical in-memory storyboard model: documents,
// sections, tracks, and clips.
//
// A Document is an editable aggregate of ordered Sections; each Section holds
// one temporally ordered clip list spanning all tracks, with a clip's track
// number selecting the lane it occupies. Clips carry stable story ids that
// are never reused, so undo, clipboard, and dialogs can re-locate a clip
// after structural changes. Every structural mutation bumps the document
// version counter, which downstream consumers use to detect that a document
// was replaced or reshaped under them.
//
// The package provides structural queries and mutations only; selection
// gestures, clipboard semantics, and undo policy live in internal/editor and
// internal/undo. Treat this package as the single source of truth for
// storyboard structure; new record types are added here first.
package board
