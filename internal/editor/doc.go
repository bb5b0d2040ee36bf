// Package editor coordinates the two open storyboard documents: the clip
// library and the storyboard proper.
//
// A Session owns both documents plus the explicit current-pointer state
// (active document, section, track) that older tools kept in globals. It
// enforces the selection invariant (at most one document has selected clips
// at any time) and implements the clipboard merge: copying a selected
// subsequence into a staging document and splicing a duplicate of it back in
// at an arbitrary anchor. Each document carries its own undo engine; cut is
// bracketed so it undoes as a single step.
package editor
