package undo

import (
	"cutboard/internal/board"
)

// Entry is an immutable snapshot of a document's full structural state,
// tagged with the human-readable feature that produced it.
type Entry struct {
	Feature  string
	Touched  int64 // story id of the last touched clip, 0 when not clip-scoped
	Snapshot *board.Document
}

// Engine is the per-document undo/redo stack.
//
// entries[i] holds the document state after the i+1-th recorded edit; pos is
// the number of edits currently applied, so pos == 0 means everything has
// been undone back to the initial state.
type Engine struct {
	initial *board.Document
	entries []Entry
	pos     int

	groupDepth int
	grouped    bool // an entry was already recorded inside the open group
	barrier    bool // a group closed since the last push; suppress coalescing
}

// NewEngine snapshots the initial document state the stack unwinds to.
func NewEngine(initial *board.Document) *Engine {
	return &Engine{initial: initial.Clone()}
}

// Push records a snapshot of doc after an edit described by feature.
//
// If the entry on top of the stack carries the same feature and touched clip
// and no group boundary has intervened, the top entry is overwritten in
// place instead of appending. A push after undos truncates the redo tail.
func (e *Engine) Push(feature string, touched int64, doc *board.Document) {
	if doc == nil {
		return
	}

	if e.pos < len(e.entries) {
		e.entries = e.entries[:e.pos]
	}

	if e.coalesces(feature, touched) {
		e.entries[e.pos-1] = Entry{Feature: feature, Touched: touched, Snapshot: doc.Clone()}
		if e.groupDepth > 0 {
			// The coalesced entry now belongs to the bracket; later
			// in-group pushes must fold into it, not append.
			e.grouped = true
		}
		return
	}
	if e.groupDepth > 0 && e.grouped {
		// Inside a bracket every push folds into the bracket's entry,
		// keeping the feature name of the first push.
		top := e.entries[e.pos-1]
		e.entries[e.pos-1] = Entry{Feature: top.Feature, Touched: top.Touched, Snapshot: doc.Clone()}
		return
	}

	e.entries = append(e.entries, Entry{Feature: feature, Touched: touched, Snapshot: doc.Clone()})
	e.pos++
	e.barrier = false
	if e.groupDepth > 0 {
		e.grouped = true
	}
}

func (e *Engine) coalesces(feature string, touched int64) bool {
	if e.barrier || e.pos == 0 || e.pos != len(e.entries) {
		return false
	}
	top := e.entries[e.pos-1]
	return top.Feature == feature && top.Touched == touched
}

// BeginGroup opens a bracket; nested brackets are a no-op.
func (e *Engine) BeginGroup() {
	if e.groupDepth == 0 {
		e.grouped = false
	}
	e.groupDepth++
}

// EndGroup closes the innermost bracket. Closing the outermost bracket
// raises the coalescing barrier so the next push starts a fresh entry.
func (e *Engine) EndGroup() {
	if e.groupDepth == 0 {
		return
	}
	e.groupDepth--
	if e.groupDepth == 0 {
		e.grouped = false
		e.barrier = true
	}
}

// PopUndo steps the cursor back one edit and returns a deep copy of the
// state to restore, or nil when there is nothing to undo.
func (e *Engine) PopUndo() *board.Document {
	if e.pos == 0 {
		return nil
	}
	e.pos--
	e.barrier = true
	if e.pos == 0 {
		return e.initial.Clone()
	}
	return e.entries[e.pos-1].Snapshot.Clone()
}

// Redo re-applies the next undone edit and returns a deep copy of its
// snapshot, or nil when there is nothing to redo.
func (e *Engine) Redo() *board.Document {
	if e.pos >= len(e.entries) {
		return nil
	}
	snapshot := e.entries[e.pos].Snapshot.Clone()
	e.pos++
	e.barrier = true
	return snapshot
}

// UndoFeatureName returns the label of the edit PopUndo would revert.
func (e *Engine) UndoFeatureName() (string, bool) {
	if e.pos == 0 {
		return "", false
	}
	return e.entries[e.pos-1].Feature, true
}

// RedoFeatureName returns the label of the edit Redo would re-apply.
func (e *Engine) RedoFeatureName() (string, bool) {
	if e.pos >= len(e.entries) {
		return "", false
	}
	return e.entries[e.pos].Feature, true
}

// Depth returns how many edits are currently applied.
func (e *Engine) Depth() int {
	return e.pos
}

// Len returns the total number of recorded entries, redo tail included.
func (e *Engine) Len() int {
	return len(e.entries)
}
