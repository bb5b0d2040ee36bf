package undo

import (
	"testing"

	"cutboard/internal/board"
)

func emptyDoc() *board.Document {
	return board.NewDocument(board.KindStoryboard, board.Master{
		FrameWidth: 1920, FrameHeight: 1080, FrameRate: 25, SampleRate: 48000, AspectRatio: "16:9",
	})
}

func appendClip(doc *board.Document, track int) *board.Clip {
	clip := doc.NewClip(board.RecordImage, track)
	doc.Insert(doc.MainSection(), clip, 0)
	return clip
}

func TestUndoRedoRoundTrip(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	const edits = 5
	for i := 0; i < edits; i++ {
		clip := appendClip(doc, 1)
		engine.Push("create clip", clip.StoryID, doc)
	}
	final := doc.Clone()

	for i := 0; i < edits; i++ {
		restored := engine.PopUndo()
		if restored == nil {
			t.Fatalf("PopUndo %d returned nil", i)
		}
		doc = restored
	}
	if engine.PopUndo() != nil {
		t.Fatal("exhausted stack should return nil")
	}
	if len(doc.Sections) != 0 && len(doc.MainSection().Clips) != 0 {
		t.Fatalf("expected initial empty document, got %d clips", len(doc.MainSection().Clips))
	}

	for i := 0; i < edits; i++ {
		restored := engine.Redo()
		if restored == nil {
			t.Fatalf("Redo %d returned nil", i)
		}
		doc = restored
	}
	if engine.Redo() != nil {
		t.Fatal("exhausted redo should return nil")
	}
	if !board.StructuralEqual(doc, final) {
		t.Fatal("redo chain did not restore the final state")
	}
}

func TestCoalescingSameFeatureSameClip(t *testing.T) {
	doc := emptyDoc()
	clip := appendClip(doc, 1)
	engine := NewEngine(doc)

	for i := 0; i < 25; i++ {
		clip.ToFrame = i
		doc.BumpVersion()
		engine.Push("resize", clip.StoryID, doc)
	}

	if engine.Len() != 1 {
		t.Fatalf("expected 1 coalesced entry, got %d", engine.Len())
	}

	restored := engine.PopUndo()
	if restored == nil || restored.MainSection().Clips[0].ToFrame != 0 {
		t.Fatal("coalesced undo should restore pre-drag state")
	}
}

func TestNoCoalescingAcrossClips(t *testing.T) {
	doc := emptyDoc()
	a := appendClip(doc, 1)
	b := appendClip(doc, 1)
	engine := NewEngine(doc)

	engine.Push("resize", a.StoryID, doc)
	engine.Push("resize", b.StoryID, doc)

	if engine.Len() != 2 {
		t.Fatalf("expected 2 entries for different clips, got %d", engine.Len())
	}
}

func TestNoCoalescingAcrossFeatures(t *testing.T) {
	doc := emptyDoc()
	clip := appendClip(doc, 1)
	engine := NewEngine(doc)

	engine.Push("resize", clip.StoryID, doc)
	engine.Push("move", clip.StoryID, doc)

	if engine.Len() != 2 {
		t.Fatalf("expected 2 entries for different features, got %d", engine.Len())
	}
}

func TestGroupCollapsesToOneEntry(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	engine.BeginGroup()
	clip := appendClip(doc, 1)
	engine.Push("create clip", clip.StoryID, doc)
	clip.ToFrame = 24
	doc.BumpVersion()
	engine.Push("resize", clip.StoryID, doc)
	clip.Resource = "a.png"
	doc.BumpVersion()
	engine.Push("set resource", clip.StoryID, doc)
	engine.EndGroup()

	if engine.Len() != 1 {
		t.Fatalf("expected 1 entry for bracketed edits, got %d", engine.Len())
	}
	if name, ok := engine.UndoFeatureName(); !ok || name != "create clip" {
		t.Fatalf("group entry should keep the first feature name, got %q", name)
	}

	if restored := engine.PopUndo(); restored == nil || len(restored.Sections) != 0 {
		t.Fatal("undoing the group should restore the initial state in one step")
	}
}

func TestGroupAdoptsCoalescedPreGroupEntry(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	clip := appendClip(doc, 1)
	engine.Push("resize", clip.StoryID, doc)

	// The first in-group push coalesces with the pre-group top entry; the
	// bracket must still collapse to a single undo step.
	engine.BeginGroup()
	clip.ToFrame = 24
	doc.BumpVersion()
	engine.Push("resize", clip.StoryID, doc)
	clip.Resource = "a.png"
	doc.BumpVersion()
	engine.Push("set resource", clip.StoryID, doc)
	engine.EndGroup()

	if engine.Len() != 1 {
		t.Fatalf("expected the bracket to fold into 1 entry, got %d", engine.Len())
	}
	if restored := engine.PopUndo(); restored == nil || len(restored.Sections) != 0 {
		t.Fatal("one undo should revert everything the bracket absorbed")
	}
}

func TestNestedGroupsOnlyOutermostMatters(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	engine.BeginGroup()
	engine.BeginGroup()
	clip := appendClip(doc, 1)
	engine.Push("create clip", clip.StoryID, doc)
	engine.EndGroup() // inner close must not end the bracket
	clip.ToFrame = 10
	doc.BumpVersion()
	engine.Push("resize", clip.StoryID, doc)
	engine.EndGroup()

	if engine.Len() != 1 {
		t.Fatalf("expected nested brackets to collapse to 1 entry, got %d", engine.Len())
	}
}

func TestGroupEndStopsCoalescing(t *testing.T) {
	doc := emptyDoc()
	clip := appendClip(doc, 1)
	engine := NewEngine(doc)

	engine.BeginGroup()
	engine.Push("resize", clip.StoryID, doc)
	engine.EndGroup()
	engine.Push("resize", clip.StoryID, doc)

	if engine.Len() != 2 {
		t.Fatalf("expected a group boundary to break coalescing, got %d entries", engine.Len())
	}
}

func TestNewEditTruncatesRedoTail(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	a := appendClip(doc, 1)
	engine.Push("create clip", a.StoryID, doc)
	b := appendClip(doc, 1)
	engine.Push("create clip", b.StoryID, doc)

	restored := engine.PopUndo()
	if restored == nil {
		t.Fatal("PopUndo returned nil")
	}
	doc = restored

	c := appendClip(doc, 1)
	engine.Push("create clip", c.StoryID, doc)

	if engine.Redo() != nil {
		t.Fatal("redo tail should be discarded after a new edit")
	}
	if engine.Len() != 2 {
		t.Fatalf("expected 2 entries after truncation, got %d", engine.Len())
	}
}

func TestFeatureNamesArePureQueries(t *testing.T) {
	doc := emptyDoc()
	engine := NewEngine(doc)

	if _, ok := engine.UndoFeatureName(); ok {
		t.Fatal("empty stack should report no undo feature")
	}
	if _, ok := engine.RedoFeatureName(); ok {
		t.Fatal("empty stack should report no redo feature")
	}

	clip := appendClip(doc, 1)
	engine.Push("cut", clip.StoryID, doc)

	if name, ok := engine.UndoFeatureName(); !ok || name != "cut" {
		t.Fatalf("UndoFeatureName = %q, %v", name, ok)
	}
	depth := engine.Depth()
	engine.UndoFeatureName()
	if engine.Depth() != depth {
		t.Fatal("feature name query must not move the cursor")
	}

	engine.PopUndo()
	if name, ok := engine.RedoFeatureName(); !ok || name != "cut" {
		t.Fatalf("RedoFeatureName = %q, %v", name, ok)
	}
}

func TestSnapshotsDoNotAliasLiveDocument(t *testing.T) {
	doc := emptyDoc()
	clip := appendClip(doc, 1)
	engine := NewEngine(doc)

	clip.Resource = "before.png"
	doc.BumpVersion()
	engine.Push("set resource", clip.StoryID, doc)

	clip.Resource = "after.png"

	restored := engine.PopUndo()
	_ = restored
	redone := engine.Redo()
	if redone.MainSection().Clips[0].Resource != "before.png" {
		t.Fatal("snapshot must not alias the live document")
	}
}
