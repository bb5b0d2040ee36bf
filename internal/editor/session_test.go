package editor

import (
	"testing"

	"cutboard/internal/board"
)

func TestUndoReplacesLiveDocument(t *testing.T) {
	session := newTestSession(t)
	before := session.Storyboard
	clip := appendClip(session.Storyboard, 1)
	session.PushUndo(board.KindStoryboard, "create clip", clip.StoryID)

	if !session.Undo(board.KindStoryboard) {
		t.Fatal("undo failed")
	}
	if session.Storyboard == before {
		t.Fatal("undo must replace the document, not patch it")
	}
	if _, found := session.Storyboard.FindClip(clip.StoryID); found != nil {
		t.Fatal("undone clip is still reachable; dialogs holding its id must see it gone")
	}

	if !session.Redo(board.KindStoryboard) {
		t.Fatal("redo failed")
	}
	if _, found := session.Storyboard.FindClip(clip.StoryID); found == nil {
		t.Fatal("redo should bring the clip back under the same story id")
	}
}

func TestUndoOnEmptyStackIsNoOp(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	if session.Undo(board.KindStoryboard) {
		t.Fatal("undo on an empty stack should report false")
	}
	if session.Storyboard != doc {
		t.Fatal("failed undo must not replace the document")
	}
}

func TestReplaceBumpsVersion(t *testing.T) {
	session := newTestSession(t)
	clip := appendClip(session.Storyboard, 1)
	session.PushUndo(board.KindStoryboard, "create clip", clip.StoryID)
	version := session.Storyboard.Version

	session.Undo(board.KindStoryboard)
	if session.Storyboard.Version <= version {
		t.Fatal("document replacement must advance the version counter")
	}
}

func TestDirtyTracking(t *testing.T) {
	session := newTestSession(t)
	if session.Dirty(board.KindStoryboard) {
		t.Fatal("fresh session should be clean")
	}

	clip := appendClip(session.Storyboard, 1)
	session.PushUndo(board.KindStoryboard, "create clip", clip.StoryID)
	if !session.Dirty(board.KindStoryboard) {
		t.Fatal("push should mark the document dirty")
	}
	if session.Dirty(board.KindLibrary) {
		t.Fatal("library should stay clean")
	}

	session.MarkSaved(board.KindStoryboard)
	if session.Dirty(board.KindStoryboard) {
		t.Fatal("save should clear the dirty flag")
	}

	session.Undo(board.KindStoryboard)
	if !session.Dirty(board.KindStoryboard) {
		t.Fatal("undo changes the document and must re-mark it dirty")
	}
}

func TestFeatureNameQueries(t *testing.T) {
	session := newTestSession(t)
	clip := appendClip(session.Storyboard, 1)
	session.PushUndo(board.KindStoryboard, "create clip", clip.StoryID)

	if name, ok := session.UndoFeatureName(board.KindStoryboard); !ok || name != "create clip" {
		t.Fatalf("UndoFeatureName = %q, %v", name, ok)
	}
	session.Undo(board.KindStoryboard)
	if name, ok := session.RedoFeatureName(board.KindStoryboard); !ok || name != "create clip" {
		t.Fatalf("RedoFeatureName = %q, %v", name, ok)
	}
}
