package editor_test

import (
	"testing"

	"cutboard/internal/board"
	"cutboard/internal/testsupport"
)

func TestCopyPasteAcrossDocuments(t *testing.T) {
	session := testsupport.NewSession(t, 2, 1)

	library := session.Library
	first := library.MainSection().Clips[0]
	second := library.MainSection().Clips[1]
	session.SelectReplace(board.KindLibrary, first.StoryID)
	session.SelectAdd(board.KindLibrary, second.StoryID)

	staging := session.Copy(board.KindLibrary)
	if staging == nil {
		t.Fatal("copy returned no staging document")
	}
	if got := len(staging.MainSection().Clips); got != 2 {
		t.Fatalf("staging clip count = %d, want 2", got)
	}

	anchor := session.Storyboard.MainSection().Clips[0].StoryID
	pasted := session.Paste(staging, board.KindStoryboard, anchor, true)
	if pasted != 2 {
		t.Fatalf("pasted = %d, want 2", pasted)
	}

	clips := session.Storyboard.MainSection().Clips
	if len(clips) != 3 {
		t.Fatalf("storyboard clip count = %d, want 3", len(clips))
	}
	ids := make(map[int64]bool)
	for _, clip := range clips {
		if ids[clip.StoryID] {
			t.Fatalf("duplicate story id %d after paste", clip.StoryID)
		}
		ids[clip.StoryID] = true
		if clip.Track != session.ActiveTrack {
			t.Fatalf("pasted clip track = %d, want %d", clip.Track, session.ActiveTrack)
		}
	}

	if !session.Undo(board.KindStoryboard) {
		t.Fatal("undo failed")
	}
	if got := len(session.Storyboard.MainSection().Clips); got != 1 {
		t.Fatalf("clip count after undo = %d, want 1", got)
	}
	if !session.Redo(board.KindStoryboard) {
		t.Fatal("redo failed")
	}
	if got := len(session.Storyboard.MainSection().Clips); got != 3 {
		t.Fatalf("clip count after redo = %d, want 3", got)
	}
}

func TestSelectionExclusiveAcrossDocuments(t *testing.T) {
	session := testsupport.NewSession(t, 1, 1)

	sbClip := session.Storyboard.MainSection().Clips[0]
	libClip := session.Library.MainSection().Clips[0]

	session.SelectReplace(board.KindStoryboard, sbClip.StoryID)
	if got := session.CountSelected(board.KindStoryboard); got != 1 {
		t.Fatalf("storyboard selected = %d, want 1", got)
	}

	session.SelectReplace(board.KindLibrary, libClip.StoryID)
	if got := session.CountSelected(board.KindLibrary); got != 1 {
		t.Fatalf("library selected = %d, want 1", got)
	}
	if got := session.CountSelected(board.KindStoryboard); got != 0 {
		t.Fatalf("storyboard selected = %d after library select, want 0", got)
	}
}

func TestExtendSelectionOverMixedClipTypes(t *testing.T) {
	session := testsupport.NewSession(t, 0, 1)

	image := session.Storyboard.MainSection().Clips[0]
	movie := testsupport.MovieClip(t, session.Storyboard, 1, "shots/a.mov", 0, 49)

	session.SelectReplace(board.KindStoryboard, image.StoryID)
	if !session.SelectExtend(board.KindStoryboard, movie.StoryID, 1) {
		t.Fatal("extend failed")
	}
	if got := session.CountSelected(board.KindStoryboard); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}
}
