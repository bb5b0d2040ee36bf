package editor

import (
	"testing"

	"cutboard/internal/board"
)

func TestCopyPreservesOrderAndStoryIDs(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	c1 := appendClip(doc, 1)
	c2 := appendClip(doc, 1)
	c3 := appendClip(doc, 1)
	c1.Selected = true
	c2.Selected = true
	c3.Selected = true

	staging := session.Copy(board.KindStoryboard)

	staged := staging.MainSection().Clips
	want := []int64{c1.StoryID, c2.StoryID, c3.StoryID}
	if len(staged) != len(want) {
		t.Fatalf("staged %d clips, want %d", len(staged), len(want))
	}
	for i, clip := range staged {
		if clip.StoryID != want[i] {
			t.Errorf("staged clip %d has story id %d, want %d", i, clip.StoryID, want[i])
		}
	}

	// Staging is detached: edits there never touch the source.
	staged[0].Resource = "changed"
	if c1.Resource == "changed" {
		t.Fatal("staging aliases the source document")
	}
}

func TestPastePreservesOrderAndRewritesTrack(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	anchor := appendClip(doc, 1)
	c1 := appendClip(doc, 1)
	c1.Resource = "a.png"
	c2 := appendClip(doc, 1)
	c2.Resource = "b.png"
	c1.Selected = true
	c2.Selected = true

	staging := session.Cut(board.KindStoryboard)
	session.ActiveTrack = 2

	pasted := session.Paste(staging, board.KindStoryboard, anchor.StoryID, true)
	if pasted != 2 {
		t.Fatalf("pasted %d clips, want 2", pasted)
	}

	main := doc.MainSection()
	if len(main.Clips) != 3 {
		t.Fatalf("expected 3 clips after paste, got %d", len(main.Clips))
	}
	if main.Clips[0].StoryID != anchor.StoryID {
		t.Fatal("anchor should stay first")
	}
	if main.Clips[1].Resource != c1.Resource || main.Clips[2].Resource != c2.Resource {
		t.Fatal("paste must preserve relative order")
	}
	for i, clip := range main.Clips[1:] {
		if clip.Track != 2 {
			t.Errorf("pasted clip %d kept track %d, want active track 2", i, clip.Track)
		}
		if clip.Selected {
			t.Errorf("pasted clip %d arrived selected", i)
		}
	}
}

func TestPasteBeforeAnchor(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	anchor := appendClip(doc, 1)
	clip := appendClip(doc, 1)
	clip.Selected = true

	staging := session.Cut(board.KindStoryboard)
	pasted := session.Paste(staging, board.KindStoryboard, anchor.StoryID, false)
	if pasted != 1 {
		t.Fatalf("pasted %d clips, want 1", pasted)
	}

	main := doc.MainSection()
	if main.Clips[1].StoryID != anchor.StoryID {
		t.Fatal("paste before should land ahead of the anchor")
	}
}

func TestPasteDanglingAnchorAppends(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	keep := appendClip(doc, 1)
	clip := appendClip(doc, 1)
	clip.Selected = true

	staging := session.Cut(board.KindStoryboard)
	session.Paste(staging, board.KindStoryboard, 777, true)

	main := doc.MainSection()
	if len(main.Clips) != 2 || main.Clips[0].StoryID != keep.StoryID {
		t.Fatalf("dangling anchor should append at end, got %#v", main.Clips)
	}
}

func TestConsecutivePastesNeverCollide(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	c1 := appendClip(doc, 1)
	c2 := appendClip(doc, 1)
	c1.Selected = true
	c2.Selected = true

	staging := session.Copy(board.KindStoryboard)
	session.Paste(staging, board.KindStoryboard, c2.StoryID, true)
	session.Paste(staging, board.KindStoryboard, c2.StoryID, true)

	seen := map[int64]bool{}
	for _, clip := range doc.MainSection().Clips {
		if seen[clip.StoryID] {
			t.Fatalf("story id %d appears twice after repeated paste", clip.StoryID)
		}
		seen[clip.StoryID] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct clips, got %d", len(seen))
	}
}

func TestCutIsOneUndoStep(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	keep := appendClip(doc, 1)
	cut1 := appendClip(doc, 1)
	cut2 := appendClip(doc, 1)
	session.PushUndo(board.KindStoryboard, "create clips", cut2.StoryID)
	cut1.Selected = true
	cut2.Selected = true

	staging := session.Cut(board.KindStoryboard)
	if len(staging.MainSection().Clips) != 2 {
		t.Fatalf("cut staged %d clips, want 2", len(staging.MainSection().Clips))
	}
	if len(doc.MainSection().Clips) != 1 {
		t.Fatalf("cut left %d clips, want 1", len(doc.MainSection().Clips))
	}

	if !session.Undo(board.KindStoryboard) {
		t.Fatal("undo after cut failed")
	}
	restored := session.Storyboard.MainSection()
	if len(restored.Clips) != 3 {
		t.Fatalf("one undo should revert the whole cut, got %d clips", len(restored.Clips))
	}
	if restored.Clips[0].StoryID != keep.StoryID {
		t.Fatal("undo restored clips out of order")
	}
}

// The concrete end-to-end scenario: extend, cut, then paste back after the
// surviving clip.
func TestExtendCutPasteScenario(t *testing.T) {
	session := newTestSession(t)
	doc := session.Storyboard
	clip1 := appendClip(doc, 1)
	clip2 := appendClip(doc, 1)

	session.SelectExtend(board.KindStoryboard, clip2.StoryID, 1)
	if session.CountSelected(board.KindStoryboard) != 1 || !clip2.Selected {
		t.Fatal("extend with no prior selection should select only clip 2")
	}

	clip3 := doc.NewClip(board.RecordImage, 1)
	doc.Insert(doc.MainSection(), clip3, clip2.StoryID)
	session.SelectExtend(board.KindStoryboard, clip3.StoryID, 1)
	if !clip2.Selected || !clip3.Selected || clip1.Selected {
		t.Fatal("extend should select the run {2, 3}")
	}

	staging := session.Copy(board.KindStoryboard)
	doc.RemoveSelected(doc.MainSection())
	if len(doc.MainSection().Clips) != 1 || doc.MainSection().Clips[0].StoryID != clip1.StoryID {
		t.Fatal("remove selected should leave exactly clip 1")
	}

	session.Paste(staging, board.KindStoryboard, clip1.StoryID, true)
	main := doc.MainSection()
	if len(main.Clips) != 3 {
		t.Fatalf("expected [1, 2', 3'], got %d clips", len(main.Clips))
	}
	if main.Clips[0].StoryID != clip1.StoryID {
		t.Fatal("clip 1 should stay first")
	}
	if main.Clips[1].StoryID != clip2.StoryID || main.Clips[2].StoryID != clip3.StoryID {
		t.Fatal("first paste after removal may and should reuse the staged story ids in order")
	}
}
