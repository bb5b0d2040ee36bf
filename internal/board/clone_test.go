package board

import "testing"

func TestCloneIsDeepAndKeepsStoryIDs(t *testing.T) {
	doc := newTestDoc()
	main := doc.MainSection()
	movie := addClip(doc, main, RecordMovie, 1)
	movie.Resource = "shots/intro.mov"
	movie.FromFrame = 10
	movie.ToFrame = 120
	movie.Movie = &MovieParams{DecoderHint: "ffmpeg", SeekFast: true}
	color := addClip(doc, main, RecordColor, 1)
	color.Color = &ColorParams{R: 255, G: 128, B: 0}
	doc.EnsureMaskSection()

	dup := doc.Clone()

	if !StructuralEqual(doc, dup) {
		t.Fatal("clone should be structurally equal to the original")
	}
	if dup.MainSection().Clips[0].StoryID != movie.StoryID {
		t.Error("clone must keep story ids")
	}

	// Mutating the clone must not leak into the original.
	dup.MainSection().Clips[0].Resource = "changed"
	dup.MainSection().Clips[0].Movie.SeekFast = false
	if movie.Resource != "shots/intro.mov" || !movie.Movie.SeekFast {
		t.Error("clone aliases the original clip payloads")
	}

	// And fresh allocations in the clone must not collide with originals.
	fresh := dup.NewClip(RecordImage, 1)
	if fresh.StoryID == movie.StoryID || fresh.StoryID == color.StoryID {
		t.Errorf("clone allocated colliding story id %d", fresh.StoryID)
	}
}

func TestStructuralEqualIgnoresSelection(t *testing.T) {
	doc := newTestDoc()
	main := doc.MainSection()
	addClip(doc, main, RecordImage, 1)

	dup := doc.Clone()
	dup.MainSection().Clips[0].Selected = true

	if !StructuralEqual(doc, dup) {
		t.Fatal("selected flags must not affect structural equality")
	}
}

func TestStructuralEqualDetectsDifferences(t *testing.T) {
	doc := newTestDoc()
	main := doc.MainSection()
	clip := addClip(doc, main, RecordImage, 1)

	dup := doc.Clone()
	dup.MainSection().Clips[0].ToFrame = clip.ToFrame + 5
	if StructuralEqual(doc, dup) {
		t.Fatal("frame range change should break structural equality")
	}

	dup = doc.Clone()
	dup.MainSection().Clips[0].Track = 2
	if StructuralEqual(doc, dup) {
		t.Fatal("track change should break structural equality")
	}
}

func TestNFrames(t *testing.T) {
	clip := &Clip{FromFrame: 10, ToFrame: 19}
	if got := clip.NFrames(); got != 10 {
		t.Errorf("NFrames = %d, want 10", got)
	}
	clip = &Clip{FromFrame: 5, ToFrame: 4}
	if got := clip.NFrames(); got != 0 {
		t.Errorf("inverted range NFrames = %d, want 0", got)
	}
}
