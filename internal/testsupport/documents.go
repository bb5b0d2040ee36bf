package testsupport

import (
	"fmt"
	"testing"

	"cutboard/internal/board"
	"cutboard/internal/editor"
	"cutboard/internal/logging"
)

// TestMaster is the master property set shared by document helpers.
var TestMaster = board.Master{
	FrameWidth:  1920,
	FrameHeight: 1080,
	FrameRate:   25,
	SampleRate:  48000,
	AspectRatio: "16:9",
}

// NewDocument builds a document of the given kind with count image clips on
// track 1 of the main section, resources named clip-0.png onward.
func NewDocument(t testing.TB, kind board.Kind, count int) *board.Document {
	t.Helper()

	doc := board.NewDocument(kind, TestMaster)
	section := doc.MainSection()
	for i := 0; i < count; i++ {
		clip := doc.NewClip(board.RecordImage, 1)
		clip.Resource = fmt.Sprintf("clip-%d.png", i)
		clip.ToFrame = 24
		section.Clips = append(section.Clips, clip)
	}
	doc.BumpVersion()
	return doc
}

// NewSession builds a session over freshly populated library and storyboard
// documents, logging to a no-op handler.
func NewSession(t testing.TB, libraryClips, storyboardClips int) *editor.Session {
	t.Helper()

	library := NewDocument(t, board.KindLibrary, libraryClips)
	storyboard := NewDocument(t, board.KindStoryboard, storyboardClips)
	return editor.Open(library, storyboard, logging.NewNop())
}

// MovieClip appends a movie clip to the document's main section.
func MovieClip(t testing.TB, doc *board.Document, track int, path string, from, to int) *board.Clip {
	t.Helper()

	clip := doc.NewClip(board.RecordMovie, track)
	clip.Resource = path
	clip.FromFrame = from
	clip.ToFrame = to
	doc.MainSection().Clips = append(doc.MainSection().Clips, clip)
	doc.BumpVersion()
	return clip
}
