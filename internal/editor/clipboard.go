package editor

import (
	"cutboard/internal/board"
	"cutboard/internal/logging"
)

// Copy deep-duplicates the selected clips of the source document's active
// section into a fresh staging document, preserving relative order and story
// ids. The staging document is detached: it belongs to no session and no
// undo engine.
func (s *Session) Copy(kind board.Kind) *board.Document {
	source := s.Document(kind)
	staging := board.NewDocument(source.Kind, source.Master)
	main := staging.MainSection()

	for _, clip := range source.ActiveSection().Clips {
		if !clip.Selected {
			continue
		}
		dup := clip.Clone()
		main.Clips = append(main.Clips, dup)
		staging.AdoptStoryID(dup.StoryID)
	}
	staging.BumpVersion()

	s.logger.Debug("copied selection to staging",
		logging.String(logging.FieldDocument, string(kind)),
		logging.Int("clips", len(main.Clips)),
	)
	return staging
}

// Paste splices a duplicate of the staging document's clip sequence into the
// destination's active section next to the anchor clip. The staging document
// itself is never consumed, so repeated pastes are independent. Pasted clips
// land on the destination's active track, arrive unselected, and receive
// fresh story ids whenever their staged id already exists in the
// destination.
func (s *Session) Paste(staging *board.Document, kind board.Kind, anchor int64, insertAfter bool) int {
	if staging == nil {
		return 0
	}
	dest := s.Document(kind)
	section := dest.ActiveSection()

	incoming := staging.Clone().MainSection().Clips
	if len(incoming) == 0 {
		return 0
	}

	dest.ClearSelection()

	previous := anchor
	for i, clip := range incoming {
		clip.Selected = false
		clip.Track = s.ActiveTrack
		if _, existing := dest.FindClip(clip.StoryID); existing != nil {
			clip.StoryID = dest.NextStoryID()
		}
		if i == 0 && !insertAfter {
			dest.InsertBefore(section, clip, previous)
		} else {
			dest.Insert(section, clip, previous)
		}
		previous = clip.StoryID
	}

	s.PushUndo(kind, "paste", incoming[len(incoming)-1].StoryID)
	s.logger.Debug("pasted staging clips",
		logging.String(logging.FieldDocument, string(kind)),
		logging.Int("clips", len(incoming)),
	)
	return len(incoming)
}

// Cut copies the selection and removes it from the source, bracketed so the
// whole cut is one undoable step. It returns the staging document.
func (s *Session) Cut(kind board.Kind) *board.Document {
	doc := s.Document(kind)
	section := doc.ActiveSection()

	s.BeginGroup(kind)
	staging := s.Copy(kind)
	removed := doc.RemoveSelected(section)
	var touched int64
	if len(removed) > 0 {
		touched = removed[len(removed)-1].StoryID
	}
	s.PushUndo(kind, "cut", touched)
	s.EndGroup(kind)

	return staging
}
