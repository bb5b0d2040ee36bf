package editor

import (
	"cutboard/internal/board"
	"cutboard/internal/logging"
)

// Selection is a boolean flag per clip; the invariant this file enforces is
// that at most one of the two open documents has any selected clips at a
// time. Selecting in one document implicitly clears the other.

// SelectReplace clears all selection in both documents and selects the clip,
// toggling it off when it was already the sole selection beforehand.
func (s *Session) SelectReplace(kind board.Kind, storyID int64) bool {
	doc := s.Document(kind)
	_, clip := doc.FindClip(storyID)
	if clip == nil {
		return false
	}

	wasSole := clip.Selected && doc.SelectedCount() == 1 && s.Other(kind).SelectedCount() == 0

	doc.ClearSelection()
	s.Other(kind).ClearSelection()
	clip.Selected = !wasSole
	s.ActiveKind = kind
	return true
}

// SelectAdd clears the other document's selection and flips the clip's flag
// in place.
func (s *Session) SelectAdd(kind board.Kind, storyID int64) bool {
	doc := s.Document(kind)
	_, clip := doc.FindClip(storyID)
	if clip == nil {
		return false
	}

	s.Other(kind).ClearSelection()
	clip.Selected = !clip.Selected
	s.ActiveKind = kind
	return true
}

// SelectExtend clears the other document's selection, then selects the
// contiguous run on the given track of the active section between the clip
// and the last already-selected clip there. With no prior selection on the
// track only the clip itself is selected. Clips outside the run keep their
// flags.
func (s *Session) SelectExtend(kind board.Kind, storyID int64, track int) bool {
	doc := s.Document(kind)
	section := doc.ActiveSection()
	clip := section.FindClip(storyID)
	if clip == nil {
		s.logger.Debug("extend target not in active section",
			logging.StoryID(storyID),
			logging.String(logging.FieldDocument, string(kind)),
		)
		return false
	}

	s.Other(kind).ClearSelection()
	s.ActiveKind = kind

	lane := section.ActiveClips(track)
	clipIdx := -1
	anchorIdx := -1
	for i, candidate := range lane {
		if candidate.StoryID == storyID {
			clipIdx = i
		}
		if candidate.Selected {
			anchorIdx = i // keep scanning: the last selected clip anchors the run
		}
	}
	if clipIdx == -1 {
		// Clip lives on another track; gesture degrades to a plain select.
		clip.Selected = true
		return true
	}
	if anchorIdx == -1 {
		clip.Selected = true
		return true
	}

	lo, hi := anchorIdx, clipIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		lane[i].Selected = true
	}
	return true
}

// CountSelected exposes the per-document selection count.
func (s *Session) CountSelected(kind board.Kind) int {
	return s.Document(kind).SelectedCount()
}
