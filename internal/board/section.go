package board

// Section is an ordered, possibly multi-track, collection of clips owned by
// a Document. The clip slice is the temporal order across all tracks
// combined; filtering by track yields the per-lane view.
type Section struct {
	ID    int64
	Name  string // empty for the main section
	Clips []*Clip
}

// IsMain reports whether this is the document's unnamed main section.
func (s *Section) IsMain() bool {
	return s.Name == ""
}

// CountActive returns the number of active clips on the given track.
func (s *Section) CountActive(track int) int {
	count := 0
	for _, clip := range s.Clips {
		if clip.Track == track && clip.Active() {
			count++
		}
	}
	return count
}

// ActiveClips returns the active clips on the given track in temporal order.
func (s *Section) ActiveClips(track int) []*Clip {
	clips := make([]*Clip, 0, len(s.Clips))
	for _, clip := range s.Clips {
		if clip.Track == track && clip.Active() {
			clips = append(clips, clip)
		}
	}
	return clips
}

// FindClip returns the clip with the given story id, or nil.
func (s *Section) FindClip(storyID int64) *Clip {
	for _, clip := range s.Clips {
		if clip.StoryID == storyID {
			return clip
		}
	}
	return nil
}

// Clone returns a deep copy of the section and every clip in it.
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	dup := &Section{ID: s.ID, Name: s.Name, Clips: make([]*Clip, 0, len(s.Clips))}
	for _, clip := range s.Clips {
		dup.Clips = append(dup.Clips, clip.Clone())
	}
	return dup
}
