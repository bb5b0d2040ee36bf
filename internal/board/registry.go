package board

// trackIndex caches per-(section,track) positional clip lists so that
// mapping a scroll window to concrete clips stays cheap across repeated
// paints. The cache is tagged with the document version that built it and is
// dropped wholesale on any structural mutation.
type trackIndex struct {
	version int64
	lanes   map[laneKey][]*Clip
}

type laneKey struct {
	section int64
	track   int
}

func (d *Document) laneFor(section *Section, track int) []*Clip {
	if d.index == nil || d.index.version != d.Version {
		d.index = &trackIndex{version: d.Version, lanes: make(map[laneKey][]*Clip)}
	}
	key := laneKey{section: section.ID, track: track}
	if lane, ok := d.index.lanes[key]; ok {
		return lane
	}
	lane := section.ActiveClips(track)
	d.index.lanes[key] = lane
	return lane
}

// CountActive returns the number of active clips on the given track of a
// section in this document.
func (d *Document) CountActive(section *Section, track int) int {
	if section == nil {
		return 0
	}
	return len(d.laneFor(section, track))
}

// NthActive returns the n-th (0-based) active clip on the given track, or
// nil when the position is out of range.
func (d *Document) NthActive(section *Section, track int, n int) *Clip {
	if section == nil || n < 0 {
		return nil
	}
	lane := d.laneFor(section, track)
	if n >= len(lane) {
		return nil
	}
	return lane[n]
}

// Insert places the clip into the section immediately after the clip with
// story id `after`. A zero or dangling anchor appends at the end. The clip
// receives a story id if it does not carry one; existing clips keep their
// selected flags untouched.
func (d *Document) Insert(section *Section, clip *Clip, after int64) {
	if section == nil || clip == nil {
		return
	}
	if clip.StoryID == 0 {
		clip.StoryID = d.NextStoryID()
	}
	d.AdoptStoryID(clip.StoryID)

	position := len(section.Clips)
	if after != 0 {
		for i, existing := range section.Clips {
			if existing.StoryID == after {
				position = i + 1
				break
			}
		}
	}

	section.Clips = append(section.Clips, nil)
	copy(section.Clips[position+1:], section.Clips[position:])
	section.Clips[position] = clip
	d.BumpVersion()
}

// InsertBefore places the clip immediately before the anchor clip. A zero or
// dangling anchor appends at the end, matching Insert.
func (d *Document) InsertBefore(section *Section, clip *Clip, before int64) {
	if section == nil || clip == nil {
		return
	}
	if before != 0 {
		for i, existing := range section.Clips {
			if existing.StoryID == before {
				if i == 0 {
					d.insertAt(section, clip, 0)
					return
				}
				d.Insert(section, clip, section.Clips[i-1].StoryID)
				return
			}
		}
	}
	d.Insert(section, clip, 0)
}

func (d *Document) insertAt(section *Section, clip *Clip, position int) {
	if clip.StoryID == 0 {
		clip.StoryID = d.NextStoryID()
	}
	d.AdoptStoryID(clip.StoryID)
	section.Clips = append(section.Clips, nil)
	copy(section.Clips[position+1:], section.Clips[position:])
	section.Clips[position] = clip
	d.BumpVersion()
}

// RemoveSelected removes and returns all selected clips from the section in
// their original relative order. Remaining clips keep their story ids and
// order.
func (d *Document) RemoveSelected(section *Section) []*Clip {
	if section == nil {
		return nil
	}
	var removed []*Clip
	kept := section.Clips[:0]
	for _, clip := range section.Clips {
		if clip.Selected {
			removed = append(removed, clip)
			continue
		}
		kept = append(kept, clip)
	}
	if len(removed) == 0 {
		return nil
	}
	section.Clips = kept
	d.BumpVersion()
	return removed
}

// RemoveClip removes a single clip by story id and reports whether it was
// present.
func (d *Document) RemoveClip(section *Section, storyID int64) bool {
	if section == nil {
		return false
	}
	for i, clip := range section.Clips {
		if clip.StoryID == storyID {
			section.Clips = append(section.Clips[:i], section.Clips[i+1:]...)
			d.BumpVersion()
			return true
		}
	}
	return false
}

// Renumber rebuilds the positional index cache after bulk edits. Story ids
// are intentionally never reassigned; they are stable for the document's
// lifetime.
func (d *Document) Renumber() {
	d.index = nil
}
