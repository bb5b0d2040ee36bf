package board

// Clone deep-copies the document: all sections, all clips, mask and
// sub-sections included. Story ids are deliberately preserved: clones serve
// as transient staging areas for clipboard and undo, where the shared ids
// are what lets callers re-locate clips across the copy boundary.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	dup := &Document{
		Kind:            d.Kind,
		Master:          d.Master,
		MaskSectionID:   d.MaskSectionID,
		ActiveSectionID: d.ActiveSectionID,
		Version:         d.Version,
		nextStoryID:     d.nextStoryID,
		nextSectionID:   d.nextSectionID,
	}
	dup.Sections = make([]*Section, 0, len(d.Sections))
	for _, section := range d.Sections {
		dup.Sections = append(dup.Sections, section.Clone())
	}
	return dup
}

// StructuralEqual compares two documents by structure, ignoring transient
// selected flags, version counters, and cached indexes.
func StructuralEqual(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Master != b.Master {
		return false
	}
	if a.MaskSectionID != b.MaskSectionID {
		return false
	}
	if len(a.Sections) != len(b.Sections) {
		return false
	}
	for i := range a.Sections {
		if !sectionEqual(a.Sections[i], b.Sections[i]) {
			return false
		}
	}
	return true
}

func sectionEqual(a, b *Section) bool {
	if a.ID != b.ID || a.Name != b.Name || len(a.Clips) != len(b.Clips) {
		return false
	}
	for i := range a.Clips {
		if !clipEqual(a.Clips[i], b.Clips[i]) {
			return false
		}
	}
	return true
}

func clipEqual(a, b *Clip) bool {
	if a.StoryID != b.StoryID || a.Track != b.Track || a.Type != b.Type {
		return false
	}
	if a.Resource != b.Resource || a.FromFrame != b.FromFrame || a.ToFrame != b.ToFrame {
		return false
	}
	if a.MaskName != b.MaskName || a.Comment != b.Comment || a.Deleted != b.Deleted {
		return false
	}
	if (a.Movie == nil) != (b.Movie == nil) || (a.Movie != nil && *a.Movie != *b.Movie) {
		return false
	}
	if (a.Color == nil) != (b.Color == nil) || (a.Color != nil && *a.Color != *b.Color) {
		return false
	}
	if (a.Transition == nil) != (b.Transition == nil) {
		return false
	}
	if a.Transition != nil {
		if a.Transition.Attribute != b.Transition.Attribute {
			return false
		}
		if len(a.Transition.Values) != len(b.Transition.Values) {
			return false
		}
		for i := range a.Transition.Values {
			if a.Transition.Values[i] != b.Transition.Values[i] {
				return false
			}
		}
	}
	return true
}
