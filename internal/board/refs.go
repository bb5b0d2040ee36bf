package board

import "fmt"

// InsertSectionRef inserts a SECTION-reference clip after the given anchor,
// rejecting self-references and reference cycles. Section references form a
// DAG; a clip in section A referencing section B is legal only when B cannot
// already reach A through other references.
func (d *Document) InsertSectionRef(section *Section, clip *Clip, after int64) error {
	if section == nil || clip == nil {
		return fmt.Errorf("%w: section reference needs a destination", ErrInvariant)
	}
	if clip.Type != RecordSection {
		return fmt.Errorf("%w: clip %d is not a section reference", ErrInvariant, clip.StoryID)
	}
	target := d.FindSection(clip.Resource)
	if target == nil {
		return fmt.Errorf("%w: referenced section %q does not exist", ErrInvariant, clip.Resource)
	}
	if target.ID == section.ID {
		return fmt.Errorf("%w: section %q cannot reference itself", ErrInvariant, section.Name)
	}
	if d.reaches(target, section, make(map[int64]bool)) {
		return fmt.Errorf("%w: inserting reference to %q into %q would create a cycle",
			ErrInvariant, target.Name, section.Name)
	}
	d.Insert(section, clip, after)
	return nil
}

// reaches reports whether `from` can reach `to` by following section
// references.
func (d *Document) reaches(from, to *Section, seen map[int64]bool) bool {
	if from == nil || to == nil {
		return false
	}
	if from.ID == to.ID {
		return true
	}
	if seen[from.ID] {
		return false
	}
	seen[from.ID] = true
	for _, clip := range from.Clips {
		if clip.Type != RecordSection || !clip.Active() {
			continue
		}
		if d.reaches(d.FindSection(clip.Resource), to, seen) {
			return true
		}
	}
	return false
}

// FirstReferable returns the first named section that `from` may reference
// without creating a cycle, or nil when no such section exists.
func (d *Document) FirstReferable(from *Section) *Section {
	for _, candidate := range d.Sections {
		if candidate.IsMain() || candidate.ID == d.MaskSectionID {
			continue
		}
		if from != nil && candidate.ID == from.ID {
			continue
		}
		if from != nil && d.reaches(candidate, from, make(map[int64]bool)) {
			continue
		}
		return candidate
	}
	return nil
}
