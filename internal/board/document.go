package board

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two top-level editable documents.
type Kind string

const (
	KindLibrary    Kind = "library"
	KindStoryboard Kind = "storyboard"
)

// Master holds document-wide production properties.
type Master struct {
	FrameWidth  int
	FrameHeight int
	FrameRate   float64
	SampleRate  int
	AspectRatio string
}

// Document is one of the two top-level editable storyboards. Sections are
// held in an arena slice and referenced by id, so deep copies never fix up
// internal pointers. Version increments on every structural mutation and is
// the signal consumers use to detect a document replaced under them.
type Document struct {
	Kind            Kind
	Master          Master
	Sections        []*Section
	MaskSectionID   int64 // 0 when absent
	ActiveSectionID int64 // weak reference, resolved via SectionByID
	Version         int64

	nextStoryID   int64
	nextSectionID int64

	index *trackIndex
}

// NewDocument constructs an empty document of the given kind.
func NewDocument(kind Kind, master Master) *Document {
	return &Document{Kind: kind, Master: master}
}

// BumpVersion records a structural mutation and drops cached indexes.
func (d *Document) BumpVersion() {
	d.Version++
	d.index = nil
}

// NextStoryID hands out the next never-used story id.
func (d *Document) NextStoryID() int64 {
	d.nextStoryID++
	return d.nextStoryID
}

// AdoptStoryID widens the id allocator after loading externally numbered
// clips so future allocations never collide.
func (d *Document) AdoptStoryID(id int64) {
	if id > d.nextStoryID {
		d.nextStoryID = id
	}
}

// NewClip allocates a clip of the given type with a fresh story id. The clip
// is not attached to any section yet.
func (d *Document) NewClip(rt RecordType, track int) *Clip {
	return &Clip{StoryID: d.NextStoryID(), Track: track, Type: rt}
}

// MainSection returns the unnamed main section, creating it lazily.
func (d *Document) MainSection() *Section {
	for _, section := range d.Sections {
		if section.IsMain() {
			return section
		}
	}
	section := d.addSection("")
	return section
}

// FindSection returns the section with the given name, or nil. The main
// section is addressed by the empty name.
func (d *Document) FindSection(name string) *Section {
	name = strings.TrimSpace(name)
	for _, section := range d.Sections {
		if section.Name == name {
			return section
		}
	}
	return nil
}

// SectionByID resolves a section id, or nil when the id is stale.
func (d *Document) SectionByID(id int64) *Section {
	if id == 0 {
		return nil
	}
	for _, section := range d.Sections {
		if section.ID == id {
			return section
		}
	}
	return nil
}

// ActiveSection resolves the active-section weak reference, falling back to
// the main section when the reference is unset or stale.
func (d *Document) ActiveSection() *Section {
	if section := d.SectionByID(d.ActiveSectionID); section != nil {
		return section
	}
	section := d.MainSection()
	d.ActiveSectionID = section.ID
	return section
}

// MaskSection returns the auxiliary mask section, or nil when absent.
func (d *Document) MaskSection() *Section {
	return d.SectionByID(d.MaskSectionID)
}

// EnsureMaskSection creates the mask section on first use.
func (d *Document) EnsureMaskSection() *Section {
	if section := d.MaskSection(); section != nil {
		return section
	}
	section := d.addSection("mask")
	d.MaskSectionID = section.ID
	return section
}

// AddSection appends a named section. Names must be unique and non-empty;
// the unnamed main section is created implicitly.
func (d *Document) AddSection(name string) (*Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: section name must not be empty", ErrInvariant)
	}
	if d.FindSection(name) != nil {
		return nil, fmt.Errorf("%w: section %q already exists", ErrInvariant, name)
	}
	return d.addSection(name), nil
}

func (d *Document) addSection(name string) *Section {
	d.nextSectionID++
	section := &Section{ID: d.nextSectionID, Name: name}
	d.Sections = append(d.Sections, section)
	d.BumpVersion()
	return section
}

// FindClip locates a clip by story id anywhere in the document.
func (d *Document) FindClip(storyID int64) (*Section, *Clip) {
	for _, section := range d.Sections {
		if clip := section.FindClip(storyID); clip != nil {
			return section, clip
		}
	}
	return nil, nil
}

// SelectedClips returns every selected clip in the document, in section and
// temporal order.
func (d *Document) SelectedClips() []*Clip {
	var clips []*Clip
	for _, section := range d.Sections {
		for _, clip := range section.Clips {
			if clip.Selected {
				clips = append(clips, clip)
			}
		}
	}
	return clips
}

// SelectedCount counts selected clips across the whole document.
func (d *Document) SelectedCount() int {
	count := 0
	for _, section := range d.Sections {
		for _, clip := range section.Clips {
			if clip.Selected {
				count++
			}
		}
	}
	return count
}

// ClearSelection drops the selected flag everywhere. Selection is transient
// UI state, so this does not bump the document version.
func (d *Document) ClearSelection() {
	for _, section := range d.Sections {
		for _, clip := range section.Clips {
			clip.Selected = false
		}
	}
}
