package board

import "strings"

// RecordType identifies what a clip renders.
type RecordType string

const (
	RecordImage         RecordType = "image"
	RecordFrames        RecordType = "frames"
	RecordMovie         RecordType = "movie"
	RecordAnimatedImage RecordType = "animated_image"
	RecordColor         RecordType = "color"
	RecordSection       RecordType = "section"
	RecordBlack         RecordType = "black"
	RecordTransition    RecordType = "transition"
	RecordComment       RecordType = "comment"
)

var allRecordTypes = []RecordType{
	RecordImage,
	RecordFrames,
	RecordMovie,
	RecordAnimatedImage,
	RecordColor,
	RecordSection,
	RecordBlack,
	RecordTransition,
	RecordComment,
}

// ParseRecordType maps a keyword to a RecordType, defaulting to RecordImage.
func ParseRecordType(value string) (RecordType, bool) {
	needle := RecordType(strings.ToLower(strings.TrimSpace(value)))
	for _, rt := range allRecordTypes {
		if rt == needle {
			return rt, true
		}
	}
	return RecordImage, false
}

// MaskTrack is the reserved lane for mask clip definitions.
const MaskTrack = 0

// MovieParams carries decode parameters for MOVIE clips.
type MovieParams struct {
	DecoderHint string
	SeekFast    bool
	FlipH       bool
	FlipV       bool
}

// ColorParams carries the fill color of COLOR and BLACK clips.
type ColorParams struct {
	R, G, B uint8
}

// TransitionParams carries the per-frame attribute curve of an
// attribute-transition clip.
type TransitionParams struct {
	Attribute string
	Values    []float64
}

// Clip is the atomic editable unit of a storyboard.
//
// StoryID is unique within the owning Document, assigned once at creation
// and never reused. Selected is transient UI state: it is excluded from
// structural equality but still travels with deep copies so undo restores
// what the user saw.
type Clip struct {
	StoryID   int64
	Track     int
	Type      RecordType
	Resource  string // source path, or referenced section name for RecordSection
	FromFrame int
	ToFrame   int
	MaskName  string
	Comment   string
	Selected  bool
	Deleted   bool

	Movie      *MovieParams
	Color      *ColorParams
	Transition *TransitionParams
}

// NFrames returns the frame count covered by the clip's range.
func (c *Clip) NFrames() int {
	if c.ToFrame < c.FromFrame {
		return 0
	}
	return c.ToFrame - c.FromFrame + 1
}

// Active reports whether the clip participates in positional queries.
func (c *Clip) Active() bool {
	return !c.Deleted
}

// Clone returns a deep copy of the clip, story id included.
func (c *Clip) Clone() *Clip {
	if c == nil {
		return nil
	}
	dup := *c
	if c.Movie != nil {
		movie := *c.Movie
		dup.Movie = &movie
	}
	if c.Color != nil {
		color := *c.Color
		dup.Color = &color
	}
	if c.Transition != nil {
		transition := *c.Transition
		transition.Values = append([]float64(nil), c.Transition.Values...)
		dup.Transition = &transition
	}
	return &dup
}
