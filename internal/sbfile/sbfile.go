package sbfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cutboard/internal/board"
)

// Master property keywords managed by this package. Managed lines are
// rewritten in place on save, keeping their position and trailing comment;
// managed keys absent from the file are appended at the end of the header.
const (
	keyFrameWidth  = "frame_width"
	keyFrameHeight = "frame_height"
	keyFrameRate   = "frame_rate"
	keySampleRate  = "sample_rate"
	keyAspectRatio = "aspect_ratio"
)

var masterKeys = []string{
	keyFrameWidth,
	keyFrameHeight,
	keyFrameRate,
	keySampleRate,
	keyAspectRatio,
}

// Body keywords. Everything not listed here and not a master key passes
// through verbatim.
const (
	keySection     = "section"
	keyMaskSection = "mask_section"
	keyClip        = "clip"
	keyHint        = "hint"
	keySeekFast    = "seek_fast"
	keyFlipH       = "flip_h"
	keyFlipV       = "flip_v"
	keyRGB         = "rgb"
	keyMask        = "mask"
	keyNote        = "note"
	keyCurve       = "curve"
	keyDeleted     = "deleted"
)

// headerLine is one slot of the file header. raw passthrough lines keep
// their original text; managed slots remember which master key lives there
// and the comment to re-attach on rewrite.
type headerLine struct {
	raw     string
	managed string
	comment string
}

// File binds a parsed storyboard document to the on-disk text it came from.
// Save rewrites managed content and regenerates the clip body while leaving
// every preserved line untouched.
type File struct {
	Path string
	Doc  *board.Document

	header []headerLine
}

// New creates an in-memory file for a fresh document. The header starts
// empty, so the first save writes every master key.
func New(path string, kind board.Kind, master board.Master) *File {
	return &File{Path: path, Doc: board.NewDocument(kind, master)}
}

// Load reads a storyboard file. Unknown keywords and malformed lines are
// preserved for the next save; master keys missing from the file keep the
// values given in defaults. Story ids are assigned in file order.
func Load(path string, kind board.Kind, defaults board.Master) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storyboard: %w", err)
	}
	defer f.Close()

	file := &File{Path: path, Doc: board.NewDocument(kind, defaults)}
	if err := file.parse(f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// Read parses storyboard text from r without touching the filesystem.
func Read(r io.Reader, kind board.Kind, defaults board.Master) (*File, error) {
	file := &File{Doc: board.NewDocument(kind, defaults)}
	if err := file.parse(r); err != nil {
		return nil, err
	}
	return file, nil
}

func (f *File) parse(r io.Reader) error {
	doc := f.Doc
	section := doc.MainSection()
	var clip *board.Clip
	inBody := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		rec, ok := parseLine(raw)
		if !ok {
			// blank lines inside the body are layout the writer
			// regenerates; everything else passes through
			if !inBody || strings.TrimSpace(raw) != "" {
				f.preserve(raw)
			}
			continue
		}

		switch rec.keyword {
		case keyFrameWidth, keyFrameHeight, keySampleRate:
			value, err := intField(rec, 0)
			if err != nil {
				f.preserve(raw)
				continue
			}
			switch rec.keyword {
			case keyFrameWidth:
				doc.Master.FrameWidth = value
			case keyFrameHeight:
				doc.Master.FrameHeight = value
			case keySampleRate:
				doc.Master.SampleRate = value
			}
			f.headerSlot(rec)
		case keyFrameRate:
			value, err := floatField(rec, 0)
			if err != nil {
				f.preserve(raw)
				continue
			}
			doc.Master.FrameRate = value
			f.headerSlot(rec)
		case keyAspectRatio:
			if len(rec.fields) == 0 {
				f.preserve(raw)
				continue
			}
			doc.Master.AspectRatio = rec.fields[0]
			f.headerSlot(rec)
		case keySection:
			if len(rec.fields) == 0 {
				f.preserve(raw)
				continue
			}
			next := doc.FindSection(rec.fields[0])
			if next == nil {
				added, err := doc.AddSection(rec.fields[0])
				if err != nil {
					f.preserve(raw)
					continue
				}
				next = added
			}
			// A repeated section name reopens the existing section, so
			// its clips merge rather than failing the whole load.
			section, clip, inBody = next, nil, true
		case keyMaskSection:
			section, clip, inBody = doc.EnsureMaskSection(), nil, true
		case keyClip:
			next, err := parseClip(doc, rec)
			if err != nil {
				f.preserve(raw)
				continue
			}
			section.Clips = append(section.Clips, next)
			clip, inBody = next, true
		case keyHint, keySeekFast, keyFlipH, keyFlipV, keyRGB, keyMask, keyNote, keyCurve, keyDeleted:
			if clip == nil || !applyPayload(clip, rec) {
				f.preserve(raw)
			}
		default:
			f.preserve(raw)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	doc.BumpVersion()
	return nil
}

// preserve keeps a line verbatim. Preserved lines stay in their original
// relative order and are written back as part of the header block, so the
// regenerated clip body cannot orphan them.
func (f *File) preserve(raw string) {
	f.header = append(f.header, headerLine{raw: raw})
}

// headerSlot records a managed master key at its position in the header.
// A master key found inside the body still applies; it migrates into the
// header on the next save.
func (f *File) headerSlot(rec record) {
	f.header = append(f.header, headerLine{managed: rec.keyword, comment: rec.comment})
}

func intField(rec record, i int) (int, error) {
	if i >= len(rec.fields) {
		return 0, fmt.Errorf("%s: missing field %d", rec.keyword, i)
	}
	return strconv.Atoi(rec.fields[i])
}

func floatField(rec record, i int) (float64, error) {
	if i >= len(rec.fields) {
		return 0, fmt.Errorf("%s: missing field %d", rec.keyword, i)
	}
	return strconv.ParseFloat(rec.fields[i], 64)
}

func parseClip(doc *board.Document, rec record) (*board.Clip, error) {
	if len(rec.fields) < 4 {
		return nil, fmt.Errorf("clip record needs type, track, from, to")
	}
	rt, known := board.ParseRecordType(rec.fields[0])
	if !known {
		return nil, fmt.Errorf("unknown clip type %q", rec.fields[0])
	}
	track, err := strconv.Atoi(rec.fields[1])
	if err != nil {
		return nil, fmt.Errorf("clip track: %w", err)
	}
	from, err := strconv.Atoi(rec.fields[2])
	if err != nil {
		return nil, fmt.Errorf("clip from frame: %w", err)
	}
	to, err := strconv.Atoi(rec.fields[3])
	if err != nil {
		return nil, fmt.Errorf("clip to frame: %w", err)
	}

	clip := doc.NewClip(rt, track)
	clip.FromFrame = from
	clip.ToFrame = to
	if len(rec.fields) > 4 {
		clip.Resource = rec.fields[4]
	}
	clip.Comment = rec.comment
	return clip, nil
}

func applyPayload(clip *board.Clip, rec record) bool {
	switch rec.keyword {
	case keyHint:
		if len(rec.fields) == 0 {
			return false
		}
		movieParams(clip).DecoderHint = rec.fields[0]
	case keySeekFast:
		movieParams(clip).SeekFast = true
	case keyFlipH:
		movieParams(clip).FlipH = true
	case keyFlipV:
		movieParams(clip).FlipV = true
	case keyRGB:
		if len(rec.fields) < 3 {
			return false
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			value, err := strconv.Atoi(rec.fields[i])
			if err != nil || value < 0 || value > 255 {
				return false
			}
			rgb[i] = uint8(value)
		}
		clip.Color = &board.ColorParams{R: rgb[0], G: rgb[1], B: rgb[2]}
	case keyMask:
		if len(rec.fields) == 0 {
			return false
		}
		clip.MaskName = rec.fields[0]
	case keyNote:
		if len(rec.fields) == 0 {
			return false
		}
		clip.Comment = rec.fields[0]
	case keyCurve:
		if len(rec.fields) < 2 {
			return false
		}
		values := make([]float64, 0, len(rec.fields)-1)
		for _, field := range rec.fields[1:] {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return false
			}
			values = append(values, value)
		}
		clip.Transition = &board.TransitionParams{Attribute: rec.fields[0], Values: values}
	case keyDeleted:
		clip.Deleted = true
	default:
		return false
	}
	return true
}

func movieParams(clip *board.Clip) *board.MovieParams {
	if clip.Movie == nil {
		clip.Movie = &board.MovieParams{}
	}
	return clip.Movie
}

// Save writes the file back to its path.
func (f *File) Save() error {
	var sb strings.Builder
	if err := f.WriteTo(&sb); err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write storyboard: %w", err)
	}
	return nil
}

// WriteTo renders the file: the preserved header with managed keys rewritten
// in place, managed-but-absent keys appended, a blank separator, then the
// regenerated clip body.
func (f *File) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	seen := make(map[string]bool, len(masterKeys))
	lastBlank := false

	for _, line := range f.header {
		if line.managed == "" {
			fmt.Fprintln(bw, line.raw)
			lastBlank = strings.TrimSpace(line.raw) == ""
			continue
		}
		if seen[line.managed] {
			// duplicate managed key collapses to its first occurrence
			continue
		}
		seen[line.managed] = true
		fmt.Fprintln(bw, formatLine(line.managed, []string{f.masterValue(line.managed)}, line.comment))
		lastBlank = false
	}
	for _, key := range masterKeys {
		if !seen[key] {
			fmt.Fprintln(bw, formatLine(key, []string{f.masterValue(key)}, ""))
			lastBlank = false
		}
	}

	for _, section := range f.Doc.Sections {
		if len(section.Clips) == 0 && section.IsMain() {
			continue
		}
		if !lastBlank {
			fmt.Fprintln(bw)
		}
		lastBlank = false
		switch {
		case section.ID == f.Doc.MaskSectionID:
			fmt.Fprintln(bw, formatLine(keyMaskSection, nil, ""))
		case !section.IsMain():
			fmt.Fprintln(bw, formatLine(keySection, []string{section.Name}, ""))
		}
		for _, clip := range section.Clips {
			writeClip(bw, clip)
		}
	}
	return bw.Flush()
}

func (f *File) masterValue(key string) string {
	master := f.Doc.Master
	switch key {
	case keyFrameWidth:
		return strconv.Itoa(master.FrameWidth)
	case keyFrameHeight:
		return strconv.Itoa(master.FrameHeight)
	case keyFrameRate:
		return strconv.FormatFloat(master.FrameRate, 'f', -1, 64)
	case keySampleRate:
		return strconv.Itoa(master.SampleRate)
	case keyAspectRatio:
		return master.AspectRatio
	}
	return ""
}

func writeClip(w io.Writer, clip *board.Clip) {
	fields := []string{
		string(clip.Type),
		strconv.Itoa(clip.Track),
		strconv.Itoa(clip.FromFrame),
		strconv.Itoa(clip.ToFrame),
	}
	if clip.Resource != "" {
		fields = append(fields, clip.Resource)
	}
	fmt.Fprintln(w, formatLine(keyClip, fields, clip.Comment))

	if clip.Movie != nil {
		if clip.Movie.DecoderHint != "" {
			fmt.Fprintln(w, formatLine(keyHint, []string{clip.Movie.DecoderHint}, ""))
		}
		if clip.Movie.SeekFast {
			fmt.Fprintln(w, formatLine(keySeekFast, nil, ""))
		}
		if clip.Movie.FlipH {
			fmt.Fprintln(w, formatLine(keyFlipH, nil, ""))
		}
		if clip.Movie.FlipV {
			fmt.Fprintln(w, formatLine(keyFlipV, nil, ""))
		}
	}
	if clip.Color != nil {
		fields := []string{
			strconv.Itoa(int(clip.Color.R)),
			strconv.Itoa(int(clip.Color.G)),
			strconv.Itoa(int(clip.Color.B)),
		}
		fmt.Fprintln(w, formatLine(keyRGB, fields, ""))
	}
	if clip.MaskName != "" {
		fmt.Fprintln(w, formatLine(keyMask, []string{clip.MaskName}, ""))
	}
	if clip.Transition != nil {
		fields := make([]string, 0, len(clip.Transition.Values)+1)
		fields = append(fields, clip.Transition.Attribute)
		for _, value := range clip.Transition.Values {
			fields = append(fields, strconv.FormatFloat(value, 'f', -1, 64))
		}
		fmt.Fprintln(w, formatLine(keyCurve, fields, ""))
	}
	if clip.Deleted {
		fmt.Fprintln(w, formatLine(keyDeleted, nil, ""))
	}
}
