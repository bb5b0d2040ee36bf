package vthumb

import (
	"sort"

	"cutboard/internal/board"
)

// Key identifies one cached thumbnail.
type Key struct {
	Path  string
	Frame int
	Track int
	Hint  string
}

// buildWorklist scans the given documents for active MOVIE clips and returns
// their thumbnail keys, deduplicated and sorted by (resource, track, start
// frame). Grouping by resource keeps the file-open count at one per
// resource, and ascending frames keep the decoder seeking forward, which
// most decoders do far faster than seeking back.
func buildWorklist(docs ...*board.Document) []Key {
	seen := make(map[Key]struct{})
	var keys []Key
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, section := range doc.Sections {
			for _, clip := range section.Clips {
				if clip.Type != board.RecordMovie || !clip.Active() {
					continue
				}
				key := Key{Path: clip.Resource, Frame: clip.FromFrame, Track: clip.Track}
				if clip.Movie != nil {
					key.Hint = clip.Movie.DecoderHint
				}
				if key.Path == "" {
					continue
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Path != keys[j].Path {
			return keys[i].Path < keys[j].Path
		}
		if keys[i].Track != keys[j].Track {
			return keys[i].Track < keys[j].Track
		}
		return keys[i].Frame < keys[j].Frame
	})
	return keys
}
