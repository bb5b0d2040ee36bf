package vthumb

import (
	"context"
	"image"
	"log/slog"
	"sort"
	"sync"

	"cutboard/internal/board"
	"cutboard/internal/decoder"
	"cutboard/internal/logging"
)

// Status is the prefetch pass lifecycle state.
type Status string

const (
	StatusIdle             Status = "idle"
	StatusRunning          Status = "running"
	StatusRestartRequested Status = "restart_requested"
	StatusCancelled        Status = "cancelled"
)

// Entry is one cached thumbnail.
type Entry struct {
	Key         Key
	Image       *image.RGBA
	Width       int
	Height      int
	Placeholder bool // decode failed; the image is a rendered stand-in
}

// Progress reports incremental prefetch state after each processed entry.
type Progress struct {
	Index int // entries processed so far in this pass
	Total int
	Hits  int // entries satisfied from cache without decoding
}

// DocumentSource returns the current open documents. It is consulted on
// every (re)build so a restarted pass never sees a superseded document.
type DocumentSource func() []*board.Document

// Cache owns the thumbnail entries and drives the cooperative prefetch
// pass. Entries are invalidated only by Clear, never by document mutation;
// a stale thumbnail is acceptable until the next pass touches it.
type Cache struct {
	mu      sync.Mutex
	status  Status
	entries map[Key]*Entry

	dec     decoder.Decoder
	docs    DocumentSource
	width   int
	height  int
	logger  *slog.Logger
	onTick  func(Progress)

	worklist []Key
	next     int
	hits     int

	handle    decoder.Handle
	handleKey Key // frame field unused; identifies the open (path, track, hint)
}

// NewCache constructs an empty cache decoding through dec and scaling to the
// given thumbnail dimensions.
func NewCache(dec decoder.Decoder, docs DocumentSource, width, height int, logger *slog.Logger) *Cache {
	return &Cache{
		status:  StatusIdle,
		entries: make(map[Key]*Entry),
		dec:     dec,
		docs:    docs,
		width:   width,
		height:  height,
		logger:  logging.NewComponentLogger(logger, "vthumb"),
	}
}

// SetProgressFunc installs a callback invoked after every processed entry.
func (c *Cache) SetProgressFunc(fn func(Progress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

// Status returns the current pass state.
func (c *Cache) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Lookup returns the cached entry for a key, if present.
func (c *Cache) Lookup(key Key) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Entries returns a snapshot of every cached entry, sorted by key.
func (c *Cache) Entries() []*Entry {
	c.mu.Lock()
	entries := make([]*Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	c.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Key, entries[j].Key
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Frame < b.Frame
	})
	return entries
}

// Clear drops every cached entry. It does not disturb a running pass; the
// pass will simply re-decode what it needs.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*Entry)
}

// StartPrefetch begins a prefetch pass over the source documents. If a pass
// is already running this is a no-op returning false: at most one pass is
// ever active.
func (c *Cache) StartPrefetch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusRunning || c.status == StatusRestartRequested {
		return false
	}
	c.worklist = buildWorklist(c.currentDocs()...)
	c.next = 0
	c.hits = 0
	c.status = StatusRunning
	c.logger.Debug("prefetch pass started", logging.Int("entries", len(c.worklist)))
	return true
}

// RequestRestart marks the worklist invalid. A running pass stops after its
// current entry, rebuilds from the now-current documents, and resumes; with
// no pass running this is a no-op.
func (c *Cache) RequestRestart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusRunning {
		c.status = StatusRestartRequested
	}
}

// Cancel stops the pass without restarting. The caller is expected to
// disable the auto-thumbnail feature alongside.
func (c *Cache) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.status {
	case StatusRunning, StatusRestartRequested:
		c.status = StatusCancelled
	default:
		c.status = StatusIdle
	}
}

// Step processes at most one worklist entry and returns true when the pass
// has finished (completed, cancelled, or never started). The host loop calls
// Step once per turn; everything between two calls may mutate the documents
// freely.
func (c *Cache) Step(ctx context.Context) bool {
	c.mu.Lock()
	switch c.status {
	case StatusIdle:
		c.mu.Unlock()
		return true
	case StatusCancelled:
		c.finishLocked(StatusIdle, "prefetch cancelled")
		c.mu.Unlock()
		return true
	case StatusRestartRequested:
		c.worklist = buildWorklist(c.currentDocs()...)
		c.next = 0
		c.hits = 0
		c.status = StatusRunning
		c.closeHandleLocked()
		c.logger.Debug("prefetch pass restarted", logging.Int("entries", len(c.worklist)))
	}

	if c.next >= len(c.worklist) {
		c.finishLocked(StatusIdle, "prefetch pass complete")
		c.mu.Unlock()
		return true
	}

	key := c.worklist[c.next]
	c.next++
	if _, cached := c.entries[key]; cached {
		c.hits++
		c.reportLocked()
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	// Decode outside the lock; the cooperative model guarantees no other
	// pass is running, and mutators only touch status and entries.
	entry := c.decodeEntry(ctx, key)

	c.mu.Lock()
	c.entries[key] = entry
	c.reportLocked()
	c.mu.Unlock()
	return false
}

// Run drives Step until the pass finishes or the context is cancelled. It
// is a convenience for CLI use; an event-loop host calls Step directly.
func (c *Cache) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.Cancel()
			return ctx.Err()
		default:
		}
		if c.Step(ctx) {
			return nil
		}
	}
}

func (c *Cache) currentDocs() []*board.Document {
	if c.docs == nil {
		return nil
	}
	return c.docs()
}

func (c *Cache) finishLocked(status Status, msg string) {
	c.closeHandleLocked()
	c.status = status
	c.logger.Debug(msg,
		logging.Int("processed", c.next),
		logging.Int("total", len(c.worklist)),
		logging.Int("cache_hits", c.hits),
	)
}

func (c *Cache) reportLocked() {
	if c.onTick != nil {
		c.onTick(Progress{Index: c.next, Total: len(c.worklist), Hits: c.hits})
	}
}

func (c *Cache) decodeEntry(ctx context.Context, key Key) *Entry {
	handle, err := c.openHandle(ctx, key)
	if err != nil {
		c.logger.Warn("decoder open failed",
			logging.String(logging.FieldResource, key.Path),
			logging.Int(logging.FieldTrack, key.Track),
			logging.Error(err),
			logging.String(logging.FieldEventType, "vthumb_open_failed"),
			logging.String(logging.FieldErrorHint, "check the resource path and decoder install"),
		)
		return c.placeholderEntry(key)
	}

	frame, err := handle.SeekAndDecode(ctx, key.Frame)
	if err != nil {
		c.logger.Warn("frame decode failed",
			logging.String(logging.FieldResource, key.Path),
			logging.Int(logging.FieldFrame, key.Frame),
			logging.Error(err),
			logging.String(logging.FieldEventType, "vthumb_decode_failed"),
			logging.String(logging.FieldErrorHint, "the clip may reference frames past the end of the file"),
		)
		return c.placeholderEntry(key)
	}

	thumb := scaleFrame(frame, c.width, c.height)
	return &Entry{Key: key, Image: thumb, Width: c.width, Height: c.height}
}

// openHandle reuses the currently open handle when the next entry reads the
// same resource, which the sorted worklist makes the common case.
func (c *Cache) openHandle(ctx context.Context, key Key) (decoder.Handle, error) {
	c.mu.Lock()
	if c.handle != nil && c.handleKey.Path == key.Path && c.handleKey.Track == key.Track && c.handleKey.Hint == key.Hint {
		handle := c.handle
		c.mu.Unlock()
		return handle, nil
	}
	c.closeHandleLocked()
	c.mu.Unlock()

	handle, err := c.dec.Open(ctx, key.Path, key.Track, key.Hint)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.handle = handle
	c.handleKey = Key{Path: key.Path, Track: key.Track, Hint: key.Hint}
	c.mu.Unlock()
	return handle, nil
}

func (c *Cache) closeHandleLocked() {
	if c.handle != nil {
		_ = c.handle.Close()
		c.handle = nil
		c.handleKey = Key{}
	}
}

func (c *Cache) placeholderEntry(key Key) *Entry {
	return &Entry{
		Key:         key,
		Image:       PlaceholderTile(c.width, c.height, key.Path),
		Width:       c.width,
		Height:      c.height,
		Placeholder: true,
	}
}
