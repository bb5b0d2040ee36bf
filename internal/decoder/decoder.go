package decoder

import (
	"context"
	"image"
)

// Decoder opens video resources for frame extraction.
type Decoder interface {
	// Open prepares a handle for the given resource. Track numbers follow
	// storyboard convention: 1..N select the n-th video stream. The hint
	// is an optional container format override for files ffmpeg cannot
	// sniff.
	Open(ctx context.Context, path string, track int, hint string) (Handle, error)
}

// Handle extracts frames from one opened resource. Handles are not safe for
// concurrent use; the prefetch pass decodes one frame at a time.
type Handle interface {
	// SeekAndDecode returns the decoded frame at the given frame number.
	SeekAndDecode(ctx context.Context, frame int) (*image.RGBA, error)
	Close() error
}
