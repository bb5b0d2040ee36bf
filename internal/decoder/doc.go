// Package decoder is the boundary to the external video decoder.
//
// The core treats decoding as a collaborator: open a handle for a resource,
// seek-and-decode single frames, close. Any failure means "no thumbnail
// available" to callers, never a fatal condition. The shipped implementation
// shells out to ffprobe for stream metadata and ffmpeg for single-frame
// extraction; tests substitute the Decoder interface with scripted fakes.
package decoder
