package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg decodes frames by shelling out to ffmpeg/ffprobe.
type FFmpeg struct {
	FFmpegBinary  string
	FFprobeBinary string
}

// NewFFmpeg constructs a decoder using the given binaries, defaulting to
// whatever is on PATH.
func NewFFmpeg(ffmpegBinary, ffprobeBinary string) *FFmpeg {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	return &FFmpeg{FFmpegBinary: ffmpegBinary, FFprobeBinary: ffprobeBinary}
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	Index        int    `json:"index"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NBFrames     string `json:"nb_frames"`
}

// Open probes the resource and returns a frame-extraction handle.
func (f *FFmpeg) Open(ctx context.Context, path string, track int, hint string) (Handle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("decoder open: empty path")
	}

	cmd := exec.CommandContext(ctx, f.FFprobeBinary,
		"-v", "error", "-hide_banner", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("decoder probe: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("decoder probe parse: %w", err)
	}

	stream, err := selectVideoStream(probe, track)
	if err != nil {
		return nil, err
	}

	fps := parseFrameRate(stream.AvgFrameRate)
	if fps <= 0 {
		fps = 25
	}

	return &ffmpegHandle{
		binary:      f.FFmpegBinary,
		path:        path,
		hint:        strings.TrimSpace(hint),
		streamIndex: videoStreamOrdinal(track),
		frameRate:   fps,
	}, nil
}

// selectVideoStream maps a storyboard track number to a probed video stream.
func selectVideoStream(probe probeResult, track int) (probeStream, error) {
	wanted := videoStreamOrdinal(track)
	seen := 0
	for _, stream := range probe.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		if seen == wanted {
			return stream, nil
		}
		seen++
	}
	if seen > 0 {
		return probeStream{}, fmt.Errorf("decoder probe: no video stream for track %d (resource has %d)", track, seen)
	}
	return probeStream{}, errors.New("decoder probe: resource has no video streams")
}

// videoStreamOrdinal converts a 1-based storyboard track to a 0-based ffmpeg
// video stream ordinal. The mask track and anything malformed map to the
// first stream.
func videoStreamOrdinal(track int) int {
	if track <= 1 {
		return 0
	}
	return track - 1
}

func parseFrameRate(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "0/0" {
		return 0
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

type ffmpegHandle struct {
	binary      string
	path        string
	hint        string
	streamIndex int
	frameRate   float64
}

func (h *ffmpegHandle) SeekAndDecode(ctx context.Context, frame int) (*image.RGBA, error) {
	if frame < 0 {
		frame = 0
	}
	seconds := float64(frame) / h.frameRate

	args := seekArgs(h.hint, h.path, h.streamIndex, seconds)
	cmd := exec.CommandContext(ctx, h.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("decoder seek frame %d: %w: %s", frame, err, strings.TrimSpace(stderr.String()))
	}

	decoded, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decoder frame parse: %w", err)
	}
	return toRGBA(decoded), nil
}

func (h *ffmpegHandle) Close() error {
	// Nothing persistent is held between frames; each decode is one
	// short-lived ffmpeg invocation.
	return nil
}

func seekArgs(hint, path string, streamIndex int, seconds float64) []string {
	args := []string{"-v", "error", "-hide_banner"}
	if hint != "" {
		args = append(args, "-f", hint)
	}
	args = append(args,
		"-ss", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-i", path,
		"-map", fmt.Sprintf("0:v:%d", streamIndex),
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	return args
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}
