package vthumb

import (
	"image"
	"testing"
)

func TestScaleFrameDownscales(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	thumb := scaleFrame(frame, 160, 90)
	if got := thumb.Bounds(); got.Dx() != 160 || got.Dy() != 90 {
		t.Fatalf("scaled bounds = %v, want 160x90", got)
	}
}

func TestScaleFramePassthroughAtTargetSize(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 160, 90))
	if thumb := scaleFrame(frame, 160, 90); thumb != frame {
		t.Fatal("frame already at thumbnail size should not be copied")
	}
}

func TestScaleFrameNilFrame(t *testing.T) {
	thumb := scaleFrame(nil, 160, 90)
	if got := thumb.Bounds(); got.Dx() != 160 || got.Dy() != 90 {
		t.Fatalf("nil frame should yield a blank tile, got %v", got)
	}
}

func TestColorTile(t *testing.T) {
	tile := ColorTile(32, 32, 255, 0, 0)
	r, g, b, _ := tile.At(16, 16).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("color tile pixel = (%d, %d, %d), want (255, 0, 0)", r>>8, g>>8, b>>8)
	}
}

func TestPlaceholderTileHasExpectedSize(t *testing.T) {
	tile := PlaceholderTile(160, 90, "shots/intro.mov")
	if got := tile.Bounds(); got.Dx() != 160 || got.Dy() != 90 {
		t.Fatalf("placeholder bounds = %v, want 160x90", got)
	}
}
