package vthumb

import (
	"image"
	stddraw "image/draw"
	"path/filepath"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// scaleFrame downscales a decoded frame to thumbnail dimensions.
func scaleFrame(frame *image.RGBA, width, height int) *image.RGBA {
	if frame == nil {
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}
	bounds := frame.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return frame
	}
	thumb := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(thumb, thumb.Bounds(), frame, bounds, xdraw.Over, nil)
	return thumb
}

// PlaceholderTile renders the "no thumbnail available" stand-in shown when a
// resource cannot be decoded.
func PlaceholderTile(width, height int, resource string) *image.RGBA {
	dc := gg.NewContext(width, height)
	dc.SetRGB255(48, 48, 48)
	dc.Clear()
	dc.SetRGB255(96, 96, 96)
	dc.SetLineWidth(2)
	dc.DrawLine(0, 0, float64(width), float64(height))
	dc.DrawLine(0, float64(height), float64(width), 0)
	dc.Stroke()
	if resource != "" {
		dc.SetRGB255(200, 200, 200)
		dc.DrawStringAnchored(filepath.Base(resource), float64(width)/2, float64(height)/2, 0.5, 0.5)
	}
	return toRGBA(dc.Image())
}

// ColorTile renders the thumbnail of a solid-color clip.
func ColorTile(width, height int, r, g, b uint8) *image.RGBA {
	dc := gg.NewContext(width, height)
	dc.SetRGB255(int(r), int(g), int(b))
	dc.Clear()
	return toRGBA(dc.Image())
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	stddraw.Draw(rgba, bounds, img, bounds.Min, stddraw.Src)
	return rgba
}
