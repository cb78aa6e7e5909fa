package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Depth is stored negated so that larger values are nearer.
type FrameBuffer struct {
	Width      int
	Height     int
	Color      []uint8   // RGBA interleaved, len = W*H*4
	ZBuf       []float64 // depth per pixel, len = W*H, cleared to -inf
	Background color.NRGBA
}

// NewFrameBuffer allocates a cleared w x h buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   make([]float64, n),
	}
	fb.Clear()
	return fb
}

// Viewport returns the buffer size.
func (fb *FrameBuffer) Viewport() (int, int) { return fb.Width, fb.Height }

// Clear fills color with the background and resets depth.
func (fb *FrameBuffer) Clear() {
	bg := fb.Background
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = bg.R
		fb.Color[i+1] = bg.G
		fb.Color[i+2] = bg.B
		fb.Color[i+3] = bg.A
	}
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
}

// At returns the color of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	i := (y*fb.Width + x) * 4
	return color.NRGBA{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

// Image copies the color buffer into a new image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
