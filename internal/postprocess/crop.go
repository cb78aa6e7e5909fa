package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Crop cuts img down to the bounding box of pixels that differ from bg,
// grown by margin on every side and clamped to the image. An image with
// nothing drawn is returned unchanged.
func Crop(img *image.NRGBA, bg color.NRGBA, margin int) *image.NRGBA {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == bg {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}

	r := image.Rect(minX-margin, minY-margin, maxX+1+margin, maxY+1+margin).Intersect(b)
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(out, image.Point{}, img, r, draw.Src, nil)
	return out
}
