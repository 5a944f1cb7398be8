package bitmap

import (
	"image"
	"image/color"
)

const DefaultThreshold = 128

// Encode thresholds src into a packed 1bpp buffer. Pixels whose luma reaches
// threshold are lit, or unlit when invert is set.
func Encode(src image.Image, threshold uint8, invert bool) []byte {
	b := src.Bounds()
	dst := NewMono(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			luma := color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y
			dst.SetLit(x-b.Min.X, y-b.Min.Y, (luma >= threshold) != invert)
		}
	}

	return dst.pixels
}
