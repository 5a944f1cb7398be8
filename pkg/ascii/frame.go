package ascii

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Aspect compensates for terminal cells being roughly twice as tall as wide.
const Aspect = 0.55

// Size returns the character grid for src at the given width.
func Size(src image.Rectangle, width int) (int, int) {
	if width < 1 || src.Dx() == 0 {
		return 0, 0
	}
	h := int(float64(src.Dy()) / float64(src.Dx()) * float64(width) * Aspect)
	if h < 1 {
		h = 1
	}
	return width, h
}

// Frame renders img as rows of ramp characters, width columns wide and
// joined by newlines without a trailing one.
func Frame(img image.Image, width int) string {
	w, h := Size(img.Bounds(), width)
	if w == 0 {
		return ""
	}

	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(resized.NRGBAAt(x, y)).(color.Gray)
			sb.WriteByte(Char(g.Y))
		}
	}

	return sb.String()
}
