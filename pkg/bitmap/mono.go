package bitmap

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// NewMono allocates a cleared 1bpp buffer for r. The width is rounded up to a
// whole byte per row.
func NewMono(r image.Rectangle) *Mono {
	stride := (r.Dx() + 7) / 8
	return &Mono{
		pixels: make([]byte, stride*r.Dy()),
		stride: stride,
		bounds: r,
	}
}

// Decode wraps an already packed buffer, as read back from a frame file.
func Decode(bs []byte, w, h int) (*Mono, error) {
	stride := (w + 7) / 8
	if len(bs) != stride*h {
		return nil, errors.Errorf("bitmap size mismatch: got %d bytes, want %d for %dx%d", len(bs), stride*h, w, h)
	}
	return &Mono{
		pixels: bs,
		stride: stride,
		bounds: image.Rect(0, 0, w, h),
	}, nil
}

// Mono is a monochrome frame buffer in the layout the SH1106 player reads:
// rows top to bottom, 8 pixels per byte, most significant bit leftmost. A set
// bit lights the pixel. It implements the draw.Image interface.
//
//	byte 0          byte 1
//	x0 x1 ... x7    x8 x9 ... x15
type Mono struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

// Bytes returns the packed buffer.
func (m *Mono) Bytes() []byte {
	return m.pixels
}

// Bounds implements the image.Image interface.
func (m *Mono) Bounds() image.Rectangle {
	return m.bounds
}

// ColorModel implements the image.Image interface.
func (m *Mono) ColorModel() color.Model {
	return color.GrayModel
}

func (m *Mono) offset(x, y int) (int, byte, bool) {
	if !(image.Point{X: x, Y: y}.In(m.bounds)) {
		return 0, 0, false
	}
	x -= m.bounds.Min.X
	y -= m.bounds.Min.Y
	return y*m.stride + x/8, 0x80 >> uint(x%8), true
}

// Lit reports whether the pixel at x, y is on.
func (m *Mono) Lit(x, y int) bool {
	i, mask, ok := m.offset(x, y)
	return ok && m.pixels[i]&mask != 0
}

// At implements the image.Image interface.
func (m *Mono) At(x, y int) color.Color {
	if m.Lit(x, y) {
		return color.White
	}
	return color.Black
}

// SetLit switches a single pixel.
func (m *Mono) SetLit(x, y int, on bool) {
	i, mask, ok := m.offset(x, y)
	if !ok {
		return
	}
	if on {
		m.pixels[i] |= mask
	} else {
		m.pixels[i] &^= mask
	}
}

// Set implements the draw.Image interface. Anything at or above mid gray
// lights the pixel.
func (m *Mono) Set(x, y int, c color.Color) {
	m.SetLit(x, y, color.GrayModel.Convert(c).(color.Gray).Y >= DefaultThreshold)
}
