package video

import (
	"image"
	"image/draw"
	"image/gif"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// OpenImage serves a single still image as a one frame stream.
func OpenImage(path string) (Source, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	return Frames(0, img), nil
}

// OpenGIF decodes every frame of an animated GIF up front. Frames are drawn
// over the previous canvas so partial frames render as the viewer would.
func OpenGIF(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	return FromGIF(g), nil
}

// FromGIF flattens an already decoded GIF.
func FromGIF(g *gif.GIF) Source {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	imgs := make([]image.Image, 0, len(g.Image))
	var delay int

	for i, frame := range g.Image {
		before := cloneRGBA(canvas)
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		imgs = append(imgs, cloneRGBA(canvas))

		if i < len(g.Delay) {
			delay += g.Delay[i]
		}
		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				canvas = before
			}
		}
	}

	var fps float64
	if delay > 0 {
		// delays are in 100ths of a second
		fps = float64(len(imgs)) * 100 / float64(delay)
	}

	return Frames(fps, imgs...)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
