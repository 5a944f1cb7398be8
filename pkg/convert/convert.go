package convert

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"badapple/pkg/bitmap"
	"badapple/pkg/video"
)

const (
	PanelWidth  = 128
	PanelHeight = 64

	// NameFormat matches what the player firmware looks for on the card.
	NameFormat = "frame_%04d.bmp"
)

func New(fs afero.Fs, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		fs:        fs,
		logger:    logger,
		width:     PanelWidth,
		height:    PanelHeight,
		threshold: bitmap.DefaultThreshold,
		step:      1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Converter struct {
	fs        afero.Fs
	logger    *zap.Logger
	width     int
	height    int
	threshold uint8
	invert    bool
	letterbox bool
	step      int
}

// Fit scales img onto the panel. By default it fills and crops around the
// center, letterboxing keeps the whole picture on a black background.
func (c *Converter) Fit(img image.Image) image.Image {
	if c.letterbox {
		fitted := imaging.Fit(img, c.width, c.height, imaging.Lanczos)
		return imaging.PasteCenter(imaging.New(c.width, c.height, color.Black), fitted)
	}
	return imaging.Fill(img, c.width, c.height, imaging.Center, imaging.Lanczos)
}

// Frame encodes a single image into the panel layout.
func (c *Converter) Frame(img image.Image) []byte {
	return bitmap.Encode(c.Fit(img), c.threshold, c.invert)
}

// Run writes every step-th frame of src into dir, numbered from 1. It returns
// how many files were written.
func (c *Converter) Run(ctx context.Context, src video.Source, dir string) (int, error) {
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "create %s", dir)
	}

	log := c.logger.With(zap.String("dir", dir))
	log.With(
		zap.Int("width", c.width),
		zap.Int("height", c.height),
		zap.Int("step", c.step),
	).Info("converting frames")

	var decoded, written int
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		img, err := src.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return written, errors.Wrapf(err, "decode frame %d", decoded+1)
		}
		decoded++

		if (decoded-1)%c.step != 0 {
			continue
		}

		written++
		file := filepath.Join(dir, fmt.Sprintf(NameFormat, written))
		if err := afero.WriteFile(c.fs, file, c.Frame(img), 0644); err != nil {
			return written - 1, errors.Wrapf(err, "write %s", file)
		}
		log.With(zap.String("file", file)).Debug("frame written")
	}

	log.With(zap.Int("decoded", decoded), zap.Int("written", written)).Info("conversion done")
	return written, nil
}
