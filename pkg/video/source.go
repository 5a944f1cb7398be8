package video

import (
	"context"
	"image"
	"io"
	"path/filepath"
	"strings"
)

// Source yields decoded frames in decode order. Next returns io.EOF once the
// stream is exhausted.
type Source interface {
	Next() (image.Image, error)
	FrameRate() float64
	Close() error
}

// Open picks a decoder by file extension. GIFs and still images are decoded
// in process, everything else is handed to ffmpeg.
func Open(ctx context.Context, path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return OpenGIF(path)
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return OpenImage(path)
	default:
		return OpenFFmpeg(ctx, path)
	}
}

// Frames serves a fixed list of images.
func Frames(fps float64, imgs ...image.Image) Source {
	return &frames{imgs: imgs, fps: fps}
}

type frames struct {
	imgs []image.Image
	fps  float64
	pos  int
}

func (f *frames) Next() (image.Image, error) {
	if f.pos >= len(f.imgs) {
		return nil, io.EOF
	}
	img := f.imgs[f.pos]
	f.pos++
	return img, nil
}

func (f *frames) FrameRate() float64 {
	return f.fps
}

func (f *frames) Close() error {
	f.pos = len(f.imgs)
	return nil
}
