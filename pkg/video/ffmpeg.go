package video

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// OpenFFmpeg decodes path with an ffmpeg child process streaming rgb24
// rawvideo on stdout. The frame size comes from ffprobe.
func OpenFFmpeg(ctx context.Context, path string) (Source, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-an", "-sn",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "start ffmpeg")
	}

	src := newRawSource(stdout, info.Width, info.Height, info.FrameRate)
	return &ffmpegSource{rawSource: src, cmd: cmd, stderr: &stderr}, nil
}

type ffmpegSource struct {
	*rawSource
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	done   bool
	err    error
}

func (f *ffmpegSource) Next() (image.Image, error) {
	img, err := f.rawSource.Next()
	if err == io.EOF {
		if werr := f.wait(); werr != nil {
			return nil, werr
		}
	}
	return img, err
}

func (f *ffmpegSource) wait() error {
	if f.done {
		return f.err
	}
	f.done = true

	if err := f.cmd.Wait(); err != nil {
		msg := strings.TrimSpace(f.stderr.String())
		f.err = errors.Wrapf(err, "ffmpeg: %s", msg)
	}
	return f.err
}

func (f *ffmpegSource) Close() error {
	if f.done {
		return nil
	}
	if f.cmd.Process != nil {
		_ = f.cmd.Process.Kill()
	}
	f.done = true
	_ = f.cmd.Wait()
	return nil
}

// rawSource slices a packed rgb24 byte stream into frames.
type rawSource struct {
	r      *bufio.Reader
	width  int
	height int
	fps    float64
	buf    []byte
}

func newRawSource(r io.Reader, width, height int, fps float64) *rawSource {
	return &rawSource{
		r:      bufio.NewReaderSize(r, 1<<16),
		width:  width,
		height: height,
		fps:    fps,
		buf:    make([]byte, width*height*3),
	}
}

// Next reads one whole frame. A truncated trailing frame ends the stream.
func (s *rawSource) Next() (image.Image, error) {
	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for i, j := 0, 0; i < len(s.buf); i, j = i+3, j+4 {
		img.Pix[j] = s.buf[i]
		img.Pix[j+1] = s.buf[i+1]
		img.Pix[j+2] = s.buf[i+2]
		img.Pix[j+3] = 0xFF
	}

	return img, nil
}

func (s *rawSource) FrameRate() float64 {
	return s.fps
}

func (s *rawSource) Close() error {
	return nil
}
