package sender

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"badapple/pkg/proto"
)

const (
	DefaultExt    = ".bmp"
	DefaultDelay  = 100 * time.Millisecond
	DefaultSettle = 2 * time.Second
)

func New(fs afero.Fs, port proto.Port, logger *zap.Logger, opts ...Option) *Sender {
	s := &Sender{
		fs:     fs,
		port:   port,
		logger: logger,
		ext:    DefaultExt,
		delay:  DefaultDelay,
		settle: DefaultSettle,
		sleep:  sleepCtx,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Sender struct {
	fs       afero.Fs
	port     proto.Port
	logger   *zap.Logger
	ext      string
	delay    time.Duration
	settle   time.Duration
	progress io.Writer
	sleep    func(ctx context.Context, d time.Duration) error
}

// Result summarises a finished run.
type Result struct {
	Frames int
	Bytes  int64
}

// Frames lists the frame files of dir in send order.
func (s *Sender) Frames(dir string) ([]string, error) {
	if ok, err := afero.DirExists(s.fs, dir); err != nil {
		return nil, errors.Wrapf(err, "stat %s", dir)
	} else if !ok {
		return nil, errors.Wrapf(os.ErrNotExist, "frame dir %s", dir)
	}

	// ReadDir sorts by name.
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	matched := lo.Filter(entries, func(fi os.FileInfo, _ int) bool {
		return fi.Mode().IsRegular() && strings.HasSuffix(fi.Name(), s.ext)
	})

	return lo.Map(matched, func(fi os.FileInfo, _ int) string {
		return filepath.Join(dir, fi.Name())
	}), nil
}

// Run streams every frame of dir to the port, one write per file. The port
// is not closed.
func (s *Sender) Run(ctx context.Context, dir string) (*Result, error) {
	files, err := s.Frames(dir)
	if err != nil {
		return nil, err
	}

	s.logger.With(
		zap.String("dir", dir),
		zap.Int("frames", len(files)),
		zap.Duration("delay", s.delay),
	).Info("sending frames")

	if s.settle > 0 {
		s.logger.With(zap.Duration("settle", s.settle)).Debug("waiting for device reset")
		if err := s.sleep(ctx, s.settle); err != nil {
			return nil, err
		}
	}

	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(s.progress),
			progressbar.OptionSetDescription("frames"),
			progressbar.OptionShowCount(),
		)
	}

	res := &Result{}
	for _, file := range files {
		n, err := s.send(file)
		if err != nil {
			return res, err
		}
		res.Frames++
		res.Bytes += int64(n)

		if bar != nil {
			_ = bar.Add(1)
		}

		if err := s.sleep(ctx, s.delay); err != nil {
			return res, err
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	s.logger.With(
		zap.Int("frames", res.Frames),
		zap.String("size", bytesize.New(float64(res.Bytes)).String()),
	).Info("all frames sent")

	return res, nil
}

func (s *Sender) send(file string) (int, error) {
	data, err := afero.ReadFile(s.fs, file)
	if err != nil {
		return 0, errors.Wrapf(err, "read frame %s", file)
	}

	start := time.Now()
	n, err := s.port.Write(data)
	if err != nil {
		return n, errors.Wrapf(err, "write frame %s", file)
	}

	s.logger.With(
		zap.String("frame", file),
		zap.Int("sent", n),
		zap.Duration("cost", time.Since(start)),
	).Info("sent frame")

	return n, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
