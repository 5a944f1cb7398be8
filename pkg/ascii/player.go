package ascii

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"badapple/pkg/video"
)

// Separator is printed after every frame.
var Separator = strings.Repeat("=", 40)

const DefaultDelay = 2 * time.Millisecond

func NewPlayer(out io.Writer, width int, logger *zap.Logger, opts ...Option) *Player {
	p := &Player{
		out:    out,
		width:  width,
		logger: logger,
		delay:  DefaultDelay,
		sleep:  sleepCtx,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

type Player struct {
	out    io.Writer
	width  int
	logger *zap.Logger
	delay  time.Duration
	sync   bool
	sleep  func(ctx context.Context, d time.Duration) error
}

// Play renders src frame by frame until it runs dry. It returns the number
// of frames printed.
func (p *Player) Play(ctx context.Context, src video.Source) (int, error) {
	var frames int
	interval := p.interval(src)

	p.logger.With(
		zap.Int("width", p.width),
		zap.Float64("fps", src.FrameRate()),
		zap.Duration("interval", interval),
		zap.Bool("sync", p.sync),
	).Debug("playback started")

	for {
		start := time.Now()

		img, err := src.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return frames, errors.Wrapf(err, "decode frame %d", frames+1)
		}

		block := Frame(img, p.width) + "\n" + "\n" + Separator + "\n" + "\n"
		if _, err := io.WriteString(p.out, block); err != nil {
			return frames, errors.Wrap(err, "write frame")
		}
		frames++

		wait := interval
		if p.sync {
			wait -= time.Since(start)
		}
		if wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return frames, err
			}
		} else if err := ctx.Err(); err != nil {
			return frames, err
		}
	}

	p.logger.With(zap.Int("frames", frames)).Debug("playback finished")
	return frames, nil
}

func (p *Player) interval(src video.Source) time.Duration {
	if p.sync && src.FrameRate() > 0 {
		return time.Duration(float64(time.Second) / src.FrameRate())
	}
	return p.delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
