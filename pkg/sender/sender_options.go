package sender

import (
	"io"
	"time"
)

type Option func(s *Sender)

func WithExt(ext string) Option {
	return func(s *Sender) {
		s.ext = ext
	}
}

// WithDelay sets the pause after each frame.
func WithDelay(d time.Duration) Option {
	return func(s *Sender) {
		s.delay = d
	}
}

// WithSettle sets the pause before the first frame, giving the board time to
// come back from the reset that opening the port triggers.
func WithSettle(d time.Duration) Option {
	return func(s *Sender) {
		s.settle = d
	}
}

func WithProgress(w io.Writer) Option {
	return func(s *Sender) {
		s.progress = w
	}
}
