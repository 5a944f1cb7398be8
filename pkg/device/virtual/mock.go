package virtual

import (
	"strings"
	"sync"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"badapple/pkg/bitmap"
	"badapple/pkg/proto"
)

// Mock stands in for the serial display. It logs and keeps every write.
func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger}
}

var _ proto.Port = (*Mocker)(nil)

type Mocker struct {
	mu     sync.Mutex
	l      *zap.Logger
	frames [][]byte
	closed bool
}

func (m *Mocker) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, errors.New("virtual port closed")
	}

	m.frames = append(m.frames, append([]byte(nil), p...))
	m.l.With(
		zap.Int("seq", len(m.frames)),
		zap.Int("bytes", len(p)),
		zap.String("size", bytesize.New(float64(len(p))).String()),
	).Info("write")

	return len(p), nil
}

func (m *Mocker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.l.With(zap.Int("frames", len(m.frames))).Info("close")
	return nil
}

func (m *Mocker) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Frames returns every buffer written so far, in order.
func (m *Mocker) Frames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.frames...)
}

// Preview draws recorded frame i as the panel would show it, lit pixels as
// '#'.
func (m *Mocker) Preview(i, w, h int) (string, error) {
	frames := m.Frames()
	if i < 0 || i >= len(frames) {
		return "", errors.Errorf("no frame %d", i)
	}

	mono, err := bitmap.Decode(frames[i], w, h)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			if mono.Lit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String(), nil
}
