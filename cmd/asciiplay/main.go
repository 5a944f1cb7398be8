package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"badapple/internal/logging"
	"badapple/internal/termsize"
	"badapple/pkg/ascii"
	"badapple/pkg/video"
)

var path = flag.String("video", "Bad Apple!!.mp4", "video file to play")
var width = flag.Int("width", 0, "output columns, 0 follows the terminal")
var delay = flag.Duration("delay", ascii.DefaultDelay, "pause after each frame")
var sync = flag.Bool("sync", false, "pace output to the video frame rate")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()
	if flag.NArg() > 0 {
		*path = flag.Arg(0)
	}

	logger, err := logging.New(*debug, zap.WarnLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cols := *width
	if cols <= 0 {
		cols = termsize.Width(os.Stdout)
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(ctx, *path, cols, flusher{out}, logger, ascii.WithDelay(*delay), ascii.WithSync(*sync))
	_ = out.Flush()
	if err != nil && ctx.Err() == nil {
		logger.With(zap.Error(err)).Fatal("playback failed")
	}
}

// run plays path to out. A video that cannot be opened is reported on out
// and is not an error.
func run(ctx context.Context, path string, cols int, out io.Writer, logger *zap.Logger, opts ...ascii.Option) error {
	src, err := video.Open(ctx, path)
	if err != nil {
		fmt.Fprintln(out, "Error: Could not open video.")
		logger.With(zap.String("video", path), zap.Error(err)).Warn("open failed")
		return nil
	}
	defer func() {
		_ = src.Close()
	}()

	_, err = ascii.NewPlayer(out, cols, logger, opts...).Play(ctx, src)
	return err
}

// flusher pushes each frame block out in one write.
type flusher struct {
	w *bufio.Writer
}

func (f flusher) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, f.w.Flush()
}
