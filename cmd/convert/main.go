package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"badapple/internal/logging"
	"badapple/pkg/bitmap"
	"badapple/pkg/convert"
	"badapple/pkg/video"
)

var input = flag.String("input", "", "video, gif or image to convert")
var out = flag.String("out", "./converted_frames/", "output directory")
var width = flag.Int("width", convert.PanelWidth, "panel width")
var height = flag.Int("height", convert.PanelHeight, "panel height")
var threshold = flag.Uint8("threshold", bitmap.DefaultThreshold, "luma at which a pixel lights")
var invert = flag.Bool("invert", false, "light dark pixels instead")
var letterbox = flag.Bool("letterbox", false, "fit the whole frame instead of cropping")
var step = flag.Int("step", 1, "keep one frame out of every step")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()
	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	if *input == "" {
		log.Fatal("no input given")
	}

	logger, err := logging.New(*debug, zap.InfoLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil && ctx.Err() == nil {
		logger.With(zap.Error(err)).Fatal("convert failed")
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	src, err := video.Open(ctx, *input)
	if err != nil {
		return errors.Wrapf(err, "open %s", *input)
	}
	defer func() {
		_ = src.Close()
	}()

	c := convert.New(afero.NewOsFs(), logger,
		convert.WithSize(*width, *height),
		convert.WithThreshold(*threshold),
		convert.WithInvert(*invert),
		convert.WithLetterbox(*letterbox),
		convert.WithStep(*step),
	)

	_, err = c.Run(ctx, src, *out)
	return err
}
