package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"badapple/internal/logging"
	"badapple/pkg/device"
	"badapple/pkg/proto"
	"badapple/pkg/sender"
)

var serial = flag.String("serial", "COM10", "serial name, remote proxy addr (host:port) or \"virtual\"")
var baud = flag.Int("baud", 115200, "baud rate")
var dir = flag.String("dir", "./converted_frames/", "directory of converted frames")
var ext = flag.String("ext", sender.DefaultExt, "frame file extension")
var delay = flag.Duration("delay", sender.DefaultDelay, "pause after each frame")
var settle = flag.Duration("settle", sender.DefaultSettle, "pause after opening the port")
var progress = flag.Bool("progress", false, "show a progress bar")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	logger, err := logging.New(*debug, zap.InfoLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		if interrupted(ctx, err) {
			logger.Info("interrupted")
			return
		}
		logger.With(zap.Error(err)).Fatal("send failed")
	}
}

// interrupted tells a signal-stopped run apart from a real failure.
func interrupted(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func run(ctx context.Context, logger *zap.Logger) error {
	opts := proto.DefaultOptions()
	opts.BaudRate = *baud

	port, err := device.Open(*serial, opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			logger.With(zap.Error(err)).Info("close failed")
		}
	}()

	senderOpts := []sender.Option{
		sender.WithExt(*ext),
		sender.WithDelay(*delay),
		sender.WithSettle(*settle),
	}
	if *progress {
		senderOpts = append(senderOpts, sender.WithProgress(os.Stderr))
	}

	s := sender.New(afero.NewOsFs(), port, logger.With(zap.String("serial", *serial)), senderOpts...)
	_, err = s.Run(ctx, *dir)
	return err
}
