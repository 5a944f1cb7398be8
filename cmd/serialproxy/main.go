package main

import (
	"net"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"badapple/internal/logging"
	"badapple/pkg/device/remote"
	"badapple/pkg/proto"
)

var serial = flag.String("serial", "ttyUSB0", "serial name")
var baud = flag.Int("baud", 115200, "baud rate")
var listen = flag.String("listen", ":9123", "listen addr")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			func() (*zap.Logger, error) {
				return logging.New(*debug, zap.InfoLevel)
			},
			func() (proto.Port, error) {
				opts := proto.DefaultOptions()
				opts.BaudRate = *baud
				s := proto.NewSerial(*serial)
				return s, s.Open(opts)
			},
			func() (net.Listener, error) {
				return net.Listen("tcp", *listen)
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
