// Package device resolves a --serial argument to a frame sink.
package device

import (
	"net"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"badapple/pkg/device/remote"
	"badapple/pkg/device/virtual"
	"badapple/pkg/proto"
)

// Virtual is the --serial value selecting the in-memory dry-run port.
const Virtual = "virtual"

// Open returns the port behind name: the virtual mock, a remote proxy when
// name looks like host:port, or a local serial device otherwise.
func Open(name string, opts *proto.Options, logger *zap.Logger) (proto.Port, error) {
	switch {
	case name == Virtual:
		return virtual.Mock(logger.With(zap.String("device", Virtual))), nil
	case IsRemote(name):
		return remote.New(name)
	}

	s := proto.NewSerial(name)
	if err := s.Open(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// IsRemote reports whether name is a host:port proxy address rather than a
// device path. Linux by-path names carry colons too.
func IsRemote(name string) bool {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\\`) {
		return false
	}
	_, port, err := net.SplitHostPort(name)
	if err != nil {
		return false
	}
	_, err = strconv.ParseUint(port, 10, 16)
	return err == nil
}
