package remote

import (
	"context"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"badapple/pkg/proto"
)

// NewHandler serves port to rpc clients dialing over HTTP.
func NewHandler(port proto.Port, logger *zap.Logger) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("Port", &Service{port: port, logger: logger}); err != nil {
		return nil, err
	}
	return srv, nil
}

// Proxy exposes port on ln for the lifetime of the fx app. The port is
// closed when the app stops.
func Proxy(port proto.Port, ln net.Listener, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	handler, err := NewHandler(port, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.With(zap.String("addr", ln.Addr().String())).Info("serial proxy listening")
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Error("serial proxy stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return port.Close()
		},
	})

	return nil
}

type Service struct {
	mu     sync.Mutex
	port   proto.Port
	logger *zap.Logger
}

// Write hands one frame to the port. Calls from several senders are
// serialized so frames never interleave on the wire.
func (s *Service) Write(req *WriteRequest, resp *WriteResponse) error {
	s.mu.Lock()
	n, err := s.port.Write(req.Data)
	s.mu.Unlock()

	resp.N = n
	if err != nil {
		return err
	}

	s.logger.With(zap.Int("sent", n)).Debug("proxied write")
	return nil
}

// Finish marks the end of a remote run. The proxy owns the port and only
// closes it on shutdown.
func (s *Service) Finish(frames int, ok *bool) error {
	s.logger.With(zap.Int("frames", frames)).Info("remote sender finished")
	*ok = true
	return nil
}
