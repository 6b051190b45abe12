package workers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewHTTPServer(address string, handler http.Handler, shutdownTimeout time.Duration) (*httpServer, error) {
	return &httpServer{
		server: &http.Server{
			Addr:    address,
			Handler: handler,
		},
		shutdownTimeout: shutdownTimeout,
	}, nil
}

func (s *httpServer) Name() string { return "http_server" }

func (s *httpServer) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "address", s.server.Addr)
	defer slog.Info("Worker stopped", "name", s.Name())

	// Request contexts inherit from the worker context so in-flight
	// streams observe shutdown.
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelFn := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancelFn()
	return s.server.Shutdown(shutdownCtx)
}
