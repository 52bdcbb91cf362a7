package server

import (
	"context"
	"net"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/handler"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
)

type server struct {
	httpServer *httpServer
	address    string
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Metrics, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.Address == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.Address, logger),
		address:    cfg.Address,
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.run(ctx, ln)
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run(ctx context.Context, ln net.Listener) error {
	idleConnectionsClosed := make(chan struct{})
	stopped := make(chan struct{})

	// listen for cancellation until serve returns
	go func() {
		defer close(idleConnectionsClosed)
		select {
		case <-ctx.Done():
			s.Shutdown()
		case <-stopped:
		}
	}()

	s.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")
	err := s.httpServer.serve(ln)
	close(stopped)
	<-idleConnectionsClosed
	if err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
