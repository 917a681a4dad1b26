package server

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/merlin-client/internal/config"
	"github.com/MKhiriev/merlin-client/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the bridge server for handler. It fails when no bridge
// address is configured.
func NewServer(handler http.Handler, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: cfg.RequestTimeout,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
	}

	return &server{
		httpServer: &httpServer{server: srv, logger: logger},
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.logger.Info().Str("addr", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go func() {
		errCh <- s.httpServer.RunServer()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && err == nil {
		err = serveErr
	}
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
