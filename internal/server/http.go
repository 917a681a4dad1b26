package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/MKhiriev/merlin-client/internal/logger"
)

type httpServer struct {
	server *http.Server

	mu       sync.Mutex
	listener net.Listener

	logger *logger.Logger
}

func (h *httpServer) listen() (net.Listener, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener != nil {
		return h.listener, nil
	}
	l, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", h.server.Addr, err)
	}
	h.listener = l
	return l, nil
}

// addr is the bound address, or the configured one before listening.
func (h *httpServer) addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.server.Addr
}

func (h *httpServer) RunServer() error {
	l, err := h.listen()
	if err != nil {
		return err
	}
	if err = h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}
