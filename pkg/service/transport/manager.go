// Package transport handles MCP transport layer concerns
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
)

// Type represents the type of transport
type Type string

const (
	TypeStdio Type = "stdio"
	TypeHTTP  Type = "http"
	TypeSSE   Type = "sse"
)

// Manager handles transport lifecycle management
type Manager struct {
	logger        *slog.Logger
	transportType Type
	addr          string
}

// NewManager creates a new transport manager
func NewManager(logger *slog.Logger, transportType Type, addr string) *Manager {
	return &Manager{
		logger:        logger.With("component", "transport_manager"),
		transportType: transportType,
		addr:          addr,
	}
}

// Start starts the appropriate transport based on configuration and
// blocks until it stops or the context is cancelled.
func (m *Manager) Start(ctx context.Context, mcpServer *server.MCPServer) error {
	m.logger.Info("Starting transport", "type", m.transportType, "addr", m.addr)

	switch m.transportType {
	case TypeStdio:
		stdioServer := server.NewStdioServer(mcpServer)
		return m.serve(ctx, func() error {
			return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
		}, func(context.Context) error { return nil })

	case TypeHTTP:
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		return m.serve(ctx, func() error { return httpServer.Start(m.addr) }, httpServer.Shutdown)

	case TypeSSE:
		sseServer := server.NewSSEServer(mcpServer)
		return m.serve(ctx, func() error { return sseServer.Start(m.addr) }, sseServer.Shutdown)

	default:
		return fmt.Errorf("unsupported transport type: %s", m.transportType)
	}
}

// serve runs a network transport until it fails or the context ends,
// then shuts it down gracefully.
func (m *Manager) serve(ctx context.Context, start func() error, shutdown func(context.Context) error) error {
	transportDone := make(chan error, 1)
	go func() {
		transportDone <- start()
	}()

	select {
	case <-ctx.Done():
		m.logger.Info("Shutting down transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return shutdown(shutdownCtx)
	case err := <-transportDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			m.logger.Error("Transport stopped with error", "error", err)
			return err
		}
		m.logger.Info("Transport stopped gracefully")
		return nil
	}
}
