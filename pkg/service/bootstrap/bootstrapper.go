// Package bootstrap provides server initialization and setup logic
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	domainerrors "tracker-mcp/pkg/domain/errors"
	"tracker-mcp/pkg/service/config"
	"tracker-mcp/pkg/service/session"
	"tracker-mcp/pkg/service/tools"
	"tracker-mcp/pkg/upstream"
)

// Bootstrapper handles server initialization and component registration
type Bootstrapper struct {
	logger   *slog.Logger
	config   *config.Config
	sessions *session.TokenStore
}

// NewBootstrapper creates a new bootstrapper instance
func NewBootstrapper(logger *slog.Logger, cfg *config.Config) *Bootstrapper {
	return &Bootstrapper{
		logger:   logger,
		config:   cfg,
		sessions: session.NewTokenStore(),
	}
}

// Sessions returns the per-session credential store.
func (b *Bootstrapper) Sessions() *session.TokenStore {
	return b.sessions
}

// CreateMCPServer creates a new mcp-go server with capabilities. A session
// lifecycle hook drops the stored credential when a session unregisters, so
// tokens set via set_api_token never outlive their session.
func (b *Bootstrapper) CreateMCPServer() *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddOnUnregisterSession(func(ctx context.Context, s server.ClientSession) {
		b.sessions.Delete(s.SessionID())
		b.logger.Debug("Dropped session credential", slog.String("session_id", s.SessionID()))
	})

	return server.NewMCPServer(
		b.config.ServiceName,
		b.config.ServiceVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithHooks(hooks),
	)
}

// RegisterComponents wires the upstream client, session store, and tool
// catalog into the MCP server.
func (b *Bootstrapper) RegisterComponents(mcpServer *server.MCPServer) error {
	if mcpServer == nil {
		return domainerrors.New(domainerrors.CodeInternalError, "bootstrapper",
			"mcp server not initialized", nil)
	}

	deps := tools.ToolDependencies{
		Client:   upstream.NewClient(b.config.APIURL, b.config.HTTPTimeout, b.logger),
		Config:   b.config,
		Sessions: b.sessions,
		Logger:   b.logger,
	}
	if err := tools.RegisterTools(mcpServer, deps); err != nil {
		return domainerrors.New(domainerrors.CodeInternalError, "bootstrapper",
			"failed to register tools", err)
	}

	return nil
}
