package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-mcp/pkg/service/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBootstrapper_CreateAndRegister(t *testing.T) {
	b := NewBootstrapper(testLogger(), config.DefaultConfig())

	mcpServer := b.CreateMCPServer()
	require.NotNil(t, mcpServer)

	err := b.RegisterComponents(mcpServer)
	assert.NoError(t, err)
}

func TestBootstrapper_NilServer(t *testing.T) {
	b := NewBootstrapper(testLogger(), config.DefaultConfig())

	err := b.RegisterComponents(nil)
	assert.Error(t, err)
}

type stubClientSession struct {
	id          string
	notifs      chan mcp.JSONRPCNotification
	initialized bool
}

func (s *stubClientSession) SessionID() string { return s.id }
func (s *stubClientSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifs
}
func (s *stubClientSession) Initialize()       { s.initialized = true }
func (s *stubClientSession) Initialized() bool { return s.initialized }

func TestBootstrapper_SessionTeardownDropsToken(t *testing.T) {
	b := NewBootstrapper(testLogger(), config.DefaultConfig())

	mcpServer := b.CreateMCPServer()
	require.NoError(t, b.RegisterComponents(mcpServer))

	sess := &stubClientSession{id: "sess-1", notifs: make(chan mcp.JSONRPCNotification, 1)}
	require.NoError(t, mcpServer.RegisterSession(context.Background(), sess))

	b.Sessions().Set(sess.SessionID(), "session-secret")
	_, ok := b.Sessions().Get(sess.SessionID())
	require.True(t, ok)

	mcpServer.UnregisterSession(context.Background(), sess.SessionID())

	_, ok = b.Sessions().Get(sess.SessionID())
	assert.False(t, ok, "credential must not outlive its session")
}
