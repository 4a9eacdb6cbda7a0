// Package tools implements the gateway's tool registry and dispatcher.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

// RegisterTools registers the whole tool catalog with the MCP server.
func RegisterTools(mcpServer *server.MCPServer, deps ToolDependencies) error {
	if err := validateDependencies(deps); err != nil {
		return err
	}

	dispatcher := NewDispatcher(deps)
	for _, config := range toolConfigs {
		if err := registerTool(mcpServer, config, dispatcher, deps); err != nil {
			return errors.Wrapf(err, "failed to register tool %s", config.Name)
		}
	}
	return nil
}

// registerTool registers a single tool based on its configuration
func registerTool(mcpServer *server.MCPServer, config ToolConfig, dispatcher *Dispatcher, deps ToolDependencies) error {
	tool := mcp.Tool{
		Name:        config.Name,
		Description: config.Description,
		InputSchema: BuildToolSchema(config),
	}

	name := config.Name
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return dispatcher.Dispatch(ctx, name, req.GetArguments()), nil
	}

	mcpServer.AddTool(tool, handler)
	deps.Logger.Info("Registered tool", slog.String("name", config.Name))
	return nil
}

// validateDependencies ensures required dependencies are provided
func validateDependencies(deps ToolDependencies) error {
	if deps.Client == nil {
		return errors.New("upstream client is required but not provided")
	}
	if deps.Config == nil {
		return errors.New("config is required but not provided")
	}
	if deps.Sessions == nil {
		return errors.New("session token store is required but not provided")
	}
	if deps.Logger == nil {
		return errors.New("logger is required but not provided")
	}
	return nil
}
