package tools

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	domainerrors "tracker-mcp/pkg/domain/errors"
)

// Dispatcher executes named tools. Every failure inside a handler, a
// returned error or a panic alike, is converted into an IsError result;
// the transport layer never sees a fault from a tool invocation.
type Dispatcher struct {
	deps     ToolDependencies
	handlers map[string]toolHandler
	params   map[string]map[string]bool
}

// NewDispatcher binds every configured tool handler to its dependencies.
func NewDispatcher(deps ToolDependencies) *Dispatcher {
	handlers := make(map[string]toolHandler, len(toolConfigs))
	params := make(map[string]map[string]bool, len(toolConfigs))
	for _, config := range toolConfigs {
		handlers[config.Name] = config.Handler(deps)
		allowed := make(map[string]bool, len(config.Params))
		for _, p := range config.Params {
			allowed[p.Name] = true
		}
		params[config.Name] = allowed
	}
	return &Dispatcher{deps: deps, handlers: handlers, params: params}
}

// validateArgs rejects argument fields the tool's schema does not declare.
func (d *Dispatcher) validateArgs(name string, args map[string]interface{}) error {
	var unknown []string
	for key := range args {
		if !d.params[name][key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return domainerrors.New(domainerrors.CodeInvalidArgument, "dispatcher",
		"unknown argument(s) for "+name+": "+strings.Join(unknown, ", "), nil)
}

// Dispatch runs the named tool against the given argument object.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) (result *mcp.CallToolResult) {
	logger := d.deps.Logger.With(
		slog.String("tool", name),
		slog.String("request_id", uuid.NewString()))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tool handler panicked", slog.Any("panic", r))
			result = errorResult(domainerrors.New(domainerrors.CodeInternalError, "dispatcher",
				"tool execution failed unexpectedly", errors.Errorf("%v", r)))
		}
	}()

	handler, ok := d.handlers[name]
	if !ok {
		logger.Warn("Unknown tool requested")
		return errorResult(domainerrors.New(domainerrors.CodeNotFound, "dispatcher",
			"unknown tool: "+name, nil))
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	if err := d.validateArgs(name, args); err != nil {
		logger.Warn("Rejected arguments", slog.String("error", err.Error()))
		return errorResult(err)
	}

	res, err := handler(ctx, args)
	if err != nil {
		logger.Warn("Tool returned error", slog.String("error", err.Error()))
		return errorResult(err)
	}

	logger.Debug("Tool completed", slog.Bool("is_error", res.IsError))
	return res
}
