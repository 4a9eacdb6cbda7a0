package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"tracker-mcp/pkg/service/config"
	"tracker-mcp/pkg/service/session"
	"tracker-mcp/pkg/upstream"
)

// ParamSpec describes one input field of a tool schema.
type ParamSpec struct {
	Name        string
	Type        string // "string", "integer"
	Description string
	Required    bool
	Default     interface{}
}

// ToolConfig defines the configuration for a tool
type ToolConfig struct {
	Name        string
	Description string
	Params      []ParamSpec

	// Handler constructor bound during registration
	Handler func(deps ToolDependencies) toolHandler
}

// toolHandler executes one tool call. A returned error is converted to an
// IsError result at the dispatcher boundary; it never reaches the transport.
type toolHandler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)

// ToolDependencies holds all dependencies a tool might need
type ToolDependencies struct {
	Client   *upstream.Client
	Config   *config.Config
	Sessions *session.TokenStore
	Logger   *slog.Logger
}

// All tool configurations in a single table. Slice order is the listing
// order reported to clients.
var toolConfigs = []ToolConfig{
	{
		Name:        "get_users",
		Description: "Fetch one page of the project's user listing from the issue tracker",
		Params: []ParamSpec{
			{Name: "page", Type: "integer", Description: "Page number of the users listing", Default: 1},
			{Name: "project_key", Type: "string", Description: "Project key, defaults to the configured project"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createGetUsersHandler,
	},
	{
		Name:        "get_issue",
		Description: "Fetch an issue by its key (e.g. FBOTS-123)",
		Params: []ParamSpec{
			{Name: "issue_key", Type: "string", Description: "Issue key, project prefix and number separated by '-'", Required: true},
			{Name: "project_key", Type: "string", Description: "Project key, derived from the issue key when absent"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createGetIssueHandler,
	},
	{
		Name:        "get_statuses",
		Description: "List the workflow statuses available in the project",
		Params: []ParamSpec{
			{Name: "project_key", Type: "string", Description: "Project key, defaults to the configured project"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createGetStatusesHandler,
	},
	{
		Name:        "get_issue_types",
		Description: "List the issue types available in the project",
		Params: []ParamSpec{
			{Name: "project_key", Type: "string", Description: "Project key, defaults to the configured project"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createGetIssueTypesHandler,
	},
	{
		Name:        "create_issue",
		Description: "Create a new issue in the project",
		Params: []ParamSpec{
			{Name: "title", Type: "string", Description: "Issue title", Required: true},
			{Name: "description", Type: "string", Description: "Issue description"},
			{Name: "issue_type_id", Type: "string", Description: "Issue type id, defaults to the Task type"},
			{Name: "owner_id", Type: "string", Description: "Id of the user the issue is assigned to"},
			{Name: "priority_id", Type: "string", Description: "Priority id"},
			{Name: "status_id", Type: "string", Description: "Status id"},
			{Name: "project_key", Type: "string", Description: "Project key, defaults to the configured project"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createCreateIssueHandler,
	},
	{
		Name:        "update_issue",
		Description: "Update an issue; only the fields supplied are changed, everything else is left untouched",
		Params: []ParamSpec{
			{Name: "issue_key", Type: "string", Description: "Issue key, project prefix and number separated by '-'", Required: true},
			{Name: "title", Type: "string", Description: "New issue title"},
			{Name: "description", Type: "string", Description: "New issue description"},
			{Name: "issue_type_id", Type: "string", Description: "New issue type id"},
			{Name: "status_id", Type: "string", Description: "New status id"},
			{Name: "owner_id", Type: "string", Description: "New owner id"},
			{Name: "priority_id", Type: "string", Description: "New priority id"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createUpdateIssueHandler,
	},
	{
		Name:        "add_comment",
		Description: "Add a comment to an issue, resolving its key to the internal numeric id first",
		Params: []ParamSpec{
			{Name: "issue_key", Type: "string", Description: "Issue key, project prefix and number separated by '-'", Required: true},
			{Name: "content", Type: "string", Description: "Comment text", Required: true},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createAddCommentHandler,
	},
	{
		Name:        "get_comments",
		Description: "Fetch the comments of an issue, resolving its key to the internal numeric id first",
		Params: []ParamSpec{
			{Name: "issue_key", Type: "string", Description: "Issue key, project prefix and number separated by '-'", Required: true},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createGetCommentsHandler,
	},
	{
		Name:        "search_user_by_name",
		Description: "Search project users by a case-insensitive substring of their name or email",
		Params: []ParamSpec{
			{Name: "name", Type: "string", Description: "Substring to match against user names and emails", Required: true},
			{Name: "project_key", Type: "string", Description: "Project key, defaults to the configured project"},
			{Name: "api_token", Type: "string", Description: "API token overriding the session or configured credential"},
		},
		Handler: createSearchUserHandler,
	},
	{
		Name:        "set_api_token",
		Description: "Set the API token used for subsequent calls in this session",
		Params: []ParamSpec{
			{Name: "api_token", Type: "string", Description: "API token to use for this session", Required: true},
		},
		Handler: createSetAPITokenHandler,
	},
}

// GetToolConfigs returns all tool configurations
func GetToolConfigs() []ToolConfig {
	return toolConfigs
}

// GetToolConfig returns a specific tool configuration by name
func GetToolConfig(name string) (*ToolConfig, error) {
	for _, config := range toolConfigs {
		if config.Name == name {
			return &config, nil
		}
	}
	return nil, errors.Errorf("tool %s not found", name)
}

// BuildToolSchema creates the MCP input schema for a tool
func BuildToolSchema(config ToolConfig) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	var required []string

	for _, param := range config.Params {
		paramSchema := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Default != nil {
			paramSchema["default"] = param.Default
		}
		properties[param.Name] = paramSchema
		if param.Required {
			required = append(required, param.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
