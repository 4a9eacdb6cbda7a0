package tools

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	domainerrors "tracker-mcp/pkg/domain/errors"
)

// stringArg returns the named argument as a trimmed string. Numeric
// values are rendered to their decimal form so id-like fields pass
// through as strings regardless of how the caller typed them.
func stringArg(args map[string]interface{}, name string) (string, bool) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// requiredString returns the named argument or a MISSING_PARAMETER error.
func requiredString(args map[string]interface{}, name string) (string, error) {
	s, ok := stringArg(args, name)
	if !ok {
		return "", domainerrors.New(domainerrors.CodeMissingParameter, "tools",
			"missing required parameter: "+name, nil)
	}
	return s, nil
}

// optionalString returns the named argument and whether it was supplied.
// Absent and empty both count as not supplied; partial updates must not
// transmit fields the caller did not set.
func optionalString(args map[string]interface{}, name string) (string, bool) {
	return stringArg(args, name)
}

// intArg returns the named argument as an int, falling back to def.
func intArg(args map[string]interface{}, name string, def int) int {
	v, ok := args[name]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// resolveToken applies the credential precedence: per-call argument,
// session token, then the configured default. Detected before any
// network call is attempted.
func resolveToken(ctx context.Context, args map[string]interface{}, deps ToolDependencies) (string, error) {
	if token, ok := stringArg(args, "api_token"); ok {
		return token, nil
	}
	// The empty session id is the bucket for transports that do not
	// attach a client session to the context.
	if token, ok := deps.Sessions.Get(sessionID(ctx)); ok && token != "" {
		return token, nil
	}
	if deps.Config.APIToken != "" {
		return deps.Config.APIToken, nil
	}
	return "", domainerrors.New(domainerrors.CodeUnauthorized, "tools",
		"no API token available: pass api_token, call set_api_token, or set TRACKER_API_TOKEN", nil)
}

// resolveProject returns the explicit project_key argument or the
// configured default project.
func resolveProject(args map[string]interface{}, deps ToolDependencies) string {
	if project, ok := stringArg(args, "project_key"); ok {
		return project
	}
	return deps.Config.ProjectKey
}

// projectFromIssueKey derives the project key from the issue key's
// prefix, the substring before the first '-' separator.
func projectFromIssueKey(issueKey string) (string, error) {
	prefix, _, found := strings.Cut(issueKey, "-")
	if !found || prefix == "" {
		return "", domainerrors.New(domainerrors.CodeInvalidArgument, "tools",
			"malformed issue key "+strconv.Quote(issueKey)+": expected <PROJECT>-<number>", nil)
	}
	return prefix, nil
}

// resolveIssueProject prefers an explicit project_key and otherwise
// derives it from the issue key.
func resolveIssueProject(args map[string]interface{}, issueKey string) (string, error) {
	if project, ok := stringArg(args, "project_key"); ok {
		return project, nil
	}
	return projectFromIssueKey(issueKey)
}

func sessionID(ctx context.Context) string {
	if s := server.ClientSessionFromContext(ctx); s != nil {
		return s.SessionID()
	}
	return ""
}
