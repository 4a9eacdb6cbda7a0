package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	domainerrors "tracker-mcp/pkg/domain/errors"
	"tracker-mcp/pkg/upstream"
)

// issueUpdate is the partial update body. Pointer fields make the
// omit-if-absent contract explicit: a nil field is never transmitted,
// so the upstream does not clear values the caller did not touch.
type issueUpdate struct {
	Key         string  `json:"key"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IssueTypeID *string `json:"issue_type_id,omitempty"`
	StatusID    *string `json:"status_id,omitempty"`
	OwnerID     *string `json:"owner_id,omitempty"`
	PriorityID  *string `json:"priority_id,omitempty"`
}

// userSearchResult is the outcome shape of search_user_by_name.
type userSearchResult struct {
	Found        bool           `json:"found"`
	User         *upstream.User `json:"user,omitempty"`
	SearchedName string         `json:"searched_name,omitempty"`
}

func createGetUsersHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}
		project := resolveProject(args, deps)
		page := intArg(args, "page", 1)

		resp, err := deps.Client.ListUsers(ctx, project, page, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("get users", resp), nil
		}
		return rawResult(resp.Text()), nil
	}
}

func createGetIssueHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		issueKey, err := requiredString(args, "issue_key")
		if err != nil {
			return nil, err
		}
		project, err := resolveIssueProject(args, issueKey)
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}

		resp, err := deps.Client.GetIssue(ctx, project, issueKey, token)
		if err != nil {
			return nil, err
		}
		if resp.Status == http.StatusNotFound {
			// A missing issue is a normal outcome for the caller, not a
			// failed invocation.
			return textResult(map[string]interface{}{
				"error":     "Issue not found",
				"issue_key": issueKey,
			}), nil
		}
		if !resp.OK() {
			return upstreamErrorResult("get issue", resp), nil
		}
		return rawResult(resp.Text()), nil
	}
}

func createGetStatusesHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}
		project := resolveProject(args, deps)

		resp, err := deps.Client.ListStatuses(ctx, project, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("get statuses", resp), nil
		}
		return rawResult(resp.Text()), nil
	}
}

func createGetIssueTypesHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}
		project := resolveProject(args, deps)

		resp, err := deps.Client.ListIssueTypes(ctx, project, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("get issue types", resp), nil
		}
		return rawResult(resp.Text()), nil
	}
}

func createCreateIssueHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		title, err := requiredString(args, "title")
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}
		project := resolveProject(args, deps)

		// Id-like fields are passed through as strings; absent optional
		// fields are omitted entirely.
		fields := map[string]interface{}{"title": title}
		if v, ok := optionalString(args, "description"); ok {
			fields["description"] = v
		}
		issueTypeID, ok := optionalString(args, "issue_type_id")
		if !ok {
			issueTypeID = deps.Config.DefaultIssueTypeID
		}
		fields["issue_type_id"] = issueTypeID
		for _, name := range []string{"owner_id", "priority_id", "status_id"} {
			if v, ok := optionalString(args, name); ok {
				fields[name] = v
			}
		}

		resp, err := deps.Client.CreateIssue(ctx, project, fields, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("create issue", resp), nil
		}

		payload := map[string]interface{}{"message": "Issue created"}
		var env upstream.IssueEnvelope
		if err := resp.Decode(&env); err == nil && env.Issue.Key != "" {
			payload["issue_key"] = env.Issue.Key
		}
		var raw map[string]interface{}
		if json.Unmarshal(resp.Body, &raw) == nil {
			if issue, ok := raw["issue"]; ok {
				payload["issue"] = issue
			}
		}
		return textResult(payload), nil
	}
}

func createUpdateIssueHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		issueKey, err := requiredString(args, "issue_key")
		if err != nil {
			return nil, err
		}
		project, err := resolveIssueProject(args, issueKey)
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}

		update := issueUpdate{Key: issueKey}
		if v, ok := optionalString(args, "title"); ok {
			update.Title = &v
		}
		if v, ok := optionalString(args, "description"); ok {
			update.Description = &v
		}
		if v, ok := optionalString(args, "issue_type_id"); ok {
			update.IssueTypeID = &v
		}
		if v, ok := optionalString(args, "status_id"); ok {
			update.StatusID = &v
		}
		if v, ok := optionalString(args, "owner_id"); ok {
			update.OwnerID = &v
		}
		if v, ok := optionalString(args, "priority_id"); ok {
			update.PriorityID = &v
		}

		resp, err := deps.Client.UpdateIssue(ctx, project, issueKey, update, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("update issue", resp), nil
		}

		payload := map[string]interface{}{
			"message":   "Issue updated",
			"issue_key": issueKey,
		}
		var raw map[string]interface{}
		if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &raw) == nil {
			if issue, ok := raw["issue"]; ok {
				payload["issue"] = issue
			}
		}
		return textResult(payload), nil
	}
}

func createAddCommentHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		issueKey, err := requiredString(args, "issue_key")
		if err != nil {
			return nil, err
		}
		content, err := requiredString(args, "content")
		if err != nil {
			return nil, err
		}
		project, err := resolveIssueProject(args, issueKey)
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}

		issueID, err := resolveIssueID(ctx, deps, project, issueKey, token)
		if err != nil {
			return nil, err
		}

		resp, err := deps.Client.AddComment(ctx, project, issueID, content, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("add comment", resp), nil
		}

		// Bundle key and resolved id so the caller can trace the
		// two-step operation.
		payload := map[string]interface{}{
			"issue_key": issueKey,
			"issue_id":  issueID,
		}
		var raw interface{}
		if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &raw) == nil {
			payload["comment"] = raw
		} else {
			payload["comment"] = resp.Text()
		}
		return textResult(payload), nil
	}
}

func createGetCommentsHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		issueKey, err := requiredString(args, "issue_key")
		if err != nil {
			return nil, err
		}
		project, err := resolveIssueProject(args, issueKey)
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}

		issueID, err := resolveIssueID(ctx, deps, project, issueKey, token)
		if err != nil {
			return nil, err
		}

		resp, err := deps.Client.ListComments(ctx, project, issueID, token)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return upstreamErrorResult("get comments", resp), nil
		}

		payload := map[string]interface{}{
			"issue_key": issueKey,
			"issue_id":  issueID,
		}
		var raw interface{}
		if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &raw) == nil {
			payload["comments"] = raw
		} else {
			payload["comments"] = resp.Text()
		}
		return textResult(payload), nil
	}
}

func createSearchUserHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		name, err := requiredString(args, "name")
		if err != nil {
			return nil, err
		}
		token, err := resolveToken(ctx, args, deps)
		if err != nil {
			return nil, err
		}
		project := resolveProject(args, deps)
		query := strings.ToLower(name)

		// Bounded pagination: stop at the configured ceiling, on an
		// empty page, or on a non-success status. First match wins.
		for page := 1; page <= deps.Config.SearchPageLimit; page++ {
			resp, err := deps.Client.ListUsers(ctx, project, page, token)
			if err != nil {
				return nil, err
			}
			if !resp.OK() {
				break
			}
			var userPage upstream.UserPage
			if err := resp.Decode(&userPage); err != nil {
				return nil, err
			}
			if len(userPage.Users) == 0 {
				break
			}
			for _, user := range userPage.Users {
				if strings.Contains(strings.ToLower(user.Name), query) ||
					strings.Contains(strings.ToLower(user.Email), query) {
					match := user
					return textResult(userSearchResult{Found: true, User: &match}), nil
				}
			}
		}
		return textResult(userSearchResult{Found: false, SearchedName: name}), nil
	}
}

func createSetAPITokenHandler(deps ToolDependencies) toolHandler {
	return func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
		token, err := requiredString(args, "api_token")
		if err != nil {
			return nil, err
		}
		deps.Sessions.Set(sessionID(ctx), token)
		return textResult(map[string]interface{}{
			"message": "API token set for this session",
		}), nil
	}
}

// resolveIssueID resolves a human-readable issue key to the upstream's
// numeric issue id via a direct issue lookup.
func resolveIssueID(ctx context.Context, deps ToolDependencies, project, issueKey, token string) (string, error) {
	resp, err := deps.Client.GetIssue(ctx, project, issueKey, token)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", domainerrors.New(domainerrors.CodeNotFound, "tools",
			fmt.Sprintf("issue %s not found (upstream status %d)", issueKey, resp.Status), nil)
	}
	var env upstream.IssueEnvelope
	if err := resp.Decode(&env); err != nil {
		return "", err
	}
	if env.Issue.ID.String() == "" {
		return "", domainerrors.New(domainerrors.CodeNotFound, "tools",
			fmt.Sprintf("issue %s has no id in the upstream response", issueKey), nil)
	}
	return env.Issue.ID.String(), nil
}

// upstreamError describes a non-2xx upstream response for an operation.
func upstreamError(operation string, resp *upstream.Response) error {
	return domainerrors.New(domainerrors.CodeUpstreamError, "tools",
		fmt.Sprintf("%s failed: upstream status %d: %s", operation, resp.Status, resp.Text()), nil)
}

func upstreamErrorResult(operation string, resp *upstream.Response) *mcp.CallToolResult {
	return errorResult(upstreamError(operation, resp))
}
