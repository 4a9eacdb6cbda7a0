// Package upstream implements the REST client for the issue tracker API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	domainerrors "tracker-mcp/pkg/domain/errors"
)

// Client talks to the issue tracker. Paths are shaped
// /{project_key}/{resource}[/{id}][/{sub-resource}] and every request
// carries "Authorization: Token <credential>".
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given base URL. The timeout bounds
// every individual upstream request.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "upstream_client"),
	}
}

// Response is the transient result of one upstream call.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return domainerrors.New(domainerrors.CodeParseError, "upstream",
			"failed to decode upstream response", err)
	}
	return nil
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, token string) (*Response, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %s", method, path)
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Upstream request",
		"method", method,
		"url", fullURL,
		"authorization", maskToken(token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.New(domainerrors.CodeNetworkError, "upstream",
			fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.New(domainerrors.CodeNetworkError, "upstream",
			fmt.Sprintf("failed to read response for %s %s", method, path), err)
	}

	c.logger.Debug("Upstream response",
		"method", method,
		"url", fullURL,
		"status", resp.StatusCode,
		"bytes", len(respBody))

	return &Response{Status: resp.StatusCode, Body: respBody}, nil
}

// ListUsers fetches one page of the project's user listing.
func (c *Client) ListUsers(ctx context.Context, project string, page int, token string) (*Response, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	return c.do(ctx, http.MethodGet, projectPath(project, "users"), q, nil, token)
}

// GetIssue fetches an issue by key or numeric id.
func (c *Client) GetIssue(ctx context.Context, project, keyOrID, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, projectPath(project, "issues", keyOrID), nil, nil, token)
}

// CreateIssue posts a new issue. Fields are wrapped in the top-level
// "issue" object the upstream expects.
func (c *Client) CreateIssue(ctx context.Context, project string, fields interface{}, token string) (*Response, error) {
	body := map[string]interface{}{"issue": fields}
	return c.do(ctx, http.MethodPost, projectPath(project, "issues"), nil, body, token)
}

// UpdateIssue puts a partial issue body. Only the fields present in
// fields are transmitted; the caller controls omission.
func (c *Client) UpdateIssue(ctx context.Context, project, keyOrID string, fields interface{}, token string) (*Response, error) {
	body := map[string]interface{}{"issue": fields}
	return c.do(ctx, http.MethodPut, projectPath(project, "issues", keyOrID), nil, body, token)
}

// ListStatuses fetches the project's workflow statuses.
func (c *Client) ListStatuses(ctx context.Context, project, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, projectPath(project, "statuses"), nil, nil, token)
}

// ListIssueTypes fetches the project's issue types.
func (c *Client) ListIssueTypes(ctx context.Context, project, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, projectPath(project, "issue_types"), nil, nil, token)
}

// ListComments fetches the comments of an issue by its numeric id.
func (c *Client) ListComments(ctx context.Context, project, issueID, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, projectPath(project, "issues", issueID, "comments"), nil, nil, token)
}

// AddComment posts a comment to an issue by its numeric id.
func (c *Client) AddComment(ctx context.Context, project, issueID, content, token string) (*Response, error) {
	body := map[string]interface{}{"content": content}
	return c.do(ctx, http.MethodPost, projectPath(project, "issues", issueID, "comments"), nil, body, token)
}

func projectPath(project string, segments ...string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(url.PathEscape(project))
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	return "Token ***masked***"
}
