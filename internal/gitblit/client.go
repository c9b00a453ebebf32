// Package gitblit is a thin HTTP client for the Gitblit Search API Plugin.
// Every backend failure is surfaced as an *APIError whose Code is one of
// the constants in types.go.
package gitblit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API is the subset of backend operations consumed by the tool layer.
// *Client is the production implementation.
type API interface {
	ListRepos(ctx context.Context, query string, limit, offset int) (*ListReposResponse, error)
	ListFiles(ctx context.Context, repo, path, revision string, limit, offset int) (*ListFilesResponse, error)
	ReadFile(ctx context.Context, repo, path, revision string, startLine, endLine int) (*ReadFileResponse, error)
	SearchFiles(ctx context.Context, params FileSearchParams) (*FileSearchResponse, error)
	SearchCommits(ctx context.Context, params CommitSearchParams) (*CommitSearchResponse, error)
	FindFiles(ctx context.Context, params FindFilesParams) (*FindFilesResponse, error)
}

// Client calls the Search API Plugin endpoints under a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given API base URL (e.g.
// "http://gitblit:8080/api/mcp-server") and per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// mapStatusToCode translates an HTTP status into the error taxonomy.
func mapStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusForbidden:
		return CodeAccessDenied
	default:
		return CodeInternalError
	}
}

// errorBody is the error payload shape returned by the plugin.
type errorBody struct {
	Error string `json:"error"`
}

// get performs a GET against endpoint with the given query parameters and
// decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Code: CodeInternalError, Message: fmt.Sprintf("Request failed: %v", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return &APIError{Code: CodeInternalError, Message: "Request timed out connecting to Gitblit server"}
		}
		return &APIError{Code: CodeInternalError, Message: "Failed to connect to Gitblit server"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Code: CodeInternalError, Message: fmt.Sprintf("Request failed: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "Unknown error occurred"
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return &APIError{Code: mapStatusToCode(resp.StatusCode), Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Code: CodeInternalError, Message: "Invalid JSON response from server"}
	}

	return nil
}

// ListRepos lists repositories, optionally filtered by a case-insensitive
// substring query, with offset-based pagination.
func (c *Client) ListRepos(ctx context.Context, query string, limit, offset int) (*ListReposResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if query != "" {
		params.Set("query", query)
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var out ListReposResponse
	if err := c.get(ctx, "/repos", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFiles lists files and directories at a path within a repository.
func (c *Client) ListFiles(ctx context.Context, repo, path, revision string, limit, offset int) (*ListFilesResponse, error) {
	params := url.Values{}
	params.Set("repo", repo)
	if path != "" {
		params.Set("path", path)
	}
	if revision != "" {
		params.Set("revision", revision)
	}
	params.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var out ListFilesResponse
	if err := c.get(ctx, "/files", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReadFile reads file content, optionally restricted to a 1-based inclusive
// line range. Zero means unset for startLine and endLine.
func (c *Client) ReadFile(ctx context.Context, repo, path, revision string, startLine, endLine int) (*ReadFileResponse, error) {
	params := url.Values{}
	params.Set("repo", repo)
	params.Set("path", path)
	if revision != "" {
		params.Set("revision", revision)
	}
	if startLine > 0 {
		params.Set("startLine", strconv.Itoa(startLine))
	}
	if endLine > 0 {
		params.Set("endLine", strconv.Itoa(endLine))
	}

	var out ReadFileResponse
	if err := c.get(ctx, "/file", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchFiles searches file contents via Gitblit's Lucene index.
func (c *Client) SearchFiles(ctx context.Context, p FileSearchParams) (*FileSearchResponse, error) {
	params := url.Values{}
	params.Set("query", p.Query)
	params.Set("count", strconv.Itoa(p.Limit))
	params.Set("contextLines", strconv.Itoa(p.ContextLines))
	if len(p.Repos) > 0 {
		params.Set("repos", strings.Join(p.Repos, ","))
	}
	if p.PathPattern != "" {
		params.Set("pathPattern", p.PathPattern)
	}
	if p.Branch != "" {
		params.Set("branch", p.Branch)
	}
	if p.Offset > 0 {
		params.Set("offset", strconv.Itoa(p.Offset))
	}

	var out FileSearchResponse
	if err := c.get(ctx, "/search/files", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCommits searches commit history via Gitblit's Lucene index.
func (c *Client) SearchCommits(ctx context.Context, p CommitSearchParams) (*CommitSearchResponse, error) {
	params := url.Values{}
	params.Set("query", p.Query)
	params.Set("repos", strings.Join(p.Repos, ","))
	params.Set("count", strconv.Itoa(p.Limit))
	if len(p.Authors) > 0 {
		params.Set("authors", strings.Join(p.Authors, ","))
	}
	if p.Branch != "" {
		params.Set("branch", p.Branch)
	}
	if p.Offset > 0 {
		params.Set("offset", strconv.Itoa(p.Offset))
	}

	var out CommitSearchResponse
	if err := c.get(ctx, "/search/commits", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindFiles finds files matching a glob pattern via Git tree walking.
func (c *Client) FindFiles(ctx context.Context, p FindFilesParams) (*FindFilesResponse, error) {
	params := url.Values{}
	params.Set("pathPattern", p.PathPattern)
	params.Set("limit", strconv.Itoa(p.Limit))
	if len(p.Repos) > 0 {
		params.Set("repos", strings.Join(p.Repos, ","))
	}
	if p.Revision != "" {
		params.Set("revision", p.Revision)
	}
	if p.Offset > 0 {
		params.Set("offset", strconv.Itoa(p.Offset))
	}

	var out FindFilesResponse
	if err := c.get(ctx, "/find/files", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
