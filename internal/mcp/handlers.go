package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pvginkel/gitblit-mcp/internal/gitblit"
)

// jsonResult renders a backend response as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError renders an error as a tool result. *gitblit.APIError keeps its
// "CODE: message" form so the model can act on the code.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// checkGlob rejects malformed glob patterns before they reach the backend.
func checkGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return &gitblit.APIError{
			Code:    gitblit.CodeInvalidRequest,
			Message: fmt.Sprintf("invalid glob pattern %q", pattern),
		}
	}
	return nil
}

// handleListRepos lists repositories, optionally filtered by substring.
func (s *Server) handleListRepos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	limit := request.GetInt("limit", 50)
	offset := request.GetInt("offset", 0)

	result, err := s.client.ListRepos(ctx, query, limit, offset)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// handleListFiles lists a directory within a repository.
func (s *Server) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := request.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: repo"), nil
	}

	if err := s.validator.ValidateRepository(ctx, repo); err != nil {
		return toolError(err), nil
	}

	path := request.GetString("path", "")
	revision := request.GetString("revision", "")
	limit := request.GetInt("limit", 100)
	offset := request.GetInt("offset", 0)

	result, err := s.client.ListFiles(ctx, repo, path, revision, limit, offset)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// handleReadFile reads file content from a repository.
func (s *Server) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := request.RequireString("repo")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: repo"), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	if err := s.validator.ValidateRepository(ctx, repo); err != nil {
		return toolError(err), nil
	}

	revision := request.GetString("revision", "")
	startLine := request.GetInt("startLine", 0)
	endLine := request.GetInt("endLine", 0)

	result, err := s.client.ReadFile(ctx, repo, path, revision, startLine, endLine)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

// handleFileSearch searches file contents via the backend's Lucene index.
func (s *Server) handleFileSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	repos := request.GetStringSlice("repos", nil)
	if len(repos) > 0 {
		if err := s.validator.ValidateRepositories(ctx, repos); err != nil {
			return toolError(err), nil
		}
	}

	pathPattern := request.GetString("pathPattern", "")
	if pathPattern != "" {
		if err := checkGlob(pathPattern); err != nil {
			return toolError(err), nil
		}
	}

	result, err := s.client.SearchFiles(ctx, gitblit.FileSearchParams{
		Query:        query,
		Repos:        repos,
		PathPattern:  pathPattern,
		Branch:       request.GetString("branch", ""),
		Limit:        request.GetInt("limit", 25),
		Offset:       request.GetInt("offset", 0),
		ContextLines: request.GetInt("contextLines", 10),
	})
	if err != nil {
		return toolError(err), nil
	}

	// The backend echoes the query; drop it to save tokens.
	result.Query = ""
	return jsonResult(result)
}

// handleCommitSearch searches commit history via the backend's Lucene index.
func (s *Server) handleCommitSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	repos := request.GetStringSlice("repos", nil)
	if len(repos) == 0 {
		return mcp.NewToolResultError("missing required parameter: repos"), nil
	}
	if err := s.validator.ValidateRepositories(ctx, repos); err != nil {
		return toolError(err), nil
	}

	result, err := s.client.SearchCommits(ctx, gitblit.CommitSearchParams{
		Query:   query,
		Repos:   repos,
		Authors: request.GetStringSlice("authors", nil),
		Branch:  request.GetString("branch", ""),
		Limit:   request.GetInt("limit", 25),
		Offset:  request.GetInt("offset", 0),
	})
	if err != nil {
		return toolError(err), nil
	}

	result.Query = ""
	return jsonResult(result)
}

// handleFindFiles discovers files by glob pattern via Git tree walking.
func (s *Server) handleFindFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pathPattern, err := request.RequireString("pathPattern")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pathPattern"), nil
	}
	if err := checkGlob(pathPattern); err != nil {
		return toolError(err), nil
	}

	repos := request.GetStringSlice("repos", nil)
	if len(repos) > 0 {
		if err := s.validator.ValidateRepositories(ctx, repos); err != nil {
			return toolError(err), nil
		}
	}

	result, err := s.client.FindFiles(ctx, gitblit.FindFilesParams{
		PathPattern: pathPattern,
		Repos:       repos,
		Revision:    request.GetString("revision", ""),
		Limit:       request.GetInt("limit", 50),
		Offset:      request.GetInt("offset", 0),
	})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}
