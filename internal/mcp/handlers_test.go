package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/pvginkel/gitblit-mcp/internal/gitblit"
)

// mockAPI implements gitblit.API, recording the last call's parameters.
type mockAPI struct {
	listReposResp   *gitblit.ListReposResponse
	listFilesResp   *gitblit.ListFilesResponse
	readFileResp    *gitblit.ReadFileResponse
	searchFilesResp *gitblit.FileSearchResponse
	commitsResp     *gitblit.CommitSearchResponse
	findFilesResp   *gitblit.FindFilesResponse
	err             error

	lastRepo         string
	lastPath         string
	lastStartLine    int
	lastEndLine      int
	lastSearchParams gitblit.FileSearchParams
	lastCommitParams gitblit.CommitSearchParams
	lastFindParams   gitblit.FindFilesParams
}

func (m *mockAPI) ListRepos(_ context.Context, query string, limit, offset int) (*gitblit.ListReposResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listReposResp != nil {
		return m.listReposResp, nil
	}
	return &gitblit.ListReposResponse{}, nil
}

func (m *mockAPI) ListFiles(_ context.Context, repo, path, revision string, limit, offset int) (*gitblit.ListFilesResponse, error) {
	m.lastRepo, m.lastPath = repo, path
	if m.err != nil {
		return nil, m.err
	}
	if m.listFilesResp != nil {
		return m.listFilesResp, nil
	}
	return &gitblit.ListFilesResponse{}, nil
}

func (m *mockAPI) ReadFile(_ context.Context, repo, path, revision string, startLine, endLine int) (*gitblit.ReadFileResponse, error) {
	m.lastRepo, m.lastPath = repo, path
	m.lastStartLine, m.lastEndLine = startLine, endLine
	if m.err != nil {
		return nil, m.err
	}
	if m.readFileResp != nil {
		return m.readFileResp, nil
	}
	return &gitblit.ReadFileResponse{}, nil
}

func (m *mockAPI) SearchFiles(_ context.Context, params gitblit.FileSearchParams) (*gitblit.FileSearchResponse, error) {
	m.lastSearchParams = params
	if m.err != nil {
		return nil, m.err
	}
	if m.searchFilesResp != nil {
		return m.searchFilesResp, nil
	}
	return &gitblit.FileSearchResponse{}, nil
}

func (m *mockAPI) SearchCommits(_ context.Context, params gitblit.CommitSearchParams) (*gitblit.CommitSearchResponse, error) {
	m.lastCommitParams = params
	if m.err != nil {
		return nil, m.err
	}
	if m.commitsResp != nil {
		return m.commitsResp, nil
	}
	return &gitblit.CommitSearchResponse{}, nil
}

func (m *mockAPI) FindFiles(_ context.Context, params gitblit.FindFilesParams) (*gitblit.FindFilesResponse, error) {
	m.lastFindParams = params
	if m.err != nil {
		return nil, m.err
	}
	if m.findFilesResp != nil {
		return m.findFilesResp, nil
	}
	return &gitblit.FindFilesResponse{}, nil
}

// mockValidator implements RepoValidator, recording validated names.
type mockValidator struct {
	validated []string
	err       error
}

func (m *mockValidator) ValidateRepository(ctx context.Context, repo string) error {
	return m.ValidateRepositories(ctx, []string{repo})
}

func (m *mockValidator) ValidateRepositories(_ context.Context, repos []string) error {
	m.validated = append(m.validated, repos...)
	return m.err
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, not TextContent", result.Content[0])
	}
	return tc.Text
}

func newHandlerTestServer(client *mockAPI, validator *mockValidator) *Server {
	return NewServer(client, validator, zap.NewNop())
}

func TestHandleListRepos(t *testing.T) {
	client := &mockAPI{
		listReposResp: &gitblit.ListReposResponse{
			Repositories: []gitblit.Repository{{Name: "team/project.git", HasCommits: true}},
			TotalCount:   1,
		},
	}
	srv := newHandlerTestServer(client, &mockValidator{})
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"query": "proj"}

	result, err := srv.handleListRepos(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if text := resultText(t, result); !strings.Contains(text, "team/project.git") {
		t.Errorf("result missing repo name: %q", text)
	}
}

func TestHandleListFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("missing repo", func(t *testing.T) {
		srv := newHandlerTestServer(&mockAPI{}, &mockValidator{})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleListFiles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing repo")
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		validator := &mockValidator{err: &gitblit.APIError{
			Code:    gitblit.CodeNotFound,
			Message: "Repository 'wrong.git' not found. Did you mean: 'right.git'?",
		}}
		client := &mockAPI{}
		srv := newHandlerTestServer(client, validator)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"repo": "wrong.git"}

		result, err := srv.handleListFiles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected tool error for invalid repo")
		}
		text := resultText(t, result)
		if !strings.Contains(text, "NOT_FOUND") || !strings.Contains(text, "Did you mean:") {
			t.Errorf("error text missing code or suggestions: %q", text)
		}
		// The backend must not be called when validation fails.
		if client.lastRepo != "" {
			t.Error("backend called despite validation failure")
		}
	})

	t.Run("success", func(t *testing.T) {
		client := &mockAPI{listFilesResp: &gitblit.ListFilesResponse{
			Files: []gitblit.FileInfo{{Path: "src/", IsDirectory: true}},
		}}
		validator := &mockValidator{}
		srv := newHandlerTestServer(client, validator)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"repo": "team/project.git", "path": "src"}

		result, err := srv.handleListFiles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if len(validator.validated) != 1 || validator.validated[0] != "team/project.git" {
			t.Errorf("validated = %v", validator.validated)
		}
		if client.lastPath != "src" {
			t.Errorf("path = %q, want src", client.lastPath)
		}
	})
}

func TestHandleReadFile(t *testing.T) {
	client := &mockAPI{readFileResp: &gitblit.ReadFileResponse{Content: "1: hello"}}
	srv := newHandlerTestServer(client, &mockValidator{})
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"repo":      "team/project.git",
		"path":      "README.md",
		"startLine": 1,
		"endLine":   5,
	}

	result, err := srv.handleReadFile(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if client.lastStartLine != 1 || client.lastEndLine != 5 {
		t.Errorf("line range = %d-%d, want 1-5", client.lastStartLine, client.lastEndLine)
	}

	t.Run("missing path", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"repo": "team/project.git"}

		result, err := srv.handleReadFile(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing path")
		}
	})
}

func TestHandleFileSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("bad glob pattern", func(t *testing.T) {
		srv := newHandlerTestServer(&mockAPI{}, &mockValidator{})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query":       "foo",
			"pathPattern": "[",
		}

		result, err := srv.handleFileSearch(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected error for malformed glob")
		}
		if text := resultText(t, result); !strings.Contains(text, "INVALID_REQUEST") {
			t.Errorf("error text missing code: %q", text)
		}
	})

	t.Run("repos are validated", func(t *testing.T) {
		client := &mockAPI{}
		validator := &mockValidator{}
		srv := newHandlerTestServer(client, validator)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query": "handleRequest",
			"repos": []any{"a.git", "b.git"},
		}

		result, err := srv.handleFileSearch(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if len(validator.validated) != 2 {
			t.Errorf("validated = %v, want both repos", validator.validated)
		}
		if len(client.lastSearchParams.Repos) != 2 {
			t.Errorf("repos forwarded = %v", client.lastSearchParams.Repos)
		}
	})

	t.Run("query echo is dropped", func(t *testing.T) {
		client := &mockAPI{searchFilesResp: &gitblit.FileSearchResponse{
			Query:      "secret query echo",
			TotalCount: 1,
			Results: []gitblit.FileSearchResult{
				{Repository: "a.git", Path: "main.go"},
			},
		}}
		srv := newHandlerTestServer(client, &mockValidator{})

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "secret query echo"}

		result, err := srv.handleFileSearch(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text := resultText(t, result); strings.Contains(text, "secret query echo") {
			t.Errorf("query echoed in result: %q", text)
		}
	})
}

func TestHandleCommitSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("missing repos", func(t *testing.T) {
		srv := newHandlerTestServer(&mockAPI{}, &mockValidator{})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "fix"}

		result, err := srv.handleCommitSearch(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing repos")
		}
	})

	t.Run("success", func(t *testing.T) {
		client := &mockAPI{commitsResp: &gitblit.CommitSearchResponse{
			TotalCount: 1,
			Commits: []gitblit.CommitSearchResult{
				{Repository: "a.git", Commit: "abc123", Author: "alice", Title: "fix bug"},
			},
		}}
		validator := &mockValidator{}
		srv := newHandlerTestServer(client, validator)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query":   "fix",
			"repos":   []any{"a.git"},
			"authors": []any{"alice"},
		}

		result, err := srv.handleCommitSearch(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if len(validator.validated) != 1 || validator.validated[0] != "a.git" {
			t.Errorf("validated = %v", validator.validated)
		}
		if len(client.lastCommitParams.Authors) != 1 || client.lastCommitParams.Authors[0] != "alice" {
			t.Errorf("authors forwarded = %v", client.lastCommitParams.Authors)
		}
		if text := resultText(t, result); !strings.Contains(text, "abc123") {
			t.Errorf("result missing commit: %q", text)
		}
	})
}

func TestHandleFindFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("missing pattern", func(t *testing.T) {
		srv := newHandlerTestServer(&mockAPI{}, &mockValidator{})
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleFindFiles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing pathPattern")
		}
	})

	t.Run("success", func(t *testing.T) {
		client := &mockAPI{findFilesResp: &gitblit.FindFilesResponse{
			Pattern:    "**/Dockerfile",
			TotalCount: 1,
			Results: []gitblit.FindFilesResult{
				{Repository: "a.git", Files: []string{"docker/Dockerfile"}},
			},
		}}
		srv := newHandlerTestServer(client, &mockValidator{})

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"pathPattern": "**/Dockerfile"}

		result, err := srv.handleFindFiles(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if client.lastFindParams.PathPattern != "**/Dockerfile" {
			t.Errorf("pattern forwarded = %q", client.lastFindParams.PathPattern)
		}
	})
}
