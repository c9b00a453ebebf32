// Package mcp exposes Gitblit browsing and search operations as MCP tools.
package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/pvginkel/gitblit-mcp/internal/gitblit"
)

// Version is set via ldflags at build time.
var Version = "dev"

// RepoValidator gates tool calls on repository existence before the
// backend is asked to do any work.
type RepoValidator interface {
	ValidateRepository(ctx context.Context, repo string) error
	ValidateRepositories(ctx context.Context, repos []string) error
}

// Server wraps an MCP server that exposes Gitblit repository tools.
type Server struct {
	client     gitblit.API
	validator  RepoValidator
	logger     *zap.Logger
	mcp        *server.MCPServer
	httpServer *http.Server
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(client gitblit.API, validator RepoValidator, logger *zap.Logger) *Server {
	s := &Server{
		client:    client,
		validator: validator,
		logger:    logger,
	}

	s.mcp = server.NewMCPServer(
		"gitblit-mcp",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listReposTool, s.handleListRepos)
	s.mcp.AddTool(listFilesTool, s.handleListFiles)
	s.mcp.AddTool(readFileTool, s.handleReadFile)
	s.mcp.AddTool(fileSearchTool, s.handleFileSearch)
	s.mcp.AddTool(commitSearchTool, s.handleCommitSearch)
	s.mcp.AddTool(findFilesTool, s.handleFindFiles)
}

// ServeStdio starts the MCP server on stdio. Stdout is used for MCP
// protocol messages; all logging must go to stderr.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
