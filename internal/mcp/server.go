// ABOUTME: MCP server exposing the library directory to AI agents.
// ABOUTME: Provides tools, resources, and prompts over stdio.

package mcp

import (
	"context"

	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Directory is the slice of the adapter the MCP handlers use.
type Directory interface {
	QueryLibraries(ctx context.Context, f models.Filters, offset, limit int) directory.Page
	Submit(ctx context.Context, s directory.Submission) (*models.Library, error)
	ListTags(ctx context.Context) ([]models.TagCount, string)
	GetLibrary(ctx context.Context, slug string) (*models.Library, error)
}

type Server struct {
	server *mcp.Server
	dir    Directory
	logger *zap.Logger
}

func NewServer(dir Directory, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{dir: dir, logger: logger}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "libdir",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
