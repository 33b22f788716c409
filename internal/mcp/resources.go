// ABOUTME: MCP resources exposing individual libraries by slug.
// ABOUTME: Renders each library as markdown for agents to read.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/libdir/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const libraryURIPrefix = "libdir://library/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: libraryURIPrefix + "{slug}",
			Name:        "Library",
			Description: "A directory library addressed by slug",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	slug, ok := strings.CutPrefix(req.Params.URI, libraryURIPrefix)
	if !ok || slug == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	lib, err := s.dir.GetLibrary(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     libraryMarkdown(lib),
			},
		},
	}, nil
}

func libraryMarkdown(lib *models.Library) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", lib.Name)
	fmt.Fprintf(&sb, "**Framework:** %s\n\n", lib.FrameworkLabel())
	if tags := lib.SortedTags(); len(tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(tags, ", "))
	}
	if lib.WebsiteURL != "" {
		fmt.Fprintf(&sb, "**Website:** %s\n\n", lib.WebsiteURL)
	}
	sb.WriteString(lib.Description)
	return sb.String()
}
