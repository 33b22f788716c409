// ABOUTME: MCP tools for browsing and submitting libraries.
// ABOUTME: Maps the listing, submission and tag catalogue to tool calls.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/pagination"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "list_libraries",
		Description: "List directory libraries, 30 per page, with optional filters",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"q": {"type": "string", "description": "Case-insensitive substring of the name"},
				"framework": {"type": "string", "description": "Exact framework, e.g. React; All disables the filter"},
				"tag": {"type": "string", "description": "Only libraries carrying this tag"},
				"page": {"type": "integer", "description": "1-based page number", "default": 1}
			}
		}`),
	}, s.handleListLibraries)

	s.server.AddTool(&mcp.Tool{
		Name:        "submit_library",
		Description: "Submit a new library to the directory",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Display name"},
				"slug": {"type": "string", "description": "URL slug, derived from the name when omitted"},
				"description": {"type": "string", "description": "Markdown description"},
				"framework": {"type": "string", "description": "Framework label, defaults to React"},
				"website_url": {"type": "string", "description": "Project website"},
				"logo_url": {"type": "string", "description": "Logo image URL"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tag names"}
			},
			"required": ["name"]
		}`),
	}, s.handleSubmitLibrary)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List tags with the number of libraries using each",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)
}

func decodeArgs(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

type listResult struct {
	Libraries  []models.Library `json:"libraries"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      *int             `json:"total,omitempty"`
	Source     string           `json:"source"`
}

func (s *Server) handleListLibraries(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query     string `json:"q"`
		Framework string `json:"framework"`
		Tag       string `json:"tag"`
		Page      int    `json:"page"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	page := max(params.Page, 1)

	filters := models.Filters{Query: params.Query, Framework: params.Framework, Tag: params.Tag}
	result := s.dir.QueryLibraries(ctx, filters, pagination.Offset(page), pagination.PageSize)
	view := pagination.NewView(page, result.Total, len(result.Libraries))

	data, err := json.MarshalIndent(listResult{
		Libraries:  result.Libraries,
		Page:       view.Current,
		TotalPages: view.Total,
		Total:      result.Total,
		Source:     result.Source,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}

func (s *Server) handleSubmitLibrary(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name        string   `json:"name"`
		Slug        string   `json:"slug"`
		Description string   `json:"description"`
		Framework   string   `json:"framework"`
		WebsiteURL  string   `json:"website_url"`
		LogoURL     string   `json:"logo_url"`
		Tags        []string `json:"tags"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	lib, err := s.dir.Submit(ctx, directory.Submission{
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		Framework:   params.Framework,
		WebsiteURL:  params.WebsiteURL,
		LogoURL:     params.LogoURL,
		Tags:        strings.Join(params.Tags, ","),
	})
	if err != nil {
		if errors.Is(err, directory.ErrNotConfigured) {
			return errorResult("submissions are disabled: the backend is not configured"), nil
		}
		s.logger.Warn("mcp submission failed", zap.String("name", params.Name), zap.Error(err))
		return errorResult(fmt.Sprintf("failed to submit library: %v", err)), nil
	}

	return textResult(fmt.Sprintf("Submitted %s (slug %s)", lib.Name, lib.Slug)), nil
}

func (s *Server) handleListTags(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, source := s.dir.ListTags(ctx)
	data, err := json.MarshalIndent(map[string]any{"tags": tags, "source": source}, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}
