// ABOUTME: MCP prompts for directory curation workflows.
// ABOUTME: Provides a tag suggestion prompt for new submissions.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "suggest-tags",
		Description: "Suggest tags for a library before submitting it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "name",
				Description: "Library name",
				Required:    true,
			},
			{
				Name:        "description",
				Description: "What the library does",
				Required:    false,
			},
		},
	}, s.getSuggestTagsPrompt)
}

func (s *Server) getSuggestTagsPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := strings.TrimSpace(req.Params.Arguments["name"])
	if name == "" {
		return nil, fmt.Errorf("name argument is required")
	}
	description := strings.TrimSpace(req.Params.Arguments["description"])
	if description == "" {
		description = "(no description given)"
	}

	tags, _ := s.dir.ListTags(ctx)
	known := make([]string, 0, len(tags))
	for _, t := range tags {
		known = append(known, t.Name)
	}

	text := fmt.Sprintf(`Suggest tags for the library %q.

Description: %s

Existing tags: %s

1. Prefer existing tags; only invent a new one when none fit.
2. Pick between one and four tags.
3. Use the submit_library tool with the chosen tags once the user confirms.`,
		name, description, strings.Join(known, ", "))

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}, nil
}
