// ABOUTME: Tests for the MCP tool, resource and prompt handlers.
// ABOUTME: Calls handlers directly against a sample-only directory.

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/libdir/internal/directory"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer() *Server {
	return NewServer(directory.NewAdapter(nil, nil, nil), "test", nil)
}

func callTool(t *testing.T, h func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), args string) *mcp.CallToolResult {
	t.Helper()
	res, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)},
	})
	if err != nil {
		t.Fatalf("tool call: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestListLibrariesTool(t *testing.T) {
	s := newTestServer()
	res := callTool(t, s.handleListLibraries, `{"framework": "Vue", "page": 1}`)

	var out listResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Source != directory.SourceSample || len(out.Libraries) == 0 {
		t.Fatalf("unexpected result %+v", out)
	}
	for _, lib := range out.Libraries {
		if lib.Framework != "Vue" {
			t.Errorf("unexpected framework %q", lib.Framework)
		}
	}
}

func TestListLibrariesToolWithoutArguments(t *testing.T) {
	s := newTestServer()
	res := callTool(t, s.handleListLibraries, "")
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
}

func TestSubmitLibraryToolNotConfigured(t *testing.T) {
	s := newTestServer()
	res := callTool(t, s.handleSubmitLibrary, `{"name": "Foo"}`)

	if !res.IsError || !strings.Contains(resultText(t, res), "not configured") {
		t.Errorf("expected not configured error, got %+v", res)
	}
}

func TestListTagsTool(t *testing.T) {
	s := newTestServer()
	res := callTool(t, s.handleListTags, `{}`)

	if !strings.Contains(resultText(t, res), `"forms"`) {
		t.Error("expected sample tags")
	}
}

func TestReadLibraryResource(t *testing.T) {
	s := newTestServer()
	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "libdir://library/shadcn-ui"},
	})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if !strings.HasPrefix(res.Contents[0].Text, "# shadcn/ui") {
		t.Errorf("unexpected resource text %q", res.Contents[0].Text)
	}

	if _, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "libdir://library/missing"},
	}); err == nil {
		t.Error("expected error for unknown slug")
	}
}

func TestSuggestTagsPrompt(t *testing.T) {
	s := newTestServer()
	res, err := s.getSuggestTagsPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"name": "Formik"}},
	})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	if !strings.Contains(text, `"Formik"`) || !strings.Contains(text, "forms") {
		t.Errorf("unexpected prompt text %q", text)
	}

	if _, err := s.getSuggestTagsPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{}},
	}); err == nil {
		t.Error("expected error without name")
	}
}
