// ABOUTME: Tests for MCP tool handlers over an unconfigured backend
// ABOUTME: Verifies argument validation and degraded responses without network
package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/mathbank/internal/retrieval"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content type = %T, want text", result.Content[0])
	}
	return text.Text
}

func unconfiguredHandlers() *Handlers {
	return &Handlers{
		service:   retrieval.NewService(nil, nil, "questions", 5),
		namespace: "questions",
	}
}

func TestGetRetrievalContextHandler(t *testing.T) {
	h := unconfiguredHandlers()

	result, err := h.GetRetrievalContext(context.Background(), callRequest(map[string]any{
		"query": "give me a P2 addition question",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("result is an error: %s", textContent(t, result))
	}

	// Unconfigured retrieval degrades to an empty context, not a tool error.
	text := textContent(t, result)
	if !strings.Contains(text, `"count":0`) {
		t.Errorf("response = %s, want empty context JSON", text)
	}
}

func TestGetRetrievalContextHandlerMissingQuery(t *testing.T) {
	h := unconfiguredHandlers()

	result, err := h.GetRetrievalContext(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("missing query argument should produce a tool error result")
	}
}

func TestSearchQuestionsHandlerUnconfigured(t *testing.T) {
	h := unconfiguredHandlers()

	result, err := h.SearchQuestions(context.Background(), callRequest(map[string]any{
		"query": "fractions",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("search without configured clients should produce a tool error result")
	}
	if !strings.Contains(textContent(t, result), "not configured") {
		t.Errorf("error text = %s", textContent(t, result))
	}
}

func TestIndexStatsHandlerUnconfigured(t *testing.T) {
	h := unconfiguredHandlers()

	result, err := h.IndexStats(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("stats without a configured store should produce a tool error result")
	}
}
