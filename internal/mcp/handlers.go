// ABOUTME: MCP tool handler implementations for the retrieval server
// ABOUTME: Thin adapters from tool requests onto the retrieval service and store
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/mathbank/internal/models"
	"github.com/harper/mathbank/internal/retrieval"
	"github.com/harper/mathbank/internal/store"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	service   *retrieval.Service
	embedder  retrieval.Embedder
	store     *store.Client
	namespace string
}

// GetRetrievalContext handles the get_retrieval_context tool. It never
// returns a tool error for retrieval failures: the service already
// degrades those to an empty context, and the chat layer is built to
// continue without one.
func (h *Handlers) GetRetrievalContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	rc := h.service.GetRetrievalContext(ctx, query)

	responseJSON, err := json.Marshal(rc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchQuestions handles the search_questions tool: a raw similarity
// search without the intent gate, for inspecting the index.
func (h *Handlers) SearchQuestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", 5)

	if h.embedder == nil || h.store == nil {
		return mcp.NewToolResultError("retrieval is not configured"), nil
	}

	embedding, err := h.embedder.Embed(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}

	matches, err := h.store.Query(ctx, embedding, topK, h.namespace, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchResult{
			ID:       m.ID,
			Score:    m.Score,
			Question: models.QuestionFromMetadata(m.ID, m.Metadata),
		})
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"results": results})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool.
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("vector store is not configured"), nil
	}

	stats := h.store.DescribeStats(ctx)
	if stats == nil {
		return mcp.NewToolResultError("index stats are unavailable"), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"total_records": stats.TotalRecords,
		"per_namespace": stats.PerNamespaceCounts,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
