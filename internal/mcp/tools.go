// ABOUTME: MCP tool definitions and registration for the retrieval server
// ABOUTME: Exposes retrieval context, raw search and index stats to chat agents
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/mathbank/internal/retrieval"
	"github.com/harper/mathbank/internal/store"
)

// RegisterTools registers all retrieval tools with the server.
func RegisterTools(server *mcpserver.MCPServer, service *retrieval.Service, embedder retrieval.Embedder, client *store.Client, namespace string) *Handlers {
	handlers := &Handlers{
		service:   service,
		embedder:  embedder,
		store:     client,
		namespace: namespace,
	}

	// 1. get_retrieval_context - the consumer interface for the chat layer
	server.AddTool(mcp.Tool{
		Name:        "get_retrieval_context",
		Description: "Get grounded example questions for a user message. Returns a formatted context block to inject into the tutoring prompt, or an empty context when the message does not ask for practice questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The raw user message",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.GetRetrievalContext)

	// 2. search_questions - raw similarity search for inspection
	server.AddTool(mcp.Tool{
		Name:        "search_questions",
		Description: "Search indexed questions by semantic similarity, bypassing intent detection. Intended for inspecting what the index would return for a query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchQuestions)

	// 3. index_stats - read-only diagnostics
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report how many questions are indexed, per namespace.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
