// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM chat agents to fetch retrieval context via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/mathbank/internal/mcp"
	"github.com/harper/mathbank/internal/retrieval"
	"github.com/harper/mathbank/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the question retrieval pipeline as an MCP (Model Context
Protocol) server over stdio, so a chat agent can fetch grounded
example questions for a tutoring prompt.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  mathbank mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "mathbank": {
  #       "command": "mathbank",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Retrieval degrades to empty contexts when either side is missing,
	// so the server starts regardless and only warns.
	var (
		embedder retrieval.Embedder
		client   *store.Client
		index    *store.PgIndex
	)
	if cfg.IsEmbeddingConfigured() {
		emb, err := newEmbedder(cfg)
		if err != nil {
			return err
		}
		embedder = emb
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - retrieval will return empty contexts")
	}
	if cfg.IsStoreConfigured() {
		client, index, err = newStore(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer index.Close()
	} else {
		log.Println("Warning: MATHBANK_DATABASE_URL not set - retrieval will return empty contexts")
	}

	var service *retrieval.Service
	if embedder != nil && client != nil {
		service = retrieval.NewService(embedder, client, cfg.Namespace, cfg.TopK)
	} else {
		service = retrieval.NewService(nil, nil, cfg.Namespace, cfg.TopK)
	}

	server := mcpserver.NewMCPServer(
		"Math Question Bank",
		"0.1.0",
	)

	mcp.RegisterTools(server, service, embedder, client, cfg.Namespace)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Mathbank MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
