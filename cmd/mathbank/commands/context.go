// ABOUTME: CLI command to preview the retrieval context for a chat message
// ABOUTME: Runs the full intent -> embed -> query -> format pipeline
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/mathbank/internal/retrieval"
)

// NewContextCmd creates context command
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <message>",
		Short: "Preview the retrieval context for a message",
		Long: `Preview the retrieval context the chat layer would receive for a
user message, including intent gating: messages that do not ask for
practice questions produce an empty context.

Examples:
  mathbank context "give me a P2 subtraction question"
  mathbank context --format json "hello there"`,
		Args: cobra.ExactArgs(1),
		RunE: runContext,
	}

	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Mirror the chat layer: missing configuration degrades to an empty
	// context instead of failing.
	var service *retrieval.Service
	ctx := cmd.Context()
	if cfg.IsEmbeddingConfigured() && cfg.IsStoreConfigured() {
		embedder, err := newEmbedder(cfg)
		if err != nil {
			return err
		}
		client, index, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer index.Close()
		service = retrieval.NewService(embedder, client, cfg.Namespace, cfg.TopK)
	} else {
		service = retrieval.NewService(nil, nil, cfg.Namespace, cfg.TopK)
	}

	rc := service.GetRetrievalContext(ctx, args[0])

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(rc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if rc.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No retrieval context (empty).")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d example(s):\n\n%s\n", rc.Count, rc.FormattedText)
	return nil
}
