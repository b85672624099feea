// ABOUTME: CLI command to ingest markdown question banks into the vector store
// ABOUTME: Parses, embeds and upserts with an operator-facing run report
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/mathbank/internal/ingest"
	"github.com/harper/mathbank/internal/models"
	"github.com/harper/mathbank/internal/parser"
)

var (
	ingestDryRun bool
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>",
		Short: "Ingest question bank files",
		Long: `Ingest markdown question bank files into the vector store.

The path may be a single .md file or a directory; directories are
walked recursively and a corrupt file never aborts its siblings.
Filenames follow P<grade>_<Source_Words>_<Year>.md.

Examples:
  mathbank ingest banks/
  mathbank ingest banks/P3_Nanyang_Primary_2023.md
  mathbank ingest --dry-run banks/`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Parse only; do not embed or upsert")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	var questions []models.Question
	if info.IsDir() {
		questions, err = parser.ParseDirectory(path)
	} else {
		questions, err = parser.ParseFile(path)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Parsed %d question(s) from %s\n", len(questions), path)
	}
	if verbose {
		for _, q := range questions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s/%s  %s\n", q.ID, q.Topic, q.Subtopic, truncate(q.Text, 60))
		}
	}
	if ingestDryRun {
		return nil
	}
	if len(questions) == 0 {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("ingestion needs the embedding provider: %w", err)
	}

	ctx := cmd.Context()
	client, index, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ingestion needs the vector store: %w", err)
	}
	defer index.Close()

	if err := index.EnsureSchema(ctx); err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(embedder, client, cfg.Namespace)
	report, err := pipeline.Run(ctx, questions)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d succeeded, %d failed (namespace %q)\n",
		report.RunID, report.Succeeded, report.Failed, cfg.Namespace)
	for _, msg := range report.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", msg)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d record(s) failed to upsert", report.Failed)
	}
	return nil
}
