// ABOUTME: CLI command to search indexed questions by semantic similarity
// ABOUTME: Supports explicit grade/topic/difficulty filters and table or json output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/mathbank/internal/models"
	"github.com/harper/mathbank/internal/store"
)

var (
	searchLimit      int
	searchGrade      string
	searchTopic      string
	searchDifficulty string
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed questions",
		Long: `Search indexed questions by semantic similarity.

Bypasses intent detection: the query is embedded as-is, with any
filters given explicitly. Useful for checking what retrieval would
surface for a phrasing.

Examples:
  mathbank search "sharing sweets equally"
  mathbank search --grade P2 --topic Addition "birthday party"
  mathbank search --format json "fractions of a set"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchGrade, "grade", "", "Filter by grade level (P1-P6)")
	cmd.Flags().StringVar(&searchTopic, "topic", "", "Filter by topic")
	cmd.Flags().StringVar(&searchDifficulty, "difficulty", "", "Filter by difficulty (Easy, Medium, Hard)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, index, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	embedding, err := embedder.Embed(ctx, query)
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	filter := &store.Filter{GradeLevel: searchGrade, Topic: searchTopic, Difficulty: searchDifficulty}
	if filter.IsZero() {
		filter = nil
	}

	matches, err := client.Query(ctx, embedding, searchLimit, cfg.Namespace, filter)
	if err != nil {
		return fmt.Errorf("searching questions: %w", err)
	}

	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No questions found for query: %s\n", query)
		}
		return nil
	}

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchResult{
			ID:       m.ID,
			Score:    m.Score,
			Question: models.QuestionFromMetadata(m.ID, m.Metadata),
		})
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tID\tGRADE\tTOPIC\tQUESTION\n")
	fmt.Fprintf(w, "-----\t--\t-----\t-----\t--------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n",
			r.Score,
			r.ID,
			r.Question.GradeLevel,
			truncate(r.Question.Topic, 15),
			truncate(r.Question.Text, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
