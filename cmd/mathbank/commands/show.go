// ABOUTME: CLI command to fetch indexed questions by id
// ABOUTME: Reconstructs questions from stored metadata for inspection
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/mathbank/internal/models"
)

// NewShowCmd creates show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id...>",
		Short: "Show indexed questions by id",
		Long: `Fetch questions from the vector store by id and print them.

Unknown ids are simply absent from the output.

Examples:
  mathbank show P3-NP-001
  mathbank show --format json P3-NP-001 P3-NP-002`,
		Args: cobra.MinimumNArgs(1),
		RunE: runShow,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, index, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	records, err := client.Fetch(ctx, args, cfg.Namespace)
	if err != nil {
		return fmt.Errorf("fetching questions: %w", err)
	}

	questions := make([]models.Question, 0, len(records))
	for _, r := range records {
		questions = append(questions, models.QuestionFromMetadata(r.ID, r.Metadata))
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, q := range questions {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s %s / %s, %s)\n", q.ID, q.GradeLevel, q.Topic, q.Subtopic, q.Difficulty)
		fmt.Fprintf(cmd.OutOrStdout(), "  Question: %s\n", q.Text)
		fmt.Fprintf(cmd.OutOrStdout(), "  Answer: %s\n", q.Answer)
		if q.WorkingSolution != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Working: %s\n", q.WorkingSolution)
		}
		if q.VisualHint != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Visual hint: %s\n", q.VisualHint)
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d id(s) found\n", len(questions), len(args))
	}
	return nil
}
