// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ingest, search, context, stats, list, show, clear and mcp
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mathbank",
		Short: "Question bank retrieval for the math tutor",
		Long: `mathbank indexes primary school math question banks and retrieves
grounded, style-matched example questions for the tutoring chat.

Ingestion parses markdown question banks, embeds each question and
upserts the vectors into the store. At query time the retrieval
service classifies the user's intent, runs a filtered similarity
search and assembles a bounded context block for prompt injection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewContextCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
