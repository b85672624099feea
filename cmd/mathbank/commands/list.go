// ABOUTME: CLI command to list all indexed question ids in a namespace
// ABOUTME: Walks the store's bounded pagination and prints ids
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed question ids",
		Long: `List every question id in the configured namespace.

Pagination is bounded; an index that never terminates its listing
is reported as an error rather than looping forever.

Examples:
  mathbank list
  mathbank list --format json`,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	ids, err := client.ListAllIDs(ctx, cfg.Namespace)
	if err != nil {
		return fmt.Errorf("listing ids: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(ids, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d id(s) in namespace %q\n", len(ids), cfg.Namespace)
	}
	return nil
}
