// ABOUTME: CLI command to show vector index statistics
// ABOUTME: Reports record counts per namespace for operator diagnostics
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show vector index statistics",
		Long: `Show how many question records are indexed, per namespace.

Examples:
  mathbank stats
  mathbank stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats := client.DescribeStats(ctx)
	if stats == nil {
		return fmt.Errorf("index stats are unavailable")
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"total_records": stats.TotalRecords,
			"per_namespace": stats.PerNamespaceCounts,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAMESPACE\tRECORDS\n")
	fmt.Fprintf(w, "---------\t-------\n")
	for namespace, count := range stats.PerNamespaceCounts {
		fmt.Fprintf(w, "%s\t%d\n", namespace, count)
	}
	fmt.Fprintf(w, "total\t%d\n", stats.TotalRecords)
	w.Flush()
	return nil
}
