// ABOUTME: CLI command to delete indexed questions
// ABOUTME: Removes specific ids or wipes the whole namespace with confirmation
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clearAll   bool
	clearForce bool
)

// NewClearCmd creates clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [id...]",
		Short: "Delete indexed questions",
		Long: `Delete questions from the vector store by id, or the entire
namespace with --all.

Deletes are best-effort: a failed delete is reported but does not
abort the command.

Examples:
  mathbank clear P3-NP-001 P3-NP-002
  mathbank clear --all
  mathbank clear --all --force`,
		RunE: runClear,
	}

	cmd.Flags().BoolVar(&clearAll, "all", false, "Delete every record in the namespace")
	cmd.Flags().BoolVar(&clearForce, "force", false, "Skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	if clearAll && len(args) > 0 {
		return fmt.Errorf("cannot combine --all with explicit ids")
	}
	if !clearAll && len(args) == 0 {
		return fmt.Errorf("provide at least one id, or use --all")
	}

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

	if clearAll {
		if !clearForce {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete ALL records in namespace %q? [y/N]: ", cfg.Namespace)
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}
		if !client.DeleteAll(ctx, cfg.Namespace) {
			return fmt.Errorf("failed to clear namespace %q", cfg.Namespace)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared namespace %q\n", cfg.Namespace)
		return nil
	}

	if !client.DeleteMany(ctx, args, cfg.Namespace) {
		return fmt.Errorf("failed to delete %d id(s) from namespace %q", len(args), cfg.Namespace)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d id(s) from namespace %q\n", len(args), cfg.Namespace)
	return nil
}
