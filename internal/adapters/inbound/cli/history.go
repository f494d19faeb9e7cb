package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperline/xtasks/internal/adapters/outbound/tui"
)

// NewHistoryCommand builds the history command.
func NewHistoryCommand() *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved check results for the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, _, _ := services(cmd.Flags())

			entries, root, err := checks.History(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("history failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Check history for %s\n\n", root)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
