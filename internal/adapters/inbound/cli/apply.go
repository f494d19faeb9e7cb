package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperline/xtasks/internal/adapters/outbound/tui"
	"github.com/copperline/xtasks/internal/domain"
)

// NewApplyCommand builds the apply command.
func NewApplyCommand() *cobra.Command {
	var (
		path       string
		dryRun     bool
		prune      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite the manifest to match the toolchain reference",
		Long:  "Derive an upgrade plan from the current drift, rewrite go.mod to close it, and return instructions for anything that needs a human decision.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, plans, _ := services(cmd.Flags())

			result, err := plans.Apply(cmd.Context(), path,
				domain.PlanOptions{Prune: prune},
				domain.ApplyOptions{DryRun: dryRun},
			)
			if err != nil {
				return fmt.Errorf("apply failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderApplyResult(&result))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path to rewrite")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the rewritten manifest without touching the file")
	cmd.Flags().BoolVar(&prune, "prune", false, "Drop requires the reference does not list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
