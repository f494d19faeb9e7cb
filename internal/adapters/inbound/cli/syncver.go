package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copperline/xtasks/internal/adapters/outbound/tui"
	"github.com/copperline/xtasks/internal/domain"
)

// NewSyncVersionCommand builds the sync-version command.
func NewSyncVersionCommand() *cobra.Command {
	var (
		path       string
		build      string
		noPre      bool
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "sync-version",
		Short: "Write the anchor module's pinned version to the VERSION file",
		Long:  "Read the anchor module's version from go.mod, optionally strip its prerelease tag or stamp build metadata, and keep the VERSION file in sync with it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, syncs := services(cmd.Flags())

			result, err := syncs.Run(cmd.Context(), path, domain.SyncOptions{
				Build:    build,
				StripPre: noPre,
				DryRun:   dryRun,
			})
			if err != nil {
				return fmt.Errorf("sync-version failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSyncResult(&result))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path to sync")
	cmd.Flags().StringVar(&build, "build", "", "Build metadata to stamp onto the version")
	cmd.Flags().BoolVar(&noPre, "no-pre", false, "Strip the prerelease tag before writing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the resolved version without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().String("anchor", "", "Anchor module override")

	return cmd
}
