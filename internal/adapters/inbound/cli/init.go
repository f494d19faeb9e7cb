package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configFileName = ".xtasks.yaml"

const starterConfig = `# xtasks configuration
version: 1

# How check --ci treats drift: warn, fail, or strict.
policy: warn

# Module whose pinned version drives sync-version.
anchor: github.com/copperline/tern

# Append check results to .xtasks/history.
history: true

# Reference keys to leave out of evaluation.
# ignore:
#   - license
#   - require.github.com/copperline/tern-lint

# Hold a module at a version other than the reference's.
# pins:
#   github.com/copperline/tern: v0.9.1

# Project metadata evaluated alongside the manifest.
# metadata:
#   license: BSD-3-Clause
`

// NewInitCommand builds the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .xtasks.yaml configuration file",
		Long:  "Create a .xtasks.yaml with the default policy, anchor, and history settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .xtasks.yaml")

	return cmd
}
