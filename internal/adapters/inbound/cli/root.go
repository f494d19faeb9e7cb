package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/copperline/xtasks/internal/adapters/outbound/config"
	"github.com/copperline/xtasks/internal/adapters/outbound/gitinfo"
	"github.com/copperline/xtasks/internal/adapters/outbound/history"
	"github.com/copperline/xtasks/internal/adapters/outbound/manifest"
	"github.com/copperline/xtasks/internal/adapters/outbound/pinstore"
	"github.com/copperline/xtasks/internal/application"
	"github.com/copperline/xtasks/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "xtasks",
		Short: "Keep Copperline projects aligned with the toolchain reference",
		Long:  "xtasks compares a project's build manifest against the Copperline toolchain reference, reports drift, and rewrites the manifest to close it.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.New(cmd.ErrOrStderr(), verbose)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(Commands()...)
	return cmd
}

// Commands returns the task commands in mounting order. Host projects embed
// them through pkg/xtask instead of shipping the standalone binary.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		NewCheckCommand(),
		NewApplyCommand(),
		NewSyncVersionCommand(),
		NewHistoryCommand(),
		NewInitCommand(),
		NewMCPCommand(),
	}
}

// services wires the application layer against the real adapters. The flag
// set feeds the config loader so changed flags override file and env values.
func services(flags *pflag.FlagSet) (*application.CheckService, *application.PlanService, *application.SyncService) {
	configs := config.NewLoader(flags)
	manifests := manifest.NewSource()
	checks := application.NewCheckService(configs, manifests, gitinfo.New(), history.New(), pinstore.New())
	plans := application.NewPlanService(checks, manifest.NewEditor(), pinstore.New())
	syncs := application.NewSyncService(configs, manifests, manifest.NewVersionFile())
	return checks, plans, syncs
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
