// Package xtask exposes the Copperline build tasks as cobra command
// factories so toolchain projects mount them into their own build entry
// points instead of shipping the standalone xtasks binary.
package xtask

import (
	"github.com/spf13/cobra"

	"github.com/copperline/xtasks/internal/adapters/inbound/cli"
)

// Commands returns one instance of every task command, in mounting order.
func Commands() []*cobra.Command {
	return cli.Commands()
}

// Mount attaches all task commands to root.
func Mount(root *cobra.Command) {
	root.AddCommand(Commands()...)
}

// NewCheckCommand returns the check command.
func NewCheckCommand() *cobra.Command {
	return cli.NewCheckCommand()
}

// NewApplyCommand returns the apply command.
func NewApplyCommand() *cobra.Command {
	return cli.NewApplyCommand()
}

// NewSyncVersionCommand returns the sync-version command.
func NewSyncVersionCommand() *cobra.Command {
	return cli.NewSyncVersionCommand()
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand() *cobra.Command {
	return cli.NewHistoryCommand()
}

// NewInitCommand returns the init command.
func NewInitCommand() *cobra.Command {
	return cli.NewInitCommand()
}

// NewMCPCommand returns the mcp command group.
func NewMCPCommand() *cobra.Command {
	return cli.NewMCPCommand()
}
