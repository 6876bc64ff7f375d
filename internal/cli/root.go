// Package cli implements the chatmark command line.
package cli

import (
	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatmark",
		Short:         "Render chat message markdown to safe HTML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newServeCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}
