// Package commands defines the taskd command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskd",
		Short:         "Task tracking service backed by MongoDB",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
