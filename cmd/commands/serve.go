package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewServeCommand creates the command that runs the HTTP server.
func NewServeCommand() *cobra.Command {
	var (
		configFile string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the task API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := NewApp(cmd.Context(), configFile, port)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer cleanup()

			if err := app.Run(); err != nil {
				return fmt.Errorf("failed to run app: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to the configuration file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides server.port")

	return cmd
}
