package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "fitcoach",
		Short:         "FitCoach tenant settings API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the bare binary starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "directory containing config.yaml")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newSettingsCmd())
	return root
}
