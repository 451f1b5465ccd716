package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/novastream-inc/novastream/internal/interfaces/cli/migrate"
	"github.com/novastream-inc/novastream/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "novastream",
		Short: "NovaStream subscription service",
		Long:  `NovaStream manages streaming subscription plans, including purchase, extension, and cancellation, with built-in server and migration tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
