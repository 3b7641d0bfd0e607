// Package main is the entry point for the folio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Folio portfolio server",
		Long:  `Folio manages a freelance project portfolio and matches client queries against it using embedding-based semantic search.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(reindexCmd())
	cmd.AddCommand(seedCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	if err := config.LoadDotenv(envFile); err != nil {
		return config.AppConfig{}, fmt.Errorf("load env file: %w", err)
	}
	env, err := config.LoadFromEnv()
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return env.ToAppConfig(), nil
}
