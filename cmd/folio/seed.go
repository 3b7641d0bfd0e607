package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/log"
)

func seedCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default taxonomy terms",
		Long: `Insert the default project sources, categories, platforms and
statuses. Terms that already exist are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runSeed(cmd *cobra.Command, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.New(log.Format(cfg.LogFormat()), cfg.LogLevel())
	slogger := logger.Slog()

	opts := append(clientOptions(cfg), folio.WithLogger(slogger))

	client, err := folio.New(opts...)
	if err != nil {
		return fmt.Errorf("create folio client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close folio client", slog.Any("error", err))
		}
	}()

	created, err := client.SeedTaxonomies(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed taxonomies: %w", err)
	}

	fmt.Printf("created %d taxonomy terms\n", created)
	return nil
}
