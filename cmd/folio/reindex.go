package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/log"
)

func reindexCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Regenerate embeddings for all projects",
		Long: `Regenerate the searchable text and embedding for every project.

Requires an embedding provider (OPENAI_API_KEY). Projects that fail to
embed are skipped and reported at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(cmd, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runReindex(cmd *cobra.Command, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if !cfg.SearchEnabled() {
		return fmt.Errorf("no embedding provider configured: set OPENAI_API_KEY")
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

	summary, err := client.Reindex(cmd.Context())
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	fmt.Printf("reindexed %d projects (%d succeeded, %d failed)\n",
		summary.Total, summary.Succeeded, summary.Failed)
	return nil
}
