package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/log"
	"github.com/foliolabs/folio/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This allows AI assistants to search the portfolio and look up projects.
Configuration is loaded from environment variables and the .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// Stdout carries the MCP protocol, so log to stderr.
	logger := log.NewWithWriter(os.Stderr, log.Format(cfg.LogFormat()), cfg.LogLevel())
	slogger := logger.Slog()

	slogger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	if !cfg.SearchEnabled() {
		slogger.Warn("no embedding provider configured, search_projects will not work")
	}

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

	mcpServer := mcp.NewServer(client.Search, client.Projects, slogger)

	return mcpServer.ServeStdio()
}
