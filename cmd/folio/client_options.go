package main

import (
	"strings"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/config"
)

// clientOptions builds folio client options from the resolved configuration.
func clientOptions(cfg config.AppConfig) []folio.Option {
	opts := []folio.Option{
		folio.WithDataDir(cfg.DataDir()),
		folio.WithUploadDir(cfg.UploadDir()),
	}

	dbURL := cfg.DBURL()
	if isSQLite(dbURL) {
		opts = append(opts, folio.WithSQLite(strings.TrimPrefix(dbURL, "sqlite:///")))
	} else {
		opts = append(opts, folio.WithPostgres(dbURL))
	}

	if cfg.Provider().IsConfigured() {
		opts = append(opts, folio.WithOpenAIConfig(cfg.Provider()))
	}

	if cfg.FTP().IsConfigured() {
		opts = append(opts, folio.WithFTP(cfg.FTP()))
	}

	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, folio.WithAPIKeys(keys...))
	}

	return opts
}

// isSQLite checks if the database URL is for SQLite.
func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite:")
}
