package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/infrastructure/api"
	v1 "github.com/foliolabs/folio/infrastructure/api/v1"
	"github.com/foliolabs/folio/internal/config"
	"github.com/foliolabs/folio/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                    Server host to bind to (default: 0.0.0.0)
  PORT                    Server port to listen on (default: 8080)
  DATA_DIR                Data directory (default: ~/.folio)
  DB_URL                  Database URL (default: sqlite:///{data_dir}/folio.db)
  UPLOAD_DIR              Attachment directory (default: {data_dir}/uploads)
  LOG_LEVEL               Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT              Log format: pretty, json (default: pretty)
  API_KEYS                Comma-separated list of valid API keys

  OPENAI_API_KEY          OpenAI API key; search and indexing degrade without it
  OPENAI_BASE_URL         Provider endpoint override
  OPENAI_EMBEDDING_MODEL  Embedding model (default: text-embedding-3-small)
  OPENAI_CHAT_MODEL       Analysis model (default: gpt-4o-mini)
  OPENAI_TIMEOUT          Request timeout in seconds (default: 60)
  OPENAI_MAX_RETRIES      Retry attempts (default: 5)

  FTP_HOST                Store attachments on FTP when set
  FTP_USER                FTP login user
  FTP_PASSWORD            FTP login password
  FTP_PORT                FTP port (default: 21)
  FTP_REMOTE_PATH         Base path on the server (default: /public_html)
  MEDIA_URL               Public URL prefix for FTP-hosted uploads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars
	cfg = applyServeOverrides(cfg, host, port)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.New(log.Format(cfg.LogFormat()), cfg.LogLevel())
	slogger := logger.Slog()

	slogger.Info("starting folio",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
		slog.Bool("search_enabled", cfg.SearchEnabled()),
	)

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

	server := api.NewServer(cfg.Addr(), slogger)
	router := server.Router()

	router.Mount("/api", v1.NewRouter(v1.Dependencies{
		Projects:   client.Projects,
		Taxonomies: client.Taxonomies,
		Search:     client.Search,
		Queue:      client.Tasks,
		Files:      client.Files(),
		APIKeys:    client.APIKeys(),
		Logger:     slogger,
	}))

	router.Get("/health", v1.Health)
	router.Get("/healthz", v1.Health)

	// Locally stored attachments are served directly; FTP uploads are
	// reachable through MEDIA_URL instead.
	if !cfg.FTP().IsConfigured() {
		if err := cfg.EnsureUploadDir(); err != nil {
			return fmt.Errorf("create upload directory: %w", err)
		}
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir())))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"folio","version":"%s"}`, version)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slogger.Info("starting server", slog.String("addr", cfg.Addr()))
		return server.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		slogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.Option

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
