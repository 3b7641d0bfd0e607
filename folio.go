// Package folio provides a library for managing and searching a freelance
// project portfolio.
//
// Folio stores projects with their taxonomies and attachments, generates
// embeddings for semantic search, and produces LLM-backed analysis of how
// well the portfolio matches a client query.
//
// Basic usage:
//
//	client, err := folio.New(
//	    folio.WithSQLite(".folio/folio.db"),
//	    folio.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Create a project
//	p, err := client.Projects.Create(ctx, params)
//
//	// Semantic search
//	resp, err := client.Search.Query(ctx, "wix site for a dental clinic")
//	for _, r := range resp.Results {
//	    fmt.Println(r.Project.Title(), r.Similarity)
//	}
package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/foliolabs/folio/application/service"
	"github.com/foliolabs/folio/domain/task"
	"github.com/foliolabs/folio/infrastructure/filestore"
	"github.com/foliolabs/folio/infrastructure/persistence"
	"github.com/foliolabs/folio/internal/config"
	"github.com/foliolabs/folio/internal/database"
	"github.com/foliolabs/folio/internal/log"
)

// Errors returned by Client construction and shutdown.
var (
	ErrNoDatabase   = errors.New("no database configured: use WithSQLite or WithPostgres")
	ErrClientClosed = errors.New("client is closed")
)

// Client is the main entry point for the folio library.
// The background worker starts automatically on creation.
//
// Access resources via struct fields:
//
//	client.Projects.List(ctx)
//	client.Taxonomies.List(ctx, taxonomy.KindCategory)
//	client.Search.Query(ctx, "query")
type Client struct {
	// Public resource fields (direct service access)
	Projects   *service.Project
	Taxonomies *service.Taxonomy
	Search     *service.Search
	Tasks      *service.Queue

	db      database.Database
	files   filestore.Store
	indexer *service.Indexer
	worker  *service.Worker

	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
}

// New creates a new Client with the given options.
// The background worker is started automatically.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(log.FormatPretty, config.DefaultLogLevel).Slog()
	}

	dataDir := cfg.dataDir
	if dataDir == "" {
		dataDir = config.NewAppConfig().DataDir()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	ctx := context.Background()

	db, err := database.NewDatabase(ctx, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	projectStore := persistence.NewProjectStore(db)
	taxonomyStore := persistence.NewTaxonomyStore(db)
	taskStore := persistence.NewTaskStore(db)

	files, err := buildFileStore(cfg, dataDir)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("file store: %w", err), errClose)
	}

	queue := service.NewQueue(taskStore, logger)

	indexer := service.NewIndexer(projectStore, cfg.embedder, logger).
		WithReindexDelay(cfg.reindexDelay)

	registry := service.NewRegistry()
	registry.Register(task.OperationIndexProject, service.NewIndexHandler(indexer))
	registry.Register(task.OperationReindexAll, service.NewReindexAllHandler(indexer))

	worker := service.NewWorker(taskStore, registry, logger)
	if cfg.workerPollPeriod > 0 {
		worker.WithPollPeriod(cfg.workerPollPeriod)
	}

	client := &Client{
		db:      db,
		files:   files,
		indexer: indexer,
		worker:  worker,
		logger:  logger,
		apiKeys: cfg.apiKeys,
	}

	client.Projects = service.NewProject(projectStore, taxonomyStore, queue, files, logger)
	client.Taxonomies = service.NewTaxonomy(taxonomyStore, logger)
	client.Search = service.NewSearch(projectStore, cfg.embedder, cfg.generator, logger)
	client.Tasks = queue

	worker.Start(ctx)

	return client, nil
}

// Close stops the background worker and releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.worker.Stop()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("folio client closed")
	return nil
}

// Reindex regenerates the searchable text and embedding for every project.
func (c *Client) Reindex(ctx context.Context) (service.ReindexSummary, error) {
	return c.indexer.ReindexAll(ctx)
}

// SeedTaxonomies inserts the default taxonomy terms, skipping those already
// present. It returns the number of terms created.
func (c *Client) SeedTaxonomies(ctx context.Context) (int, error) {
	return c.Taxonomies.Seed(ctx, service.DefaultTaxonomies())
}

// Files returns the attachment file store.
func (c *Client) Files() filestore.Store { return c.files }

// APIKeys returns the configured HTTP API keys.
func (c *Client) APIKeys() []string { return c.apiKeys }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// databaseURL builds the database URL from the client config.
func databaseURL(cfg *clientConfig) string {
	if cfg.database == databasePostgres {
		return cfg.dbDSN
	}
	return "sqlite:///" + cfg.dbPath
}

// buildFileStore selects FTP or local attachment storage.
func buildFileStore(cfg *clientConfig, dataDir string) (filestore.Store, error) {
	if cfg.ftp.IsConfigured() {
		return filestore.NewFTPStore(cfg.ftp), nil
	}
	uploadDir := cfg.uploadDir
	if uploadDir == "" {
		uploadDir = filepath.Join(dataDir, "uploads")
	}
	return filestore.NewLocalStore(uploadDir, cfg.publicURLPrefix)
}
