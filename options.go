package folio

import (
	"log/slog"
	"time"

	"github.com/foliolabs/folio/infrastructure/provider"
	"github.com/foliolabs/folio/internal/config"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	database         databaseType
	dbPath           string
	dbDSN            string
	dataDir          string
	uploadDir        string
	publicURLPrefix  string
	ftp              config.FTPConfig
	embedder         provider.Embedder
	generator        provider.TextGenerator
	logger           *slog.Logger
	apiKeys          []string
	workerPollPeriod time.Duration
	reindexDelay     time.Duration
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		publicURLPrefix: "/uploads",
		reindexDelay:    config.DefaultReindexDelay,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithOpenAI sets OpenAI as the AI provider (embeddings + analysis).
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		p := provider.NewOpenAIProvider(apiKey)
		c.embedder = p
		c.generator = p
	}
}

// WithOpenAIConfig sets OpenAI with custom configuration.
func WithOpenAIConfig(cfg config.ProviderConfig) Option {
	return func(c *clientConfig) {
		p := provider.NewOpenAIProviderFromConfig(cfg)
		c.embedder = p
		c.generator = p
	}
}

// WithEmbedder sets a custom embedding provider.
func WithEmbedder(e provider.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithTextGenerator sets a custom text generation provider.
func WithTextGenerator(g provider.TextGenerator) Option {
	return func(c *clientConfig) {
		c.generator = g
	}
}

// WithDataDir sets the data directory for database and upload storage.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithUploadDir sets the directory where attachments are stored.
// If not specified, defaults to {dataDir}/uploads.
func WithUploadDir(dir string) Option {
	return func(c *clientConfig) {
		c.uploadDir = dir
	}
}

// WithPublicURLPrefix sets the URL prefix for locally stored attachments.
func WithPublicURLPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.publicURLPrefix = prefix
	}
}

// WithFTP stores attachments on a remote FTP server instead of local disk.
func WithFTP(cfg config.FTPConfig) Option {
	return func(c *clientConfig) {
		c.ftp = cfg
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API authentication.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithWorkerPollPeriod sets how often the background worker checks for new
// tasks. Defaults to 1 second. Lower values speed up task processing at the
// cost of more frequent polling.
func WithWorkerPollPeriod(d time.Duration) Option {
	return func(c *clientConfig) {
		c.workerPollPeriod = d
	}
}

// WithReindexDelay sets the pause between embedding calls during a batch
// reindex.
func WithReindexDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.reindexDelay = d
	}
}
