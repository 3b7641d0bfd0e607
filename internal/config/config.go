// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultChatModel       = "gpt-4o-mini"
	DefaultProviderTimeout = 60 * time.Second
	DefaultMaxRetries      = 5
	DefaultInitialDelay    = 2 * time.Second
	DefaultBackoffFactor   = 2.0
	DefaultWorkerPoll      = time.Second
	DefaultFTPPort         = 21
	DefaultFTPRemotePath   = "/public_html"

	// DefaultReindexDelay is the pause between embedding calls during a
	// batch reindex, to stay under provider rate limits.
	DefaultReindexDelay = 200 * time.Millisecond
)

// Upload size limits in bytes.
const (
	MaxScreenshotSize = 10 << 20  // 10 MiB
	MaxVideoSize      = 100 << 20 // 100 MiB
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// FTPConfig configures the remote FTP attachment store.
type FTPConfig struct {
	host       string
	user       string
	password   string
	port       int
	remotePath string
	mediaURL   string
}

// NewFTPConfig creates an FTPConfig.
func NewFTPConfig(host, user, password string, port int, remotePath, mediaURL string) FTPConfig {
	if port == 0 {
		port = DefaultFTPPort
	}
	if remotePath == "" {
		remotePath = DefaultFTPRemotePath
	}
	return FTPConfig{
		host:       host,
		user:       user,
		password:   password,
		port:       port,
		remotePath: remotePath,
		mediaURL:   mediaURL,
	}
}

// Host returns the FTP host.
func (f FTPConfig) Host() string { return f.host }

// User returns the FTP user.
func (f FTPConfig) User() string { return f.user }

// Password returns the FTP password.
func (f FTPConfig) Password() string { return f.password }

// Port returns the FTP port.
func (f FTPConfig) Port() int { return f.port }

// RemotePath returns the base path on the FTP server.
func (f FTPConfig) RemotePath() string { return f.remotePath }

// MediaURL returns the public URL prefix for uploaded files.
func (f FTPConfig) MediaURL() string { return f.mediaURL }

// IsConfigured returns true when a host is set.
func (f FTPConfig) IsConfigured() bool { return f.host != "" }

// ProviderConfig configures the OpenAI embedding/completion provider.
type ProviderConfig struct {
	apiKey         string
	baseURL        string
	embeddingModel string
	chatModel      string
	timeout        time.Duration
	maxRetries     int
}

// NewProviderConfig creates a ProviderConfig with defaults applied.
func NewProviderConfig(apiKey, baseURL, embeddingModel, chatModel string, timeout time.Duration, maxRetries int) ProviderConfig {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	if timeout == 0 {
		timeout = DefaultProviderTimeout
	}
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	return ProviderConfig{
		apiKey:         apiKey,
		baseURL:        baseURL,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		timeout:        timeout,
		maxRetries:     maxRetries,
	}
}

// APIKey returns the provider API key.
func (p ProviderConfig) APIKey() string { return p.apiKey }

// BaseURL returns the provider base URL override, if any.
func (p ProviderConfig) BaseURL() string { return p.baseURL }

// EmbeddingModel returns the embedding model identifier.
func (p ProviderConfig) EmbeddingModel() string { return p.embeddingModel }

// ChatModel returns the chat completion model identifier.
func (p ProviderConfig) ChatModel() string { return p.chatModel }

// Timeout returns the per-request timeout.
func (p ProviderConfig) Timeout() time.Duration { return p.timeout }

// MaxRetries returns the retry budget for transient provider failures.
func (p ProviderConfig) MaxRetries() int { return p.maxRetries }

// IsConfigured returns true when an API key is present. This is the single
// capability flag gating indexing and search.
func (p ProviderConfig) IsConfigured() bool { return p.apiKey != "" }

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host      string
	port      int
	dataDir   string
	dbURL     string
	uploadDir string
	logLevel  string
	logFormat LogFormat
	apiKeys   []string
	provider  ProviderConfig
	ftp       FTPConfig
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := defaultDataDir()
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   dataDir,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		provider:  NewProviderConfig("", "", "", "", 0, 0),
		ftp:       NewFTPConfig("", "", "", 0, "", ""),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".folio"
	}
	return filepath.Join(home, ".folio")
}

// Host returns the server bind host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database URL (defaults to SQLite under the data dir).
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.dataDir, "folio.db")
}

// UploadDir returns the local upload directory (defaults under the data dir).
func (c AppConfig) UploadDir() string {
	if c.uploadDir != "" {
		return c.uploadDir
	}
	return filepath.Join(c.dataDir, "uploads")
}

// LogLevel returns the log verbosity.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the accepted API keys (empty means auth disabled).
func (c AppConfig) APIKeys() []string {
	result := make([]string, len(c.apiKeys))
	copy(result, c.apiKeys)
	return result
}

// Provider returns the AI provider configuration.
func (c AppConfig) Provider() ProviderConfig { return c.provider }

// FTP returns the FTP storage configuration.
func (c AppConfig) FTP() FTPConfig { return c.ftp }

// SearchEnabled reports whether semantic search and indexing are active.
// Derived once from provider configuration rather than checked ad hoc.
func (c AppConfig) SearchEnabled() bool { return c.provider.IsConfigured() }

// EnsureDataDir creates the data directory if missing.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// EnsureUploadDir creates the upload directory if missing.
func (c AppConfig) EnsureUploadDir() error {
	return os.MkdirAll(c.UploadDir(), 0o755)
}

// Option mutates an AppConfig during construction.
type Option func(AppConfig) AppConfig

// Apply returns a copy of the config with the options applied.
func (c AppConfig) Apply(opts ...Option) AppConfig {
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// WithHost sets the bind host.
func WithHost(host string) Option {
	return func(c AppConfig) AppConfig { c.host = host; return c }
}

// WithPort sets the server port.
func WithPort(port int) Option {
	return func(c AppConfig) AppConfig { c.port = port; return c }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(c AppConfig) AppConfig { c.dataDir = dir; return c }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) Option {
	return func(c AppConfig) AppConfig { c.dbURL = url; return c }
}

// WithUploadDir sets the local upload directory.
func WithUploadDir(dir string) Option {
	return func(c AppConfig) AppConfig { c.uploadDir = dir; return c }
}

// WithLogLevel sets the log verbosity.
func WithLogLevel(level string) Option {
	return func(c AppConfig) AppConfig { c.logLevel = level; return c }
}

// WithLogFormat sets the log output format.
func WithLogFormat(format LogFormat) Option {
	return func(c AppConfig) AppConfig { c.logFormat = format; return c }
}

// WithAPIKeys sets the accepted API keys.
func WithAPIKeys(keys []string) Option {
	return func(c AppConfig) AppConfig {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
		return c
	}
}

// WithProvider sets the AI provider configuration.
func WithProvider(p ProviderConfig) Option {
	return func(c AppConfig) AppConfig { c.provider = p; return c }
}

// WithFTP sets the FTP storage configuration.
func WithFTP(f FTPConfig) Option {
	return func(c AppConfig) AppConfig { c.ftp = f; return c }
}

// ParseAPIKeys splits a comma-separated key list, dropping empty entries.
func ParseAPIKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}
