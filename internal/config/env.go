package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT"`

	// DataDir is the data directory path.
	// Env: DATA_DIR (default: ~/.folio)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///{data_dir}/folio.db)
	DBURL string `envconfig:"DB_URL"`

	// UploadDir is the local upload directory.
	// Env: UPLOAD_DIR (default: {data_dir}/uploads)
	UploadDir string `envconfig:"UPLOAD_DIR"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT"`

	// APIKeys is a comma-separated list of valid API keys.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// OpenAI configures the embedding/completion provider.
	OpenAI OpenAIEnv `envconfig:"OPENAI"`

	// FTP configures the remote attachment store.
	FTP FTPEnv `envconfig:"FTP"`

	// MediaURL is the public URL prefix for FTP-hosted uploads.
	// Env: MEDIA_URL
	MediaURL string `envconfig:"MEDIA_URL"`
}

// OpenAIEnv holds environment configuration for the AI provider.
type OpenAIEnv struct {
	// APIKey gates indexing and search; absent means both degrade.
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// BaseURL overrides the provider endpoint.
	// Env: OPENAI_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// EmbeddingModel is the embedding model identifier.
	// Env: OPENAI_EMBEDDING_MODEL (default: text-embedding-3-small)
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL"`

	// ChatModel is the completion model identifier.
	// Env: OPENAI_CHAT_MODEL (default: gpt-4o-mini)
	ChatModel string `envconfig:"CHAT_MODEL"`

	// Timeout is the request timeout in seconds.
	// Env: OPENAI_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT"`

	// MaxRetries is the maximum number of retries.
	// Env: OPENAI_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES"`
}

// FTPEnv holds environment configuration for FTP uploads.
type FTPEnv struct {
	// Host enables FTP storage when set.
	// Env: FTP_HOST
	Host string `envconfig:"HOST"`

	// User is the FTP login user.
	// Env: FTP_USER
	User string `envconfig:"USER"`

	// Password is the FTP login password.
	// Env: FTP_PASSWORD
	Password string `envconfig:"PASSWORD"`

	// Port is the FTP port.
	// Env: FTP_PORT (default: 21)
	Port int `envconfig:"PORT"`

	// RemotePath is the base path on the server.
	// Env: FTP_REMOTE_PATH (default: /public_html)
	RemotePath string `envconfig:"REMOTE_PATH"`
}

// LoadDotenv loads a .env file into the process environment when present.
// An explicit path that does not exist is an error; the implicit ./.env is
// optional.
func LoadDotenv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig, applying defaults for any
// value the environment leaves unset.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = cfg.Apply(WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = cfg.Apply(WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = cfg.Apply(WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.UploadDir != "" {
		cfg = cfg.Apply(WithUploadDir(e.UploadDir))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = cfg.Apply(WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}

	cfg = cfg.Apply(WithProvider(NewProviderConfig(
		e.OpenAI.APIKey,
		e.OpenAI.BaseURL,
		e.OpenAI.EmbeddingModel,
		e.OpenAI.ChatModel,
		time.Duration(e.OpenAI.Timeout*float64(time.Second)),
		e.OpenAI.MaxRetries,
	)))

	if e.FTP.Host != "" {
		cfg = cfg.Apply(WithFTP(NewFTPConfig(
			e.FTP.Host,
			e.FTP.User,
			e.FTP.Password,
			e.FTP.Port,
			e.FTP.RemotePath,
			e.MediaURL,
		)))
	}

	return cfg
}
