package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Host() != DefaultHost {
		t.Errorf("expected host %q, got %q", DefaultHost, cfg.Host())
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port())
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("expected pretty log format, got %q", cfg.LogFormat())
	}
	if cfg.SearchEnabled() {
		t.Error("search should be disabled without an API key")
	}
	if cfg.FTP().IsConfigured() {
		t.Error("FTP should not be configured by default")
	}
}

func TestAppConfig_Addr(t *testing.T) {
	cfg := NewAppConfig().Apply(WithHost("127.0.0.1"), WithPort(9090))
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("expected 127.0.0.1:9090, got %q", cfg.Addr())
	}
}

func TestAppConfig_DBURLDefaultsToSQLite(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDataDir("/tmp/folio-test"))

	want := "sqlite:///" + filepath.Join("/tmp/folio-test", "folio.db")
	if cfg.DBURL() != want {
		t.Errorf("expected %q, got %q", want, cfg.DBURL())
	}

	cfg = cfg.Apply(WithDBURL("postgres://localhost/folio"))
	if cfg.DBURL() != "postgres://localhost/folio" {
		t.Errorf("explicit DB URL should win, got %q", cfg.DBURL())
	}
}

func TestAppConfig_UploadDirDefaultsUnderDataDir(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDataDir("/tmp/folio-test"))

	if !strings.HasPrefix(cfg.UploadDir(), "/tmp/folio-test") {
		t.Errorf("expected upload dir under data dir, got %q", cfg.UploadDir())
	}

	cfg = cfg.Apply(WithUploadDir("/var/uploads"))
	if cfg.UploadDir() != "/var/uploads" {
		t.Errorf("explicit upload dir should win, got %q", cfg.UploadDir())
	}
}

func TestProviderConfig_Defaults(t *testing.T) {
	p := NewProviderConfig("sk-test", "", "", "", 0, 0)

	if !p.IsConfigured() {
		t.Error("provider with API key should be configured")
	}
	if p.EmbeddingModel() != DefaultEmbeddingModel {
		t.Errorf("expected %q, got %q", DefaultEmbeddingModel, p.EmbeddingModel())
	}
	if p.ChatModel() != DefaultChatModel {
		t.Errorf("expected %q, got %q", DefaultChatModel, p.ChatModel())
	}
	if p.Timeout() != DefaultProviderTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultProviderTimeout, p.Timeout())
	}
	if p.MaxRetries() != DefaultMaxRetries {
		t.Errorf("expected %d retries, got %d", DefaultMaxRetries, p.MaxRetries())
	}
}

func TestFTPConfig_Defaults(t *testing.T) {
	f := NewFTPConfig("ftp.example.com", "user", "pass", 0, "", "https://cdn.example.com")

	if !f.IsConfigured() {
		t.Error("FTP config with host should be configured")
	}
	if f.Port() != DefaultFTPPort {
		t.Errorf("expected port %d, got %d", DefaultFTPPort, f.Port())
	}
	if f.RemotePath() != DefaultFTPRemotePath {
		t.Errorf("expected %q, got %q", DefaultFTPRemotePath, f.RemotePath())
	}
}

func TestParseAPIKeys(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", nil},
	}

	for _, tc := range cases {
		got := ParseAPIKeys(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("ParseAPIKeys(%q): expected %v, got %v", tc.in, tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseAPIKeys(%q): expected %v, got %v", tc.in, tc.want, got)
			}
		}
	}
}

func TestEnvConfig_ToAppConfig(t *testing.T) {
	env := EnvConfig{
		Host:      "10.0.0.1",
		Port:      9000,
		DataDir:   "/data",
		LogLevel:  "DEBUG",
		LogFormat: "json",
		APIKeys:   "key1,key2",
		OpenAI: OpenAIEnv{
			APIKey:  "sk-test",
			Timeout: 30,
		},
		FTP: FTPEnv{
			Host: "ftp.example.com",
			User: "deploy",
		},
		MediaURL: "https://cdn.example.com",
	}

	cfg := env.ToAppConfig()

	if cfg.Host() != "10.0.0.1" || cfg.Port() != 9000 {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("expected json format, got %q", cfg.LogFormat())
	}
	if len(cfg.APIKeys()) != 2 {
		t.Errorf("expected 2 API keys, got %d", len(cfg.APIKeys()))
	}
	if !cfg.SearchEnabled() {
		t.Error("search should be enabled with an API key")
	}
	if cfg.Provider().Timeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Provider().Timeout())
	}
	if !cfg.FTP().IsConfigured() {
		t.Error("FTP should be configured")
	}
	if cfg.FTP().MediaURL() != "https://cdn.example.com" {
		t.Errorf("unexpected media URL %q", cfg.FTP().MediaURL())
	}
}

func TestEnvConfig_ToAppConfig_Empty(t *testing.T) {
	cfg := EnvConfig{}.ToAppConfig()

	if cfg.Host() != DefaultHost || cfg.Port() != DefaultPort {
		t.Errorf("expected defaults, got %q", cfg.Addr())
	}
	if cfg.SearchEnabled() {
		t.Error("search should be disabled without provider config")
	}
}
