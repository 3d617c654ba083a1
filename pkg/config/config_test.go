package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Retry.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Retry.Timeout())
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
user_agent = "myapp/2.0 (me@example.com)"

[retry]
timeout_seconds = 40
max_attempts = 4
backoff_base = 1.5

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.UserAgent != "myapp/2.0 (me@example.com)" {
		t.Errorf("UserAgent = %q", cfg.API.UserAgent)
	}
	// Untouched sections keep their defaults.
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.Retry.TimeoutSeconds != 40 || cfg.Retry.MaxAttempts != 4 || cfg.Retry.BackoffBase != 1.5 {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero timeout", "[retry]\ntimeout_seconds = 0\n"},
		{"negative attempts", "[retry]\nmax_attempts = -1\n"},
		{"backoff below one", "[retry]\nbackoff_base = 0.5\n"},
		{"empty user agent", "[api]\nuser_agent = \"\"\n"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
