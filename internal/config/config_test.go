package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"commitart/internal/config"
)

func clearCommitartEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COMMITART_TOKEN", "COMMITART_OWNER", "COMMITART_EMAIL", "COMMITART_NTFY_TOPIC"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearCommitartEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "commitart", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, ".local", "share", "commitart"); cfg.Paths.StateDir != want {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "commitart", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if cfg.LedgerPath() != filepath.Join(cfg.Paths.StateDir, "ledger.db") {
		t.Fatalf("unexpected ledger path %q", cfg.LedgerPath())
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("expected 10s request timeout, got %s", cfg.RequestTimeout())
	}
	if cfg.Executor.MaxRetries != 3 {
		t.Fatalf("expected 3 retries, got %d", cfg.Executor.MaxRetries)
	}
	if cfg.InitialDelay() != time.Second || cfg.Jitter() != 100*time.Millisecond {
		t.Fatalf("unexpected backoff defaults %s/%s", cfg.InitialDelay(), cfg.Jitter())
	}
	if cfg.Generation.MaxTextLength != 8 || cfg.Generation.YearWeeks != 52 {
		t.Fatalf("unexpected generation defaults %+v", cfg.Generation)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if err := cfg.RequireCredentials(); err == nil {
		t.Fatal("expected missing credentials error")
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearCommitartEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "commitart.toml")

	custom := config.Default()
	custom.Paths.StateDir = filepath.Join(dir, "state")
	custom.Paths.LogDir = filepath.Join(dir, "logs")
	custom.Remote.BaseURL = "https://art.example.com/api/"
	custom.Remote.Token = "tok"
	custom.Remote.Owner = "octocat"
	custom.Remote.Email = "octocat@example.com"
	custom.Executor.MaxRetries = 5
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Remote.BaseURL != "https://art.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Executor.MaxRetries != 5 {
		t.Fatalf("expected max_retries 5, got %d", cfg.Executor.MaxRetries)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercase json format, got %q", cfg.Logging.Format)
	}
	if err := cfg.RequireCredentials(); err != nil {
		t.Fatalf("expected credentials to be present: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.StateDir); err != nil {
		t.Fatalf("expected state dir created: %v", err)
	}
}

func TestEnvFallbackFillsMissingCredentials(t *testing.T) {
	clearCommitartEnv(t)
	t.Setenv("COMMITART_TOKEN", " env-token ")
	t.Setenv("COMMITART_OWNER", "env-owner")
	t.Setenv("COMMITART_EMAIL", "env@example.com")
	t.Setenv("COMMITART_NTFY_TOPIC", "https://ntfy.sh/env")

	dir := t.TempDir()
	path := filepath.Join(dir, "commitart.toml")
	content := "[remote]\nowner = \"file-owner\"\n[paths]\nstate_dir = \"" + filepath.ToSlash(dir) + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Remote.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.Remote.Token)
	}
	if cfg.Remote.Owner != "file-owner" {
		t.Fatalf("expected file owner to win over env, got %q", cfg.Remote.Owner)
	}
	if cfg.Remote.Email != "env@example.com" {
		t.Fatalf("expected email from env, got %q", cfg.Remote.Email)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.sh/env" {
		t.Fatalf("expected ntfy topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	defaults := config.Default()
	if cfg.Executor != defaults.Executor {
		t.Fatalf("sample executor section %+v differs from defaults %+v", cfg.Executor, defaults.Executor)
	}
	if cfg.Generation != defaults.Generation {
		t.Fatalf("sample generation section %+v differs from defaults %+v", cfg.Generation, defaults.Generation)
	}
}

func TestSessionLockPathSanitizesOwner(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = "/state"
	if got := cfg.SessionLockPath("a/b"); got != filepath.Join("/state", "session-a_b.lock") {
		t.Fatalf("unexpected lock path %q", got)
	}
	if got := cfg.SessionLockPath(" "); got != filepath.Join("/state", "session-anonymous.lock") {
		t.Fatalf("unexpected lock path %q", got)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "base url scheme",
			mutate:  func(c *config.Config) { c.Remote.BaseURL = "ftp://example.com" },
			wantErr: "remote.base_url",
		},
		{
			name:    "base url host",
			mutate:  func(c *config.Config) { c.Remote.BaseURL = "http://" },
			wantErr: "remote.base_url",
		},
		{
			name:    "timeout",
			mutate:  func(c *config.Config) { c.Executor.TimeoutSeconds = 0 },
			wantErr: "executor.timeout_seconds",
		},
		{
			name:    "negative retries",
			mutate:  func(c *config.Config) { c.Executor.MaxRetries = -1 },
			wantErr: "executor.max_retries",
		},
		{
			name:    "retries above limit",
			mutate:  func(c *config.Config) { c.Executor.MaxRetries = 40 },
			wantErr: "executor.max_retries",
		},
		{
			name:    "intensity above max",
			mutate:  func(c *config.Config) { c.Generation.DefaultIntensity = 11 },
			wantErr: "generation.default_intensity",
		},
		{
			name:    "max intensity out of range",
			mutate:  func(c *config.Config) { c.Generation.MaxIntensity = 20 },
			wantErr: "generation.max_intensity",
		},
		{
			name:    "text does not fit",
			mutate:  func(c *config.Config) { c.Generation.MaxTextLength = 9 },
			wantErr: "generation.max_text_length",
		},
		{
			name:    "log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
