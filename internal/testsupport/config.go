package testsupport

import (
	"path/filepath"
	"testing"

	"commitart/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test
// and a complete test identity. Backoff delays are shrunk so retry paths stay
// fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Remote.Token = "test-token"
	cfgVal.Remote.Owner = "octocat"
	cfgVal.Remote.Email = "octocat@example.com"
	cfgVal.Executor.InitialDelayMS = 1
	cfgVal.Executor.JitterMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBaseURL points the remote section at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Remote.BaseURL = url
	}
}

// WithIdentity overrides the token, owner and email.
func WithIdentity(token, owner, email string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Remote.Token = token
		b.cfg.Remote.Owner = owner
		b.cfg.Remote.Email = email
	}
}

// WithMaxRetries overrides the executor retry budget.
func WithMaxRetries(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Executor.MaxRetries = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
