package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"commitart/internal/config"
	"commitart/internal/generation"
	"commitart/internal/ledger"
	"commitart/internal/logging"
	"commitart/internal/notifications"
	"commitart/internal/requestexec"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *ledger.Store
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	if cfg == nil {
		def := config.Default()
		return &def
	}
	return cfg
}

// loggerValue logs to the state log file; --verbose mirrors debug output to stderr.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		opts := logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}
		if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
			opts.OutputPaths = append(opts.OutputPaths, filepath.Join(dir, "commitart.log"))
		}
		if c.verbose != nil && *c.verbose {
			opts.Level = "debug"
			opts.OutputPaths = append(opts.OutputPaths, "stderr")
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openStore() (*ledger.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := ledger.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	c.store = store
	return store, nil
}

// notifier fans out to the configured push service and the terminal.
func (c *commandContext) notifier(cmd *cobra.Command) notifications.Service {
	errOut := cmd.ErrOrStderr()
	return notifications.Multi(
		notifications.NewService(c.configValue()),
		notifications.NewConsole(errOut, colorEnabled(errOut)),
	)
}

func (c *commandContext) newClient(cmd *cobra.Command, withLedger bool) (*generation.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.loggerValue()
	notifier := c.notifier(cmd)

	exec := requestexec.NewFromConfig(cfg,
		requestexec.WithLogger(logging.NewComponentLogger(logger, "requestexec")),
		requestexec.WithNotifier(notifier),
	)
	opts := []generation.Option{
		generation.WithLogger(logging.NewComponentLogger(logger, "generation")),
		generation.WithNotifier(notifier),
		generation.WithLimits(generation.LimitsFromConfig(cfg)),
	}
	if withLedger {
		store, err := c.openStore()
		if err != nil {
			return nil, err
		}
		opts = append(opts, generation.WithLedger(store))
	}
	return generation.New(exec, opts...), nil
}

func (c *commandContext) close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil && c.logger != nil {
			c.logger.Warn("close ledger", logging.Error(err))
		}
		c.store = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// colorEnabled reports whether w is an interactive terminal.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
