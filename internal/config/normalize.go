package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRemote()
	c.normalizeExecutor()
	c.normalizeGeneration()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRemote() {
	c.Remote.BaseURL = strings.TrimRight(strings.TrimSpace(c.Remote.BaseURL), "/")
	if c.Remote.BaseURL == "" {
		c.Remote.BaseURL = defaultBaseURL
	}
	c.Remote.Token = envFallback(c.Remote.Token, "COMMITART_TOKEN")
	c.Remote.Owner = envFallback(c.Remote.Owner, "COMMITART_OWNER")
	c.Remote.Email = envFallback(c.Remote.Email, "COMMITART_EMAIL")
}

func (c *Config) normalizeExecutor() {
	if c.Executor.TimeoutSeconds <= 0 {
		c.Executor.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Executor.InitialDelayMS <= 0 {
		c.Executor.InitialDelayMS = defaultInitialDelayMS
	}
	if c.Executor.JitterMS < 0 {
		c.Executor.JitterMS = 0
	}
	if c.Executor.RequestsPerSecond < 0 {
		c.Executor.RequestsPerSecond = 0
	}
}

func (c *Config) normalizeGeneration() {
	if c.Generation.MaxIntensity <= 0 {
		c.Generation.MaxIntensity = defaultMaxIntensity
	}
	if c.Generation.DefaultIntensity == 0 {
		c.Generation.DefaultIntensity = defaultIntensity
	}
	if c.Generation.MaxTextLength <= 0 {
		c.Generation.MaxTextLength = defaultMaxTextLength
	}
	if c.Generation.YearWeeks <= 0 {
		c.Generation.YearWeeks = defaultYearWeeks
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = envFallback(c.Notifications.NtfyTopic, "COMMITART_NTFY_TOPIC")
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func envFallback(current, key string) string {
	current = strings.TrimSpace(current)
	if current != "" {
		return current
	}
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
