package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. Credentials are not required
// here because preview and schedule work offline; see RequireCredentials.
func (c *Config) Validate() error {
	if err := c.validateRemote(); err != nil {
		return err
	}
	if err := c.validateExecutor(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// RequireCredentials reports a descriptive error when the identity needed to
// call the generation endpoint is missing.
func (c *Config) RequireCredentials() error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	if strings.TrimSpace(c.Remote.Token) == "" {
		return fmt.Errorf("remote.token is required. Set COMMITART_TOKEN env var or edit %s (create with 'commitart config init')", defaultPath)
	}
	if strings.TrimSpace(c.Remote.Owner) == "" {
		return fmt.Errorf("remote.owner is required. Set COMMITART_OWNER env var or edit %s", defaultPath)
	}
	if strings.TrimSpace(c.Remote.Email) == "" {
		return fmt.Errorf("remote.email is required. Set COMMITART_EMAIL env var or edit %s", defaultPath)
	}
	return nil
}

func (c *Config) validateRemote() error {
	parsed, err := url.Parse(c.Remote.BaseURL)
	if err != nil {
		return fmt.Errorf("remote.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("remote.base_url must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("remote.base_url must include a host")
	}
	return nil
}

func (c *Config) validateExecutor() error {
	if err := ensurePositiveMap(map[string]int{
		"executor.timeout_seconds":      c.Executor.TimeoutSeconds,
		"executor.initial_delay_ms":     c.Executor.InitialDelayMS,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Executor.MaxRetries < 0 || c.Executor.MaxRetries > maxRetriesLimit {
		return fmt.Errorf("executor.max_retries must be between 0 and %d", maxRetriesLimit)
	}
	if c.Executor.JitterMS < 0 {
		return errors.New("executor.jitter_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateGeneration() error {
	g := c.Generation
	if g.MaxIntensity < minIntensity || g.MaxIntensity > defaultMaxIntensity {
		return fmt.Errorf("generation.max_intensity must be between %d and %d", minIntensity, defaultMaxIntensity)
	}
	if g.DefaultIntensity < minIntensity || g.DefaultIntensity > g.MaxIntensity {
		return fmt.Errorf("generation.default_intensity must be between %d and generation.max_intensity (%d)", minIntensity, g.MaxIntensity)
	}
	if g.MaxTextLength*columnsPerCharacter > g.YearWeeks {
		return fmt.Errorf("generation.max_text_length %d does not fit in %d weeks", g.MaxTextLength, g.YearWeeks)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
