package config

const (
	defaultConfigPath           = "~/.config/commitart/config.toml"
	defaultStateDir             = "~/.local/share/commitart"
	defaultLogDir               = "~/.local/share/commitart/logs"
	defaultBaseURL              = "http://localhost:3000/api"
	defaultTimeoutSeconds       = 10
	defaultMaxRetries           = 3
	maxRetriesLimit             = 10
	defaultInitialDelayMS       = 1000
	defaultJitterMS             = 100
	defaultIntensity            = 1
	defaultMaxIntensity         = 10
	defaultMaxTextLength        = 8
	defaultYearWeeks            = 52
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	columnsPerCharacter         = 6
	minIntensity                = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Remote: Remote{
			BaseURL: defaultBaseURL,
		},
		Executor: Executor{
			TimeoutSeconds: defaultTimeoutSeconds,
			MaxRetries:     defaultMaxRetries,
			InitialDelayMS: defaultInitialDelayMS,
			JitterMS:       defaultJitterMS,
		},
		Generation: Generation{
			DefaultIntensity: defaultIntensity,
			MaxIntensity:     defaultMaxIntensity,
			MaxTextLength:    defaultMaxTextLength,
			YearWeeks:        defaultYearWeeks,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
