// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Haptics       HapticsConfig      `mapstructure:"haptics"`
		WakeLock      WakeLockConfig     `mapstructure:"wake_lock"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
		Sync          SyncConfig         `mapstructure:"sync"`
	}

	// HapticsConfig holds haptic feedback settings.
	HapticsConfig struct {
		Frequency float64 `mapstructure:"frequency"`
		Enabled   bool    `mapstructure:"enabled"`
	}

	// WakeLockConfig holds screen wake-lock settings.
	WakeLockConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// StorageConfig holds local persistence settings.
	StorageConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SyncConfig holds settings for reconciling the outbox with the remote
	// store.
	SyncConfig struct {
		Endpoint   string        `mapstructure:"endpoint"`
		APIKey     string        `mapstructure:"api_key"`
		Interval   time.Duration `mapstructure:"interval"`
		Timeout    time.Duration `mapstructure:"timeout"`
		MaxRetries int           `mapstructure:"max_retries"`
		Auto       bool          `mapstructure:"auto"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		Cmd string `mapstructure:"cmd"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// CLIConfig holds options that only apply to the current invocation.
	CLIConfig struct {
		StartTime   time.Time
		WorkoutPath string
		RemoteID    string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// SyncEnabled reports whether a remote endpoint is configured.
func (c *Config) SyncEnabled() bool {
	return c.Sync.Endpoint != ""
}

// New creates a new Config and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
