package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyHapticsEnabled       = "haptics.enabled"
	keyHapticsFrequency     = "haptics.frequency"
	keyWakeLockEnabled      = "wake_lock.enabled"
	keyStorageEnabled       = "storage.enabled"
	keySyncEndpoint         = "sync.endpoint"
	keySyncAPIKey           = "sync.api_key"
	keySyncInterval         = "sync.interval"
	keySyncTimeout          = "sync.timeout"
	keySyncMaxRetries       = "sync.max_retries"
	keySyncAuto             = "sync.auto"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
	keySessionCmd           = "settings.cmd"
	keyLogLevel             = "log.level"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// The config file is created with default values if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		v.SetEnvPrefix("reps")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyHapticsEnabled, true)
	v.SetDefault(keyHapticsFrequency, 440)
	v.SetDefault(keyWakeLockEnabled, true)
	v.SetDefault(keyStorageEnabled, true)
	v.SetDefault(keySyncEndpoint, "")
	v.SetDefault(keySyncAPIKey, "")
	v.SetDefault(keySyncInterval, "30s")
	v.SetDefault(keySyncTimeout, "10s")
	v.SetDefault(keySyncMaxRetries, 5)
	v.SetDefault(keySyncAuto, true)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogLevel, "info")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	return v.Unmarshal(c)
}
