package config

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

var (
	minHapticFrequency = 20.0
	maxHapticFrequency = 20000.0

	minSyncInterval = 1 * time.Second
	minSyncTimeout  = 100 * time.Millisecond

	logLevels = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateHaptics(); err != nil {
		return err
	}

	if err := c.validateSync(); err != nil {
		return err
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if level != "" && !slices.Contains(logLevels, level) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return nil
}

func (c *Config) validateHaptics() error {
	if !c.Haptics.Enabled {
		return nil
	}

	if c.Haptics.Frequency < minHapticFrequency ||
		c.Haptics.Frequency > maxHapticFrequency {
		return errInvalidFrequency.Fmt(
			minHapticFrequency,
			maxHapticFrequency,
			c.Haptics.Frequency,
		)
	}

	return nil
}

// validateSync only applies when a remote endpoint is configured.
func (c *Config) validateSync() error {
	if c.Sync.MaxRetries < 0 {
		return errInvalidMaxRetries
	}

	if !c.SyncEnabled() {
		return nil
	}

	u, err := url.Parse(c.Sync.Endpoint)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		return errInvalidEndpoint.Fmt(c.Sync.Endpoint)
	}

	if c.Sync.Interval < minSyncInterval {
		return errInvalidSyncInterval.Fmt(minSyncInterval)
	}

	if c.Sync.Timeout < minSyncTimeout {
		return errInvalidSyncTimeout.Fmt(minSyncTimeout)
	}

	return nil
}
