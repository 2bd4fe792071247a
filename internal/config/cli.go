package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Workout         string
	RemoteID        string
	Since           string
	SessionCmd      string
	DisableHaptics  bool
	DisableWakeLock bool
	DisableNotify   bool
	Offline         bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Workout:         ctx.String("workout"),
			RemoteID:        ctx.String("remote-id"),
			Since:           ctx.String("since"),
			SessionCmd:      ctx.String("session-cmd"),
			DisableHaptics:  ctx.Bool("no-haptics"),
			DisableWakeLock: ctx.Bool("no-wake-lock"),
			DisableNotify:   ctx.Bool("disable-notification"),
			Offline:         ctx.Bool("offline"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	c.CLI.WorkoutPath = opts.Workout
	c.CLI.RemoteID = opts.RemoteID

	if opts.DisableHaptics {
		c.Haptics.Enabled = false
	}

	if opts.DisableWakeLock {
		c.WakeLock.Enabled = false
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Offline {
		c.Sync.Auto = false
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Since != "" {
		startTime, err := timeutil.FromStr(opts.Since, now)
		if err != nil {
			return errInvalidSince.Wrap(err)
		}

		c.CLI.StartTime = startTime
	}

	return nil
}
