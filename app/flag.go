package app

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	workoutFlag = &cli.StringFlag{
		Name:    "workout",
		Aliases: []string{"w"},
		Usage:   "Path to a workout file (.yml or .json). Without it, you are prompted to pick one from the workouts directory",
	}

	remoteIDFlag = &cli.StringFlag{
		Name:  "remote-id",
		Usage: "Load the workout with this id from the remote store",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include sessions completed after this time (e.g. '7 days ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	noHapticsFlag = &cli.BoolFlag{
		Name:  "no-haptics",
		Usage: "Disable the tone played when a set is completed",
	}

	noWakeLockFlag = &cli.BoolFlag{
		Name:  "no-wake-lock",
		Usage: "Let the screen saver start during a workout",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a workout is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after a workout is completed",
	}

	offlineFlag = &cli.BoolFlag{
		Name:  "offline",
		Usage: "Do not sync automatically during or after the workout",
	}

	olderThanFlag = &cli.DurationFlag{
		Name:  "older-than",
		Usage: "Only delete items synced longer ago than this",
		Value: 7 * 24 * time.Hour,
	}

	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Directory of the web build",
		Value: "public",
	}

	devFlag = &cli.BoolFlag{
		Name:  "dev",
		Usage: "Development build (the service worker is disabled)",
	}

	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory to serve",
		Value: "public",
	}

	portFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Port to listen on",
		Value: 3000,
	}
)
