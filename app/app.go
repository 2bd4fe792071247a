package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the reps app instance.
func Get() *cli.App {
	repsApp := &cli.App{
		Name: "reps",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Reps walks you through a strength workout from the command-line: one
		key to complete each set, a rest timer between sets, and an outbox
		that syncs finished sessions to your remote store when you are online.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:  "list",
				Usage: "List completed workout sessions",
				Flags: []cli.Flag{
					sinceFlag,
					jsonFlag,
				},
				Action: listAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running workout",
				Action: statusAction,
			},
			{
				Name:   "sync",
				Usage:  "Push pending sessions to the remote store",
				Action: syncAction,
			},
			{
				Name:  "queue",
				Usage: "Show the sync outbox",
				Flags: []cli.Flag{
					jsonFlag,
				},
				Action: queueAction,
				Subcommands: []*cli.Command{
					{
						Name:  "prune",
						Usage: "Delete synced items from the outbox",
						Flags: []cli.Flag{
							olderThanFlag,
						},
						Action: pruneAction,
					},
				},
			},
			{
				Name:  "pwa",
				Usage: "Build or serve the web app",
				Subcommands: []*cli.Command{
					{
						Name:  "build",
						Usage: "Write the service worker into the web build",
						Flags: []cli.Flag{
							outFlag,
							devFlag,
						},
						Action: pwaBuildAction,
					},
					{
						Name:  "serve",
						Usage: "Serve a built web app with the security headers",
						Flags: []cli.Flag{
							dirFlag,
							portFlag,
						},
						Action: pwaServeAction,
					},
				},
			},
		},
		Flags: []cli.Flag{
			workoutFlag,
			remoteIDFlag,
			noHapticsFlag,
			noWakeLockFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			offlineFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return repsApp
}
