package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func helpText() string {
	description := fmt.Sprintf(
		"%s\n\t\t{{.Usage}}\n\n",
		pterm.Yellow("DESCRIPTION"),
	)

	usage := fmt.Sprintf(
		"%s\n\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n",
		pterm.Yellow("USAGE"),
	)

	author := fmt.Sprintf(
		"{{if len .Authors}}%s\n\t\t{{range .Authors}}{{ . }}{{end}}{{end}}\n\n",
		pterm.Yellow("AUTHOR"),
	)

	version := fmt.Sprintf(
		"{{if .Version}}%s\n\t\t{{.Version}}{{end}}\n\n",
		pterm.Yellow("VERSION"),
	)

	commands := fmt.Sprintf(
		"%s\n{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}\n\n",
		pterm.Yellow("COMMANDS"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"%s\n{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Yellow("OPTIONS"),
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	env := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("ENVIRONMENTAL VARIABLES"),
		envHelp(),
	)

	workouts := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("WORKOUT FILES"),
		workoutHelp(),
	)

	docs := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("DOCUMENTATION"),
		"https://github.com/ayoisaiah/reps/wiki",
	)

	website := fmt.Sprintf(
		"%s\n\t\thttps://github.com/ayoisaiah/reps\n",
		pterm.Yellow("WEBSITE"),
	)

	return description + usage + author + version + commands + options + workouts + env + docs + website
}

func envHelp() string {
	return `
REPS_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

REPS_ENV: use a separate config file, database and log file with this suffix (e.g. config_dev.yml).

REPS_<KEY>: override a config key, with dots replaced by underscores (e.g. REPS_SYNC_ENDPOINT).`
}

func workoutHelp() string {
	return `Workouts are read from $XDG_DATA_HOME/reps/workouts. Each file lists exercises in order:

		name: Leg day
		exercises:
		  - name: Squat
		    reps: 5
		    weight: 100
		    sets: 3
		    rest_seconds: 90

		rest_seconds defaults to 60.`
}
