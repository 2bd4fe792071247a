package app

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/config"
	"github.com/ayoisaiah/reps/internal/pathutil"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the reps
// config file in the user's default text editor. The file is created with
// default values first if it does not exist.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	configPath := pathutil.ConfigFilePath()

	// an invalid file must still be editable
	_, _ = config.New(config.WithViperConfig(configPath))

	cmd := exec.Command(editor, configPath)

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}
