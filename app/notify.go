package app

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/reps/internal/apperr"
	"github.com/ayoisaiah/reps/internal/config"
	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/internal/pathutil"
	"github.com/ayoisaiah/reps/internal/timeutil"
	"github.com/ayoisaiah/reps/internal/ui"
	"github.com/ayoisaiah/reps/player"
	"github.com/ayoisaiah/reps/tui"
)

var errParseSessionCmd = &apperr.Error{
	Message: "unable to parse settings.cmd option",
}

// runSessionCmd executes the specified command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errParseSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

func summaryText(rec *models.SessionRecord) string {
	return fmt.Sprintf(
		"%s: %d sets in %s",
		rec.WorkoutName,
		rec.TotalSets,
		rec.Duration().Round(time.Second),
	)
}

// notify sends a desktop notification for the completed workout.
func notify(cfg *config.Config, rec *models.SessionRecord) {
	if !cfg.Notifications.Enabled {
		return
	}

	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(pathutil.Dir(), "static", "icon.png"),
	)

	err := beeep.Notify("Workout complete", summaryText(rec), pathToIcon)
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}

// printSummary prints the completed workout.
func printSummary(cfg *config.Config, rec *models.SessionRecord) {
	timeFormat := "03:04 PM"
	if cfg.Display.TwentyFourHour {
		timeFormat = "15:04"
	}

	pterm.Success.Printfln(
		"%s (finished at %s)",
		summaryText(rec),
		ui.Highlight(rec.CompletedAt.Format(timeFormat)),
	)
}

// statusText describes the running workout for the status command.
func statusText(s *tui.Status, now time.Time) string {
	position := fmt.Sprintf("%s %d/%d", s.Exercise, s.Set, s.Sets)

	if s.Phase != player.Resting {
		return fmt.Sprintf("[%s]", position)
	}

	left := s.RestLeft - int(now.Sub(s.UpdatedAt).Seconds())
	if left < 0 {
		left = 0
	}

	m, sec := timeutil.SecsToMinsAndSecs(float64(left))

	return fmt.Sprintf("[Rest %02d:%02d] next: %s", m, sec, position)
}
