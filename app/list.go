package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/internal/pathutil"
	"github.com/ayoisaiah/reps/internal/ui"
	"github.com/ayoisaiah/reps/store"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	emptyQueueMsg = "The sync queue is empty"
	dateFormat    = "Jan 02, 2006 03:04 PM"
)

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pterm.Println(string(b))

	return nil
}

// listAction handles the list command and prints a table of the sessions
// completed within a time period.
func listAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	sessions, err := db.Sessions(cfg.CLI.StartTime, time.Time{})
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(sessions)
	}

	return listSessions(sessions)
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []models.SessionRecord) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := &sessions[i]

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.WorkoutName,
			sess.StartedAt.Format(dateFormat),
			sess.CompletedAt.Format(dateFormat),
			sess.Duration().Round(time.Second).String(),
			ui.Green(sess.TotalSets),
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "WORKOUT", "STARTED", "COMPLETED", "DURATION", "SETS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listSessions prints out a table of sessions.
func listSessions(sessions []models.SessionRecord) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(os.Stdout, sessions)

	return nil
}

func itemStatusText(s models.SyncItemStatus) string {
	switch s {
	case models.ItemSynced:
		return ui.Green(s)
	case models.ItemFailed:
		return ui.Red(s)
	case models.ItemSyncing:
		return ui.Cyan(s)
	default:
		return ui.Yellow(s)
	}
}

// printQueueTable prints the sync outbox to the command-line.
func printQueueTable(w io.Writer, items []models.SyncItem) {
	tableBody := make([][]string, len(items))

	for i := range items {
		item := &items[i]

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			item.CreatedAt.Format(dateFormat),
			string(item.Action),
			item.TableName,
			itemStatusText(item.Status),
			fmt.Sprintf("%d", item.RetryCount),
			item.LastError,
		}
	}

	tableBody = append([][]string{
		{"#", "CREATED", "ACTION", "TABLE", "STATUS", "RETRIES", "LAST ERROR"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

func listQueue(items []models.SyncItem) error {
	if len(items) == 0 {
		pterm.Info.Println(emptyQueueMsg)
		return nil
	}

	printQueueTable(os.Stdout, items)

	return nil
}
