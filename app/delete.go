package app

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/pathutil"
	"github.com/ayoisaiah/reps/store"
)

// pruneAction handles the queue prune command which deletes synced items
// from the outbox.
func pruneAction(ctx *cli.Context) error {
	if _, err := loadConfig(ctx); err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	n, err := db.PruneSynced(time.Now().Add(-ctx.Duration("older-than")))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted %d synced item(s)", n)

	return nil
}
