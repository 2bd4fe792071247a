package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/haptic"
	"github.com/ayoisaiah/reps/internal/capability"
	"github.com/ayoisaiah/reps/internal/config"
	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/internal/pathutil"
	"github.com/ayoisaiah/reps/player"
	"github.com/ayoisaiah/reps/remote"
	"github.com/ayoisaiah/reps/rest"
	"github.com/ayoisaiah/reps/store"
	"github.com/ayoisaiah/reps/syncqueue"
	"github.com/ayoisaiah/reps/tui"
	"github.com/ayoisaiah/reps/wakelock"
	"github.com/ayoisaiah/reps/workout"
)

// selectWorkout prompts the user to pick one of the workout files.
func selectWorkout(files []string) (string, error) {
	if len(files) == 1 {
		return files[0], nil
	}

	opts := make([]huh.Option[string], len(files))

	for i, f := range files {
		opts[i] = huh.NewOption(
			pathutil.StripExtension(filepath.Base(f)),
			f,
		)
	}

	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a workout").
				Options(opts...).
				Value(&selected),
		),
	)

	err := form.Run()

	return selected, err
}

// resolveWorkout loads the workout named on the command-line, or prompts
// for one from the workouts directory.
func resolveWorkout(
	ctx context.Context,
	cfg *config.Config,
	client *remote.Client,
) (*models.Workout, error) {
	if cfg.CLI.RemoteID != "" {
		if client == nil {
			return nil, errSyncRequired
		}

		return client.FetchWorkout(ctx, cfg.CLI.RemoteID)
	}

	path := cfg.CLI.WorkoutPath

	if path == "" {
		files, err := workout.List(pathutil.WorkoutsDir())
		if err != nil {
			return nil, err
		}

		path, err = selectWorkout(files)
		if err != nil {
			return nil, err
		}
	}

	return workout.Load(path)
}

// collaborators holds the host-facing dependencies of the player.
type collaborators struct {
	db      store.DB
	haptics *haptic.Haptic
	lock    *wakelock.Lock
	bus     *wakelock.ScreenSaver
	caps    capability.Set
}

func (c *collaborators) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}

	if c.bus != nil {
		_ = c.bus.Close()
	}
}

// detect probes the host and builds the collaborators for the available
// capabilities. Unavailable capabilities get no-op collaborators.
func detect(ctx context.Context, cfg *config.Config) (*collaborators, error) {
	c := &collaborators{}

	bus, err := wakelock.NewScreenSaver()
	if err != nil {
		slog.InfoContext(ctx, "wake lock unavailable", slog.Any("error", err))
	} else {
		c.bus = bus
	}

	c.caps = capability.Detect(ctx, capability.Probes{
		Vibration: haptic.Probe(cfg.Haptics.Enabled),
		WakeLock:  wakelock.Probe(cfg.WakeLock.Enabled, c.bus),
		Storage:   store.Probe(cfg.Storage.Enabled, pathutil.DBFilePath()),
	})

	var driver haptic.Driver

	if c.caps.Vibration() {
		d, err := haptic.NewToneDriver(cfg.Haptics.Frequency)
		if err != nil {
			slog.InfoContext(ctx, "haptics unavailable", slog.Any("error", err))
		} else {
			driver = d
		}
	}

	c.haptics = haptic.New(driver, c.caps)

	var inhibitor wakelock.Inhibitor
	if c.bus != nil {
		inhibitor = c.bus
	}

	c.lock = wakelock.New(inhibitor, c.caps)

	c.db = store.Nop{}

	if c.caps.Storage() {
		db, err := store.NewClient(pathutil.DBFilePath())
		if err != nil {
			c.Close()
			return nil, err
		}

		c.db = db
	}

	return c, nil
}

// defaultAction plays a workout.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	client, err := newRemote(cfg)
	if err != nil {
		return err
	}

	w, err := resolveWorkout(ctx.Context, cfg, client)
	if err != nil {
		return err
	}

	deps, err := detect(ctx.Context, cfg)
	if err != nil {
		return err
	}

	defer deps.Close()

	queue := newQueue(cfg, deps.db, client)
	timer := rest.New()

	var rec *models.SessionRecord

	ctrl, err := player.New(w,
		player.WithHaptics(deps.haptics),
		player.WithRestTimer(timer),
		player.WithWakeLock(deps.lock),
		player.WithSessionSaver(syncqueue.NewRecorder(deps.db, queue)),
		player.OnComplete(func(r *models.SessionRecord) {
			rec = r
		}),
	)
	if err != nil {
		return err
	}

	autoSync := cfg.Sync.Auto && client != nil

	watchCtx, stopWatch := context.WithCancel(ctx.Context)

	var wg sync.WaitGroup

	if autoSync {
		wg.Add(1)

		go func() {
			defer wg.Done()

			queue.Watch(watchCtx, cfg.Sync.Interval)
		}()
	}

	ctrl.Start(ctx.Context)

	_, err = tui.Run(ctx.Context, ctrl, tui.Options{
		Updates:        timer.Updates(),
		StatusFile:     pathutil.StatusFilePath(),
		DarkTheme:      cfg.Display.DarkTheme,
		TwentyFourHour: cfg.Display.TwentyFourHour,
	})

	stopWatch()
	wg.Wait()

	_ = os.Remove(pathutil.StatusFilePath())

	if err != nil {
		return err
	}

	if rec == nil {
		pterm.Info.Println("Workout stopped before the last set")
		return nil
	}

	printSummary(cfg, rec)

	notify(cfg, rec)

	err = runSessionCmd(cfg.Settings.Cmd)
	if err != nil {
		pterm.Error.Printfln("session command failed: %v", err)
	}

	if autoSync {
		err = runSync(ctx.Context, queue)
		if err != nil {
			pterm.Warning.Printfln("sync skipped: %v", err)
		}
	}

	return nil
}
