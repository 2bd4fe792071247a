package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/reps/internal/apperr"
	"github.com/ayoisaiah/reps/internal/config"
	"github.com/ayoisaiah/reps/internal/logging"
	"github.com/ayoisaiah/reps/internal/pathutil"
	"github.com/ayoisaiah/reps/internal/ui"
	"github.com/ayoisaiah/reps/pwa"
	"github.com/ayoisaiah/reps/remote"
	"github.com/ayoisaiah/reps/store"
	"github.com/ayoisaiah/reps/syncqueue"
	"github.com/ayoisaiah/reps/tui"
)

const (
	envNoColor     = "NO_COLOR"
	envRepsNoColor = "REPS_NO_COLOR"
)

var errSyncRequired = &apperr.Error{
	Message: "--remote-id needs a sync endpoint: set sync.endpoint in the config file",
}

// loadConfig reads the config file and applies the command-line flags. The
// default logger is reconfigured with the configured level.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.New(
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	logging.Setup(logging.Options{
		FilePath: pathutil.LogFilePath(),
		Level:    cfg.Log.Level,
	})

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// newRemote returns a client for the configured endpoint, or nil when sync
// is not configured.
func newRemote(cfg *config.Config) (*remote.Client, error) {
	if !cfg.SyncEnabled() {
		return nil, nil
	}

	pattern, err := pwa.APICache.Regexp()
	if err != nil {
		return nil, err
	}

	return remote.New(
		cfg.Sync.Endpoint,
		cfg.Sync.APIKey,
		cfg.Sync.Timeout,
		pattern,
	)
}

func newQueue(
	cfg *config.Config,
	db store.DB,
	client *remote.Client,
) *syncqueue.Queue {
	opts := []syncqueue.Option{
		syncqueue.WithMaxRetries(cfg.Sync.MaxRetries),
	}

	if client != nil {
		opts = append(opts,
			syncqueue.WithRemote(client),
			syncqueue.WithConnectivity(client),
		)
	}

	return syncqueue.New(db, opts...)
}

// syncAction handles the sync command which runs a reconciliation pass.
func syncAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if !cfg.SyncEnabled() {
		return syncqueue.ErrSyncDisabled
	}

	client, err := newRemote(cfg)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	return runSync(ctx.Context, newQueue(cfg, db, client))
}

// runSync runs a pass and prints its outcome.
func runSync(ctx context.Context, q *syncqueue.Queue) error {
	spinner, _ := pterm.DefaultSpinner.Start("Syncing...")

	res, err := q.Trigger(ctx)
	if err != nil {
		_ = spinner.Stop()
		return err
	}

	if res.Failed == 0 {
		spinner.Success(fmt.Sprintf(
			"Synced %d item(s), %d skipped", res.Synced, res.Skipped,
		))

		return nil
	}

	spinner.Warning(fmt.Sprintf(
		"Synced %d item(s), %d failed, %d skipped",
		res.Synced, res.Failed, res.Skipped,
	))

	slog.WarnContext(ctx, "sync pass had failures", slog.Any("error", res.Err))

	return nil
}

// queueAction handles the queue command which prints the sync outbox.
func queueAction(ctx *cli.Context) error {
	if _, err := loadConfig(ctx); err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	items, err := db.SyncItems()
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(items)
	}

	return listQueue(items)
}

// statusAction handles the status command and prints the status of the
// running workout.
func statusAction(ctx *cli.Context) error {
	if _, err := loadConfig(ctx); err != nil {
		return err
	}

	// nothing is running, so there is no status to report
	if !store.InUse(pathutil.DBFilePath()) {
		return nil
	}

	s, err := tui.ReadStatus(pathutil.StatusFilePath())
	if err != nil {
		// missing file should not return an error
		return nil
	}

	pterm.Println(statusText(s, time.Now()))

	return nil
}

// pwaBuildAction writes the service worker into the web build directory.
func pwaBuildAction(ctx *cli.Context) error {
	opts := pwa.DefaultOptions()
	opts.Development = ctx.Bool("dev")

	written, err := pwa.Build(ctx.String("out"), opts)
	if err != nil {
		return err
	}

	for _, p := range written {
		pterm.Success.Printfln("wrote %s", p)
	}

	return nil
}

// pwaServeAction serves a built web app until interrupted.
func pwaServeAction(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", ctx.Uint("port")),
		Handler:           pwa.Handler(ctx.String("dir"), slog.Default()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-sigCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	pterm.Info.Printfln("serving %s on port: %d", ctx.String("dir"), ctx.Uint("port"))

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if REPS_NO_COLOR is set
	if _, exists := os.LookupEnv(envRepsNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	logging.Setup(logging.Options{
		FilePath: pathutil.LogFilePath(),
	})

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting reps")

	return nil
}
