// Package tui renders the workout player in the terminal
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/reps/internal/timeutil"
	"github.com/ayoisaiah/reps/player"
)

const (
	padding  = 2
	maxWidth = 80
)

type restTickMsg int

// Options configures the player model.
type Options struct {
	// Updates delivers the remaining rest time on every tick.
	Updates <-chan int
	// StatusFile is rewritten on every rest tick when set.
	StatusFile     string
	DarkTheme      bool
	TwentyFourHour bool
}

// Model is the bubbletea model for a workout session.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	ctrl       *player.Controller
	updates    <-chan int
	help       help.Model
	style      Style
	statusErr  error
	status     string
	progress   progress.Model
	restTotal  int
	restLeft   int
	twentyFour bool
	completed  bool
	quitting   bool
}

// New returns a model driving ctrl.
func New(ctx context.Context, ctrl *player.Controller, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	return &Model{
		ctx:        ctx,
		cancel:     cancel,
		ctrl:       ctrl,
		updates:    opts.Updates,
		status:     opts.StatusFile,
		style:      newStyle(opts.DarkTheme),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient()),
		twentyFour: opts.TwentyFourHour,
	}
}

// Completed reports whether the workout was finished.
func (m *Model) Completed() bool {
	return m.completed
}

func waitForTick(ctx context.Context, ch <-chan int) tea.Cmd {
	if ch == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case v := <-ch:
			return restTickMsg(v)
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForTick(m.ctx, m.updates)
}

// quit closes the controller and ends the program.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Close()
	m.cancel()

	return m, tea.Quit
}

func (m *Model) completeSet() (tea.Model, tea.Cmd) {
	err := m.ctrl.SetComplete(m.ctx)
	if err != nil {
		slog.DebugContext(m.ctx, "set not completed", slog.Any("error", err))
		return m, nil
	}

	state := m.ctrl.State()

	if state.Phase == player.Completed {
		m.completed = true
		return m.quit()
	}

	m.restTotal = m.ctrl.RestRemaining()
	m.restLeft = m.restTotal

	m.writeStatus()

	return m, nil
}

func (m *Model) skipRest() (tea.Model, tea.Cmd) {
	err := m.ctrl.SkipRest()
	if err != nil && !errors.Is(err, player.ErrNotResting) {
		slog.DebugContext(m.ctx, "rest not skipped", slog.Any("error", err))
	}

	m.writeStatus()

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return m.quit()

	case key.Matches(msg, defaultKeymap.skip):
		return m.skipRest()

	case key.Matches(msg, defaultKeymap.primary):
		if m.ctrl.State().Resting {
			return m.skipRest()
		}

		return m.completeSet()
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case restTickMsg:
		m.restLeft = int(msg)
		m.writeStatus()

		return m, waitForTick(m.ctx, m.updates)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd

	default:
		slog.Debug(spew.Sdump(msg))
	}

	return m, nil
}

func (m *Model) writeStatus() {
	if m.status == "" {
		return
	}

	state := m.ctrl.State()
	ex := m.ctrl.Exercise()

	s := &Status{
		UpdatedAt:   time.Now(),
		Phase:       state.Phase,
		WorkoutName: m.ctrl.Workout().Name,
		Exercise:    ex.Name,
		Set:         state.Set,
		Sets:        ex.Sets,
	}

	if state.Resting {
		s.RestLeft = m.restLeft
	}

	err := WriteStatus(m.status, s)
	if err != nil && m.statusErr == nil {
		m.statusErr = err
		slog.WarnContext(m.ctx, "unable to write status file", slog.Any("error", err))
	}
}

// formatRemaining returns the remaining rest formatted as "MM:SS".
func formatRemaining(secs int) string {
	m, s := timeutil.SecsToMinsAndSecs(float64(secs))

	return fmt.Sprintf("%02d:%02d", m, s)
}

func (m *Model) workingView(state player.State) string {
	var s strings.Builder

	ex := m.ctrl.Exercise()

	s.WriteString(m.style.Working.Render())
	s.WriteString(m.style.Hint.SetString(fmt.Sprintf(
		"Set %d of %d", state.Set, ex.Sets,
	)).String())

	s.WriteString("\n\n")
	s.WriteString(m.style.Main.SetString(ex.Name).String())
	s.WriteString("\n\n")
	s.WriteString(m.style.Secondary.SetString(targetText(ex.Reps, ex.Weight)).String())
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.primary,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) restView(state player.State) string {
	var s strings.Builder

	ex := m.ctrl.Exercise()

	timeFormat := "03:04:05 PM"
	if m.twentyFour {
		timeFormat = "15:04:05"
	}

	s.WriteString(m.style.Resting.Render())

	if m.restLeft > 0 {
		until := time.Now().Add(time.Duration(m.restLeft) * time.Second)
		s.WriteString(m.style.Hint.SetString("until " + until.Format(timeFormat)).String())
	} else {
		s.WriteString(m.style.Hint.SetString("rest is over").String())
	}

	var percent float64
	if m.restTotal > 0 {
		percent = float64(m.restLeft) / float64(m.restTotal)
	}

	s.WriteString("\n\n")
	s.WriteString(m.style.Main.SetString(formatRemaining(m.restLeft)).String())
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(1 - percent))
	s.WriteString("\n\n")
	s.WriteString(m.style.Secondary.SetString(fmt.Sprintf(
		"Next: %s, set %d of %d", ex.Name, state.Set, ex.Sets,
	)).String())
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		restPrimary,
		defaultKeymap.quit,
	}))

	return s.String()
}

func targetText(reps int, weight float64) string {
	if weight <= 0 {
		return fmt.Sprintf("%d reps", reps)
	}

	return fmt.Sprintf("%d reps × %g kg", reps, weight)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.ctrl.State()

	if state.Resting {
		return m.style.Base.Render(m.restView(state))
	}

	return m.style.Base.Render(m.workingView(state))
}

// Run starts the terminal program and blocks until the workout is complete
// or the user quits. The controller is closed on every path.
func Run(ctx context.Context, ctrl *player.Controller, opts Options) (*Model, error) {
	m := New(ctx, ctrl, opts)

	defer func() {
		ctrl.Close()
		m.cancel()
	}()

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return m, err
}
