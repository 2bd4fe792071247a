package wakelock

import (
	"context"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverDest = "org.freedesktop.ScreenSaver"
	screenSaverPath = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	methodInhibit   = screenSaverDest + ".Inhibit"
	methodUnInhibit = screenSaverDest + ".UnInhibit"
	methodPing      = "org.freedesktop.DBus.Peer.Ping"
)

// ScreenSaver inhibits the screen saver through the freedesktop D-Bus API.
type ScreenSaver struct {
	conn *dbus.Conn
}

// NewScreenSaver connects to the session bus.
func NewScreenSaver() (*ScreenSaver, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errNoSessionBus.Wrap(err)
	}

	return &ScreenSaver{conn: conn}, nil
}

func (s *ScreenSaver) object() dbus.BusObject {
	return s.conn.Object(screenSaverDest, screenSaverPath)
}

// Inhibit implements Inhibitor.
func (s *ScreenSaver) Inhibit(
	ctx context.Context,
	app, reason string,
) (uint32, error) {
	var cookie uint32

	err := s.object().
		CallWithContext(ctx, methodInhibit, 0, app, reason).
		Store(&cookie)
	if err != nil {
		return 0, errInhibit.Wrap(err)
	}

	return cookie, nil
}

// UnInhibit implements Inhibitor.
func (s *ScreenSaver) UnInhibit(cookie uint32) error {
	err := s.object().Call(methodUnInhibit, 0, cookie).Err
	if err != nil {
		return errUnInhibit.Wrap(err)
	}

	return nil
}

// Ping checks that a screen saver service answers on the bus.
func (s *ScreenSaver) Ping(ctx context.Context) error {
	return s.object().CallWithContext(ctx, methodPing, 0).Err
}

// Close closes the bus connection.
func (s *ScreenSaver) Close() error {
	return s.conn.Close()
}

// Probe reports whether a screen saver service is reachable on the session
// bus.
func Probe(enabled bool, s *ScreenSaver) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		if !enabled || s == nil {
			return false
		}

		if err := s.Ping(ctx); err != nil {
			slog.InfoContext(ctx, "screen saver service unavailable", slog.Any("error", err))
			return false
		}

		return true
	}
}
