// Package store persists session records and the sync outbox in a local
// BoltDB file
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/reps/internal/apperr"
	"github.com/ayoisaiah/reps/internal/models"
	"github.com/ayoisaiah/reps/internal/osutil"
)

const (
	// SessionStore holds completed session records.
	SessionStore = "sessions"
	// SyncStore holds the sync outbox.
	SyncStore = "sync_queue"

	metaBucket = "meta"
)

var (
	errRepsRunning = &apperr.Error{
		Message: "is reps already running? Only one instance can write to the database at a time",
	}

	errEmptyStoreName = &apperr.Error{
		Message: "a store name is required",
	}

	errEmptyID = &apperr.Error{
		Message: "a record id is required for store %q",
	}

	errDecodeRecord = &apperr.Error{
		Message: "unable to decode record %q in store %q",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Save stores v as JSON under id in the named store. The store is created on
// first use.
func (c *Client) Save(storeName, id string, v any) error {
	if storeName == "" {
		return errEmptyStoreName
	}

	if id == "" {
		return errEmptyID.Fmt(storeName)
	}

	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(storeName))
		if err != nil {
			return err
		}

		return b.Put([]byte(id), value)
	})
}

// Get decodes the record stored under id into out.
func (c *Client) Get(storeName, id string, out any) (bool, error) {
	var found bool

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(storeName))
		if b == nil {
			return nil
		}

		v := b.Get([]byte(id))
		if v == nil {
			return nil
		}

		found = true

		if err := json.Unmarshal(v, out); err != nil {
			return errDecodeRecord.Fmt(id, storeName).Wrap(err)
		}

		return nil
	})

	return found, err
}

// Sessions returns the sessions completed between since and until
// (inclusive), oldest first. A zero until means no upper bound.
func (c *Client) Sessions(
	since, until time.Time,
) ([]models.SessionRecord, error) {
	var sessions []models.SessionRecord

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(SessionStore))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var rec models.SessionRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return errDecodeRecord.Fmt(string(k), SessionStore).Wrap(err)
			}

			if rec.CompletedAt.Before(since) {
				return nil
			}

			if !until.IsZero() && rec.CompletedAt.After(until) {
				return nil
			}

			sessions = append(sessions, rec)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(sessions, func(a, b models.SessionRecord) int {
		return a.CompletedAt.Compare(b.CompletedAt)
	})

	return sessions, nil
}

// PutSyncItem creates or overwrites an outbox item.
func (c *Client) PutSyncItem(item *models.SyncItem) error {
	return c.Save(SyncStore, item.ID, item)
}

// SyncItems returns every outbox item in creation order.
func (c *Client) SyncItems() ([]models.SyncItem, error) {
	var items []models.SyncItem

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(SyncStore))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var item models.SyncItem

			if err := json.Unmarshal(v, &item); err != nil {
				return errDecodeRecord.Fmt(string(k), SyncStore).Wrap(err)
			}

			items = append(items, item)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(items, func(a, b models.SyncItem) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return items, nil
}

// PruneSynced removes synced outbox items whose last update is older than
// before. It returns the number of items removed.
func (c *Client) PruneSynced(before time.Time) (int, error) {
	var n int

	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(SyncStore))
		if b == nil {
			return nil
		}

		var stale [][]byte

		err := b.ForEach(func(k, v []byte) error {
			var item models.SyncItem

			if err := json.Unmarshal(v, &item); err != nil {
				return errDecodeRecord.Fmt(string(k), SyncStore).Wrap(err)
			}

			if item.Status == models.ItemSynced &&
				item.UpdatedAt.Before(before) {
				stale = append(stale, slices.Clone(k))
			}

			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}

		n = len(stale)

		return nil
	})

	return n, err
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errRepsRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the database at dbPath, creating it and the required
// buckets if necessary.
func NewClient(dbPath string) (*Client, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	err = db.Update(c.migrate)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// InUse reports whether another process holds the database open for
// writing.
func InUse(dbPath string) bool {
	if _, err := os.Stat(dbPath); err != nil {
		return false
	}

	db, err := bolt.Open(
		dbPath,
		osutil.FilePermission,
		&bolt.Options{Timeout: 100 * time.Millisecond, ReadOnly: true},
	)
	if err != nil {
		return errors.Is(err, bolt.ErrTimeout)
	}

	_ = db.Close()

	return false
}

// Probe reports whether local storage is usable: enabled must be true and
// the directory for dbPath must be writable.
func Probe(enabled bool, dbPath string) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		if !enabled {
			return false
		}

		dir := filepath.Dir(dbPath)

		if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
			slog.InfoContext(ctx, "storage unavailable", slog.Any("error", err))
			return false
		}

		f, err := os.CreateTemp(dir, ".probe-*")
		if err != nil {
			slog.InfoContext(ctx, "storage unavailable", slog.Any("error", err))
			return false
		}

		_ = f.Close()
		_ = os.Remove(f.Name())

		return true
	}
}
