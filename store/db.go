package store

import (
	"time"

	"github.com/ayoisaiah/reps/internal/models"
)

// DB is the local storage interface.
type DB interface {
	// Save stores v as JSON under id in the named store. An existing record
	// with the same id is overwritten.
	Save(storeName, id string, v any) error
	// Get decodes the record stored under id into out. It reports false if
	// the record does not exist.
	Get(storeName, id string, out any) (bool, error)
	// Sessions returns the session records completed within the bounds
	Sessions(since, until time.Time) ([]models.SessionRecord, error)
	PutSyncItem(item *models.SyncItem) error
	// SyncItems returns the outbox in creation order
	SyncItems() ([]models.SyncItem, error)
	// PruneSynced deletes synced items last updated before the cutoff
	PruneSynced(before time.Time) (int, error)
	Close() error
}
