package store

import (
	"time"

	"github.com/ayoisaiah/reps/internal/models"
)

// Nop is used when local storage is unavailable. Writes are discarded and
// reads find nothing.
type Nop struct{}

func (Nop) Save(string, string, any) error { return nil }

func (Nop) Get(string, string, any) (bool, error) { return false, nil }

func (Nop) Sessions(time.Time, time.Time) ([]models.SessionRecord, error) {
	return nil, nil
}

func (Nop) PutSyncItem(*models.SyncItem) error { return nil }

func (Nop) SyncItems() ([]models.SyncItem, error) { return nil, nil }

func (Nop) PruneSynced(time.Time) (int, error) { return 0, nil }

func (Nop) Close() error { return nil }

var (
	_ DB = (*Client)(nil)
	_ DB = Nop{}
)
