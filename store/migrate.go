package store

import (
	"encoding/json"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ayoisaiah/reps/internal/models"
)

const schemaVersion = 1

var schemaVersionKey = []byte("schema_version")

// requeueInterrupted returns items left in the syncing state by a pass that
// never finished to the pending state so that the next pass retries them.
func requeueInterrupted(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(SyncStore))

	cur := bucket.Cursor()

	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var item models.SyncItem

		err := json.Unmarshal(v, &item)
		if err != nil {
			return err
		}

		if item.Status != models.ItemSyncing {
			continue
		}

		item.Status = models.ItemPending
		item.UpdatedAt = time.Now()

		b, err := json.Marshal(&item)
		if err != nil {
			return err
		}

		err = bucket.Put(k, b)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	for _, name := range []string{SessionStore, SyncStore, metaBucket} {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
	}

	err := requeueInterrupted(tx)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(metaBucket)).Put(
		schemaVersionKey,
		[]byte(strconv.Itoa(schemaVersion)),
	)
}
