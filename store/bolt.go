// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Bolt is a Store backed by a single bbolt file.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("OpenBolt(%s): %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("OpenBolt(%s): create bucket: %w", path, err)
	}

	return &Bolt{db: db}, nil
}

// Save implements Store.
func (b *Bolt) Save(ctx context.Context, run *Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := prepare(run)
	if err != nil {
		return "", err
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).Put([]byte(run.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("Bolt.Save(%s): %w", run.ID, err)
	}

	return run.ID, nil
}

// Get implements Store.
func (b *Bolt) Get(ctx context.Context, id string) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(runsBucket).Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Bolt.Get(%s): %w", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("Bolt.Get(%s): %w", id, ErrNotFound)
	}

	return decode(data)
}

// List implements Store.
func (b *Bolt) List(ctx context.Context) ([]*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runs := make([]*Run, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(_, v []byte) error {
			run, err := decode(v)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("Bolt.List: %w", err)
	}
	sortRuns(runs)

	return runs, nil
}

// Close implements Store.
func (b *Bolt) Close() error {
	return b.db.Close()
}
