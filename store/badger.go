// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

var runPrefix = []byte("run/")

// Badger is a Store backed by a badger directory.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the badger directory at dir.
// Badger's internal logger is disabled.
func OpenBadger(dir string) (*Badger, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("OpenBadger(%s): %w", dir, err)
	}

	return &Badger{db: db}, nil
}

func runKey(id string) []byte {
	return append(append([]byte(nil), runPrefix...), id...)
}

// Save implements Store.
func (b *Badger) Save(ctx context.Context, run *Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := prepare(run)
	if err != nil {
		return "", err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("Badger.Save(%s): %w", run.ID, err)
	}

	return run.ID, nil
}

// Get implements Store.
func (b *Badger) Get(ctx context.Context, id string) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("Badger.Get(%s): %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Badger.Get(%s): %w", id, err)
	}

	return decode(data)
}

// List implements Store.
func (b *Badger) List(ctx context.Context) ([]*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runs := make([]*Run, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(runPrefix); it.ValidForPrefix(runPrefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			run, err := decode(data)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Badger.List: %w", err)
	}
	sortRuns(runs)

	return runs, nil
}

// Close implements Store.
func (b *Badger) Close() error {
	return b.db.Close()
}
