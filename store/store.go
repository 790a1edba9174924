// SPDX-License-Identifier: MIT

// Package store persists completed MST runs so that results outlive the
// coordinator process. Two embedded key-value backends are provided:
// Bolt (go.etcd.io/bbolt, single file) and Badger (github.com/dgraph-io/badger/v3,
// LSM directory). Records are JSON documents keyed by run ID.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/distmst/core"
)

var (
	// ErrNotFound indicates an unknown run ID.
	ErrNotFound = errors.New("store: run not found")

	// ErrUnknownDriver indicates an unrecognized backend name.
	ErrUnknownDriver = errors.New("store: unknown driver")
)

// Driver names accepted by Open.
const (
	DriverBolt   = "bolt"
	DriverBadger = "badger"
)

// Run is one completed MST computation.
type Run struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	Vertices    int         `json:"vertices"`
	Workers     int         `json:"workers"`
	Strategy    string      `json:"strategy"`
	Oracle      string      `json:"oracle"`
	Candidates  int         `json:"candidates"`
	Edges       []core.Edge `json:"edges"`
	TotalWeight float64     `json:"total_weight"`
	MST         string      `json:"mst"`
}

// Store saves and retrieves runs.
type Store interface {
	// Save persists run, assigning ID and CreatedAt when empty, and returns the ID.
	Save(ctx context.Context, run *Run) (string, error)

	// Get loads a run by ID or returns ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns every run ordered by CreatedAt, oldest first.
	List(ctx context.Context) ([]*Run, error)

	// Close releases the backend.
	Close() error
}

// Open opens the backend named by driver at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverBolt:
		return OpenBolt(path)
	case DriverBadger:
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("Open(%q): %w", driver, ErrUnknownDriver)
	}
}

// prepare fills ID and CreatedAt and encodes run.
func prepare(run *Run) ([]byte, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	return json.Marshal(run)
}

func decode(data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}

	return &run, nil
}

func sortRuns(runs []*Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
}
