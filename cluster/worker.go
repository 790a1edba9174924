// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/subgraph"
)

// Worker computes the local spanning forest of one subgraph message.
// A Worker is stateless and safe for concurrent use.
type Worker struct {
	oracle oracle.Oracle
	logger *zap.Logger
}

// NewWorker returns a Worker solving with o. A nil o selects Kruskal and a
// nil logger discards output.
func NewWorker(o oracle.Oracle, logger *zap.Logger) *Worker {
	if o == nil {
		o = oracle.Kruskal{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Worker{oracle: o, logger: logger}
}

// Oracle returns the worker's solver.
func (w *Worker) Oracle() oracle.Oracle {
	return w.oracle
}

// Run validates msg, solves it and checks the solver's output.
// The returned Result is length-prefixed and uses global vertex IDs.
func (w *Worker) Run(ctx context.Context, msg *subgraph.Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("Worker.Run: %w", err)
	}
	if msg == nil {
		return Result{}, fmt.Errorf("Worker.Run: nil message: %w", subgraph.ErrMalformed)
	}
	if err := msg.Validate(); err != nil {
		return Result{}, fmt.Errorf("Worker.Run(rank %d): %w", msg.Rank, err)
	}

	edges, err := w.oracle.LocalMST(msg)
	if err != nil {
		return Result{}, fmt.Errorf("Worker.Run(rank %d): %s: %v: %w", msg.Rank, w.oracle.Name(), err, oracle.ErrOracleFailure)
	}
	if err := oracle.Validate(msg, edges); err != nil {
		return Result{}, fmt.Errorf("Worker.Run: %w", err)
	}

	w.logger.Debug("local forest",
		zap.Int("rank", msg.Rank),
		zap.Int("size", msg.Size()),
		zap.Int("shift", msg.Shift),
		zap.Int("edges", len(edges)),
	)

	return Result{Rank: msg.Rank, Count: len(edges), Edges: edges}, nil
}
