// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/subgraph"
)

// ErrTransport indicates a failed send, dial, receive or a canceled gather.
var ErrTransport = errors.New("cluster: transport failure")

// Result is the local spanning forest reported by one rank, in global IDs.
type Result struct {
	Rank  int
	Count int
	Edges []core.Edge
}

// check verifies the length prefix and the forest contract against the
// message that was sent to this rank.
func (r Result) check(msg *subgraph.Message) error {
	if r.Rank != msg.Rank {
		return fmt.Errorf("result for rank %d answers rank %d: %w", r.Rank, msg.Rank, ErrTransport)
	}
	if r.Count != len(r.Edges) {
		return fmt.Errorf("rank %d: count %d, %d edges: %w", r.Rank, r.Count, len(r.Edges), oracle.ErrOracleFailure)
	}

	return oracle.Validate(msg, r.Edges)
}

// Transport delivers subgraph messages to remote ranks and collects their
// results. A Transport serves one round at a time: every Send of a round
// precedes its Gather.
type Transport interface {
	// Send hands msg to the worker of msg.Rank. It must not block on the
	// worker's computation.
	Send(ctx context.Context, msg *subgraph.Message) error

	// Gather waits for every rank sent to since the previous Gather and
	// returns their results ordered by rank.
	Gather(ctx context.Context) ([]Result, error)

	// Reset abandons every rank sent to since the previous Gather so the
	// next round starts clean. Results of abandoned ranks are discarded.
	Reset()

	// Close releases connections and workers.
	Close() error
}

// Report describes one completed coordinator run.
type Report struct {
	RunID       string
	Vertices    int
	Workers     int
	Strategy    string
	Oracle      string
	Candidates  []int // per-rank forest size, index = rank
	Pool        int
	MST         []core.Edge
	TotalWeight float64
	Elapsed     time.Duration
}

// String renders the tree as u0-v0/u1-v1/.../uk-vk.
func (r *Report) String() string {
	return core.FormatMST(r.MST)
}
