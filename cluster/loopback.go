// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/distmst/subgraph"
)

// Loopback is an in-process Transport. Each Send starts one goroutine that
// runs the worker on the message; Gather waits for all of them.
// The first worker error aborts the round.
type Loopback struct {
	worker *Worker

	mu      sync.Mutex
	group   *errgroup.Group
	results map[int]Result
	closed  bool
}

// NewLoopback returns a Loopback running every rank on w.
func NewLoopback(w *Worker) *Loopback {
	return &Loopback{worker: w}
}

// Send implements Transport.
func (l *Loopback) Send(ctx context.Context, msg *subgraph.Message) error {
	if msg == nil {
		return fmt.Errorf("Loopback.Send: nil message: %w", ErrTransport)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("Loopback.Send(rank %d): closed: %w", msg.Rank, ErrTransport)
	}
	if l.group == nil {
		l.group = new(errgroup.Group)
		l.results = make(map[int]Result)
	}
	if _, dup := l.results[msg.Rank]; dup {
		return fmt.Errorf("Loopback.Send(rank %d): already sent: %w", msg.Rank, ErrTransport)
	}
	// Reserve the rank; the goroutine overwrites the placeholder.
	l.results[msg.Rank] = Result{Rank: -1}

	// The goroutine keeps its own round's map, so a Reset never races it
	// into the next round.
	results := l.results
	l.group.Go(func() error {
		res, err := l.worker.Run(ctx, msg)
		if err != nil {
			return err
		}
		l.mu.Lock()
		results[msg.Rank] = res
		l.mu.Unlock()
		return nil
	})

	return nil
}

// Gather implements Transport.
func (l *Loopback) Gather(ctx context.Context) ([]Result, error) {
	l.mu.Lock()
	group := l.group
	l.mu.Unlock()
	if group == nil {
		return []Result{}, nil
	}

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		l.mu.Lock()
		results := l.results
		l.group, l.results = nil, nil
		l.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("Loopback.Gather: %w", err)
		}

		out := make([]Result, 0, len(results))
		for _, r := range results {
			out = append(out, r)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
		return out, nil
	case <-ctx.Done():
		l.Reset()
		return nil, fmt.Errorf("Loopback.Gather: %w: %w", ErrTransport, ctx.Err())
	}
}

// Reset implements Transport. Abandoned goroutines run to completion and
// their results are dropped.
func (l *Loopback) Reset() {
	l.mu.Lock()
	l.group, l.results = nil, nil
	l.mu.Unlock()
}

// Close implements Transport. Running workers finish on their own.
func (l *Loopback) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	return nil
}
