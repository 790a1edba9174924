// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/merge"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/store"
	"github.com/katalvlaran/distmst/subgraph"
)

// Option configures a Coordinator.
type Option func(c *Coordinator)

// WithPlanner selects the covering strategy. Default partition.Thirds.
func WithPlanner(p partition.Planner) Option {
	return func(c *Coordinator) {
		if p != nil {
			c.planner = p
		}
	}
}

// WithOracle selects the local solver used for rank 0 and, when no transport
// is given, for the in-process workers. Default oracle.Kruskal.
func WithOracle(o oracle.Oracle) Option {
	return func(c *Coordinator) {
		if o != nil {
			c.oracle = o
		}
	}
}

// WithTransport sets the transport to ranks 1..W−1. Default is a Loopback.
func WithTransport(t Transport) Option {
	return func(c *Coordinator) {
		c.transport = t
	}
}

// WithLogger sets the structured logger. Default zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCrossCheck compares every merged tree with a full-graph reference MST.
func WithCrossCheck(on bool) Option {
	return func(c *Coordinator) {
		c.crossCheck = on
	}
}

// WithStore persists every successful run.
func WithStore(s store.Store) Option {
	return func(c *Coordinator) {
		c.store = s
	}
}

// Coordinator drives one distributed MST computation per Run.
type Coordinator struct {
	workers    int
	planner    partition.Planner
	oracle     oracle.Oracle
	transport  Transport
	logger     *zap.Logger
	crossCheck bool
	store      store.Store

	local *Worker
}

// NewCoordinator returns a coordinator for a cluster of workers ranks,
// rank 0 included.
func NewCoordinator(workers int, opts ...Option) (*Coordinator, error) {
	if workers < 1 {
		return nil, fmt.Errorf("NewCoordinator: %d workers: %w", workers, partition.ErrUnsupported)
	}
	c := &Coordinator{
		workers: workers,
		planner: partition.Thirds{},
		oracle:  oracle.Kruskal{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.local = NewWorker(c.oracle, c.logger.Named("rank0"))
	if c.transport == nil {
		c.transport = NewLoopback(NewWorker(c.oracle, c.logger.Named("loopback")))
	}

	return c, nil
}

// Close releases the transport.
func (c *Coordinator) Close() error {
	return c.transport.Close()
}

// Run computes the MST of g across the cluster.
//
// Error Conditions:
//   - merge.ErrNilGraph               : g is nil.
//   - partition.ErrUnsupported        : the planner cannot cover V with W workers.
//   - ErrTransport                    : a send or gather failed, or ctx ended.
//   - oracle.ErrOracleFailure         : a rank returned a malformed forest.
//   - merge.ErrInsufficientCandidates : g is disconnected.
//   - merge.ErrMismatch               : cross-check enabled and the trees differ.
//
// Steps:
//  1. Plan and verify the covering invariant.
//  2. Build one subgraph message per window.
//  3. Send ranks 1..W−1.
//  4. Solve rank 0 locally while the others compute.
//  5. Gather in rank order and check each result against its message.
//  6. Concatenate the forests and merge.
//  7. Optional cross-check and persistence.
func (c *Coordinator) Run(ctx context.Context, g *core.Graph) (*Report, error) {
	start := time.Now()
	if g == nil {
		return nil, merge.ErrNilGraph
	}
	v := g.Order()

	// 1. Plan.
	plan, err := partition.PlanVerified(c.planner, v, c.workers)
	if err != nil {
		return nil, fmt.Errorf("Coordinator.Run: %w", err)
	}
	c.logger.Info("plan ready",
		zap.String("strategy", plan.Strategy),
		zap.Int("vertices", v),
		zap.Int("workers", plan.Workers()),
		zap.Int("window", plan.Windows[0].Size()),
	)

	// 2. Build messages; the graph itself never leaves the coordinator.
	msgs := make([]*subgraph.Message, plan.Workers())
	for k, win := range plan.Windows {
		if msgs[k], err = subgraph.Build(g, win); err != nil {
			return nil, fmt.Errorf("Coordinator.Run: %w", err)
		}
	}

	// 3. Distribute. Until Gather has drained the round, any failure leaves
	// ranks in flight, so the transport is reset on the way out.
	gathered := false
	defer func() {
		if !gathered {
			c.transport.Reset()
		}
	}()
	for _, msg := range msgs[1:] {
		if err := c.transport.Send(ctx, msg); err != nil {
			return nil, fmt.Errorf("Coordinator.Run: %w", err)
		}
	}

	// 4. Own partition.
	own, err := c.local.Run(ctx, msgs[0])
	if err != nil {
		return nil, fmt.Errorf("Coordinator.Run: %w", err)
	}

	// 5. Gather and check.
	remote, err := c.transport.Gather(ctx)
	gathered = true
	if err != nil {
		return nil, fmt.Errorf("Coordinator.Run: %w", err)
	}
	results := append([]Result{own}, remote...)
	if len(results) != len(msgs) {
		return nil, fmt.Errorf("Coordinator.Run: gathered %d results, want %d: %w", len(results), len(msgs), ErrTransport)
	}
	counts := make([]int, len(results))
	pool := make([]core.Edge, 0, len(results)*(plan.Windows[0].Size()))
	for k, res := range results {
		if err := res.check(msgs[k]); err != nil {
			return nil, fmt.Errorf("Coordinator.Run: %w", err)
		}
		counts[k] = res.Count
		pool = append(pool, res.Edges...)
	}

	// 6. Merge.
	mst, err := merge.Merge(pool, g)
	if err != nil {
		return nil, fmt.Errorf("Coordinator.Run: %w", err)
	}

	// 7. Post-processing.
	if c.crossCheck {
		if err := merge.CrossCheck(mst, g); err != nil {
			return nil, fmt.Errorf("Coordinator.Run: %w", err)
		}
	}
	report := &Report{
		Vertices:    v,
		Workers:     plan.Workers(),
		Strategy:    plan.Strategy,
		Oracle:      c.oracle.Name(),
		Candidates:  counts,
		Pool:        len(pool),
		MST:         mst,
		TotalWeight: core.TotalWeight(mst),
	}
	if c.store != nil {
		id, err := c.store.Save(ctx, &store.Run{
			Vertices:    report.Vertices,
			Workers:     report.Workers,
			Strategy:    report.Strategy,
			Oracle:      report.Oracle,
			Candidates:  report.Pool,
			Edges:       report.MST,
			TotalWeight: report.TotalWeight,
			MST:         report.String(),
		})
		if err != nil {
			return nil, fmt.Errorf("Coordinator.Run: %w", err)
		}
		report.RunID = id
	}
	report.Elapsed = time.Since(start)

	c.logger.Info("mst merged",
		zap.Int("pool", report.Pool),
		zap.Ints("candidates", counts),
		zap.Float64("total_weight", report.TotalWeight),
		zap.String("run_id", report.RunID),
		zap.Duration("elapsed", report.Elapsed),
	)

	return report, nil
}
