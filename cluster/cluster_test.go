// SPDX-License-Identifier: MIT

package cluster_test

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/distmst/cluster"
	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/merge"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/store"
	"github.com/katalvlaran/distmst/subgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixVertexGraph(t *testing.T) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(6, core.WithFill(4))
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(0, 5, 1))
	require.NoError(t, g.SetWeight(1, 2, 2))
	require.NoError(t, g.SetWeight(3, 4, 3))

	return g
}

func randomGraph(t *testing.T, n int, seed int64) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(n)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	for v := 1; v < n; v++ {
		require.NoError(t, g.SetWeight(r.Intn(v), v, float64(r.Intn(50)+1)))
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if !g.HasEdge(u, v) && r.Intn(2) == 0 {
				require.NoError(t, g.SetWeight(u, v, float64(r.Intn(50)+1)))
			}
		}
	}

	return g
}

func TestCoordinator_SixVertexScenario(t *testing.T) {
	c, err := cluster.NewCoordinator(3, cluster.WithCrossCheck(true))
	require.NoError(t, err)
	defer c.Close()

	report, err := c.Run(context.Background(), sixVertexGraph(t))
	require.NoError(t, err)
	assert.Equal(t, "0-5/1-2/3-4/0-1/0-3", report.String())
	assert.Equal(t, 14.0, report.TotalWeight)
	assert.Equal(t, 3, report.Workers)
	assert.Equal(t, partition.StrategyThirds, report.Strategy)
	assert.Equal(t, []int{3, 3, 3}, report.Candidates)
	assert.Equal(t, 9, report.Pool)
}

func TestCoordinator_MatchesSequentialMerge(t *testing.T) {
	cases := []struct {
		name    string
		planner partition.Planner
		oracle  oracle.Oracle
		workers int
	}{
		{"thirds/kruskal", partition.Thirds{}, oracle.Kruskal{}, 3},
		{"thirds/prim", partition.Thirds{}, oracle.Prim{}, 3},
		{"thirds/boruvka", partition.Thirds{}, oracle.Boruvka{}, 3},
		{"blockpairs/1", partition.BlockPairs{}, oracle.Kruskal{}, 1},
		{"blockpairs/6", partition.BlockPairs{}, oracle.Prim{}, 6},
		{"blockpairs/8", partition.BlockPairs{}, oracle.Kruskal{}, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				g := randomGraph(t, 25+int(seed)*7, seed)
				want, err := merge.Graph(g)
				require.NoError(t, err)

				c, err := cluster.NewCoordinator(tc.workers,
					cluster.WithPlanner(tc.planner), cluster.WithOracle(tc.oracle))
				require.NoError(t, err)
				report, err := c.Run(context.Background(), g)
				require.NoError(t, err)
				assert.Equal(t, want, report.MST, "seed %d", seed)
				require.NoError(t, c.Close())
			}
		})
	}
}

func TestCoordinator_SmallGraphs(t *testing.T) {
	for n := 1; n <= 4; n++ {
		g, err := core.NewGraph(n, core.WithFill(1))
		require.NoError(t, err)
		c, err := cluster.NewCoordinator(3)
		require.NoError(t, err)
		report, err := c.Run(context.Background(), g)
		require.NoError(t, err, "n=%d", n)
		assert.Len(t, report.MST, n-1)
	}
}

func TestCoordinator_Disconnected(t *testing.T) {
	g, err := core.NewGraph(6)
	require.NoError(t, err)
	for _, e := range []core.Edge{
		{U: 0, V: 1, Weight: 1}, {U: 1, V: 2, Weight: 1},
		{U: 3, V: 4, Weight: 1}, {U: 4, V: 5, Weight: 1},
	} {
		require.NoError(t, g.SetWeight(e.U, e.V, e.Weight))
	}
	c, err := cluster.NewCoordinator(3)
	require.NoError(t, err)

	_, err = c.Run(context.Background(), g)
	assert.ErrorIs(t, err, merge.ErrInsufficientCandidates)
}

func TestCoordinator_ConfigurationErrors(t *testing.T) {
	_, err := cluster.NewCoordinator(0)
	assert.ErrorIs(t, err, partition.ErrUnsupported)

	c, err := cluster.NewCoordinator(4)
	require.NoError(t, err)
	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, partition.ErrUnsupported)

	_, err = c.Run(context.Background(), nil)
	assert.ErrorIs(t, err, merge.ErrNilGraph)
}

func TestCoordinator_PersistsRun(t *testing.T) {
	s, err := store.OpenBolt(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	c, err := cluster.NewCoordinator(3, cluster.WithStore(s))
	require.NoError(t, err)
	report, err := c.Run(context.Background(), sixVertexGraph(t))
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)

	run, err := s.Get(context.Background(), report.RunID)
	require.NoError(t, err)
	assert.Equal(t, "0-5/1-2/3-4/0-1/0-3", run.MST)
	assert.Equal(t, 9, run.Candidates)
}

// brokenOracle fails outright, or with mislabel set returns a correct forest
// whose first edge carries the wrong weight.
type brokenOracle struct{ mislabel bool }

func (brokenOracle) Name() string { return "broken" }

func (b brokenOracle) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	if !b.mislabel {
		return nil, errors.New("solver crashed")
	}
	edges, err := oracle.Kruskal{}.LocalMST(msg)
	if err != nil || len(edges) == 0 {
		return edges, err
	}
	edges[0].Weight++

	return edges, nil
}

func TestCoordinator_WorkerFailures(t *testing.T) {
	for _, mislabel := range []bool{false, true} {
		remote := cluster.NewLoopback(cluster.NewWorker(brokenOracle{mislabel: mislabel}, nil))
		c, err := cluster.NewCoordinator(3, cluster.WithTransport(remote))
		require.NoError(t, err)

		_, err = c.Run(context.Background(), sixVertexGraph(t))
		assert.ErrorIs(t, err, oracle.ErrOracleFailure, "mislabel=%v", mislabel)
	}
}

// flakyOracle fails the first rank-0 call and behaves as Kruskal after.
type flakyOracle struct{ failed atomic.Bool }

func (*flakyOracle) Name() string { return "flaky" }

func (f *flakyOracle) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	if msg.Rank == 0 && f.failed.CompareAndSwap(false, true) {
		return nil, errors.New("solver crashed")
	}

	return oracle.Kruskal{}.LocalMST(msg)
}

// TestCoordinator_RecoversAfterLocalFailure runs again on the same
// coordinator after its own partition failed while remote ranks were in
// flight.
func TestCoordinator_RecoversAfterLocalFailure(t *testing.T) {
	c, err := cluster.NewCoordinator(3, cluster.WithOracle(&flakyOracle{}))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Run(context.Background(), sixVertexGraph(t))
	require.ErrorIs(t, err, oracle.ErrOracleFailure)

	report, err := c.Run(context.Background(), sixVertexGraph(t))
	require.NoError(t, err)
	assert.Equal(t, "0-5/1-2/3-4/0-1/0-3", report.String())
}

// forgingTransport answers every Send with a result that lies about its edges.
type forgingTransport struct {
	results []cluster.Result
	err     error
}

func (f *forgingTransport) Send(_ context.Context, msg *subgraph.Message) error {
	f.results = append(f.results, cluster.Result{
		Rank:  msg.Rank,
		Count: 1,
		Edges: []core.Edge{{U: msg.Subset[0], V: msg.Subset[1], Weight: 0.5}},
	})
	return nil
}

func (f *forgingTransport) Gather(context.Context) ([]cluster.Result, error) {
	return f.results, f.err
}

func (f *forgingTransport) Reset() { f.results = nil }

func (f *forgingTransport) Close() error { return nil }

func TestCoordinator_RejectsForgedResults(t *testing.T) {
	c, err := cluster.NewCoordinator(3, cluster.WithTransport(&forgingTransport{}))
	require.NoError(t, err)
	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, oracle.ErrOracleFailure)

	c, err = cluster.NewCoordinator(3, cluster.WithTransport(&forgingTransport{err: cluster.ErrTransport}))
	require.NoError(t, err)
	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, cluster.ErrTransport)
}

func TestLoopback_Rounds(t *testing.T) {
	g := sixVertexGraph(t)
	plan, err := partition.Thirds{}.Plan(6, 3)
	require.NoError(t, err)
	l := cluster.NewLoopback(cluster.NewWorker(nil, nil))
	ctx := context.Background()

	empty, err := l.Gather(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for round := 0; round < 2; round++ {
		for _, k := range []int{2, 1} {
			msg, err := subgraph.Build(g, plan.Windows[k])
			require.NoError(t, err)
			require.NoError(t, l.Send(ctx, msg))
		}
		results, err := l.Gather(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].Rank)
		assert.Equal(t, 2, results[1].Rank)
		assert.Equal(t, results[0].Count, len(results[0].Edges))
	}

	msg, err := subgraph.Build(g, plan.Windows[1])
	require.NoError(t, err)
	require.NoError(t, l.Send(ctx, msg))
	assert.ErrorIs(t, l.Send(ctx, msg), cluster.ErrTransport, "duplicate rank")
	_, err = l.Gather(ctx)
	require.NoError(t, err)

	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Send(ctx, msg), cluster.ErrTransport)
}

// gateOracle blocks every call until release is closed.
type gateOracle struct{ release chan struct{} }

func (gateOracle) Name() string { return "gate" }

func (g gateOracle) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	<-g.release
	return oracle.Kruskal{}.LocalMST(msg)
}

func TestLoopback_CanceledGatherStartsFreshRound(t *testing.T) {
	plan, err := partition.Thirds{}.Plan(6, 3)
	require.NoError(t, err)
	msg, err := subgraph.Build(sixVertexGraph(t), plan.Windows[1])
	require.NoError(t, err)

	gate := gateOracle{release: make(chan struct{})}
	l := cluster.NewLoopback(cluster.NewWorker(gate, nil))
	require.NoError(t, l.Send(context.Background(), msg))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Gather(ctx)
	require.ErrorIs(t, err, cluster.ErrTransport)
	require.ErrorIs(t, err, context.Canceled)

	close(gate.release)
	require.NoError(t, l.Send(context.Background(), msg), "rank 1 is free again")
	results, err := l.Gather(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 3, results[0].Count)
}

func TestRPCTransport_ResetDropsPendingCalls(t *testing.T) {
	peers := startWorkers(t, 2, nil)
	tr := cluster.NewRPCTransport(peers)
	defer tr.Close()

	plan, err := partition.Thirds{}.Plan(6, 3)
	require.NoError(t, err)
	msg, err := subgraph.Build(sixVertexGraph(t), plan.Windows[1])
	require.NoError(t, err)

	require.NoError(t, tr.Send(context.Background(), msg))
	tr.Reset()
	empty, err := tr.Gather(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, tr.Send(context.Background(), msg))
	results, err := tr.Gather(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rank)
}

func TestWorker_RejectsMalformed(t *testing.T) {
	w := cluster.NewWorker(nil, nil)
	_, err := w.Run(context.Background(), nil)
	assert.ErrorIs(t, err, subgraph.ErrMalformed)

	_, err = w.Run(context.Background(), &subgraph.Message{V: 3, Subset: []int{0, 1}})
	assert.ErrorIs(t, err, subgraph.ErrMalformed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Run(ctx, &subgraph.Message{})
	assert.ErrorIs(t, err, context.Canceled)
}

// startWorkers serves n RPC workers on loopback TCP ports and returns their
// addresses keyed by rank 1..n.
func startWorkers(t *testing.T, n int, o oracle.Oracle) map[int]string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, n)
	t.Cleanup(func() {
		cancel()
		for i := 0; i < n; i++ {
			assert.NoError(t, <-done)
		}
	})

	peers := make(map[int]string, n)
	for rank := 1; rank <= n; rank++ {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		peers[rank] = lis.Addr().String()
		go func() { done <- cluster.Serve(ctx, lis, cluster.NewWorker(o, nil)) }()
	}

	return peers
}

func TestRPCTransport_EndToEnd(t *testing.T) {
	peers := startWorkers(t, 2, oracle.Prim{})
	rpcT := cluster.NewRPCTransport(peers, cluster.WithDialTimeout(time.Second))
	c, err := cluster.NewCoordinator(3, cluster.WithTransport(rpcT), cluster.WithCrossCheck(true))
	require.NoError(t, err)
	defer c.Close()

	report, err := c.Run(context.Background(), sixVertexGraph(t))
	require.NoError(t, err)
	assert.Equal(t, "0-5/1-2/3-4/0-1/0-3", report.String())

	g := randomGraph(t, 60, 9)
	want, err := merge.Graph(g)
	require.NoError(t, err)
	report, err = c.Run(context.Background(), g)
	require.NoError(t, err, "connections are reused across runs")
	assert.Equal(t, want, report.MST)
}

func TestRPCTransport_RemoteOracleFailure(t *testing.T) {
	peers := startWorkers(t, 2, brokenOracle{})
	c, err := cluster.NewCoordinator(3, cluster.WithTransport(cluster.NewRPCTransport(peers)))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, oracle.ErrOracleFailure)
}

func TestRPCTransport_Unreachable(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	tr := cluster.NewRPCTransport(map[int]string{1: addr, 2: addr}, cluster.WithDialTimeout(time.Second))
	c, err := cluster.NewCoordinator(3, cluster.WithTransport(tr))
	require.NoError(t, err)
	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, cluster.ErrTransport)

	tr = cluster.NewRPCTransport(startWorkers(t, 1, nil))
	c, err = cluster.NewCoordinator(3, cluster.WithTransport(tr))
	require.NoError(t, err)
	_, err = c.Run(context.Background(), sixVertexGraph(t))
	assert.ErrorIs(t, err, cluster.ErrTransport, "rank 2 has no address")
	require.NoError(t, c.Close())
}
