// SPDX-License-Identifier: MIT

package oracle_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/oracle"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/subgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiedGraph draws weights from a tiny range so ties are frequent.
func tiedGraph(t *testing.T, n int, density float64, seed int64) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(n)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Float64() < density {
				require.NoError(t, g.SetWeight(u, v, float64(1+r.Intn(3))))
			}
		}
	}

	return g
}

func fullWindow(n int) partition.Window {
	vertices := make([]int, n)
	for i := range vertices {
		vertices[i] = i
	}

	return partition.Window{Vertices: vertices}
}

var solvers = []oracle.Oracle{oracle.Kruskal{}, oracle.Prim{}, oracle.Boruvka{}, oracle.Boruvka{Parallelism: 1}}

func sorted(edges []core.Edge) []core.Edge {
	out := append([]core.Edge(nil), edges...)
	core.SortEdges(out)
	return out
}

// TestOracles_Agree checks every solver returns Kruskal's forest under ties,
// and that the forest passes Validate.
func TestOracles_Agree(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := tiedGraph(t, 15, 0.4, seed)
		p, err := partition.Thirds{}.Plan(15, 3)
		require.NoError(t, err)

		for _, win := range p.Windows {
			msg, err := subgraph.Build(g, win)
			require.NoError(t, err)

			k, err := oracle.Kruskal{}.LocalMST(msg)
			require.NoError(t, err)
			assert.NoError(t, oracle.Validate(msg, k))

			for _, o := range solvers[1:] {
				got, err := o.LocalMST(msg)
				require.NoError(t, err)
				assert.Equal(t, sorted(k), sorted(got), "%s seed=%d rank=%d", o.Name(), seed, win.Rank)
				assert.NoError(t, oracle.Validate(msg, got), o.Name())
			}
		}
	}
}

// TestOracles_ConnectedCount returns s−1 edges on a complete subgraph.
func TestOracles_ConnectedCount(t *testing.T) {
	g, err := core.NewGraph(8, core.WithFill(5))
	require.NoError(t, err)
	msg, err := subgraph.Build(g, fullWindow(8))
	require.NoError(t, err)

	for _, o := range solvers {
		edges, err := o.LocalMST(msg)
		require.NoError(t, err)
		assert.Len(t, edges, 7, o.Name())
	}
}

// TestOracles_DisconnectedForest returns one tree per component.
func TestOracles_DisconnectedForest(t *testing.T) {
	g, err := core.NewGraph(5)
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(0, 1, 1))
	require.NoError(t, g.SetWeight(1, 2, 2))
	require.NoError(t, g.SetWeight(0, 2, 3))
	require.NoError(t, g.SetWeight(3, 4, 1))
	msg, err := subgraph.Build(g, fullWindow(5))
	require.NoError(t, err)

	want := []core.Edge{{U: 0, V: 1, Weight: 1}, {U: 3, V: 4, Weight: 1}, {U: 1, V: 2, Weight: 2}}
	for _, o := range solvers {
		edges, err := o.LocalMST(msg)
		require.NoError(t, err)
		assert.Equal(t, want, sorted(edges), o.Name())
	}
}

func TestOracles_Trivial(t *testing.T) {
	g, err := core.NewGraph(3)
	require.NoError(t, err)
	msg, err := subgraph.Build(g, partition.Window{Vertices: []int{2}})
	require.NoError(t, err)

	for _, o := range solvers {
		edges, err := o.LocalMST(msg)
		require.NoError(t, err)
		assert.Empty(t, edges)
	}
}

// TestValidate_Rejects covers every contract breach.
func TestValidate_Rejects(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(0, 1, 1))
	require.NoError(t, g.SetWeight(1, 2, 2))
	msg, err := subgraph.Build(g, partition.Window{Vertices: []int{0, 1, 2}})
	require.NoError(t, err)

	cases := map[string][]core.Edge{
		"too many":       {{U: 0, V: 1, Weight: 1}, {U: 1, V: 2, Weight: 2}, {U: 0, V: 2, Weight: 3}},
		"not normalized": {{U: 1, V: 0, Weight: 1}},
		"outside subset": {{U: 0, V: 3, Weight: 1}},
		"absent":         {{U: 0, V: 2, Weight: 3}},
		"misweighted":    {{U: 0, V: 1, Weight: 7}},
		"cycle":          {{U: 0, V: 1, Weight: 1}, {U: 0, V: 1, Weight: 1}},
	}
	for name, edges := range cases {
		assert.ErrorIs(t, oracle.Validate(msg, edges), oracle.ErrOracleFailure, name)
	}

	assert.NoError(t, oracle.Validate(msg, []core.Edge{{U: 0, V: 1, Weight: 1}, {U: 1, V: 2, Weight: 2}}))
}

func TestByName(t *testing.T) {
	o, err := oracle.ByName("prim")
	require.NoError(t, err)
	assert.Equal(t, oracle.NamePrim, o.Name())

	o, err = oracle.ByName("kruskal")
	require.NoError(t, err)
	assert.Equal(t, oracle.NameKruskal, o.Name())

	o, err = oracle.ByName("boruvka")
	require.NoError(t, err)
	assert.Equal(t, oracle.NameBoruvka, o.Name())

	_, err = oracle.ByName("reverse-delete")
	assert.ErrorIs(t, err, oracle.ErrUnknownOracle)
}

// TestBoruvka_ManyChunks spreads one round over several goroutines and
// checks the reduced minima still give Kruskal's forest.
func TestBoruvka_ManyChunks(t *testing.T) {
	const n = 60
	g := tiedGraph(t, n, 0.9, 42)
	msg, err := subgraph.Build(g, fullWindow(n))
	require.NoError(t, err)

	want, err := oracle.Kruskal{}.LocalMST(msg)
	require.NoError(t, err)
	require.Len(t, want, n-1)

	for _, par := range []int{1, 2, 4, 16} {
		got, err := oracle.Boruvka{Parallelism: par}.LocalMST(msg)
		require.NoError(t, err)
		assert.Equal(t, sorted(want), sorted(got), "parallelism=%d", par)
	}
}
