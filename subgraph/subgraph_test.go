// SPDX-License-Identifier: MIT

package subgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/partition"
	"github.com/katalvlaran/distmst/subgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomGraph returns a graph where roughly half the pairs carry a weight.
func randomGraph(t *testing.T, n int, seed int64) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(n)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Intn(2) == 0 {
				require.NoError(t, g.SetWeight(u, v, float64(r.Intn(100))))
			}
		}
	}

	return g
}

// TestBuild_RoundTrip checks that every emitted weight equals the global
// weight of (subset[i], subset[j]) and that the layout has s·(s−1) triples.
func TestBuild_RoundTrip(t *testing.T) {
	g := randomGraph(t, 12, 7)
	p, err := partition.Thirds{}.Plan(12, 3)
	require.NoError(t, err)

	for _, win := range p.Windows {
		m, err := subgraph.Build(g, win)
		require.NoError(t, err)
		require.NoError(t, m.Validate())

		s := win.Size()
		assert.Len(t, m.Triples, s*(s-1))
		assert.Equal(t, win.Rank, m.Rank)
		assert.Equal(t, win.Shift, m.Shift)
		assert.Equal(t, 12, m.V)

		for _, tr := range m.Triples {
			assert.NotEqual(t, tr.U, tr.V, "self pair emitted")
			want := g.Weight(win.Vertices[tr.U], win.Vertices[tr.V])
			assert.Equal(t, want, tr.Weight)
		}
	}
}

// TestBuild_ColumnRemap pins the first rows of a four-vertex window.
func TestBuild_ColumnRemap(t *testing.T) {
	g, err := core.NewGraph(6, core.WithFill(4))
	require.NoError(t, err)
	m, err := subgraph.Build(g, partition.Window{Rank: 1, Shift: 2, Vertices: []int{2, 3, 4, 5}})
	require.NoError(t, err)

	got := make([][2]int, 0, 6)
	for _, tr := range m.Triples[:6] {
		got = append(got, [2]int{tr.U, tr.V})
	}
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 2}, {1, 3}}, got)
	assert.Equal(t, 1, subgraph.LocalColumn(2, 1))
	assert.Equal(t, 3, subgraph.LocalColumn(2, 2))
}

func TestBuild_OutOfRange(t *testing.T) {
	g, err := core.NewGraph(3)
	require.NoError(t, err)
	_, err = subgraph.Build(g, partition.Window{Vertices: []int{0, 3}})
	assert.ErrorIs(t, err, core.ErrVertexOutOfRange)
}

// TestMessage_Edges decodes global edges once per pair.
func TestMessage_Edges(t *testing.T) {
	g, err := core.NewGraph(6)
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(4, 5, 1))
	require.NoError(t, g.SetWeight(0, 4, 3))
	require.NoError(t, g.SetWeight(1, 2, 2)) // outside the window

	m, err := subgraph.Build(g, partition.Window{Rank: 2, Shift: 4, Vertices: []int{4, 5, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{{U: 4, V: 5, Weight: 1}, {U: 0, V: 4, Weight: 3}}, m.Edges())

	gv, err := m.Global(2)
	require.NoError(t, err)
	assert.Equal(t, 0, gv)
	_, err = m.Global(4)
	assert.ErrorIs(t, err, subgraph.ErrMalformed)
}

// TestMessage_Validate rejects each kind of malformed message.
func TestMessage_Validate(t *testing.T) {
	g := randomGraph(t, 6, 1)
	build := func() *subgraph.Message {
		m, err := subgraph.Build(g, partition.Window{Vertices: []int{0, 1, 2}})
		require.NoError(t, err)
		return m
	}

	var nilMsg *subgraph.Message
	assert.ErrorIs(t, nilMsg.Validate(), subgraph.ErrMalformed)

	m := build()
	m.Triples = m.Triples[:5]
	assert.ErrorIs(t, m.Validate(), subgraph.ErrMalformed)

	m = build()
	m.Triples[0].V = 0
	assert.ErrorIs(t, m.Validate(), subgraph.ErrMalformed)

	m = build()
	m.Subset[1] = 0
	assert.ErrorIs(t, m.Validate(), subgraph.ErrMalformed)

	m = build()
	m.Subset[2] = 9
	assert.ErrorIs(t, m.Validate(), subgraph.ErrMalformed)

	m = build()
	m.Triples[3].Weight = -1
	assert.ErrorIs(t, m.Validate(), subgraph.ErrMalformed)

	empty := &subgraph.Message{V: 3}
	assert.NoError(t, empty.Validate())
	assert.Empty(t, empty.Edges())
}
