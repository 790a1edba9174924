// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/katalvlaran/distmst/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGraph_BadOrder verifies that the order stays within [1, MaxOrder].
func TestNewGraph_BadOrder(t *testing.T) {
	_, err := core.NewGraph(0)
	assert.ErrorIs(t, err, core.ErrBadOrder)

	_, err = core.NewGraph(core.MaxOrder + 1)
	assert.ErrorIs(t, err, core.ErrBadOrder)

	g, err := core.NewGraph(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Order())
	assert.Empty(t, g.Edges())
}

// TestGraph_SetWeightMirrors checks symmetric storage and the absent sentinel.
func TestGraph_SetWeightMirrors(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)

	require.NoError(t, g.SetWeight(3, 1, 7.5))
	assert.Equal(t, 7.5, g.Weight(1, 3))
	assert.Equal(t, 7.5, g.Weight(3, 1))
	assert.True(t, g.HasEdge(1, 3))

	// Untouched pairs, self pairs and out-of-range pairs are all absent.
	assert.True(t, core.IsNoEdge(g.Weight(0, 2)))
	assert.True(t, core.IsNoEdge(g.Weight(2, 2)))
	assert.True(t, core.IsNoEdge(g.Weight(-1, 9)))

	require.NoError(t, g.ClearWeight(1, 3))
	assert.False(t, g.HasEdge(3, 1))
}

// TestGraph_SetWeightErrors covers every rejection path of SetWeight.
func TestGraph_SetWeightErrors(t *testing.T) {
	g, err := core.NewGraph(3)
	require.NoError(t, err)

	assert.ErrorIs(t, g.SetWeight(0, 3, 1), core.ErrVertexOutOfRange)
	assert.ErrorIs(t, g.SetWeight(1, 1, 1), core.ErrLoopNotAllowed)
	assert.ErrorIs(t, g.SetWeight(0, 1, -1), core.ErrBadWeight)
	assert.ErrorIs(t, g.SetWeight(0, 1, core.NoEdge), core.ErrBadWeight)
}

// TestGraph_CompactLayout locks in the column remap rule: column c of row r
// is vertex c when c < r and c+1 otherwise.
func TestGraph_CompactLayout(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(2, 0, 1))
	require.NoError(t, g.SetWeight(2, 3, 9))

	for r := 0; r < 4; r++ {
		for c := 0; c < 3; c++ {
			v, err := g.Vertex(r, c)
			require.NoError(t, err)
			assert.NotEqual(t, r, v, "diagonal must never occupy a slot")
			back, err := g.Column(r, v)
			require.NoError(t, err)
			assert.Equal(t, c, back)
		}
	}

	w, err := g.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, w)
	w, err = g.At(2, 2) // column 2 of row 2 is vertex 3
	require.NoError(t, err)
	assert.Equal(t, 9.0, w)

	_, err = g.At(0, 3)
	assert.ErrorIs(t, err, core.ErrVertexOutOfRange)
}

// TestGraph_EdgesSortedAndCloned verifies Edges order, EdgeCount and deep Clone.
func TestGraph_EdgesSortedAndCloned(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	require.NoError(t, g.SetWeight(0, 3, 2))
	require.NoError(t, g.SetWeight(1, 2, 2))
	require.NoError(t, g.SetWeight(2, 3, 1))

	assert.Equal(t, []core.Edge{
		{U: 2, V: 3, Weight: 1},
		{U: 0, V: 3, Weight: 2},
		{U: 1, V: 2, Weight: 2},
	}, g.Edges())
	assert.Equal(t, 3, g.EdgeCount())

	c := g.Clone()
	require.NoError(t, c.ClearWeight(2, 3))
	assert.True(t, g.HasEdge(2, 3), "clone must not alias the original")
}

// TestWithFill builds a complete graph and ignores invalid fills.
func TestWithFill(t *testing.T) {
	g, err := core.NewGraph(5, core.WithFill(4))
	require.NoError(t, err)
	assert.Equal(t, 10, g.EdgeCount())

	g, err = core.NewGraph(5, core.WithFill(-2))
	require.NoError(t, err)
	assert.Zero(t, g.EdgeCount())
}
