// SPDX-License-Identifier: MIT
// Package: distmst/merge
//
// reference.go - independent MST check backed by gonum.
//
//   • Reference runs gonum's Kruskal over the same graph.
//   • CrossCheck compares total weight and edge count only, since gonum
//     breaks ties its own way.

package merge

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/distmst/core"
)

// ErrMismatch indicates a tree whose total weight differs from the reference MST.
var ErrMismatch = errors.New("merge: MST differs from reference")

// weightTolerance absorbs float summation order differences.
const weightTolerance = 1e-9

// Reference computes the MST total weight of g with gonum's Kruskal, an
// implementation independent of this module. It returns the weight and the
// number of tree edges; a disconnected g reports ErrInsufficientCandidates.
// Complexity: O(E log E).
func Reference(g *core.Graph) (float64, int, error) {
	if g == nil {
		return 0, 0, ErrNilGraph
	}

	src := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for v := 0; v < g.Order(); v++ {
		src.AddNode(simple.Node(v))
	}
	for _, e := range g.Edges() {
		src.SetWeightedEdge(src.NewWeightedEdge(simple.Node(e.U), simple.Node(e.V), e.Weight))
	}

	dst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	total := path.Kruskal(dst, src)
	count := len(graph.EdgesOf(dst.Edges()))
	if count < g.Order()-1 {
		return 0, count, fmt.Errorf("Reference: %d of %d tree edges: %w", count, g.Order()-1, ErrInsufficientCandidates)
	}

	return total, count, nil
}

// CrossCheck compares mst against Reference and reports ErrMismatch when the
// edge count or total weight disagree.
func CrossCheck(mst []core.Edge, g *core.Graph) error {
	want, count, err := Reference(g)
	if err != nil {
		return err
	}
	got := core.TotalWeight(mst)
	if len(mst) != count || math.Abs(got-want) > weightTolerance*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("CrossCheck: %d edges weighing %g, reference %d weighing %g: %w",
			len(mst), got, count, want, ErrMismatch)
	}

	return nil
}
