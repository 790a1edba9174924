// SPDX-License-Identifier: MIT
// Package: distmst/merge
//
// merge.go - Kruskal reduction of the candidate pool.
//
// Contract:
//   • Candidates are re-weighted from the coordinator's graph before sorting.
//   • The pool must yield V−1 accepted edges; otherwise ErrInsufficientCandidates.
//
// Complexity:
//   • O(P log P) for P candidates plus near-linear union-find.

// Package merge reduces the candidate edge pool gathered from all workers to
// the exact global minimum spanning tree with a Kruskal union-find pass.
//
// Candidates carry only endpoints that the coordinator trusts; weights are
// always looked up again in the coordinator's own graph. Duplicate candidates
// (the same pair reported by overlapping workers) are harmless: the second
// copy joins an already-joined pair and is skipped.
package merge

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/dsu"
)

var (
	// ErrNilGraph indicates a nil *core.Graph.
	ErrNilGraph = errors.New("merge: graph is nil")

	// ErrInvalidCandidate indicates a candidate naming an out-of-range vertex,
	// a self pair, or a pair with no edge in the graph.
	ErrInvalidCandidate = errors.New("merge: invalid candidate edge")

	// ErrInsufficientCandidates indicates that the pool cannot connect all V
	// vertices: either the graph is disconnected or an upstream stage broke
	// the covering invariant.
	ErrInsufficientCandidates = errors.New("merge: insufficient candidates for a spanning tree")
)

// Merge computes the MST of g restricted to candidates.
//
// Error Conditions:
//   - ErrNilGraph               : g is nil.
//   - ErrInvalidCandidate       : a candidate is out of range, a self pair, or absent in g.
//   - ErrInsufficientCandidates : fewer than V−1 edges can be accepted.
//
// Steps:
//  1. Validate g; a single vertex has the empty tree.
//  2. Normalize every candidate and replace its weight with g.Weight(u,v).
//  3. Sort by core.Less: ascending weight, ties by (U, V).
//  4. Union-find over V elements; accept edges joining distinct roots.
//  5. Stop after V−1 acceptances; report ErrInsufficientCandidates otherwise.
//
// The result is in acceptance order. candidates is not modified.
//
// Complexity: O(C log C + C·α(V)) time, O(C + V) memory for C candidates.
func Merge(candidates []core.Edge, g *core.Graph) ([]core.Edge, error) {
	// 1. Validate input graph.
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	if n == 1 {
		return []core.Edge{}, nil
	}

	// 2. Build the weighted pool from the coordinator's own graph.
	pool := make([]core.Edge, 0, len(candidates))
	for i, c := range candidates {
		if c.U < 0 || c.U >= n || c.V < 0 || c.V >= n || c.U == c.V {
			return nil, fmt.Errorf("Merge: candidate %d (%d,%d) with V=%d: %w", i, c.U, c.V, n, ErrInvalidCandidate)
		}
		w := g.Weight(c.U, c.V)
		if core.IsNoEdge(w) {
			return nil, fmt.Errorf("Merge: candidate %d (%d,%d) has no edge: %w", i, c.U, c.V, ErrInvalidCandidate)
		}
		pool = append(pool, core.NewEdge(c.U, c.V, w))
	}

	// 3. Deterministic total order; duplicates end up adjacent.
	core.SortEdges(pool)

	// 4. Kruskal pass.
	set := dsu.New(n)
	mst := make([]core.Edge, 0, n-1)
	for _, e := range pool {
		if !set.Union(e.U, e.V) {
			continue
		}
		mst = append(mst, e)
		// 5. A spanning tree is complete at V−1 edges.
		if len(mst) == n-1 {
			return mst, nil
		}
	}

	return nil, fmt.Errorf("Merge: accepted %d of %d edges from %d candidates: %w",
		len(mst), n-1, len(candidates), ErrInsufficientCandidates)
}

// Graph runs Merge over every edge of g: a plain single-process Kruskal MST.
func Graph(g *core.Graph) ([]core.Edge, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return Merge(g.Edges(), g)
}
