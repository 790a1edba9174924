// SPDX-License-Identifier: MIT
// Package: distmst/core
//
// graph.go - Graph accessors and mutators.
//
// Contract:
//   • Vertex arguments outside [0, n) return ErrVertexOutOfRange; u == v
//     returns ErrLoopNotAllowed.
//   • SetWeight writes both mirrored slots or neither.
//   • Edges lists each real pair once, normalized and sorted by Less.

package core

import "fmt"

// Order returns the number of vertices V.
// Complexity: O(1).
func (g *Graph) Order() int {
	return g.n
}

// Column maps a global vertex v to its compact column inside row r,
// the inverse of Vertex. It fails when v == r (the diagonal is not stored).
// Complexity: O(1).
func (g *Graph) Column(r, v int) (int, error) {
	if err := g.checkPair(r, v); err != nil {
		return 0, err
	}
	if v < r {
		return v, nil
	}

	return v - 1, nil
}

// Vertex maps compact column c of row r back to a global vertex ID:
// c when c < r, c+1 otherwise.
// Complexity: O(1).
func (g *Graph) Vertex(r, c int) (int, error) {
	if r < 0 || r >= g.n || c < 0 || c >= g.n-1 {
		return 0, fmt.Errorf("Vertex(%d,%d): %w", r, c, ErrVertexOutOfRange)
	}
	if c < r {
		return c, nil
	}

	return c + 1, nil
}

// At returns the raw compact entry at row r, column c.
// This is the layout used by the compact matrix text format.
// Complexity: O(1).
func (g *Graph) At(r, c int) (float64, error) {
	if _, err := g.Vertex(r, c); err != nil {
		return 0, err
	}

	return g.weights[r*(g.n-1)+c], nil
}

// Weight returns the weight of pair (u,v), or NoEdge when the pair is absent,
// u == v, or either vertex is out of range.
// Complexity: O(1).
func (g *Graph) Weight(u, v int) float64 {
	c, err := g.Column(u, v)
	if err != nil {
		return NoEdge
	}

	return g.weights[u*(g.n-1)+c]
}

// HasEdge reports whether (u,v) carries a real weight.
func (g *Graph) HasEdge(u, v int) bool {
	return !IsNoEdge(g.Weight(u, v))
}

// SetWeight stores w for the unordered pair (u,v), writing both mirrored slots.
//
// Errors:
//   - ErrVertexOutOfRange: u or v outside [0, V).
//   - ErrLoopNotAllowed:   u == v.
//   - ErrBadWeight:        w is NaN, ±Inf or negative.
//
// Complexity: O(1).
func (g *Graph) SetWeight(u, v int, w float64) error {
	if !validWeight(w) {
		return fmt.Errorf("SetWeight(%d,%d,%g): %w", u, v, w, ErrBadWeight)
	}

	return g.store(u, v, w)
}

// ClearWeight removes the edge (u,v) by storing NoEdge in both slots.
// Complexity: O(1).
func (g *Graph) ClearWeight(u, v int) error {
	return g.store(u, v, NoEdge)
}

func (g *Graph) store(u, v int, w float64) error {
	cu, err := g.Column(u, v)
	if err != nil {
		return err
	}
	cv, _ := g.Column(v, u)
	g.weights[u*(g.n-1)+cu] = w
	g.weights[v*(g.n-1)+cv] = w

	return nil
}

// Edges returns every real edge once, normalized and sorted by Less.
// Complexity: O(V² log V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0)
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if w := g.Weight(u, v); !IsNoEdge(w) {
				edges = append(edges, Edge{U: u, V: v, Weight: w})
			}
		}
	}
	SortEdges(edges)

	return edges
}

// EdgeCount returns the number of real edges.
// Complexity: O(V²).
func (g *Graph) EdgeCount() int {
	count := 0
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if g.HasEdge(u, v) {
				count++
			}
		}
	}

	return count
}

// Clone returns a deep copy of g.
// Complexity: O(V²).
func (g *Graph) Clone() *Graph {
	weights := make([]float64, len(g.weights))
	copy(weights, g.weights)

	return &Graph{n: g.n, fill: g.fill, weights: weights}
}

func (g *Graph) checkPair(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("pair (%d,%d) with V=%d: %w", u, v, g.n, ErrVertexOutOfRange)
	}
	if u == v {
		return fmt.Errorf("pair (%d,%d): %w", u, v, ErrLoopNotAllowed)
	}

	return nil
}
