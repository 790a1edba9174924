// SPDX-License-Identifier: MIT
// Package: distmst/core
//
// types.go - Graph, Edge and the absent-pair sentinel.
//
// Contract:
//   • A Graph has a fixed order n in [1, MaxOrder] and stores the dense
//     n·(n−1) column layout; pair (u,v) and (v,u) always hold the same weight.
//   • Absent pairs hold NoEdge (+Inf); valid weights are finite and ≥ 0.
//
// Complexity:
//   • NewGraph is O(n²) time and memory.

package core

import (
	"errors"
	"math"
)

// Sentinel errors for core graph operations.
var (
	// ErrBadOrder indicates a vertex count below one or above MaxOrder.
	ErrBadOrder = errors.New("core: graph order out of range")

	// ErrVertexOutOfRange indicates a vertex ID outside [0, V).
	ErrVertexOutOfRange = errors.New("core: vertex out of range")

	// ErrLoopNotAllowed indicates an edge from a vertex to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrBadWeight indicates a NaN, infinite or negative weight.
	ErrBadWeight = errors.New("core: bad edge weight")
)

// MaxOrder is the largest vertex count NewGraph accepts. Dense storage takes
// 8·n·(n−1) bytes, about 2 GiB at this order.
const MaxOrder = 1 << 14

// NoEdge is the weight sentinel for an absent vertex pair.
// It compares greater than every valid weight.
var NoEdge = math.Inf(1)

// IsNoEdge reports whether w is the absent-edge sentinel.
func IsNoEdge(w float64) bool {
	return math.IsInf(w, 1)
}

// Edge is an undirected weighted edge between two vertices.
//
// Edges produced by this module are normalized: U < V.
type Edge struct {
	// U is the smaller endpoint.
	U int

	// V is the larger endpoint.
	V int

	// Weight is the cost of the edge.
	Weight float64
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithFill initializes every vertex pair with weight w, producing a complete
// graph. A NoEdge fill is the default. Invalid fills are ignored so that
// NewGraph never panics.
func WithFill(w float64) GraphOption {
	return func(g *Graph) {
		if validWeight(w) {
			g.fill = w
		}
	}
}

// Graph is a dense undirected weighted graph over vertices [0, V).
//
// weights holds V*(V-1) entries, row-major with the diagonal omitted.
type Graph struct {
	n       int
	fill    float64
	weights []float64
}

// NewGraph creates a graph with n vertices and no edges (unless WithFill).
// Returns ErrBadOrder when n < 1 or n > MaxOrder.
// Complexity: O(n²) time and memory.
func NewGraph(n int, opts ...GraphOption) (*Graph, error) {
	if n < 1 || n > MaxOrder {
		return nil, ErrBadOrder
	}
	g := &Graph{n: n, fill: NoEdge}
	for _, opt := range opts {
		opt(g)
	}

	g.weights = make([]float64, n*(n-1))
	for i := range g.weights {
		g.weights[i] = g.fill
	}

	return g, nil
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
