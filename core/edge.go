// SPDX-License-Identifier: MIT
// Package: distmst/core
//
// edge.go - Edge ordering and MST formatting.
//
// Determinism:
//   • Less orders by weight, then U, then V. It is a strict total order over
//     normalized edges, which makes the minimum spanning forest unique.

package core

import (
	"sort"
	"strconv"
	"strings"
)

// NewEdge returns the normalized edge {min(u,v), max(u,v), w}.
func NewEdge(u, v int, w float64) Edge {
	if u > v {
		u, v = v, u
	}

	return Edge{U: u, V: v, Weight: w}
}

// Less is the total edge order used across the module:
// ascending weight, then ascending U, then ascending V.
func Less(a, b Edge) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.U != b.U {
		return a.U < b.U
	}

	return a.V < b.V
}

// SortEdges sorts edges in place by Less.
// Complexity: O(E log E).
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool { return Less(edges[i], edges[j]) })
}

// String renders the edge as "u-v".
func (e Edge) String() string {
	return strconv.Itoa(e.U) + "-" + strconv.Itoa(e.V)
}

// FormatMST renders edges as "u0-v0/u1-v1/.../uk-vk" with no trailing
// separator. An empty sequence renders as "".
func FormatMST(edges []Edge) string {
	var sb strings.Builder
	for i, e := range edges {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(e.String())
	}

	return sb.String()
}

// TotalWeight sums the weights of edges.
func TotalWeight(edges []Edge) float64 {
	var total float64
	for _, e := range edges {
		total += e.Weight
	}

	return total
}
