// SPDX-License-Identifier: MIT

// Package core defines the graph model shared by every stage of the
// distributed MST pipeline: integer vertices, normalized weighted edges with
// a deterministic total order, and a compact dense Graph.
//
// Graph layout
//
//	The Graph stores a V×(V−1) row-major weight table with the diagonal
//	omitted. Column c of row r stands for vertex c when c < r and for
//	vertex c+1 otherwise:
//
//	  row 0: (0,1) (0,2) (0,3)
//	  row 1: (1,0) (1,2) (1,3)
//	  row 2: (2,0) (2,1) (2,3)
//	  row 3: (3,0) (3,1) (3,2)
//
//	SetWeight keeps both mirrored slots in sync, so Weight(u,v) == Weight(v,u).
//
// Absent edges
//
//	NoEdge (+Inf) marks a pair with no edge. It is never a valid weight:
//	SetWeight rejects NaN, ±Inf and negative values with ErrBadWeight, and
//	ClearWeight is the only way to store NoEdge.
//
// Edge order
//
//	Less orders edges by weight, then by U, then by V. Edges are normalized
//	so that U < V, which makes the order total for simple graphs and lets
//	every process break ties the same way.
//
// Presentation
//
//	FormatMST renders an edge sequence as "u0-v0/u1-v1/.../uk-vk".
//
// Concurrency
//
//	A Graph is populated once and then read-only. Concurrent reads are safe;
//	mutation concurrent with reads is not.
package core
