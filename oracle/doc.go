// SPDX-License-Identifier: MIT

// Package oracle provides the local MST solvers that workers run on their
// subgraph message.
//
// Contract
//
//	Given a validated subgraph.Message, an Oracle returns a minimum spanning
//	forest of the message's real edges, expressed in global vertex IDs and
//	normalized (U < V). A connected subgraph of s vertices yields exactly s−1
//	edges; a disconnected one yields fewer, deterministically.
//
// Tie-breaking
//
//	All solvers order edges by core.Less over global IDs rather than by local
//	position. Every worker therefore agrees on a single strict total order,
//	which makes each local forest a subset-restriction of the same global MST.
//
// Solvers
//
//   - Kruskal: sort + union-find, O(s² log s).
//   - Prim:    dense array Prim restarted per component, O(s²); suits the
//     dense s·(s−1) layout.
//   - Boruvka: lightest-edge-per-component contraction, O(log s) rounds with
//     the per-round minimum search spread over goroutines (errgroup).
//
// Validate checks an oracle result against its message and reports any
// contract breach as ErrOracleFailure.
package oracle
