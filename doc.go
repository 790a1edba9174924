// SPDX-License-Identifier: MIT

// Package distmst computes exact minimum spanning trees of dense weighted
// undirected graphs across a small cluster of workers.
//
// The vertex set is split into overlapping windows so that every pair of
// vertices shares at least one window. Each worker solves the minimum
// spanning forest of its window; the coordinator merges the union of those
// forests with one Kruskal pass. Because every edge of the true MST is the
// lightest edge across some cut inside a window that holds both endpoints,
// the merged tree is exact.
//
// Layout:
//
//	core/       dense Graph, Edge, total edge order, tree formatting
//	dsu/        union-find with iterative path compression
//	partition/  covering planners: Thirds (W=3) and BlockPairs (any W)
//	subgraph/   window messages with the column-remap layout
//	oracle/     local solvers (Kruskal, Prim) and their result contract
//	merge/      the coordinator's Kruskal reducer and a gonum cross-check
//	cluster/    Coordinator, Worker, Loopback and net/rpc transports
//	loader/     compact matrix and CSV edge-list readers
//	builder/    deterministic fixture generators
//	store/      bbolt and badger run persistence
//	config/     YAML, .env and environment configuration
//	logging/    zap logger construction
//	cmd/        node (multi-process) and standalone binaries
package distmst
