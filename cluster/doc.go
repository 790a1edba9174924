// SPDX-License-Identifier: MIT

// Package cluster runs the coordinator/worker protocol of the distributed MST.
//
// A Coordinator owns the graph. It plans the overlapping windows, builds one
// subgraph message per rank, sends ranks 1..W−1 through a Transport, solves
// rank 0 itself, gathers every local spanning forest in rank order and hands
// the candidate pool to merge.Merge.
//
// Two transports are provided:
//
//	Loopback     - in-process; each message runs on its own goroutine under
//	               an errgroup. Used by cmd/standalone and tests.
//	RPCTransport - net/rpc over TCP (gob framing). Workers run Serve and
//	               expose WorkerService.Compute.
//
// Results are variable length: every Result carries Count, the number of
// edges that follow, and Count ≤ s−1 for a window of size s.
//
// Failures are fatal for the run. A transport error surfaces as
// ErrTransport, a malformed worker answer as oracle.ErrOracleFailure.
// Nothing is retried.
package cluster
