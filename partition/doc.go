// SPDX-License-Identifier: MIT

// Package partition assigns overlapping vertex subsets ("windows") to the
// workers of a distributed MST run.
//
// Covering invariant
//
//	Every unordered pair {a,b}, a≠b, of vertices in [0,V) must appear together
//	in at least one window. With a strict total edge order, an edge of the
//	global MST is also an edge of the local MST of any vertex subset that
//	contains both endpoints (cycle property), so covering every pair
//	guarantees that every global MST edge reaches the candidate pool.
//
// Strategies
//
//   - Thirds: three cyclic windows of size s = V − ⌊V/3⌋ (= ⌈2V/3⌉) with
//     shifts 0, ⌊V/3⌋, 2⌊V/3⌋. Each window misses one contiguous block of
//     ⌊V/3⌋ vertices: [V−q,V), [0,q) and [q,2q) for q = ⌊V/3⌋. The three missed
//     blocks are pairwise disjoint (2q ≤ V−q), so a pair {a,b} would need all
//     three blocks to contain a or b, which two vertices cannot do. Requires
//     exactly W = 3.
//
//   - BlockPairs: splits [0,V) into b contiguous blocks, b maximal with
//     b(b−1)/2 ≤ W, and hands each worker the union of one pair of blocks.
//     Any two vertices live in at most two blocks, and every block pair is
//     assigned, so the invariant holds for every W ≥ 1. Extra workers repeat
//     block pairs round-robin.
//
// Verify re-checks the invariant on any Plan so that a faulty strategy fails
// fast with ErrUnsupported instead of producing an incomplete candidate pool.
package partition
