// SPDX-License-Identifier: MIT

package oracle

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/dsu"
	"github.com/katalvlaran/distmst/subgraph"
)

// minChunk is the smallest edge slice handed to one goroutine.
const minChunk = 256

// Boruvka is the contraction solver: every round each component picks its
// lightest outgoing edge and all picks are contracted at once.
// The per-component minimum search is split across goroutines.
type Boruvka struct {
	// Parallelism caps the goroutines per round; 0 means GOMAXPROCS.
	Parallelism int
}

// Name implements Oracle.
func (Boruvka) Name() string { return NameBoruvka }

// LocalMST implements Oracle.
//
// Steps:
//  1. Decode the real edges once, in global IDs.
//  2. Each round, chunks of the edge list compute a per-component lightest
//     crossing edge under core.Less; the chunk minima are then reduced.
//  3. Every component's pick joins the forest unless an earlier pick of the
//     same round already joined the two components.
//  4. Edges inside a component are dropped; a round without picks ends the
//     search, which leaves a spanning forest on disconnected input.
//
// core.Less is a strict total order, so contracting all picks never closes
// a cycle and the forest equals Kruskal's.
//
// Complexity: O(E log s) comparisons over O(log s) rounds, E ≤ s(s−1)/2.
func (b Boruvka) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	s := msg.Size()
	if s < 2 {
		return []core.Edge{}, nil
	}

	// 1. Edges with local endpoints for the component lookups.
	local := localIndex(msg)
	edges := msg.Edges()
	lu := make([]int, len(edges))
	lv := make([]int, len(edges))
	for i, e := range edges {
		lu[i], lv[i] = local[e.U], local[e.V]
	}

	set := dsu.New(s)
	forest := make([]core.Edge, 0, s-1)
	workers := b.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for len(forest) < s-1 && len(edges) > 0 {
		// 2. Component of every vertex, frozen for this round.
		comp := make([]int, s)
		for v := range comp {
			comp[v] = set.Find(v)
		}
		best, err := lightest(edges, lu, lv, comp, workers)
		if err != nil {
			return nil, err
		}

		// 3. Contract the picks in vertex order for a stable result.
		picked := false
		for c := 0; c < s; c++ {
			i := best[c]
			if i < 0 {
				continue
			}
			if set.Union(lu[i], lv[i]) {
				forest = append(forest, edges[i])
				picked = true
			}
		}
		if !picked {
			break
		}

		// 4. Keep only edges that still cross components.
		keep := 0
		for i := range edges {
			if set.Find(lu[i]) != set.Find(lv[i]) {
				edges[keep], lu[keep], lv[keep] = edges[i], lu[i], lv[i]
				keep++
			}
		}
		edges, lu, lv = edges[:keep], lu[:keep], lv[:keep]
	}

	return forest, nil
}

// lightest returns, per component root, the index of its lightest crossing
// edge or −1.
func lightest(edges []core.Edge, lu, lv, comp []int, workers int) ([]int, error) {
	s := len(comp)
	chunk := (len(edges) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	parts := (len(edges) + chunk - 1) / chunk
	partial := make([][]int, parts)

	var g errgroup.Group
	g.SetLimit(workers)
	for p := 0; p < parts; p++ {
		p := p
		lo, hi := p*chunk, (p+1)*chunk
		if hi > len(edges) {
			hi = len(edges)
		}
		g.Go(func() error {
			best := newBest(s)
			for i := lo; i < hi; i++ {
				cu, cv := comp[lu[i]], comp[lv[i]]
				if cu == cv {
					continue
				}
				offer(best, edges, cu, i)
				offer(best, edges, cv, i)
			}
			partial[p] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Reduce chunk minima.
	best := newBest(s)
	for _, part := range partial {
		for c, i := range part {
			if i >= 0 {
				offer(best, edges, c, i)
			}
		}
	}

	return best, nil
}

func newBest(s int) []int {
	best := make([]int, s)
	for i := range best {
		best[i] = -1
	}

	return best
}

// offer records edge i for component c when it beats the current pick.
func offer(best []int, edges []core.Edge, c, i int) {
	if best[c] < 0 || core.Less(edges[i], edges[best[c]]) {
		best[c] = i
	}
}
