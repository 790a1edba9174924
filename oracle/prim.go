// SPDX-License-Identifier: MIT

package oracle

import (
	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/subgraph"
)

// Prim is the dense array-based local solver.
type Prim struct{}

// Name implements Oracle.
func (Prim) Name() string { return NamePrim }

// LocalMST implements Oracle.
//
// Steps:
//  1. Load the s×s weight table straight from the triples.
//  2. Grow a tree from the lowest unvisited local vertex; the next vertex is
//     the one whose best connecting edge is smallest under core.Less.
//  3. When no outside vertex is reachable, restart from the next unvisited
//     vertex, which yields a spanning forest on disconnected input.
//
// Complexity: O(s²) time and memory.
func (Prim) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	s := msg.Size()
	if s < 2 {
		return []core.Edge{}, nil
	}

	dist := make([]float64, s*s)
	for i := range dist {
		dist[i] = core.NoEdge
	}
	for _, t := range msg.Triples {
		dist[t.U*s+t.V] = t.Weight
	}

	inTree := make([]bool, s)
	best := make([]core.Edge, s)
	reachable := make([]bool, s)
	forest := make([]core.Edge, 0, s-1)

	for root := 0; root < s; root++ {
		if inTree[root] {
			continue
		}
		u := root
		for u >= 0 {
			inTree[u] = true
			if u != root {
				forest = append(forest, best[u])
			}
			// Relax edges out of u.
			for v := 0; v < s; v++ {
				w := dist[u*s+v]
				if inTree[v] || core.IsNoEdge(w) {
					continue
				}
				cand := core.NewEdge(msg.Subset[u], msg.Subset[v], w)
				if !reachable[v] || core.Less(cand, best[v]) {
					best[v] = cand
					reachable[v] = true
				}
			}
			// Pick the outside vertex with the smallest connecting edge.
			u = -1
			for v := 0; v < s; v++ {
				if inTree[v] || !reachable[v] {
					continue
				}
				if u < 0 || core.Less(best[v], best[u]) {
					u = v
				}
			}
		}
	}

	return forest, nil
}
