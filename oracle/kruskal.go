// SPDX-License-Identifier: MIT

package oracle

import (
	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/dsu"
	"github.com/katalvlaran/distmst/subgraph"
)

// Kruskal is the sort-and-union local solver.
type Kruskal struct{}

// Name implements Oracle.
func (Kruskal) Name() string { return NameKruskal }

// LocalMST implements Oracle.
//
// Steps:
//  1. Decode the real edges in global IDs, sorted by core.Less.
//  2. Index the subset so union-find runs over s local slots.
//  3. Accept each edge joining two components; stop at s−1 edges.
//
// Complexity: O(s² log s) time, O(s²) memory.
func (Kruskal) LocalMST(msg *subgraph.Message) ([]core.Edge, error) {
	s := msg.Size()
	if s < 2 {
		return []core.Edge{}, nil
	}

	edges := msg.Edges()
	local := localIndex(msg)
	set := dsu.New(s)
	forest := make([]core.Edge, 0, s-1)
	for _, e := range edges {
		if set.Union(local[e.U], local[e.V]) {
			forest = append(forest, e)
			if len(forest) == s-1 {
				break
			}
		}
	}

	return forest, nil
}

// localIndex maps each global vertex of msg to its local position.
func localIndex(msg *subgraph.Message) map[int]int {
	local := make(map[int]int, len(msg.Subset))
	for i, x := range msg.Subset {
		local[x] = i
	}

	return local
}
