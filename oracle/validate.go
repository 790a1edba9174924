// SPDX-License-Identifier: MIT

package oracle

import (
	"fmt"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/dsu"
	"github.com/katalvlaran/distmst/subgraph"
)

// Validate checks that edges is a plausible spanning forest of msg:
// at most s−1 edges, every edge normalized with both endpoints in the subset,
// weights equal to the message's weight for that pair, and no cycles.
// Any breach is reported as ErrOracleFailure.
// Complexity: O(s² + k·α(s)) for k edges.
func Validate(msg *subgraph.Message, edges []core.Edge) error {
	s := msg.Size()
	limit := s - 1
	if limit < 0 {
		limit = 0
	}
	if len(edges) > limit {
		return fmt.Errorf("Validate(rank %d): %d edges, limit %d: %w", msg.Rank, len(edges), limit, ErrOracleFailure)
	}

	local := localIndex(msg)
	weights := make(map[[2]int]float64, len(msg.Triples)/2)
	for _, t := range msg.Triples {
		if t.U < t.V && !core.IsNoEdge(t.Weight) {
			e := core.NewEdge(msg.Subset[t.U], msg.Subset[t.V], t.Weight)
			weights[[2]int{e.U, e.V}] = e.Weight
		}
	}

	set := dsu.New(s)
	for _, e := range edges {
		if e.U >= e.V {
			return fmt.Errorf("Validate(rank %d): edge %s not normalized: %w", msg.Rank, e, ErrOracleFailure)
		}
		lu, okU := local[e.U]
		lv, okV := local[e.V]
		if !okU || !okV {
			return fmt.Errorf("Validate(rank %d): edge %s outside subset: %w", msg.Rank, e, ErrOracleFailure)
		}
		w, ok := weights[[2]int{e.U, e.V}]
		if !ok {
			return fmt.Errorf("Validate(rank %d): edge %s absent from subgraph: %w", msg.Rank, e, ErrOracleFailure)
		}
		if w != e.Weight {
			return fmt.Errorf("Validate(rank %d): edge %s weight %g, want %g: %w", msg.Rank, e, e.Weight, w, ErrOracleFailure)
		}
		if !set.Union(lu, lv) {
			return fmt.Errorf("Validate(rank %d): edge %s closes a cycle: %w", msg.Rank, e, ErrOracleFailure)
		}
	}

	return nil
}
