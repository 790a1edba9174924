// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// impl_topology.go - deterministic topologies: Complete, Path, Cycle, Star.
//
// Contract:
//   • Each constructor checks its minimum order before touching the graph.
//   • Weights come from the configured WeightFn, one draw per edge in the
//     order edges are set.

package builder

import (
	"fmt"

	"github.com/katalvlaran/distmst/core"
)

const (
	methodComplete = "Complete"
	methodPath     = "Path"
	methodCycle    = "Cycle"
	methodStar     = "Star"

	minPathNodes  = 2
	minCycleNodes = 3
	minStarNodes  = 2
)

// Complete sets every pair, in (u asc, v asc) order.
// Complexity: O(n²).
func Complete() Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.Order()
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if err := setEdge(methodComplete, g, cfg, u, v); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Path sets edges (i−1,i) for i = 1..n−1.
func Path() Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.Order()
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		for i := 1; i < n; i++ {
			if err := setEdge(methodPath, g, cfg, i-1, i); err != nil {
				return err
			}
		}
		return nil
	}
}

// Cycle is Path plus the closing edge (n−1,0).
func Cycle() Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.Order()
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		for i := 1; i < n; i++ {
			if err := setEdge(methodCycle, g, cfg, i-1, i); err != nil {
				return err
			}
		}
		// Close the ring.
		return setEdge(methodCycle, g, cfg, n-1, 0)
	}
}

// Star joins center to every other vertex in ascending order.
func Star(center int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		n := g.Order()
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		if center < 0 || center >= n {
			return fmt.Errorf("%s: center %d: %w", methodStar, center, core.ErrVertexOutOfRange)
		}
		for v := 0; v < n; v++ {
			if v == center { // no self-loop
				continue
			}
			if err := setEdge(methodStar, g, cfg, center, v); err != nil {
				return err
			}
		}
		return nil
	}
}
