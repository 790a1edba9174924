// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// impl_random.go - stochastic constructors.
//
// Contract:
//   • p must lie in [0,1]; 0 < p < 1 needs an RNG (WithSeed or WithRand).
//   • RandomConnected always needs an RNG to draw its spanning tree.
//
// Determinism:
//   • Pairs are sampled in (u asc, v asc) order; one RNG draw per pair.
//
// Complexity:
//   • O(n²) time, O(1) extra space beyond the graph.

package builder

import (
	"fmt"

	"github.com/katalvlaran/distmst/core"
)

const (
	methodRandomSparse    = "RandomSparse"
	methodRandomConnected = "RandomConnected"

	probMin = 0.0
	probMax = 1.0
)

func checkProbability(method string, p float64, cfg builderConfig) error {
	if p < probMin || p > probMax {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", method, p, probMin, probMax, ErrInvalidProbability)
	}
	if cfg.rng == nil && p > probMin && p < probMax {
		return fmt.Errorf("%s: rng is required: %w", method, ErrNeedRandSource)
	}

	return nil
}

// bernoulli samples every pair without an edge with probability p, in
// (u asc, v asc) order. p ∈ {0,1} needs no RNG.
func bernoulli(method string, g *core.Graph, cfg builderConfig, p float64) error {
	n := g.Order()
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			// Pairs set by an earlier constructor keep their weight.
			if g.HasEdge(u, v) {
				continue
			}
			// p ∈ {0,1} is decided without a draw.
			take := p == probMax
			if cfg.rng != nil && p > probMin && p < probMax {
				take = cfg.rng.Float64() < p
			}
			if !take {
				continue
			}
			if err := setEdge(method, g, cfg, u, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// RandomSparse includes each unset pair independently with probability p.
// Requires an RNG for 0 < p < 1. The result may be disconnected.
// Complexity: O(n²).
func RandomSparse(p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := checkProbability(methodRandomSparse, p, cfg); err != nil {
			return err
		}
		return bernoulli(methodRandomSparse, g, cfg, p)
	}
}

// RandomConnected first draws a random spanning tree (each vertex v ≥ 1
// attaches to a uniform earlier vertex of a random permutation), then adds
// every other pair with probability p. Always requires an RNG.
// Complexity: O(n²).
func RandomConnected(p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", methodRandomConnected, ErrNeedRandSource)
		}
		if err := checkProbability(methodRandomConnected, p, cfg); err != nil {
			return err
		}
		// 1. Random spanning tree: each vertex hangs off an earlier one.
		order := cfg.rng.Perm(g.Order())
		for i := 1; i < len(order); i++ {
			parent := order[cfg.rng.Intn(i)]
			if err := setEdge(methodRandomConnected, g, cfg, parent, order[i]); err != nil {
				return err
			}
		}
		// 2. Extra pairs; tree edges are skipped by bernoulli.
		return bernoulli(methodRandomConnected, g, cfg, p)
	}
}
