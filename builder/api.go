// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// api.go - BuildGraph entry point and the Constructor contract.
//
// Contract:
//   • BuildGraph allocates an empty core.Graph, resolves options once and
//     applies constructors in argument order.
//   • Constructors return sentinel errors wrapped with their method name;
//     they never panic.
//   • The first failing constructor aborts the build; no partial graph is
//     returned.
//
// Determinism:
//   • Constructors visit pairs in a fixed order, so a seeded RNG yields the
//     same graph on every run.

package builder

import (
	"fmt"

	"github.com/katalvlaran/distmst/core"
)

// Constructor sets edges on g using the resolved builderConfig.
// Constructors validate parameters first and return sentinel errors.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates an n-vertex graph with no edges, resolves bopts and
// applies cons in order. Errors are wrapped as "BuildGraph: %w".
// Complexity: O(n²) for the graph plus the cost of each constructor.
func BuildGraph(n int, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g, err := core.NewGraph(n)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}
	// Options resolve once; every constructor sees the same RNG stream.
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// setEdge draws a weight for (u,v) and stores it.
func setEdge(method string, g *core.Graph, cfg builderConfig, u, v int) error {
	w := cfg.weight()
	if err := g.SetWeight(u, v, w); err != nil {
		return fmt.Errorf("%s: SetWeight(%d,%d,%g): %v: %w", method, u, v, w, err, ErrConstructFailed)
	}

	return nil
}
