// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// options.go - functional options for BuildGraph.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors panic on meaningless inputs such as a nil RNG or
//     a nil WeightFn. Constructors themselves never panic.
//   • Seeding is explicit through WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded RNG; use it to lock outcomes in tests.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the per-pair weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}
