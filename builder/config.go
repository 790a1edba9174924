// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// config.go - resolved builder configuration.
//
//   • builderConfig is built once per BuildGraph call and passed by value.
//   • Without WithWeightFn every edge gets weight 1.

package builder

import "math/rand"

// defaultConstWeight is the edge weight when no WeightFn is configured.
const defaultConstWeight = 1.0

// builderConfig holds the resolved knobs. Passed by value to constructors.
type builderConfig struct {
	// rng drives stochastic choices; nil means no randomness.
	rng *rand.Rand
	// weightFn draws one weight per emitted pair.
	weightFn WeightFn
}

// newBuilderConfig applies opts in order over deterministic defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{weightFn: ConstantWeightFn(defaultConstWeight)}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// weight draws the next weight.
func (c builderConfig) weight() float64 {
	return c.weightFn(c.rng)
}
