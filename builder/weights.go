// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// weights.go - weight generators for WithWeightFn.
//
//   • Generator constructors panic on invalid ranges.
//   • Every generated weight is finite and non-negative, as core requires.

package builder

import (
	"fmt"
	"math/rand"
)

// WeightFn draws one edge weight. rng may be nil for deterministic functions.
type WeightFn func(rng *rand.Rand) float64

// ConstantWeightFn always returns w. Panics if w is negative.
func ConstantWeightFn(w float64) WeightFn {
	if w < 0 {
		panic(fmt.Sprintf("builder: ConstantWeightFn(%g)", w))
	}
	return func(*rand.Rand) float64 { return w }
}

// UniformWeightFn draws from U[min,max). Without an RNG it returns min.
// Panics unless 0 ≤ min ≤ max.
func UniformWeightFn(min, max float64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("builder: UniformWeightFn(%g,%g)", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return min
		}
		return min + rng.Float64()*(max-min)
	}
}

// IntegerWeightFn draws integers uniformly from [min,max]. Narrow ranges
// produce many equal weights, which exercises tie-breaking.
// Without an RNG it returns min. Panics unless 0 ≤ min ≤ max.
func IntegerWeightFn(min, max int) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("builder: IntegerWeightFn(%d,%d)", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return float64(min)
		}
		return float64(min + rng.Intn(max-min+1))
	}
}
