// SPDX-License-Identifier: MIT
// Package: distmst/builder
//
// errors.go - sentinel errors of the builder package.
//
//   • Callers match with errors.Is; messages carry the method name and the
//     offending parameter.

package builder

import "errors"

var (
	// ErrTooFewVertices indicates that a topology needs more vertices than the graph has.
	ErrTooFewVertices = errors.New("builder: too few vertices")

	// ErrInvalidProbability indicates an edge probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor without WithSeed or WithRand.
	ErrNeedRandSource = errors.New("builder: random source required")

	// ErrConstructFailed indicates a nil constructor or a rejected weight.
	ErrConstructFailed = errors.New("builder: construction failed")
)
