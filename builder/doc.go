// SPDX-License-Identifier: MIT

// Package builder provides deterministic fixture generators for core.Graph.
//
// A generator is a Constructor closure applied by BuildGraph to a fresh graph
// of fixed order n. Constructors compose: later constructors overwrite the
// weights of pairs set by earlier ones.
//
// Components:
//
//   - Configuration:
//     BuilderOption mutates builderConfig before use (WithSeed, WithRand,
//     WithWeightFn).
//   - Topologies:
//     Complete, Path, Cycle, Star, RandomSparse, RandomConnected.
//   - Weight distributions (WeightFn):
//     ConstantWeightFn, UniformWeightFn, IntegerWeightFn.
//
// Guarantees:
//
//   - Same n, options, seed and constructor order give the same graph.
//   - Option constructors panic on meaningless input; Constructors never
//     panic and return sentinel errors.
//   - RandomConnected always yields a connected graph, which is what the
//     distributed MST tests and benchmarks need.
package builder
