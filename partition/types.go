// SPDX-License-Identifier: MIT

package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported indicates a (V, W) combination the chosen covering
	// construction cannot serve, or a plan that violates the covering invariant.
	ErrUnsupported = errors.New("partition: unsupported vertex/worker combination")

	// ErrUnknownStrategy indicates an unrecognized planner name.
	ErrUnknownStrategy = errors.New("partition: unknown strategy")

	// ErrNoWindow indicates a rank with no window in the plan.
	ErrNoWindow = errors.New("partition: no window for rank")
)

// Strategy names accepted by ByName.
const (
	StrategyThirds     = "thirds"
	StrategyBlockPairs = "blockpairs"
)

// NoShift marks a window whose vertices are not a single cyclic range.
const NoShift = -1

// Window is the vertex subset assigned to one worker.
type Window struct {
	// Rank is the worker index; rank 0 is the coordinator.
	Rank int

	// Shift is the cyclic offset when Vertices[i] == (i+Shift) mod V for all i,
	// otherwise NoShift.
	Shift int

	// Vertices lists the global IDs in local order: local index i is Vertices[i].
	Vertices []int
}

// Size returns the number of vertices in the window.
func (w Window) Size() int {
	return len(w.Vertices)
}

// Plan is the ordered window assignment for one run.
type Plan struct {
	// V is the global vertex count.
	V int

	// Strategy names the planner that produced the plan.
	Strategy string

	// Windows holds one window per worker, indexed by rank.
	Windows []Window
}

// Workers returns the number of windows (W).
func (p *Plan) Workers() int {
	return len(p.Windows)
}

// Window returns the window of the given rank.
func (p *Plan) Window(rank int) (Window, error) {
	if rank < 0 || rank >= len(p.Windows) {
		return Window{}, fmt.Errorf("Window(%d) of %d: %w", rank, len(p.Windows), ErrNoWindow)
	}

	return p.Windows[rank], nil
}

// Planner computes a covering plan for V vertices and W workers.
// Implementations are pluggable covering designs.
type Planner interface {
	// Name identifies the strategy.
	Name() string

	// Plan returns W windows over [0,V) or ErrUnsupported.
	Plan(v, w int) (*Plan, error)
}

// ByName returns the planner registered under name.
func ByName(name string) (Planner, error) {
	switch name {
	case StrategyThirds:
		return Thirds{}, nil
	case StrategyBlockPairs:
		return BlockPairs{}, nil
	default:
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownStrategy)
	}
}

// cyclicShift returns vertices[0] when vertices is the cyclic range
// vertices[0], vertices[0]+1, ... mod v, and NoShift otherwise.
func cyclicShift(v int, vertices []int) int {
	if len(vertices) == 0 {
		return NoShift
	}
	start := vertices[0]
	for i, x := range vertices {
		if x != (start+i)%v {
			return NoShift
		}
	}

	return start
}
