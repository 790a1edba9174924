// SPDX-License-Identifier: MIT

package partition

import "fmt"

// ThirdsWorkers is the only worker count the Thirds construction serves.
const ThirdsWorkers = 3

// Thirds is the cyclic two-thirds window, one-third shift covering.
type Thirds struct{}

// Name implements Planner.
func (Thirds) Name() string { return StrategyThirds }

// ShiftStep returns ⌊V/3⌋, the shift between consecutive windows.
func ShiftStep(v int) int {
	return v / 3
}

// WindowSize returns V − ⌊V/3⌋, which equals ⌈2V/3⌉ and equals ⌊2V/3⌋
// whenever 3 divides V.
func WindowSize(v int) int {
	return v - ShiftStep(v)
}

// Plan implements Planner.
//
// Window k holds (i + k·⌊V/3⌋) mod V for i in [0, WindowSize(V)).
// W other than 3 is rejected: fewer windows undercover, more need a
// generalized design such as BlockPairs.
//
// Complexity: O(V) time and memory.
func (Thirds) Plan(v, w int) (*Plan, error) {
	if v < 1 {
		return nil, fmt.Errorf("Thirds.Plan(V=%d): %w", v, ErrUnsupported)
	}
	if w != ThirdsWorkers {
		return nil, fmt.Errorf("Thirds.Plan(V=%d, W=%d): need W=%d: %w", v, w, ThirdsWorkers, ErrUnsupported)
	}

	s, step := WindowSize(v), ShiftStep(v)
	p := &Plan{V: v, Strategy: StrategyThirds, Windows: make([]Window, w)}
	for k := 0; k < w; k++ {
		shift := k * step
		vertices := make([]int, s)
		for i := range vertices {
			vertices[i] = (i + shift) % v
		}
		p.Windows[k] = Window{Rank: k, Shift: shift, Vertices: vertices}
	}

	return p, nil
}
