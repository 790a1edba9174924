// SPDX-License-Identifier: MIT

package partition

import "fmt"

// Verify checks that p is well formed and satisfies the covering invariant:
// windows are indexed by rank, hold distinct in-range vertices, and every
// unordered vertex pair co-occurs in at least one window.
// Any violation is reported as ErrUnsupported.
//
// Complexity: O(V² + Σ s²) time, O(V²) bits of memory.
func Verify(p *Plan) error {
	if p == nil || p.V < 1 || len(p.Windows) == 0 {
		return fmt.Errorf("Verify: empty plan: %w", ErrUnsupported)
	}

	v := p.V
	covered := make([]bool, v*v)
	seen := make([]int, v)
	for i := range seen {
		seen[i] = -1
	}

	for k, win := range p.Windows {
		if win.Rank != k {
			return fmt.Errorf("Verify: window %d carries rank %d: %w", k, win.Rank, ErrUnsupported)
		}
		for _, x := range win.Vertices {
			if x < 0 || x >= v {
				return fmt.Errorf("Verify: rank %d vertex %d outside [0,%d): %w", k, x, v, ErrUnsupported)
			}
			if seen[x] == k {
				return fmt.Errorf("Verify: rank %d repeats vertex %d: %w", k, x, ErrUnsupported)
			}
			seen[x] = k
		}
		for _, a := range win.Vertices {
			for _, b := range win.Vertices {
				covered[a*v+b] = true
			}
		}
	}

	for a := 0; a < v; a++ {
		for b := a + 1; b < v; b++ {
			if !covered[a*v+b] {
				return fmt.Errorf("Verify: pair (%d,%d) uncovered by %s plan: %w", a, b, p.Strategy, ErrUnsupported)
			}
		}
	}

	return nil
}

// PlanVerified runs planner and Verify in sequence.
func PlanVerified(planner Planner, v, w int) (*Plan, error) {
	p, err := planner.Plan(v, w)
	if err != nil {
		return nil, err
	}
	if err := Verify(p); err != nil {
		return nil, err
	}

	return p, nil
}
