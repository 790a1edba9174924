// SPDX-License-Identifier: MIT

package partition

import "fmt"

// BlockPairs is a covering design for any W ≥ 1: vertices are cut into b
// contiguous blocks and each worker receives the union of two blocks.
type BlockPairs struct{}

// Name implements Planner.
func (BlockPairs) Name() string { return StrategyBlockPairs }

// Blocks returns the block count used for (v, w): the largest b with
// b(b−1)/2 ≤ w, capped at v. A result of 1 means every worker gets all of V.
func Blocks(v, w int) int {
	b := 2
	for (b+1)*b/2 <= w {
		b++
	}
	if b > v {
		b = v
	}

	return b
}

// Plan implements Planner.
// Complexity: O(W·V) time and memory.
func (BlockPairs) Plan(v, w int) (*Plan, error) {
	if v < 1 || w < 1 {
		return nil, fmt.Errorf("BlockPairs.Plan(V=%d, W=%d): %w", v, w, ErrUnsupported)
	}

	b := Blocks(v, w)
	p := &Plan{V: v, Strategy: StrategyBlockPairs, Windows: make([]Window, w)}
	if b < 2 {
		for k := range p.Windows {
			vertices := make([]int, v)
			for i := range vertices {
				vertices[i] = i
			}
			p.Windows[k] = Window{Rank: k, Shift: 0, Vertices: vertices}
		}

		return p, nil
	}

	// bounds[i] is the first vertex of block i; bounds[b] == v.
	bounds := make([]int, b+1)
	for i := 0; i < b; i++ {
		size := v / b
		if i < v%b {
			size++
		}
		bounds[i+1] = bounds[i] + size
	}

	pairs := make([][2]int, 0, b*(b-1)/2)
	for i := 0; i < b; i++ {
		for j := i + 1; j < b; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	for k := range p.Windows {
		pr := pairs[k%len(pairs)]
		vertices := make([]int, 0, bounds[pr[0]+1]-bounds[pr[0]]+bounds[pr[1]+1]-bounds[pr[1]])
		for _, blk := range pr {
			for x := bounds[blk]; x < bounds[blk+1]; x++ {
				vertices = append(vertices, x)
			}
		}
		p.Windows[k] = Window{Rank: k, Shift: cyclicShift(v, vertices), Vertices: vertices}
	}

	return p, nil
}
