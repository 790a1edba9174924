// SPDX-License-Identifier: MIT

// Package subgraph materializes the dense per-worker subgraph message that the
// coordinator ships to each worker, and decodes it on the worker side.
//
// For a window of s vertices the message carries exactly s·(s−1) triples
// (localU, localV, weight): every ordered pair of distinct local positions.
// Row i enumerates columns j in [0, s−1) and remaps each to local vertex
// j when j < i and j+1 otherwise, so no self pair ever occupies a slot.
// Weights come from the global pair (Subset[localU], Subset[localV]);
// absent pairs carry core.NoEdge.
//
// A Message is a self-contained copy: workers never see the coordinator's
// graph.
package subgraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/partition"
)

// ErrMalformed indicates a message whose shape or contents break the
// s·(s−1) triple layout.
var ErrMalformed = errors.New("subgraph: malformed message")

// Triple is one (localU, localV, weight) entry.
type Triple struct {
	U      int
	V      int
	Weight float64
}

// Message is the subgraph assigned to one worker.
type Message struct {
	// Rank is the receiving worker.
	Rank int

	// V is the global vertex count.
	V int

	// Shift is the cyclic offset of the window, or partition.NoShift.
	Shift int

	// Subset maps local index i to global vertex Subset[i].
	Subset []int

	// Triples holds s·(s−1) entries in row-major (i, j) order.
	Triples []Triple
}

// Size returns s, the number of local vertices.
func (m *Message) Size() int {
	return len(m.Subset)
}

// LocalColumn applies the self-skipping remap: column j of row i stands for
// local vertex j when j < i and j+1 otherwise.
func LocalColumn(i, j int) int {
	if j < i {
		return j
	}

	return j + 1
}

// Build produces the message for window win over graph g.
//
// Errors:
//   - core.ErrVertexOutOfRange: win names a vertex outside g.
//
// Complexity: O(s²) time and memory.
func Build(g *core.Graph, win partition.Window) (*Message, error) {
	s := win.Size()
	subset := make([]int, s)
	copy(subset, win.Vertices)
	for _, x := range subset {
		if x < 0 || x >= g.Order() {
			return nil, fmt.Errorf("Build(rank %d): vertex %d: %w", win.Rank, x, core.ErrVertexOutOfRange)
		}
	}

	m := &Message{
		Rank:    win.Rank,
		V:       g.Order(),
		Shift:   win.Shift,
		Subset:  subset,
		Triples: make([]Triple, 0, TripleCount(s)),
	}
	for i := 0; i < s; i++ {
		for j := 0; j < s-1; j++ {
			col := LocalColumn(i, j)
			m.Triples = append(m.Triples, Triple{
				U:      i,
				V:      col,
				Weight: g.Weight(subset[i], subset[col]),
			})
		}
	}

	return m, nil
}

// TripleCount returns s·(s−1), the triple count of a window of size s.
func TripleCount(s int) int {
	if s < 1 {
		return 0
	}

	return s * (s - 1)
}

// Global maps local index i to its global vertex.
func (m *Message) Global(i int) (int, error) {
	if i < 0 || i >= len(m.Subset) {
		return 0, fmt.Errorf("Global(%d) with s=%d: %w", i, len(m.Subset), ErrMalformed)
	}

	return m.Subset[i], nil
}

// Validate checks the message layout: distinct in-range subset, exactly
// s·(s−1) triples in row-major remap order, and weights that are either
// valid or core.NoEdge.
// Complexity: O(s²) time, O(V) memory.
func (m *Message) Validate() error {
	if m == nil {
		return fmt.Errorf("Validate: nil message: %w", ErrMalformed)
	}
	if m.V < 1 || len(m.Subset) > m.V {
		return fmt.Errorf("Validate: s=%d with V=%d: %w", len(m.Subset), m.V, ErrMalformed)
	}
	seen := make(map[int]struct{}, len(m.Subset))
	for _, x := range m.Subset {
		if x < 0 || x >= m.V {
			return fmt.Errorf("Validate: vertex %d outside [0,%d): %w", x, m.V, ErrMalformed)
		}
		if _, dup := seen[x]; dup {
			return fmt.Errorf("Validate: vertex %d repeated: %w", x, ErrMalformed)
		}
		seen[x] = struct{}{}
	}

	s := len(m.Subset)
	if len(m.Triples) != TripleCount(s) {
		return fmt.Errorf("Validate: %d triples, want %d: %w", len(m.Triples), TripleCount(s), ErrMalformed)
	}
	for i := 0; i < s; i++ {
		for j := 0; j < s-1; j++ {
			t := m.Triples[i*(s-1)+j]
			if t.U != i || t.V != LocalColumn(i, j) {
				return fmt.Errorf("Validate: triple %d is (%d,%d), want (%d,%d): %w",
					i*(s-1)+j, t.U, t.V, i, LocalColumn(i, j), ErrMalformed)
			}
			if !core.IsNoEdge(t.Weight) && (t.Weight < 0 || math.IsNaN(t.Weight)) {
				return fmt.Errorf("Validate: triple %d weight %g: %w", i*(s-1)+j, t.Weight, ErrMalformed)
			}
		}
	}

	return nil
}

// Edges decodes the real edges of the message in global IDs, once per
// unordered pair, normalized and sorted by core.Less.
// The message must have passed Validate.
// Complexity: O(s² log s).
func (m *Message) Edges() []core.Edge {
	edges := make([]core.Edge, 0, len(m.Triples)/2)
	for _, t := range m.Triples {
		if t.U >= t.V || core.IsNoEdge(t.Weight) {
			continue
		}
		edges = append(edges, core.NewEdge(m.Subset[t.U], m.Subset[t.V], t.Weight))
	}
	core.SortEdges(edges)

	return edges
}
