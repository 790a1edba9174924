// SPDX-License-Identifier: MIT

// Package dsu provides a disjoint-set (union-find) forest over the integer
// elements [0, n), with path compression in Find and union by rank in Union.
//
// Find is iterative: it walks to the root, then rewrites every node on the
// path to point at the root. The result is the same flattening a recursive
// find produces, without recursion depth proportional to the path length.
//
// Complexity: Find and Union run in O(α(n)) amortized time; memory is O(n).
package dsu

// Set is a disjoint-set forest. The zero value is an empty forest; use New.
type Set struct {
	parent []int
	rank   []int
	count  int
}

// New creates n singleton sets {0}, {1}, ..., {n-1}.
// Negative n yields an empty forest.
func New(n int) *Set {
	if n < 0 {
		n = 0
	}
	s := &Set{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range s.parent {
		s.parent[i] = i
	}

	return s
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.parent)
}

// Count returns the current number of disjoint sets.
func (s *Set) Count() int {
	return s.count
}

// Find returns the representative of x's set and compresses the path so
// every visited node points directly at the root.
// x must be in [0, Len()).
func (s *Set) Find(x int) int {
	root := x
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[x] != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}

	return root
}

// Union merges the sets of x and y, attaching the lower-rank root under the
// higher-rank one. It reports whether a merge happened (false when x and y
// were already joined).
func (s *Set) Union(x, y int) bool {
	rx, ry := s.Find(x), s.Find(y)
	if rx == ry {
		return false
	}
	switch {
	case s.rank[rx] < s.rank[ry]:
		s.parent[rx] = ry
	case s.rank[rx] > s.rank[ry]:
		s.parent[ry] = rx
	default:
		s.parent[ry] = rx
		s.rank[rx]++
	}
	s.count--

	return true
}

// Connected reports whether x and y share a set.
func (s *Set) Connected(x, y int) bool {
	return s.Find(x) == s.Find(y)
}

// Sets groups elements by representative. Members appear in ascending order
// and groups are ordered by their smallest member.
func (s *Set) Sets() [][]int {
	index := make(map[int]int, s.count)
	groups := make([][]int, 0, s.count)
	for x := range s.parent {
		root := s.Find(x)
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], x)
	}

	return groups
}
