// SPDX-License-Identifier: MIT

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/distmst/core"
)

const edgeListColumns = 3

// ReadEdgeList parses CSV records u,v,w. A pair listed twice must repeat
// the same weight. Records whose weight is absent are skipped.
// Complexity: O(E + V²).
func ReadEdgeList(r io.Reader, opts ...Option) (*core.Graph, error) {
	o := newOptions(opts)
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = edgeListColumns

	type record struct {
		u, v int
		w    float64
		line int
	}
	var records []record
	maxID := -1
	for first := true; ; first = false {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadEdgeList: %v: %w", err, ErrFormat)
		}
		line, _ := cr.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(fields[0]), "u") {
			continue
		}
		u, errU := strconv.Atoi(strings.TrimSpace(fields[0]))
		v, errV := strconv.Atoi(strings.TrimSpace(fields[1]))
		if errU != nil || errV != nil || u < 0 || v < 0 || u >= core.MaxOrder || v >= core.MaxOrder {
			return nil, fmt.Errorf("ReadEdgeList: line %d: vertices %q,%q not in [0, %d): %w",
				line, fields[0], fields[1], core.MaxOrder, ErrFormat)
		}
		w, err := parseWeight(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("ReadEdgeList: line %d: %v: %w", line, err, ErrFormat)
		}
		if u > maxID {
			maxID = u
		}
		if v > maxID {
			maxID = v
		}
		if o.isAbsent(w) {
			continue
		}
		records = append(records, record{u: u, v: v, w: w, line: line})
	}

	n := maxID + 1
	if o.vertices > n {
		n = o.vertices
	}
	g, err := core.NewGraph(n)
	if err != nil {
		return nil, fmt.Errorf("ReadEdgeList: %w", err)
	}
	for _, rec := range records {
		if g.HasEdge(rec.u, rec.v) && g.Weight(rec.u, rec.v) != rec.w {
			return nil, fmt.Errorf("ReadEdgeList: line %d: (%d,%d) redefined with weight %g: %w",
				rec.line, rec.u, rec.v, rec.w, ErrFormat)
		}
		if err := g.SetWeight(rec.u, rec.v, rec.w); err != nil {
			return nil, fmt.Errorf("ReadEdgeList: line %d: %w", rec.line, err)
		}
	}

	return g, nil
}
