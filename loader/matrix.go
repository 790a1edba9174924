// SPDX-License-Identifier: MIT

package loader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/distmst/core"
)

// absentToken is written for pairs without an edge.
const absentToken = "-"

// ReadMatrix parses the compact V×(V−1) layout.
// Complexity: O(V²) time and memory.
func ReadMatrix(r io.Reader, opts ...Option) (*core.Graph, error) {
	o := newOptions(opts)
	tokens, err := scanTokens(r)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("ReadMatrix: empty input: %w", ErrFormat)
	}

	n, err := strconv.Atoi(tokens[0].text)
	if err != nil || n < 1 || n > core.MaxOrder {
		return nil, fmt.Errorf("ReadMatrix: line %d: vertex count %q not in [1, %d]: %w",
			tokens[0].line, tokens[0].text, core.MaxOrder, ErrFormat)
	}
	cells := tokens[1:]
	if want := n * (n - 1); len(cells) != want {
		return nil, fmt.Errorf("ReadMatrix: %d weights for V=%d, want %d: %w", len(cells), n, want, ErrFormat)
	}

	raw := make([]float64, len(cells))
	for i, tok := range cells {
		if raw[i], err = parseWeight(tok.text); err != nil {
			return nil, fmt.Errorf("ReadMatrix: line %d: %v: %w", tok.line, err, ErrFormat)
		}
		if o.isAbsent(raw[i]) {
			raw[i] = core.NoEdge
		}
	}

	g, err := core.NewGraph(n)
	if err != nil {
		return nil, fmt.Errorf("ReadMatrix: %w", err)
	}
	// slot returns the index of (r, v) in raw.
	slot := func(r, v int) int {
		c := v
		if v > r {
			c = v - 1
		}
		return r*(n-1) + c
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			a, b := raw[slot(u, v)], raw[slot(v, u)]
			if a != b {
				return nil, fmt.Errorf("ReadMatrix: (%d,%d)=%g but (%d,%d)=%g: %w", u, v, a, v, u, b, ErrAsymmetric)
			}
			if core.IsNoEdge(a) {
				continue
			}
			if err := g.SetWeight(u, v, a); err != nil {
				return nil, fmt.Errorf("ReadMatrix: %w", err)
			}
		}
	}

	return g, nil
}

// WriteMatrix writes g in the compact layout ReadMatrix accepts, with "-"
// for absent pairs.
func WriteMatrix(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	n := g.Order()
	fmt.Fprintf(bw, "%d\n", n)
	for r := 0; r < n; r++ {
		for c := 0; c < n-1; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			x, _ := g.At(r, c)
			if core.IsNoEdge(x) {
				bw.WriteString(absentToken)
			} else {
				bw.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

type token struct {
	text string
	line int
}

// scanTokens splits r into whitespace-separated tokens, dropping comments.
func scanTokens(r io.Reader) ([]token, error) {
	var out []token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		for _, f := range strings.Fields(text) {
			out = append(out, token{text: f, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return out, nil
}

// parseWeight accepts decimal numbers, "inf" spellings and the absent token.
func parseWeight(s string) (float64, error) {
	if s == absentToken {
		return core.NoEdge, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("weight %q", s)
	}
	if math.IsNaN(w) || math.IsInf(w, -1) {
		return 0, fmt.Errorf("weight %q", s)
	}

	return w, nil
}
