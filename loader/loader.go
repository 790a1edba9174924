// SPDX-License-Identifier: MIT

package loader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/distmst/core"
)

var (
	// ErrFormat indicates input that does not follow the declared layout.
	ErrFormat = errors.New("loader: malformed input")

	// ErrAsymmetric indicates a matrix whose mirrored slots disagree.
	ErrAsymmetric = errors.New("loader: matrix is not symmetric")

	// ErrUnknownFormat indicates an unrecognized format name.
	ErrUnknownFormat = errors.New("loader: unknown format")
)

// Format names accepted by Load.
const (
	FormatMatrix   = "matrix"
	FormatEdgeList = "edgelist"
)

// Option configures a reader.
type Option func(o *options)

type options struct {
	absent   map[float64]struct{}
	vertices int
}

// WithAbsent treats every listed weight as "no edge", for inputs that use a
// numeric stand-in such as 0.
func WithAbsent(values ...float64) Option {
	return func(o *options) {
		for _, v := range values {
			o.absent[v] = struct{}{}
		}
	}
}

// WithVertices sets a minimum vertex count for edge lists, so trailing
// isolated vertices are kept.
func WithVertices(n int) Option {
	return func(o *options) {
		o.vertices = n
	}
}

func newOptions(opts []Option) options {
	o := options{absent: make(map[float64]struct{})}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// isAbsent reports whether w means "no edge" under o.
func (o options) isAbsent(w float64) bool {
	if math.IsInf(w, 1) {
		return true
	}
	_, ok := o.absent[w]

	return ok
}

// DetectFormat guesses the format from the file extension: .csv is an edge
// list, anything else a compact matrix.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatEdgeList
	}

	return FormatMatrix
}

// Load reads the graph at path. An empty format is detected from the path.
func Load(path, format string, opts ...Option) (*core.Graph, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	var read func(f *os.File) (*core.Graph, error)
	switch format {
	case FormatMatrix:
		read = func(f *os.File) (*core.Graph, error) { return ReadMatrix(f, opts...) }
	case FormatEdgeList:
		read = func(f *os.File) (*core.Graph, error) { return ReadEdgeList(f, opts...) }
	default:
		return nil, fmt.Errorf("Load(%s): %q: %w", path, format, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	g, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return g, nil
}
