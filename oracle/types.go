// SPDX-License-Identifier: MIT

package oracle

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/distmst/core"
	"github.com/katalvlaran/distmst/subgraph"
)

var (
	// ErrOracleFailure indicates malformed or insufficient local MST output:
	// too many edges, unknown vertices, absent or misweighted edges, or cycles.
	ErrOracleFailure = errors.New("oracle: invalid local MST result")

	// ErrUnknownOracle indicates an unrecognized oracle name.
	ErrUnknownOracle = errors.New("oracle: unknown oracle")
)

// Names accepted by ByName.
const (
	NameKruskal = "kruskal"
	NamePrim    = "prim"
	NameBoruvka = "boruvka"
)

// Oracle computes the local minimum spanning forest of a subgraph message.
type Oracle interface {
	// Name identifies the solver.
	Name() string

	// LocalMST returns forest edges in global IDs. msg must be valid.
	LocalMST(msg *subgraph.Message) ([]core.Edge, error)
}

// ByName returns the oracle registered under name.
func ByName(name string) (Oracle, error) {
	switch name {
	case NameKruskal:
		return Kruskal{}, nil
	case NamePrim:
		return Prim{}, nil
	case NameBoruvka:
		return Boruvka{}, nil
	default:
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownOracle)
	}
}
