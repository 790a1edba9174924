// SPDX-License-Identifier: MIT

// Package loader reads graphs into core.Graph from two text formats.
//
// Compact matrix (FormatMatrix): the vertex count V followed by V rows of
// V−1 weights, whitespace separated. Column c of row r is vertex c when
// c < r and c+1 otherwise, so the diagonal is never written:
//
//	3
//	5 7      # row 0: (0,1) (0,2)
//	5 2      # row 1: (1,0) (1,2)
//	7 2      # row 2: (2,0) (2,1)
//
// Both slots of a pair must agree. The tokens "-", "inf" and "+Inf" mark
// an absent pair; WithAbsent adds numeric values treated the same way.
// Everything after '#' on a line is ignored.
//
// Edge list (FormatEdgeList): CSV records u,v,w with an optional header
// line starting with "u". Lines starting with '#' are comments. V is one
// more than the largest vertex ID unless WithVertices asks for more.
package loader
