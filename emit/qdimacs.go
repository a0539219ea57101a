package emit

import (
	"fmt"
	"io"

	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/matrix"
)

// QDIMACS writes g (and, if deps is non-nil, its DQDIMACS dependency lines)
// as: the "c defined variables" comment, "p cnf maxId nClauses", the e/a
// prefix (with a trailing Tseitin-AND block when definitions were
// spliced), d-lines when deps != nil, then the CNF matrix. rawClauses
// selects the matrix builder: true when g's Or-gates are raw input
// clauses (the graph was parsed from QDIMACS/DQDIMACS), false when they
// are ordinary QCIR Or-gates needing the full Tseitin encoding. Grounded
// on QBFParser::doWriteQDIMACS with DQDIMACSParser::printQDIMACSPrefix's
// dependency-skip/trailer overlay.
func QDIMACS(w io.Writer, g *gatedag.Graph, deps *gatedag.DependencyMap, rawClauses bool) error {
	var clauses []matrix.Clause
	if rawClauses {
		clauses = matrix.BuildQDIMACS(g, false)
	} else {
		clauses = matrix.Build(g, false, false)
	}

	if err := definedVariablesComment(w, g); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", g.MaxIDNumber, len(clauses)); err != nil {
		return err
	}
	skip := func(a gatedag.Alias) bool {
		return g.Gate(a).Kind == gatedag.KindExistential && hasDeps(deps, a)
	}
	if err := writeQDIMACSPrefix(w, g, skip); err != nil {
		return err
	}
	if deps != nil {
		if err := writeDependencyBlocks(w, g, deps); err != nil {
			return err
		}
	}
	return writeClauses(w, g, clauses)
}
