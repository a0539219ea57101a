package emit

import (
	"fmt"
	"io"

	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/matrix"
)

// DIMACS writes the defined-variables comment followed by the plain CNF
// clauses that pin each extracted definition to its Tseitin encoding —
// the definitions alone, without the original matrix. Grounded on
// QBFParser::doWriteDIMACS.
func DIMACS(w io.Writer, g *gatedag.Graph) error {
	clauses := matrix.DefinitionClauses(g)
	if err := definedVariablesComment(w, g); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", g.MaxIDNumber, len(clauses)); err != nil {
		return err
	}
	return writeClauses(w, g, clauses)
}
