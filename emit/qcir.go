package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

// QCIR writes g (and, if deps is non-nil, its DQCIR dependency lines) in
// QCIR-G14 form: quantifier blocks (existentials with an explicit
// dependency set are omitted from the prefix when deps != nil, per spec
// §4.6), output(id), d-lines, then gates in topological order. Grounded on
// QBFParser::doWriteQCIR / DQDIMACSParser::doWriteQCIR (reused by
// DQCIRParser).
func QCIR(w io.Writer, g *gatedag.Graph, deps *gatedag.DependencyMap) error {
	if _, err := io.WriteString(w, "#QCIR-G14\n"); err != nil {
		return err
	}
	blocks := collectBlocks(g, func(a gatedag.Alias) bool {
		return g.Gate(a).Kind == gatedag.KindExistential && hasDeps(deps, a)
	})
	for _, b := range blocks {
		open := "exists("
		if b.kind == gatedag.KindUniversal {
			open = "forall("
		}
		if _, err := fmt.Fprintf(w, "%s%s)\n", open, joinIDsSep(b.ids, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "output(%s)\n", g.Gate(g.OutputAlias).ID); err != nil {
		return err
	}
	if deps != nil {
		if err := writeDependencyBlocks(w, g, deps); err != nil {
			return err
		}
	}
	return writeGates(w, g)
}

func writeGates(w io.Writer, g *gatedag.Graph) error {
	for _, a := range g.TopologicalOrder() {
		if err := writeGate(w, g, a); err != nil {
			return err
		}
	}
	return nil
}

func writeGate(w io.Writer, g *gatedag.Graph, a gatedag.Alias) error {
	gate := g.Gate(a)
	if !gate.Kind.IsGate() {
		return nil
	}
	typeString := "and"
	if gate.Kind == gatedag.KindOr {
		typeString = "or"
	}
	inputs := make([]string, len(gate.Inputs))
	for i, lit := range gate.Inputs {
		alias := lit
		sign := ""
		if alias < 0 {
			alias = -alias
			sign = "-"
		}
		inputs[i] = sign + string(g.Gate(gatedag.Alias(alias)).ID)
	}
	_, err := fmt.Fprintf(w, "%s = %s(%s)\n", gate.ID, typeString, strings.Join(inputs, ", "))
	return err
}
