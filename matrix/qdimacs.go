package matrix

import "github.com/fslivovsky/unique/gatedag"

// BuildQDIMACS encodes a gate DAG whose Or-gates stand for original DIMACS
// input clauses: those are emitted verbatim (no Tseitin auxiliary — the
// clause *is* the gate) regardless of polarity. Any And-gate other than the
// output (i.e. a spliced definition) still gets the normal Tseitin
// encoding at its propagated polarity. The synthetic output And-gate
// (the conjunction of all clause aliases) is never itself emitted as a
// clause body, and the output unit is only added when negate is true — the
// input clauses already force the positive case.
//
// Grounded on QDIMACSParser::addToClauseList/addOutputUnit, which override
// the base QBFParser behavior exactly this way.
func BuildQDIMACS(g *gatedag.Graph, negate bool) []Clause {
	outputPolarity := gatedag.PolarityPositive
	if negate {
		outputPolarity = gatedag.PolarityNegative
	}
	polarity := g.Polarities(outputPolarity)

	var clauses []Clause
	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		gate := g.Gate(a)
		switch {
		case gate.Kind == gatedag.KindOr:
			c := make(Clause, len(gate.Inputs))
			copy(c, gate.Inputs)
			clauses = append(clauses, c)
		case a == g.OutputAlias:
			// The output is the AND-of-all-clauses gate; its own
			// definitional clauses would be redundant with the raw
			// clauses above, so it is skipped entirely.
		default:
			AppendGateClauses(g, a, polarity[a], &clauses)
		}
	}
	if negate {
		clauses = append(clauses, Clause{-int32(g.OutputAlias)})
	}
	return clauses
}
