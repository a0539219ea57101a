// Package matrix builds the Tseitin-style CNF encoding of a gate DAG: the
// propositional body under the quantifier prefix, ready to hand to a SAT
// engine. Grounded on QBFParser::getMatrix/addToClauseList in
// original_source/unique and on the Tseitin clause shapes used by
// xDarkicex-logic's sat.CNFConverter.
package matrix

import "github.com/fslivovsky/unique/gatedag"

// Clause is an ordered list of signed aliases (a disjunction).
type Clause []int32

// Build produces the CNF encoding of g's gates, honoring the polarity table
// in spec §4.2:
//
//	And, P != Negative: binary clauses (li ∨ ¬g) per input
//	And, P != Positive: one big clause (¬l1 ∨ ... ∨ ¬lk ∨ g)
//	Or,  P != Positive: binary clauses (¬li ∨ g) per input
//	Or,  P != Negative: one big clause (l1 ∨ ... ∨ lk ∨ ¬g)
//
// then appends the output unit: (output) if !negate, (¬output) if negate.
// tseitinComplete requests output_polarity = Both and — matching spec §4.2's
// "emit no final unit... the caller decides" — suppresses the output unit.
func Build(g *gatedag.Graph, negate bool, tseitinComplete bool) []Clause {
	var outputPolarity gatedag.Polarity
	switch {
	case tseitinComplete:
		outputPolarity = gatedag.PolarityBoth
	case negate:
		outputPolarity = gatedag.PolarityNegative
	default:
		outputPolarity = gatedag.PolarityPositive
	}

	polarity := g.Polarities(outputPolarity)

	var clauses []Clause
	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		AppendGateClauses(g, a, polarity[a], &clauses)
	}
	if !tseitinComplete {
		clauses = append(clauses, outputUnit(g, negate))
	}
	return clauses
}

// AppendGateClauses emits the Tseitin clauses for a single gate at the
// given polarity. Exposed so QDIMACS-derived graphs (whose Or-gates stand
// for raw input clauses, see BuildQDIMACS) and DefinitionClauses (which
// always requests Both) can reuse the same per-kind clause shapes.
func AppendGateClauses(g *gatedag.Graph, alias gatedag.Alias, polarity gatedag.Polarity, clauses *[]Clause) {
	gate := g.Gate(alias)
	if !gate.Kind.IsGate() {
		return
	}
	switch gate.Kind {
	case gatedag.KindAnd:
		if polarity != gatedag.PolarityNegative {
			for _, lit := range gate.Inputs {
				*clauses = append(*clauses, Clause{lit, -int32(alias)})
			}
		}
		if polarity != gatedag.PolarityPositive {
			big := make(Clause, 0, len(gate.Inputs)+1)
			for _, lit := range gate.Inputs {
				big = append(big, -lit)
			}
			big = append(big, int32(alias))
			*clauses = append(*clauses, big)
		}
	case gatedag.KindOr:
		if polarity != gatedag.PolarityPositive {
			for _, lit := range gate.Inputs {
				*clauses = append(*clauses, Clause{-lit, int32(alias)})
			}
		}
		if polarity != gatedag.PolarityNegative {
			big := make(Clause, 0, len(gate.Inputs)+1)
			big = append(big, gate.Inputs...)
			big = append(big, -int32(alias))
			*clauses = append(*clauses, big)
		}
	}
}

func outputUnit(g *gatedag.Graph, negate bool) Clause {
	if negate {
		return Clause{-int32(g.OutputAlias)}
	}
	return Clause{int32(g.OutputAlias)}
}

// DefinitionClauses returns the Tseitin encoding of only the spliced
// definition gates (g.DefinitionAliases), at Both polarity — used by the
// DIMACS (no-quantifier) emitter for downstream circuit analysis.
// Grounded on QBFParser::getDefinitionClauses.
func DefinitionClauses(g *gatedag.Graph) []Clause {
	var clauses []Clause
	for _, a := range g.DefinitionAliases {
		AppendGateClauses(g, a, gatedag.PolarityBoth, &clauses)
	}
	return clauses
}

// MaxVariable returns the clause-vocabulary size used by clausesOK in the
// original source: every literal in the matrix must reference an alias
// <= MaxVariable.
func MaxVariable(g *gatedag.Graph) int32 { return int32(g.MaxVariableAlias()) }
