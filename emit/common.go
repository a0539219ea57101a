// Package emit serializes a gate-DAG graph back out to the four on-disk
// dialects plus the two downstream formats (plain DIMACS, Verilog).
// Grounded on QBFParser's print*/write* family and their QDIMACSParser/
// DQDIMACSParser/DQCIRParser overrides in original_source/unique. Per
// spec §6, output is bit-exact with the source: "\n" line endings, no
// trailing spaces after a clause's "0", and quantifier-block lines
// terminated by "0".
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/matrix"
)

// block is one contiguous run of same-kind prefix variables.
type block struct {
	kind gatedag.GateKind
	ids  []gatedag.GateID
}

// collectBlocks groups g's prefix variables (aliases below
// VariableGateBoundary) into same-kind runs, skipping any alias for which
// skip returns true. A skipped variable does not break an in-progress run
// — mirroring the original's loop, which simply does nothing on such a
// variable rather than resetting last_block_type.
func collectBlocks(g *gatedag.Graph, skip func(gatedag.Alias) bool) []block {
	var blocks []block
	lastKind := gatedag.KindNone
	for a := gatedag.Alias(1); a < g.VariableGateBoundary; a++ {
		if skip != nil && skip(a) {
			continue
		}
		gate := g.Gate(a)
		if gate.Kind != lastKind {
			blocks = append(blocks, block{kind: gate.Kind})
			lastKind = gate.Kind
		}
		last := &blocks[len(blocks)-1]
		last.ids = append(last.ids, gate.ID)
	}
	return blocks
}

// definitionAndGates returns, in ascending alias order, the ids of every
// And gate other than the output — the Tseitin auxiliaries introduced by
// spliced definitions, which get their own trailing existential block in
// QDIMACS/DQDIMACS output.
func definitionAndGates(g *gatedag.Graph) []gatedag.GateID {
	var ids []gatedag.GateID
	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		gate := g.Gate(a)
		if gate.Kind == gatedag.KindAnd && a != g.OutputAlias {
			ids = append(ids, gate.ID)
		}
	}
	return ids
}

func quantifierChar(kind gatedag.GateKind) string {
	if kind == gatedag.KindUniversal {
		return "a"
	}
	return "e"
}

// writeQDIMACSPrefix streams the e/a quantifier blocks (skipping aliases
// per skip) exactly as the original prints them: one block opener per
// kind change, closed by "0\n" only when a prior block was open: then, if
// any definition And-gates exist, either opens one fresh trailing "e"
// block for them (when the last block was universal) or appends them
// directly onto the still-open last block, and finally closes with "0\n"
// if anything was printed at all. Grounded on QBFParser::printQDIMACSPrefix
// / QDIMACSParser::printQDIMACSPrefix / DQDIMACSParser::printQDIMACSPrefix,
// which share this body exactly.
func writeQDIMACSPrefix(w io.Writer, g *gatedag.Graph, skip func(gatedag.Alias) bool) error {
	lastKind := gatedag.KindNone
	firstSeen := false

	for a := gatedag.Alias(1); a < g.VariableGateBoundary; a++ {
		if skip != nil && skip(a) {
			continue
		}
		gate := g.Gate(a)
		if gate.Kind != lastKind {
			lastKind = gate.Kind
			if firstSeen {
				if _, err := io.WriteString(w, "0\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s ", quantifierChar(gate.Kind)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s ", gate.ID); err != nil {
			return err
		}
		firstSeen = true
	}

	andGates := definitionAndGates(g)
	if len(andGates) > 0 {
		if lastKind == gatedag.KindUniversal {
			if _, err := io.WriteString(w, "0\ne "); err != nil {
				return err
			}
		}
		for _, id := range andGates {
			if _, err := fmt.Fprintf(w, "%s ", id); err != nil {
				return err
			}
		}
	}
	if firstSeen {
		if _, err := io.WriteString(w, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

func joinIDs(ids []gatedag.GateID) string {
	return joinIDsSep(ids, " ")
}

func joinIDsSep(ids []gatedag.GateID, sep string) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return strings.Join(strs, sep)
}

// writeDependencyBlocks prints one "d <var> <dep...> 0" line per
// existential with an explicit dependency set, in prefix (alias) order.
// Grounded on DQDIMACSParser::printDependencyBlocks.
func writeDependencyBlocks(w io.Writer, g *gatedag.Graph, deps *gatedag.DependencyMap) error {
	for a := gatedag.Alias(1); a < g.VariableGateBoundary; a++ {
		if g.Gate(a).Kind != gatedag.KindExistential {
			continue
		}
		depset, ok := deps.Deps[a]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "d %s", g.Gate(a).ID); err != nil {
			return err
		}
		for _, d := range depset {
			if _, err := fmt.Fprintf(w, " %s", g.Gate(d).ID); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " 0\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeClauses prints one line per clause: space-separated signed gate ids
// (by textual id, not numeric alias), terminated by "0". Grounded on
// QBFParser::printClauselist.
func writeClauses(w io.Writer, g *gatedag.Graph, clauses []matrix.Clause) error {
	for _, clause := range clauses {
		for _, lit := range clause {
			alias := lit
			sign := ""
			if alias < 0 {
				alias = -alias
				sign = "-"
			}
			if _, err := fmt.Fprintf(w, "%s%s ", sign, g.Gate(gatedag.Alias(alias)).ID); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

// definedVariablesComment prints the "c defined variables: ..." header
// line shared by the QDIMACS and DIMACS emitters.
func definedVariablesComment(w io.Writer, g *gatedag.Graph) error {
	if _, err := io.WriteString(w, "c defined variables: "); err != nil {
		return err
	}
	for _, id := range g.DefinedIDs {
		if _, err := fmt.Fprintf(w, "%s ", id); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func hasDeps(deps *gatedag.DependencyMap, a gatedag.Alias) bool {
	if deps == nil {
		return false
	}
	_, ok := deps.Deps[a]
	return ok
}
