package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

// parseQDIMACSFamily parses QDIMACS (deps == nil) or DQDIMACS (deps != nil)
// text into g, then appends the synthetic AND-of-all-clauses output gate.
// Grounded on QDIMACSParser::QDIMACSParser / DQDIMACSParser::DQDIMACSParser.
func parseQDIMACSFamily(lines []string, g *gatedag.Graph, deps *gatedag.DependencyMap) error {
	for _, line := range lines {
		switch {
		case line == "" || line[0] == 'c' || line[0] == 'p':
			continue
		case strings.HasPrefix(line, "a") || strings.HasPrefix(line, "e"):
			if err := readQuantifierBlockQDIMACS(g, line); err != nil {
				return err
			}
		case deps != nil && line[0] == 'd':
			if err := readDependencyBlock(g, deps, line); err != nil {
				return err
			}
		default:
			if err := readClauseQDIMACS(g, line); err != nil {
				return err
			}
		}
	}
	return addSyntheticOutput(g)
}

func readQuantifierBlockQDIMACS(g *gatedag.Graph, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[len(fields)-1] != "0" {
		return fmt.Errorf("parser: malformed quantifier block %q", line)
	}
	kind := gatedag.KindExistential
	if fields[0] == "a" {
		kind = gatedag.KindUniversal
	}
	g.OpenQuantifierBlock()
	for _, v := range fields[1 : len(fields)-1] {
		if _, err := g.AddVariable(gatedag.GateID(v), kind); err != nil {
			return err
		}
	}
	return nil
}

func readClauseQDIMACS(g *gatedag.Graph, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[len(fields)-1] != "0" {
		return fmt.Errorf("parser: malformed clause line %q", line)
	}
	fields = fields[:len(fields)-1]
	id := gatedag.GateID(strconv.Itoa(g.MaxIDNumber + 1))
	_, err := g.AddGate(id, gatedag.KindOr, parseLiteralTokens(fields))
	return err
}

// addSyntheticOutput appends the And-of-all-input-clauses output gate that
// QDIMACS/DQDIMACS files don't state explicitly: every Or gate between the
// variable/gate boundary and the end of the graph is one input clause.
func addSyntheticOutput(g *gatedag.Graph) error {
	clauseIDs := make([]gatedag.Literal, 0, g.Len()-int(g.VariableGateBoundary))
	for a := g.VariableGateBoundary; int(a) < g.Len(); a++ {
		clauseIDs = append(clauseIDs, gatedag.Literal{ID: g.Gate(a).ID})
	}
	outputID := g.NextNumericID()
	alias, err := g.AddGate(outputID, gatedag.KindAnd, clauseIDs)
	if err != nil {
		return err
	}
	g.SetOutput(g.Gate(alias).ID)
	return nil
}
