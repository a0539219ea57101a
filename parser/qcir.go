package parser

import (
	"fmt"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

const (
	forallString = "forall"
	existsString = "exists"
	outputString = "output"
)

// parseQCIRFamily parses QCIR (deps == nil) or DQCIR (deps != nil) text
// into g. Grounded on QCIRParser::QCIRParser / DQCIRParser::DQCIRParser.
func parseQCIRFamily(lines []string, g *gatedag.Graph, deps *gatedag.DependencyMap) error {
	for _, raw := range lines {
		stripped := stripSpace(raw)
		switch {
		case stripped == "" || strings.HasPrefix(stripped, "#"):
			continue
		case strings.HasPrefix(stripped, forallString) || strings.HasPrefix(stripped, existsString):
			if err := readQuantifierBlockQCIR(g, stripped); err != nil {
				return err
			}
		case strings.HasPrefix(stripped, outputString):
			if err := readOutputQCIR(g, stripped); err != nil {
				return err
			}
		case deps != nil && strings.HasPrefix(stripped, "d"):
			if err := readDependencyBlock(g, deps, raw); err != nil {
				return err
			}
		default:
			if err := readGateQCIR(g, stripped); err != nil {
				return err
			}
		}
	}
	if g.OutputAlias == 0 {
		return fmt.Errorf("parser: QCIR input declared no output gate")
	}
	return nil
}

func readQuantifierBlockQCIR(g *gatedag.Graph, line string) error {
	if !strings.HasSuffix(line, ")") {
		return fmt.Errorf("parser: malformed quantifier block %q", line)
	}
	openPos := strings.IndexByte(line, '(')
	if openPos < 0 {
		return fmt.Errorf("parser: malformed quantifier block %q", line)
	}
	kind := gatedag.KindExistential
	if line[:openPos] == forallString {
		kind = gatedag.KindUniversal
	}
	variables := splitNonEmpty(line[openPos+1:len(line)-1], ",")
	g.OpenQuantifierBlock()
	for _, v := range variables {
		if _, err := g.AddVariable(gatedag.GateID(v), kind); err != nil {
			return err
		}
	}
	return nil
}

func readGateQCIR(g *gatedag.Graph, line string) error {
	if !strings.HasSuffix(line, ")") {
		return fmt.Errorf("parser: malformed gate line %q", line)
	}
	equalsPos := strings.IndexByte(line, '=')
	openPos := strings.IndexByte(line, '(')
	if equalsPos < 0 || openPos < 0 {
		return fmt.Errorf("parser: malformed gate line %q", line)
	}
	gateID := gatedag.GateID(line[:equalsPos])
	gateTypeString := line[equalsPos+1 : openPos]
	var kind gatedag.GateKind
	switch gateTypeString {
	case "and":
		kind = gatedag.KindAnd
	case "or":
		kind = gatedag.KindOr
	default:
		return fmt.Errorf("parser: unknown gate type %q in %q", gateTypeString, line)
	}
	inputs := splitNonEmpty(line[openPos+1:len(line)-1], ",")
	_, err := g.AddGate(gateID, kind, parseLiteralTokens(inputs))
	return err
}

func readOutputQCIR(g *gatedag.Graph, line string) error {
	if !strings.HasSuffix(line, ")") {
		return fmt.Errorf("parser: malformed output line %q", line)
	}
	openPos := strings.IndexByte(line, '(')
	if openPos != len(outputString) {
		return fmt.Errorf("parser: malformed output line %q", line)
	}
	g.SetOutput(gatedag.GateID(line[openPos+1 : len(line)-1]))
	return nil
}
