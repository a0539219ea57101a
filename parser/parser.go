// Package parser builds a gatedag.Graph from QCIR, QDIMACS, DQCIR and
// DQDIMACS input text. Grounded on QBFParser/QCIRParser/QDIMACSParser/
// DQCIRParser/DQDIMACSParser in original_source/unique, reshaped per spec
// §9's design note: rather than the original's multiple-inheritance parser
// hierarchy, each format is a small set of per-line handlers dispatched
// against a shared builder — a quantifier handler, a gate/clause handler,
// an output handler and an optional dependency handler.
package parser

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

// Format identifies one of the four supported input dialects.
type Format int

const (
	Unknown Format = iota
	QCIR
	QDIMACS
	DQCIR
	DQDIMACS
)

func (f Format) String() string {
	switch f {
	case QCIR:
		return "QCIR"
	case QDIMACS:
		return "QDIMACS"
	case DQCIR:
		return "DQCIR"
	case DQDIMACS:
		return "DQDIMACS"
	default:
		return "unknown"
	}
}

// ErrUnrecognizedInput is returned by Parse when asked for a format other
// than the four dialects (spec §6/§7: "Unrecognized input file" aborts with
// exit 1). Sniff reports an unrecognized file by returning Unknown.
var ErrUnrecognizedInput = fmt.Errorf("parser: unrecognized input file")

const qcirMagic = "#QCIR"

// Sniff classifies raw file content per spec §6: the first line starting
// with "#QCIR" selects the QCIR family, and any later line starting with
// 'd' (a dependency line) selects the DQBF variant of that family.
func Sniff(data []byte) Format {
	lines := splitLines(data)
	if len(lines) == 0 {
		return Unknown
	}
	qcir := strings.HasPrefix(lines[0], qcirMagic)
	dependent := false
	for _, line := range lines[1:] {
		if len(line) > 0 && line[0] == 'd' {
			dependent = true
			break
		}
	}
	switch {
	case qcir && !dependent:
		return QCIR
	case qcir && dependent:
		return DQCIR
	case !qcir && !dependent:
		return QDIMACS
	default:
		return DQDIMACS
	}
}

func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// Result bundles a parsed graph with its DQBF dependency map (nil for the
// two ordinary-QBF formats).
type Result struct {
	Graph *gatedag.Graph
	Deps  *gatedag.DependencyMap

	// RedundantGatesRemoved is the count returned by the post-parse
	// Graph.RemoveRedundant pass, for the "Removed N redundant gates."
	// diagnostic.
	RedundantGatesRemoved int
}

// Parse dispatches to the format-specific builder and then runs redundant-
// gate removal once, per spec §4.5.
func Parse(data []byte, format Format) (*Result, error) {
	lines := splitLines(data)
	g := gatedag.New()
	var deps *gatedag.DependencyMap

	var err error
	switch format {
	case QCIR:
		err = parseQCIRFamily(lines, g, nil)
	case DQCIR:
		deps = gatedag.NewDependencyMap()
		err = parseQCIRFamily(lines, g, deps)
	case QDIMACS:
		err = parseQDIMACSFamily(lines, g, nil)
	case DQDIMACS:
		deps = gatedag.NewDependencyMap()
		err = parseQDIMACSFamily(lines, g, deps)
	default:
		return nil, ErrUnrecognizedInput
	}
	if err != nil {
		return nil, err
	}

	removed := g.RemoveRedundant()
	return &Result{Graph: g, Deps: deps, RedundantGatesRemoved: removed}, nil
}

// stripSpace removes every whitespace rune, matching QCIRParser's
// `remove_if(isspace)` pass over each line before classification.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}

// splitNonEmpty splits s on sep, returning nil for an empty s instead of a
// single empty-string element (Go's strings.Split("", ",") would do that),
// so that e.g. "and()" parses as zero inputs rather than one blank input.
func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// parseLiteralToken turns a (possibly "-"-prefixed) gate id token into a
// gatedag.Literal.
func parseLiteralToken(tok string) gatedag.Literal {
	if strings.HasPrefix(tok, "-") {
		return gatedag.Literal{ID: gatedag.GateID(tok[1:]), Negated: true}
	}
	return gatedag.Literal{ID: gatedag.GateID(tok), Negated: false}
}

func parseLiteralTokens(toks []string) []gatedag.Literal {
	out := make([]gatedag.Literal, len(toks))
	for i, t := range toks {
		out[i] = parseLiteralToken(t)
	}
	return out
}

// readDependencyBlock parses a whitespace-tokenized "d <var> <dep>... 0"
// line (preserved verbatim, unlike the rest of a QCIR-family line, since a
// dependent variable's id may be whitespace-sensitive per spec §4.5). It
// creates the dependent variable as a fresh Existential if not already
// known — shared by both DQCIR and DQDIMACS.
func readDependencyBlock(g *gatedag.Graph, deps *gatedag.DependencyMap, rawLine string) error {
	fields := strings.Fields(rawLine)
	if len(fields) < 2 || fields[0] != "d" || fields[len(fields)-1] != "0" {
		return fmt.Errorf("parser: malformed dependency line %q", rawLine)
	}
	variableID := gatedag.GateID(fields[1])
	variableAlias, known := g.LookupID(variableID)
	if !known {
		var err error
		variableAlias, err = g.AddVariable(variableID, gatedag.KindExistential)
		if err != nil {
			return err
		}
	} else if g.Gate(variableAlias).Kind != gatedag.KindExistential {
		return fmt.Errorf("parser: dependency line for non-existential %q", variableID)
	}
	depTokens := fields[2 : len(fields)-1]
	depAliases := make([]gatedag.Alias, len(depTokens))
	for i, tok := range depTokens {
		a, ok := g.LookupID(gatedag.GateID(tok))
		if !ok {
			return gatedag.ErrUnknownGate{ID: gatedag.GateID(tok)}
		}
		depAliases[i] = a
	}
	deps.Add(g, variableAlias, depAliases)
	return nil
}
