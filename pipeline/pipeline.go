// Package pipeline wires the gate graph produced by a parser.Result through
// query-set selection and definition extraction, and splices the result
// back in — the shared driver behind both cmd/unique and the optional HTTP
// service's /api/analyze handler. Grounded on QBFParser::doGetDefinitions /
// DQDIMACSParser::doGetDefinitions in original_source/unique.
package pipeline

import (
	"fmt"

	"github.com/fslivovsky/unique/extractor"
	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/internal/logger"
	"github.com/fslivovsky/unique/matrix"
	"github.com/fslivovsky/unique/parser"
	"github.com/fslivovsky/unique/selector"
	"github.com/fslivovsky/unique/solver"
)

// NewFactory resolves name (a backend registered in solver.Default, spec
// §6's InterpolatingSolver contract) into a solver.Factory suitable for
// extractor.New, or an error if no such backend is registered.
func NewFactory(name string) (solver.Factory, error) {
	found := false
	for _, n := range solver.Default.Names() {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("pipeline: unknown solver backend %q", name)
	}
	return func(maxVar int32) solver.InterpolatingSolver {
		s, _ := solver.Default.Create(name, maxVar)
		return s
	}, nil
}

// Stats reports how many of each variable kind were found uniquely
// determined, for the "Found X out of Y ... (fraction)" diagnostic.
type Stats struct {
	DefinedExistential, TotalExistential int
	DefinedUniversal, TotalUniversal     int
	DefinedDependent, TotalDependent     int
}

// Run decides definability for every candidate query variable in res.Graph
// and splices the resulting definitions back into it. ext is owned by the
// caller (so a signal handler can call ext.Interrupt() concurrently, the
// way determined.cc holds a package-level `extractor` pointer for
// handle_sighup). For DQBF the propositional matrix is built once up front
// and reused across every GetDefinitions call (ordinary plus every
// dependent group): nothing about it changes until splicing happens, which
// is deferred until every extraction has run — so unlike
// DQDIMACSParser::getDependentExistentialDefinitions, which rebuilds it per
// dependency group ("Called separately for each dependency set, can this be
// avoided?"), this port takes its own hint and builds it once. For ordinary
// QBF the universal check needs its own negated matrix (see runQBF), so
// that reuse applies only to the existential and DQBF paths.
func Run(res *parser.Result, format parser.Format, ext *extractor.Extractor, ordering *selector.Ordering, log *logger.Logger) Stats {
	if log == nil {
		log = logger.Nop()
	}
	log = log.SpawnForComponent("pipeline")

	g := res.Graph
	rawClauses := format == parser.QDIMACS || format == parser.DQDIMACS
	maxVar := matrix.MaxVariable(g)

	if res.Deps == nil {
		return runQBF(g, rawClauses, maxVar, ext, ordering, log)
	}
	formula := buildMatrix(g, rawClauses, false)
	return runDQBF(g, res.Deps, formula, maxVar, ext, log)
}

// runQBF mirrors QBFParser::getDefinitionsFor: the existential check uses
// the matrix as-is, but the universal (Herbrand-function) check uses the
// matrix negated — `bool negate = (type == VariableType::Universal);
// auto propositional_matrix = getMatrix(negate);` — since a universally
// quantified variable is tested for definability w.r.t. the prefix being
// forced FALSE, not TRUE.
func runQBF(g *gatedag.Graph, rawClauses bool, maxVar int32, ext *extractor.Extractor, ordering *selector.Ordering, log *logger.Logger) Stats {
	formulaE := buildMatrix(g, rawClauses, false)
	selE := selector.SelectQBF(g, selector.Existential, ordering)
	definedE, defsE := ext.GetDefinitions(formulaE, selE.Query, selE.Defining, selE.Mask, maxVar)

	formulaU := buildMatrix(g, rawClauses, true)
	selU := selector.SelectQBF(g, selector.Universal, ordering)
	definedU, defsU := ext.GetDefinitions(formulaU, selU.Query, selU.Defining, selU.Mask, maxVar)

	stats := Stats{
		DefinedExistential: len(definedE),
		TotalExistential:   g.NumberVariables(gatedag.KindExistential),
		DefinedUniversal:   len(definedU),
		TotalUniversal:     g.NumberVariables(gatedag.KindUniversal),
	}
	logFraction(log, "existential", stats.DefinedExistential, stats.TotalExistential)
	logFraction(log, "universal", stats.DefinedUniversal, stats.TotalUniversal)

	if len(definedE) > 0 {
		log.Info().Msg("processing existential definitions")
		g.SpliceDefinitions(defsE, definedE)
	}
	if len(definedU) > 0 {
		log.Info().Msg("processing universal definitions")
		g.SpliceDefinitions(defsU, definedU)
	}
	return stats
}

func runDQBF(g *gatedag.Graph, deps *gatedag.DependencyMap, formula []matrix.Clause, maxVar int32, ext *extractor.Extractor, log *logger.Logger) Stats {
	selOrd := selector.SelectDQBFOrdinary(g, deps)
	defined, definitions := ext.GetDefinitions(formula, selOrd.Query, selOrd.Defining, selOrd.Mask, maxVar)

	var dependentDefined []gatedag.Alias
	var dependentDefinitions []gatedag.Definition
	groups := selector.SelectDQBFDependent(deps)
	for _, grp := range groups {
		mask := make([]bool, len(grp.Variables))
		for i := range mask {
			mask[i] = true
		}
		d, def := ext.GetDefinitions(formula, grp.Variables, grp.Depset, mask, maxVar)
		dependentDefined = append(dependentDefined, d...)
		dependentDefinitions = append(dependentDefinitions, def...)
	}
	log.Info().Int("defined", len(dependentDefined)).Int("total", len(deps.Deps)).
		Msg("variables with explicit dependencies uniquely determined")

	defined = append(defined, dependentDefined...)
	definitions = append(definitions, dependentDefinitions...)

	stats := Stats{
		DefinedExistential: len(defined),
		TotalExistential:   g.NumberVariables(gatedag.KindExistential),
		DefinedDependent:   len(dependentDefined),
		TotalDependent:     len(deps.Deps),
	}
	logFraction(log, "existential", stats.DefinedExistential, stats.TotalExistential)

	if len(defined) > 0 {
		log.Info().Msg("processing definitions")
		g.SpliceDefinitions(definitions, defined)
	}
	return stats
}

func logFraction(log *logger.Logger, kind string, defined, total int) {
	var fraction float64
	if total > 0 {
		fraction = float64(defined) / float64(total)
	}
	log.Info().Str("kind", kind).Int("defined", defined).Int("total", total).
		Float64("fraction", fraction).
		Msg("variables uniquely determined")
}

func buildMatrix(g *gatedag.Graph, rawClauses bool, negate bool) []matrix.Clause {
	if rawClauses {
		return matrix.BuildQDIMACS(g, negate)
	}
	return matrix.Build(g, negate, false)
}
