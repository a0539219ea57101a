// Package extractor drives Padoa's theorem over a solver.InterpolatingSolver
// to decide, for each candidate query variable, whether it is uniquely
// determined by a shared vocabulary, and to turn the resulting Craig
// interpolants into gate-DAG definitions. Grounded on extractor.cc/
// extractor.h in original_source/unique; the interpolant polarity
// (true == UNSAT == defined) follows spec §6, which inverts the original
// C++'s `!getInterpolant(...)` convention for a less surprising API.
package extractor

import (
	"sync/atomic"

	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/internal/logger"
	"github.com/fslivovsky/unique/matrix"
	"github.com/fslivovsky/unique/solver"
)

// Extractor is a reusable driver: one instance can service several
// getDefinitions calls (ordinary existentials, then one per DQBF dependent
// group), sharing a monotonically increasing auxiliary-alias counter so
// aliases synthesized across calls never collide.
type Extractor struct {
	factory       solver.Factory
	conflictLimit int
	useSameType   bool // lenient mode: same-kind undefined query vars still get promoted to shared
	log           *logger.Logger

	auxiliaryStart int32
	interrupted    int32 // atomic bool, cooperative cancellation
}

// New returns an Extractor. conflictLimit bounds per-variable SAT search;
// strict stops same-kind query variables that are not found defined from
// being promoted to shared (spec §4.4's "use_same_type" flag is the logical
// negation of strict). log may be nil, in which case a no-op logger is used.
func New(factory solver.Factory, conflictLimit int, strict bool, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		factory:       factory,
		conflictLimit: conflictLimit,
		useSameType:   !strict,
		log:           log.SpawnForComponent("extractor"),
	}
}

// Interrupt asks the current or next GetDefinitions call to stop after its
// current query variable and still attempt circuit extraction over
// whatever has been proven defined so far.
func (e *Extractor) Interrupt() { atomic.StoreInt32(&e.interrupted, 1) }

func (e *Extractor) isInterrupted() bool { return atomic.LoadInt32(&e.interrupted) != 0 }

// GetDefinitions implements spec §4.4's core algorithm: decide, for each
// true entry of mask, whether query[i] is uniquely determined by shared
// (promoting defined, opposite-kind and, in lenient mode, all remaining
// query variables into shared as it goes), then extract one AIG covering every variable found defined
// and convert it into spliceable gate-DAG definitions.
func (e *Extractor) GetDefinitions(formula []matrix.Clause, query []gatedag.Alias, shared []gatedag.Alias, mask []bool, maxVar int32) ([]gatedag.Alias, []gatedag.Definition) {
	queriable := 0
	for _, flag := range mask {
		if flag {
			queriable++
		}
	}
	if queriable == 0 || e.isInterrupted() {
		return nil, nil
	}

	if maxVar > e.auxiliaryStart {
		e.auxiliaryStart = maxVar
	}

	sharedSet := make(map[int32]bool, len(shared))
	for _, a := range shared {
		sharedSet[int32(a)] = true
	}

	a := toSigned(formula)
	b := renameFormula(a, sharedSet, maxVar)

	s := e.factory(2*maxVar + int32(2*queriable))
	if err := s.AddFormula(literalClauses(a), literalClauses(b)); err != nil {
		e.log.Error().Err(err).Msg("installing formula")
		return nil, nil
	}

	if sat, err := s.Solve(); err != nil || !sat {
		if err != nil {
			e.log.Error().Err(err).Msg("initial consistency check failed")
		} else {
			e.log.Info().Msg("matrix unsatisfiable")
		}
		return nil, nil
	}

	var defined []gatedag.Alias
	nextSelector := 2*maxVar + 1
	checked := 0

	for i := 0; i < len(query) && !e.isInterrupted(); i++ {
		v := int32(query[i])
		isDefined := false

		if mask[i] {
			selectorA := nextSelector
			selectorB := nextSelector + 1
			nextSelector += 2

			if err := s.AddClause(literalClause([]int32{-selectorA, v}), solver.LabelA); err != nil {
				e.log.Error().Err(err).Msg("adding A-side selector clause")
				break
			}
			if err := s.AddClause(literalClause([]int32{-selectorB, -(v + maxVar)}), solver.LabelB); err != nil {
				e.log.Error().Err(err).Msg("adding B-side selector clause")
				break
			}

			assumptions := literalClause([]int32{selectorA, selectorB})
			sharedLits := aliasesToInt32(shared)
			determined, err := s.GetInterpolant(v, assumptions, sharedLits, e.conflictLimit)
			if err != nil {
				e.log.Warn().Err(err).Int32("variable", v).Msg("solver error during interpolation, treating as not determined")
			} else if determined {
				defined = append(defined, gatedag.Alias(v))
				isDefined = true
			}
			checked++
			e.log.Debug().Int("checked", checked).Int("of", queriable).Msg("query variable checked")
		}

		if !mask[i] || e.useSameType || isDefined {
			c1 := literalClause([]int32{v, -(v + maxVar)})
			c2 := literalClause([]int32{-v, v + maxVar})
			if err := s.AddClause(c1, solver.LabelShared); err != nil {
				e.log.Error().Err(err).Msg("adding equivalence clause")
				break
			}
			if err := s.AddClause(c2, solver.LabelShared); err != nil {
				e.log.Error().Err(err).Msg("adding equivalence clause")
				break
			}
			shared = append(shared, gatedag.Alias(v))
		}
	}

	if len(defined) == 0 {
		return nil, nil
	}

	circuit, err := s.GetCircuit(aliasesToInt32(shared), !e.isInterrupted())
	if err != nil {
		e.log.Error().Err(err).Msg("circuit extraction failed")
		return defined, nil
	}
	if circuit == nil {
		return defined, nil
	}
	return defined, e.circuitToDefinitions(circuit, defined, shared)
}

// circuitToDefinitions walks circuit in DFS order (solver.AIG.Nodes()
// guarantees inputs precede consumers), assigning each internal node and
// the constant-true node (if used) a fresh alias from the monotonically
// increasing auxiliaryStart counter, then maps AIG outputs onto the
// already-known defined aliases as unary AND buffers.
func (e *Extractor) circuitToDefinitions(circuit solver.AIG, defined []gatedag.Alias, shared []gatedag.Alias) []gatedag.Definition {
	var definitions []gatedag.Definition
	var constAlias int32

	if circuit.UsesConstTrue() {
		e.auxiliaryStart++
		constAlias = e.auxiliaryStart
		definitions = append(definitions, gatedag.Definition{OutAlias: gatedag.Alias(constAlias)})
	}

	nodes := circuit.Nodes()
	nodeAlias := make([]int32, len(nodes))
	resolve := func(f solver.Fanin) int32 {
		var v int32
		switch {
		case f.IsConst:
			v = constAlias
		case f.IsInput:
			v = int32(shared[f.InputIdx])
		default:
			v = nodeAlias[f.NodeIdx]
		}
		if f.Negated {
			v = -v
		}
		return v
	}

	for i, node := range nodes {
		e.auxiliaryStart++
		nodeAlias[i] = e.auxiliaryStart
		definitions = append(definitions, gatedag.Definition{
			Inputs:   []int32{resolve(node.Fanin0), resolve(node.Fanin1)},
			OutAlias: gatedag.Alias(e.auxiliaryStart),
		})
	}

	for i, out := range circuit.Outputs() {
		definitions = append(definitions, gatedag.Definition{
			Inputs:   []int32{resolve(out)},
			OutAlias: defined[i],
		})
	}
	return definitions
}

func toSigned(formula []matrix.Clause) [][]int32 {
	out := make([][]int32, len(formula))
	for i, c := range formula {
		out[i] = append([]int32(nil), c...)
	}
	return out
}

// renameFormula builds formula' (spec §4.4): every variable not in shared
// is renamed v -> v+offset, producing the disjoint B-side copy.
func renameFormula(formula [][]int32, shared map[int32]bool, offset int32) [][]int32 {
	out := make([][]int32, len(formula))
	for i, clause := range formula {
		renamed := make([]int32, len(clause))
		for j, lit := range clause {
			v := lit
			sign := int32(1)
			if v < 0 {
				v = -v
				sign = -1
			}
			if !shared[v] {
				v += offset
			}
			renamed[j] = sign * v
		}
		out[i] = renamed
	}
	return out
}

func literalClauses(clauses [][]int32) [][]int32 {
	out := make([][]int32, len(clauses))
	for i, c := range clauses {
		out[i] = literalClause(c)
	}
	return out
}

func literalClause(clause []int32) []int32 {
	out := make([]int32, len(clause))
	for i, lit := range clause {
		out[i] = solver.Literal(lit)
	}
	return out
}

func aliasesToInt32(aliases []gatedag.Alias) []int32 {
	out := make([]int32, len(aliases))
	for i, a := range aliases {
		out[i] = int32(a)
	}
	return out
}
