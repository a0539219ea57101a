// Package bruteforce implements solver.InterpolatingSolver by brute-force
// enumeration instead of a real SAT engine and Craig interpolation
// algorithm. It lets extractor tests exercise the full control flow
// (AddFormula/AddClause/Solve/GetInterpolant/GetCircuit/Interrupt) against
// small formulas without depending on an external solver binary, and it is
// the backend registered as "bruteforce", which cmd/unique and the HTTP
// service use by default. Its enumeration is exponential, so it only
// handles small instances.
//
// For a small enough variable count, "is variable v uniquely determined
// by sharedVars" can be answered directly by truth-table enumeration
// rather than interpolation, and the resulting truth table can be turned
// into an AIG by straightforward Shannon expansion. That is what this
// package does.
package bruteforce

import (
	"fmt"
	"sync/atomic"

	"github.com/fslivovsky/unique/solver"
)

// MaxVars is the largest variable count a Solver accepts. Larger instances
// are rejected rather than silently timing out.
const MaxVars = 22

type clauseSet struct {
	a, b  [][]int32
	extra []labeledClause
}

type labeledClause struct {
	clause []int32
	label  solver.Label
}

// Solver is the brute-force reference implementation.
type Solver struct {
	maxVar int32
	clauseSet

	interrupted int32 // atomic bool

	// interpolants records, per outputVar asked about in a UNSAT
	// GetInterpolant call, the truth table of that variable's forced value
	// as a function of the shared vars passed to that call.
	interpolants map[int32]*interpolant
	// order lists the keys of interpolants in the order they were recorded.
	order []int32
}

type interpolant struct {
	sharedVars []int32
	table      []bool // 2^len(sharedVars) entries
}

// New returns a brute-force solver sized for maxVar variables.
func New(maxVar int32) solver.InterpolatingSolver {
	return &Solver{maxVar: maxVar, interpolants: make(map[int32]*interpolant)}
}

func init() {
	solver.Default.Register("bruteforce", New)
}

// AddFormula installs the A-side and B-side clause copies. Per the
// InterpolatingSolver contract (spec §6), callers present clauses already
// encoded as 2|v|+(sign<0); this brute-force reference decodes them back
// to plain signed literals for enumeration.
func (s *Solver) AddFormula(a, b [][]int32) error {
	s.clauseSet.a = decodeClauses(a)
	s.clauseSet.b = decodeClauses(b)
	return nil
}

// AddClause appends one more labeled clause, decoding it from the
// minisat-style literal encoding first.
func (s *Solver) AddClause(clause []int32, label solver.Label) error {
	cp := decodeClause(clause)
	switch label {
	case solver.LabelShared:
		s.clauseSet.a = append(s.clauseSet.a, cp)
		s.clauseSet.b = append(s.clauseSet.b, append([]int32(nil), cp...))
	case solver.LabelA:
		s.clauseSet.a = append(s.clauseSet.a, cp)
	case solver.LabelB:
		s.clauseSet.b = append(s.clauseSet.b, cp)
	default:
		s.clauseSet.extra = append(s.clauseSet.extra, labeledClause{cp, label})
	}
	return nil
}

// Solve reports whether the unconditional conjunction of all installed
// clauses is satisfiable.
func (s *Solver) Solve() (bool, error) {
	if s.maxVar > MaxVars {
		return false, fmt.Errorf("bruteforce: %d variables exceeds brute-force limit of %d", s.maxVar, MaxVars)
	}
	all := s.allClauses(nil)
	_, ok := firstModel(s.maxVar, all)
	return ok, nil
}

// allClauses assembles the combined clause set under assumptions, which
// arrive minisat-encoded (spec §6) and are decoded to plain literals first.
func (s *Solver) allClauses(assumptions []int32) [][]int32 {
	clauses := make([][]int32, 0, len(s.clauseSet.a)+len(s.clauseSet.b)+len(s.clauseSet.extra)+len(assumptions))
	clauses = append(clauses, s.clauseSet.a...)
	clauses = append(clauses, s.clauseSet.b...)
	for _, lc := range s.clauseSet.extra {
		clauses = append(clauses, lc.clause)
	}
	for _, lit := range assumptions {
		clauses = append(clauses, []int32{decodeLiteral(lit)})
	}
	return clauses
}

// GetInterpolant decides, by brute enumeration, whether the installed
// formula is UNSAT under assumptions. If so, it records the truth table of
// outputVar's forced value as a function of sharedVars (evaluated against
// the A-side clauses alone, since by construction the A-side is the
// "real" copy) and returns true. conflictLimit is accepted but ignored:
// there are no conflicts to count.
func (s *Solver) GetInterpolant(outputVar int32, assumptions []int32, sharedVars []int32, conflictLimit int) (bool, error) {
	if atomic.LoadInt32(&s.interrupted) != 0 {
		return false, nil
	}
	if s.maxVar > MaxVars {
		return false, fmt.Errorf("bruteforce: %d variables exceeds brute-force limit of %d", s.maxVar, MaxVars)
	}
	if _, sat := firstModel(s.maxVar, s.allClauses(assumptions)); sat {
		return false, nil
	}

	table := make([]bool, 1<<uint(len(sharedVars)))
	for mask := range table {
		clauses := make([][]int32, 0, len(s.clauseSet.a)+len(assumptions)+len(sharedVars))
		clauses = append(clauses, s.clauseSet.a...)
		for _, lit := range assumptions {
			clauses = append(clauses, []int32{decodeLiteral(lit)})
		}
		for i, v := range sharedVars {
			lit := v
			if mask&(1<<uint(i)) == 0 {
				lit = -v
			}
			clauses = append(clauses, []int32{lit})
		}
		model, sat := firstModel(s.maxVar, clauses)
		if !sat {
			// No A-side model consistent with this shared assignment;
			// the value is vacuously whatever GetCircuit's caller expects
			// (false, by convention) since this input combination cannot
			// arise.
			table[mask] = false
			continue
		}
		table[mask] = model[int(outputVar)]
	}
	if _, seen := s.interpolants[outputVar]; !seen {
		s.order = append(s.order, outputVar)
	}
	s.interpolants[outputVar] = &interpolant{sharedVars: append([]int32(nil), sharedVars...), table: table}
	return true, nil
}

// GetCircuit converts every recorded interpolant into an AIG output, in
// the order GetInterpolant recorded them. useAllInterpolants is accepted
// for interface compatibility; brute-force evaluation has no notion of a
// partial result, so it is ignored.
func (s *Solver) GetCircuit(sharedVars []int32, useAllInterpolants bool) (solver.AIG, error) {
	aig := &aig{}
	for _, outVar := range s.orderedOutputVars() {
		it := s.interpolants[outVar]
		out := buildFromTable(aig, it.table, len(it.sharedVars))
		aig.outputs = append(aig.outputs, out)
	}
	return aig, nil
}

// orderedOutputVars returns recorded output variables in the order
// GetInterpolant first recorded each of them.
func (s *Solver) orderedOutputVars() []int32 {
	return append([]int32(nil), s.order...)
}

// Interrupt sets the cooperative cancellation flag; the next
// GetInterpolant call returns false instead of continuing to enumerate.
func (s *Solver) Interrupt() { atomic.StoreInt32(&s.interrupted, 1) }

// decodeLiteral reverses the 2|v|+(sign<0) encoding back to a plain signed
// DIMACS-style literal.
func decodeLiteral(encoded int32) int32 {
	v := encoded / 2
	if encoded%2 == 1 {
		return -v
	}
	return v
}

func decodeClause(clause []int32) []int32 {
	out := make([]int32, len(clause))
	for i, lit := range clause {
		out[i] = decodeLiteral(lit)
	}
	return out
}

func decodeClauses(in [][]int32) [][]int32 {
	out := make([][]int32, len(in))
	for i, c := range in {
		out[i] = decodeClause(c)
	}
	return out
}

// firstModel returns the first satisfying total assignment found by
// exhaustive search over maxVar boolean variables, and whether one exists.
// The returned map is 1-indexed by variable number.
func firstModel(maxVar int32, clauses [][]int32) (map[int]bool, bool) {
	n := uint(maxVar)
	for assignment := uint64(0); assignment < uint64(1)<<n; assignment++ {
		if satisfies(assignment, clauses) {
			model := make(map[int]bool, maxVar)
			for v := int32(1); v <= maxVar; v++ {
				model[int(v)] = assignment&(1<<uint(v-1)) != 0
			}
			return model, true
		}
	}
	return nil, false
}

func satisfies(assignment uint64, clauses [][]int32) bool {
	for _, clause := range clauses {
		if !clauseSatisfied(assignment, clause) {
			return false
		}
	}
	return true
}

func clauseSatisfied(assignment uint64, clause []int32) bool {
	for _, lit := range clause {
		v := lit
		negated := false
		if v < 0 {
			v = -v
			negated = true
		}
		bit := assignment&(1<<uint(v-1)) != 0
		if bit != negated {
			return true
		}
	}
	return false
}

// aig is the brute-force package's solver.AIG implementation: a flat node
// list built by Shannon expansion over a truth table.
type aig struct {
	nodes     []solver.AIGNode
	outputs   []solver.Fanin
	constTrue bool
}

func (a *aig) Nodes() []solver.AIGNode { return a.nodes }
func (a *aig) Outputs() []solver.Fanin { return a.outputs }
func (a *aig) UsesConstTrue() bool     { return a.constTrue }

func negateFanin(f solver.Fanin) solver.Fanin {
	f.Negated = !f.Negated
	return f
}

func (a *aig) appendAnd(x, y solver.Fanin) solver.Fanin {
	a.nodes = append(a.nodes, solver.AIGNode{Fanin0: x, Fanin1: y})
	return solver.Fanin{NodeIdx: len(a.nodes) - 1}
}

// buildFromTable constructs an AIG fragment computing table, a function of
// nVars boolean inputs (bit i of the table index selects input i), by
// Shannon expansion on the highest-numbered input first:
// f = ite(x, f|x=1, f|x=0).
func buildFromTable(a *aig, table []bool, nVars int) solver.Fanin {
	return buildRec(a, table, 0, nVars)
}

func buildRec(a *aig, table []bool, varIdx, nVars int) solver.Fanin {
	if len(table) == 1 {
		if table[0] {
			a.constTrue = true
			return solver.Fanin{IsConst: true}
		}
		a.constTrue = true
		return negateFanin(solver.Fanin{IsConst: true})
	}
	half := len(table) / 2
	lo := buildRec(a, table[:half], varIdx+1, nVars)
	hi := buildRec(a, table[half:], varIdx+1, nVars)
	if sameFanin(lo, hi) {
		return lo
	}
	// The halves differ in the top bit of the local index, which is bit
	// nVars-1-varIdx of the full table index.
	x := solver.Fanin{IsInput: true, InputIdx: nVars - 1 - varIdx}
	// ite(x, hi, lo) = NOT( AND(NOT AND(x,hi), NOT AND(NOT x, lo)) )
	and1 := a.appendAnd(x, hi)
	and2 := a.appendAnd(negateFanin(x), lo)
	or := a.appendAnd(negateFanin(and1), negateFanin(and2))
	return negateFanin(or)
}

func sameFanin(a, b solver.Fanin) bool { return a == b }
