package bruteforce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/solver"
)

// encode converts a batch of plain signed test clauses into the
// minisat-style 2|v|+(sign<0) encoding the InterpolatingSolver contract
// (spec §6) requires of AddFormula/AddClause callers.
func encode(clauses ...[]int32) [][]int32 {
	out := make([][]int32, len(clauses))
	for i, c := range clauses {
		enc := make([]int32, len(c))
		for j, lit := range c {
			enc[j] = solver.Literal(lit)
		}
		out[i] = enc
	}
	return out
}

// TestSolveDetectsUnsat builds the classic unsatisfiable 2-clause pair
// (x) and (-x) as the A-side alone (B-side empty) and checks Solve reports
// UNSAT.
func TestSolveDetectsUnsat(t *testing.T) {
	s := New(1)
	require.NoError(t, s.AddFormula(encode([]int32{1}, []int32{-1}), nil))
	sat, err := s.Solve()
	require.NoError(t, err)
	assert.False(t, sat)
}

func TestSolveDetectsSat(t *testing.T) {
	s := New(2)
	require.NoError(t, s.AddFormula(encode([]int32{1, 2}), nil))
	sat, err := s.Solve()
	require.NoError(t, err)
	assert.True(t, sat)
}

// TestGetInterpolantDetectsDeterminedVariable encodes out = and(x1, x2) as
// the A-side and out' = and(x1, x2) over a renamed output variable as the
// B-side (variable 3 stands for out, variable 4 for out'), which is UNSAT
// once clause (out != out') is added as an extra disagreement clause — the
// classic Padoa setup for "out is uniquely determined by x1, x2".
func TestGetInterpolantDetectsDeterminedVariable(t *testing.T) {
	s := New(4)
	a := encode([]int32{-1, -2, 3}, []int32{1, -3}, []int32{2, -3}) // 3 <-> (1 and 2)
	b := encode([]int32{-1, -2, 4}, []int32{1, -4}, []int32{2, -4}) // 4 <-> (1 and 2), B-side copy
	require.NoError(t, s.AddFormula(a, b))
	// disagreement clause: (3 or 4) and (-3 or -4), i.e. 3 != 4
	require.NoError(t, s.AddClause(encode([]int32{3, 4})[0], solver.LabelA))
	require.NoError(t, s.AddClause(encode([]int32{-3, -4})[0], solver.LabelA))

	determined, err := s.GetInterpolant(3, nil, []int32{1, 2}, 0)
	require.NoError(t, err)
	assert.True(t, determined)
}

// TestGetInterpolantDetectsUndeterminedVariable: variable 3 is free (no
// clauses constrain it at all), so it is not determined by {1, 2} — the
// disagreement formula stays satisfiable (3=true, 4=false).
func TestGetInterpolantDetectsUndeterminedVariable(t *testing.T) {
	s := New(4)
	require.NoError(t, s.AddFormula(nil, nil))
	require.NoError(t, s.AddClause(encode([]int32{3, 4})[0], solver.LabelA))
	require.NoError(t, s.AddClause(encode([]int32{-3, -4})[0], solver.LabelA))

	determined, err := s.GetInterpolant(3, nil, []int32{1, 2}, 0)
	require.NoError(t, err)
	assert.False(t, determined)
}

// TestGetCircuitBuildsConstantOutputForAlwaysTrueVariable: variable 2 (the
// A-side output copy) and variable 3 (its B-side renamed copy) are each
// forced true unconditionally and independently of variable 1, and a
// disagreement clause (2 != 3) is added. The combined formula is UNSAT
// (both sides force their copy true, so they can never disagree), meaning
// variable 2 is uniquely determined by the empty shared set — a constant.
func TestGetCircuitBuildsConstantOutputForAlwaysTrueVariable(t *testing.T) {
	s := New(3)
	require.NoError(t, s.AddFormula(encode([]int32{2}), encode([]int32{3})))
	require.NoError(t, s.AddClause(encode([]int32{2, 3})[0], solver.LabelA))
	require.NoError(t, s.AddClause(encode([]int32{-2, -3})[0], solver.LabelA))

	determined, err := s.GetInterpolant(2, nil, nil, 0)
	require.NoError(t, err)
	require.True(t, determined)

	circuit, err := s.GetCircuit(nil, false)
	require.NoError(t, err)
	require.Len(t, circuit.Outputs(), 1)
	assert.True(t, circuit.Outputs()[0].IsConst)
	assert.False(t, circuit.Outputs()[0].Negated)
}

func TestInterruptStopsFurtherInterpolation(t *testing.T) {
	s := New(2)
	require.NoError(t, s.AddFormula(nil, nil))
	s.Interrupt()
	determined, err := s.GetInterpolant(1, nil, []int32{2}, 0)
	require.NoError(t, err)
	assert.False(t, determined)
}

func TestSolveRejectsOversizedInstance(t *testing.T) {
	s := New(MaxVars + 1)
	_, err := s.Solve()
	assert.Error(t, err)
}
