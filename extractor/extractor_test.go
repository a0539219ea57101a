package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/gatedag"
	"github.com/fslivovsky/unique/matrix"
	"github.com/fslivovsky/unique/solver/bruteforce"
)

// TestGetDefinitionsFindsDeterminedVariable encodes the 1-clause formula
// (1 or 2 or 3) and asks whether variable 3 is determined by {1, 2} under
// the constraint that variable 3 is forced false whenever 1 and 2 are both
// false is NOT expressible with a single clause, so instead we use a
// formula that pins 3 := 1 AND 2 directly: (-1 -2 3), (1 -3), (2 -3). That
// is a fully deterministic AND gate, so variable 3 should come back
// defined with a two-input circuit over {1, 2}.
func TestGetDefinitionsFindsDeterminedVariable(t *testing.T) {
	formula := []matrix.Clause{
		{-1, -2, 3}, {1, -3}, {2, -3},
	}
	query := []gatedag.Alias{3}
	shared := []gatedag.Alias{1, 2}
	mask := []bool{true}

	e := New(bruteforce.New, 0, true, nil)
	defined, definitions := e.GetDefinitions(formula, query, shared, mask, 3)

	require.Len(t, defined, 1)
	assert.Equal(t, gatedag.Alias(3), defined[0])
	assert.NotEmpty(t, definitions)

	// The final entry always buffers the AIG output onto the defined alias.
	last := definitions[len(definitions)-1]
	assert.Equal(t, gatedag.Alias(3), last.OutAlias)
	assert.Len(t, last.Inputs, 1)
}

// TestGetDefinitionsLeavesFreeVariableUndetermined: variable 3 is
// unconstrained, so no clause ties it to {1, 2}.
func TestGetDefinitionsLeavesFreeVariableUndetermined(t *testing.T) {
	formula := []matrix.Clause{
		{1, 2},
	}
	query := []gatedag.Alias{3}
	shared := []gatedag.Alias{1, 2}
	mask := []bool{true}

	e := New(bruteforce.New, 0, true, nil)
	defined, definitions := e.GetDefinitions(formula, query, shared, mask, 3)

	assert.Empty(t, defined)
	assert.Empty(t, definitions)
}

// TestGetDefinitionsReturnsEmptyOnUnsatMatrix: the matrix itself is
// contradictory, so the initial consistency check should short-circuit
// before any query variable is examined.
func TestGetDefinitionsReturnsEmptyOnUnsatMatrix(t *testing.T) {
	formula := []matrix.Clause{
		{1}, {-1},
	}
	query := []gatedag.Alias{2}
	shared := []gatedag.Alias{1}
	mask := []bool{true}

	e := New(bruteforce.New, 0, true, nil)
	defined, definitions := e.GetDefinitions(formula, query, shared, mask, 2)

	assert.Empty(t, defined)
	assert.Empty(t, definitions)
}

// TestGetDefinitionsNoQueriableVariablesShortCircuits: an all-false mask
// means nothing is actually being tested for definability.
func TestGetDefinitionsNoQueriableVariablesShortCircuits(t *testing.T) {
	formula := []matrix.Clause{{1, 2}}
	query := []gatedag.Alias{2}
	shared := []gatedag.Alias{1}
	mask := []bool{false}

	e := New(bruteforce.New, 0, true, nil)
	defined, definitions := e.GetDefinitions(formula, query, shared, mask, 2)

	assert.Empty(t, defined)
	assert.Empty(t, definitions)
}

func TestInterruptBeforeCallShortCircuits(t *testing.T) {
	e := New(bruteforce.New, 0, true, nil)
	e.Interrupt()

	formula := []matrix.Clause{{-1, -2, 3}, {1, -3}, {2, -3}}
	defined, definitions := e.GetDefinitions(formula, []gatedag.Alias{3}, []gatedag.Alias{1, 2}, []bool{true}, 3)
	assert.Empty(t, defined)
	assert.Empty(t, definitions)
}

// TestAuxiliaryStartMonotonicAcrossCalls checks that a second call's
// synthesized aliases never collide with the first call's, since the
// underlying gate graph splices both sets of definitions into one space.
func TestAuxiliaryStartMonotonicAcrossCalls(t *testing.T) {
	e := New(bruteforce.New, 0, true, nil)
	formula := []matrix.Clause{{-1, -2, 3}, {1, -3}, {2, -3}}

	_, first := e.GetDefinitions(formula, []gatedag.Alias{3}, []gatedag.Alias{1, 2}, []bool{true}, 3)
	require.NotEmpty(t, first)
	firstMax := int32(0)
	for _, d := range first {
		if int32(d.OutAlias) > firstMax {
			firstMax = int32(d.OutAlias)
		}
	}

	formula2 := []matrix.Clause{{-4, -5, 6}, {4, -6}, {5, -6}}
	_, second := e.GetDefinitions(formula2, []gatedag.Alias{6}, []gatedag.Alias{4, 5}, []bool{true}, 6)
	require.NotEmpty(t, second)
	// The final entry buffers onto the query variable itself (alias 6), not
	// a synthesized alias, so only the entries before it are checked.
	for _, d := range second[:len(second)-1] {
		assert.Greater(t, int32(d.OutAlias), firstMax)
	}
}
