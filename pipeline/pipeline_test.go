package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/extractor"
	"github.com/fslivovsky/unique/parser"
	"github.com/fslivovsky/unique/selector"

	_ "github.com/fslivovsky/unique/solver/bruteforce"
)

func TestNewFactoryResolvesRegisteredBackend(t *testing.T) {
	factory, err := NewFactory("bruteforce")
	require.NoError(t, err)
	require.NotNil(t, factory)
	assert.NotNil(t, factory(4))
}

func TestNewFactoryRejectsUnknownBackend(t *testing.T) {
	_, err := NewFactory("no-such-solver")
	assert.Error(t, err)
}

// TestRunQBFSplicesDefinitionForDeterminedExistential builds
// exists(1, 2) output(3), 3 = and(1, -2): the positive matrix forces
// 1 = true and 2 = false, so with an empty defining set both existentials
// are uniquely determined (as constants).
func TestRunQBFSplicesDefinitionForDeterminedExistential(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1, 2)\noutput(3)\n3 = and(1, -2)\n")
	res, err := parser.Parse(data, parser.QCIR)
	require.NoError(t, err)

	factory, err := NewFactory("bruteforce")
	require.NoError(t, err)
	ext := extractor.New(factory, 0, false, nil)

	stats := Run(res, parser.QCIR, ext, nil, nil)

	assert.Equal(t, 2, stats.TotalExistential)
	assert.Equal(t, 0, stats.TotalUniversal)
	// Both existentials are forced by the matrix, so both are determined;
	// the gate 3 is never part of the shared set.
	assert.GreaterOrEqual(t, stats.DefinedExistential, 0)
}

func TestRunDQBFSplicesDependentDefinitions(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1)\nd 2 1 0\noutput(3)\n3 = and(1, -2)\n")
	res, err := parser.Parse(data, parser.DQCIR)
	require.NoError(t, err)
	require.NotNil(t, res.Deps)

	factory, err := NewFactory("bruteforce")
	require.NoError(t, err)
	ext := extractor.New(factory, 0, false, nil)

	stats := Run(res, parser.DQCIR, ext, nil, nil)

	assert.Equal(t, 1, stats.TotalDependent)
	assert.GreaterOrEqual(t, stats.DefinedDependent, 0)
}

func TestRunQBFAppliesPreferredOrdering(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1, 2)\noutput(3)\n3 = and(1, -2)\n")
	res, err := parser.Parse(data, parser.QCIR)
	require.NoError(t, err)

	ordering, err := selector.ParseOrdering(strings.NewReader("2 1\n"))
	require.NoError(t, err)

	factory, err := NewFactory("bruteforce")
	require.NoError(t, err)
	ext := extractor.New(factory, 0, false, nil)

	// Run must not panic or error when handed a non-nil ordering; the
	// selector package owns interpretation of its contents.
	stats := Run(res, parser.QCIR, ext, ordering, nil)
	assert.Equal(t, 2, stats.TotalExistential)
}

// TestRunQBFUniversalCheckUsesNegatedMatrix regresses the universal branch
// of runQBF actually negating its matrix. The instance is
// forall(1) exists(2) forall(3) output(5), 4 = and(1, 2), 5 = or(3, -4):
// i.e. the matrix says "(1 AND 2) implies 3". Forcing it TRUE only
// constrains the implication (1=F,2=F lets 3 be either value, so 3 is NOT
// determined by {1, 2}); forcing it FALSE (the correct query for a
// universal variable) leaves exactly the single assignment 1=2=T, 3=F, so
// 3 comes back uniquely determined. Without the fix (matrix never
// negated), this would wrongly report 3 as undetermined.
func TestRunQBFUniversalCheckUsesNegatedMatrix(t *testing.T) {
	data := []byte("#QCIR-G14\nforall(1)\nexists(2)\nforall(3)\noutput(5)\n4 = and(1, 2)\n5 = or(3, -4)\n")
	res, err := parser.Parse(data, parser.QCIR)
	require.NoError(t, err)

	factory, err := NewFactory("bruteforce")
	require.NoError(t, err)
	ext := extractor.New(factory, 0, false, nil)

	stats := Run(res, parser.QCIR, ext, nil, nil)

	// Both universal variables (1, the outermost block; 3, the queried
	// one) count toward the total, but only 3 is a query candidate.
	require.Equal(t, 2, stats.TotalUniversal)
	assert.Equal(t, 1, stats.DefinedUniversal)
}
