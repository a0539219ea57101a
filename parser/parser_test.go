package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/gatedag"
)

func TestSniffClassifiesAllFourDialects(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Format
	}{
		{"qcir", "#QCIR-G14\nexists(1,2)\noutput(1)\n", QCIR},
		{"dqcir", "#QCIR-G14\nexists(1)\nd 2 1 0\noutput(1)\n", DQCIR},
		{"qdimacs", "p cnf 2 1\ne 1 2 0\n1 2 0\n", QDIMACS},
		{"dqdimacs", "p cnf 2 1\ne 1 0\nd 2 1 0\n1 2 0\n", DQDIMACS},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Sniff([]byte(c.data)))
		})
	}
}

func TestParseQCIRBuildsGraphWithOutputAndGates(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1, 2)\noutput(3)\n3 = and(1, -2)\n")
	res, err := Parse(data, QCIR)
	require.NoError(t, err)
	require.Nil(t, res.Deps)

	g := res.Graph
	a1, ok := g.LookupID("1")
	require.True(t, ok)
	a2, ok := g.LookupID("2")
	require.True(t, ok)
	a3, ok := g.LookupID("3")
	require.True(t, ok)

	assert.Equal(t, a3, g.OutputAlias)
	assert.Equal(t, gatedag.KindAnd, g.Gate(a3).Kind)
	assert.Equal(t, []int32{int32(a1), -int32(a2)}, g.Gate(a3).Inputs)
}

func TestParseQCIRRejectsMissingOutput(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1)\n")
	_, err := Parse(data, QCIR)
	assert.Error(t, err)
}

func TestParseQDIMACSSynthesizesOutputGate(t *testing.T) {
	data := []byte("p cnf 2 1\ne 1 2 0\n1 2 0\n")
	res, err := Parse(data, QDIMACS)
	require.NoError(t, err)

	g := res.Graph
	require.NotEqual(t, gatedag.Alias(0), g.OutputAlias)
	outputGate := g.Gate(g.OutputAlias)
	assert.Equal(t, gatedag.KindAnd, outputGate.Kind)
	require.Len(t, outputGate.Inputs, 1) // one input clause, the And over all Or-gates
}

func TestParseDQCIRRecordsDependency(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1)\nd 2 1 0\noutput(3)\n3 = and(1, 2)\n")
	res, err := Parse(data, DQCIR)
	require.NoError(t, err)
	require.NotNil(t, res.Deps)

	g := res.Graph
	a1, _ := g.LookupID("1")
	a2, _ := g.LookupID("2")
	assert.Equal(t, gatedag.KindExistential, g.Gate(a2).Kind)
	assert.Equal(t, []gatedag.Alias{a1}, res.Deps.Deps[a2])
}

func TestParseDQDIMACSRecordsDependency(t *testing.T) {
	data := []byte("p cnf 2 1\ne 1 0\nd 2 1 0\n1 2 0\n")
	res, err := Parse(data, DQDIMACS)
	require.NoError(t, err)
	require.NotNil(t, res.Deps)

	g := res.Graph
	a1, _ := g.LookupID("1")
	a2, _ := g.LookupID("2")
	assert.Equal(t, []gatedag.Alias{a1}, res.Deps.Deps[a2])
}

func TestParseQCIRHandlesNegatedGateInputs(t *testing.T) {
	data := []byte("#QCIR-G14\nexists(1)\nforall(2)\noutput(3)\n3 = or(-1, -2)\n")
	res, err := Parse(data, QCIR)
	require.NoError(t, err)

	g := res.Graph
	a1, _ := g.LookupID("1")
	a2, _ := g.LookupID("2")
	a3, _ := g.LookupID("3")
	assert.Equal(t, gatedag.KindOr, g.Gate(a3).Kind)
	assert.Equal(t, []int32{-int32(a1), -int32(a2)}, g.Gate(a3).Inputs)
}
