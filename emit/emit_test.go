package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/unique/gatedag"
)

// buildSimpleGraph constructs exists(1,2) forall(3) output(4), 4 = and(1,
// -2, 3): one existential block, one universal block, one And gate.
func buildSimpleGraph(t *testing.T) *gatedag.Graph {
	t.Helper()
	g := gatedag.New()
	g.OpenQuantifierBlock()
	_, err := g.AddVariable("1", gatedag.KindExistential)
	require.NoError(t, err)
	_, err = g.AddVariable("2", gatedag.KindExistential)
	require.NoError(t, err)
	g.OpenQuantifierBlock()
	_, err = g.AddVariable("3", gatedag.KindUniversal)
	require.NoError(t, err)

	_, err = g.AddGate("4", gatedag.KindAnd, []gatedag.Literal{
		{ID: "1"}, {ID: "2", Negated: true}, {ID: "3"},
	})
	require.NoError(t, err)
	g.SetOutput("4")
	return g
}

func TestQCIRRoundTripsQuantifierBlocksAndGate(t *testing.T) {
	g := buildSimpleGraph(t)
	var buf bytes.Buffer
	require.NoError(t, QCIR(&buf, g, nil))

	out := buf.String()
	assert.Contains(t, out, "#QCIR-G14\n")
	assert.Contains(t, out, "exists(1, 2)\n")
	assert.Contains(t, out, "forall(3)\n")
	assert.Contains(t, out, "output(4)\n")
	assert.Contains(t, out, "4 = and(1, -2, 3)\n")
}

func TestQDIMACSEmitsPrefixAndMatrix(t *testing.T) {
	g := buildSimpleGraph(t)
	var buf bytes.Buffer
	require.NoError(t, QDIMACS(&buf, g, nil, false))

	out := buf.String()
	assert.Contains(t, out, "c defined variables: \n")
	assert.Contains(t, out, "e 1 2 0\n")
	assert.Contains(t, out, "a 3 0\n")
	// Output unit clause for the And gate, positive polarity.
	assert.Contains(t, out, "4 0\n")
}

func TestQDIMACSRawClausesSkipsTseitinOnOrGates(t *testing.T) {
	g := gatedag.New()
	g.OpenQuantifierBlock()
	_, err := g.AddVariable("1", gatedag.KindExistential)
	require.NoError(t, err)
	_, err = g.AddVariable("2", gatedag.KindExistential)
	require.NoError(t, err)

	_, err = g.AddGate("3", gatedag.KindOr, []gatedag.Literal{{ID: "1"}, {ID: "2", Negated: true}})
	require.NoError(t, err)
	_, err = g.AddGate("4", gatedag.KindAnd, []gatedag.Literal{{ID: "3"}})
	require.NoError(t, err)
	g.SetOutput("4")

	var buf bytes.Buffer
	require.NoError(t, QDIMACS(&buf, g, nil, true))
	out := buf.String()
	// The Or-gate's own clause is passed through verbatim, not Tseitin-encoded.
	assert.Contains(t, out, "1 -2 0\n")
}

func TestDIMACSEmitsOnlyDefinitionClauses(t *testing.T) {
	g := buildSimpleGraph(t)
	g.SpliceDefinitions([]gatedag.Definition{
		{OutAlias: 5, Inputs: []int32{1, -2}},
	}, []gatedag.Alias{1})

	var buf bytes.Buffer
	require.NoError(t, DIMACS(&buf, g))
	out := buf.String()
	assert.Contains(t, out, "c defined variables: 1 \n")
	assert.Contains(t, out, "1 -5 0\n")
}

func TestVerilogEmitsModuleWithInputsAndOutputs(t *testing.T) {
	g := buildSimpleGraph(t)
	// Variable 1 receives a definition in terms of 2 and 3: it becomes an
	// output, and 2, 3 remain inputs.
	g.SpliceDefinitions([]gatedag.Definition{
		{OutAlias: 1, Inputs: []int32{2, 3}},
	}, []gatedag.Alias{1})

	var buf bytes.Buffer
	require.NoError(t, Verilog(&buf, g))
	out := buf.String()
	assert.Contains(t, out, "module definitions(")
	assert.Contains(t, out, "input v_2, v_3;\n")
	assert.Contains(t, out, "output v_1;\n")
	assert.Contains(t, out, "assign v_1 = v_2 & v_3;\n")
	assert.Contains(t, out, "endmodule\n")
}

func TestVerilogConstantGateEmitsLiteral(t *testing.T) {
	g := gatedag.New()
	g.OpenQuantifierBlock()
	_, err := g.AddVariable("1", gatedag.KindExistential)
	require.NoError(t, err)
	g.SetOutput("1")
	// An empty-input And definition simplifies to the constant "1".
	g.SpliceDefinitions([]gatedag.Definition{
		{OutAlias: 1, Inputs: nil},
	}, []gatedag.Alias{1})

	var buf bytes.Buffer
	require.NoError(t, Verilog(&buf, g))
	assert.Contains(t, buf.String(), "assign v_1 = 1;\n")
}
