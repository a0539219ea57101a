package gatedag

// Definition is one extracted circuit: a gate with the given (already
// alias-resolved, signed) inputs should be installed at OutAlias. This is
// the Go analogue of the original's `definition = tuple<vector<int>,int>`.
type Definition struct {
	Inputs   []int32
	OutAlias Alias
}

// SpliceDefinitions installs each definition into the graph as an And gate,
// growing the gate slice with None placeholders if OutAlias names a gate
// not yet allocated, and assigns a fresh numeric id to any gate that didn't
// already have one. definedIDs lists the GateIDs of the query variables the
// definitions refer to, recorded for provenance. Splicing is idempotent
// against being re-run with no new candidates (property 6): a gate that
// already has inputs is never overwritten.
//
// Grounded on QBFParser::addDefinition / addDefinitions.
func (g *Graph) SpliceDefinitions(definitions []Definition, definedAliases []Alias) {
	for _, a := range definedAliases {
		g.DefinedIDs = append(g.DefinedIDs, g.gates[a].ID)
	}
	for _, def := range definitions {
		g.spliceOne(def)
	}
}

func (g *Graph) spliceOne(def Definition) {
	g.DefinitionAliases = append(g.DefinitionAliases, def.OutAlias)
	if int(def.OutAlias) >= len(g.gates) {
		grown := make([]Gate, int(def.OutAlias)+1)
		copy(grown, g.gates)
		g.gates = grown
	}
	gate := &g.gates[def.OutAlias]
	if gate.Inputs != nil {
		panic("gatedag: refusing to overwrite a gate that already has inputs")
	}
	gate.Kind = KindAnd
	gate.Inputs = def.Inputs
	if gate.ID == "" {
		gate.ID = g.NextNumericID()
		g.idToAlias[gate.ID] = def.OutAlias
	}
}
