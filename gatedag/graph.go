package gatedag

import "strconv"

// Graph is the dense, alias-indexed gate DAG described in spec §3. Index 0
// is a dummy slot so literals can be signed. Variables occupy
// [1, VariableGateBoundary) in quantifier-prefix order; gates occupy
// [VariableGateBoundary, len). Gates may be appended both while parsing and
// later, when extracted definitions are spliced back in.
type Graph struct {
	gates []Gate

	idToAlias map[GateID]Alias

	// VariableGateBoundary is the first alias that is a gate, not a variable.
	VariableGateBoundary Alias

	OutputAlias Alias

	MaxQuantifierDepth int
	currentDepth       int

	numberVariables [2]int // indexed by GateKind-1: [Existential, Universal]... see NumberVariables

	// MaxIDNumber is the largest numeric id seen so far; the source of
	// fresh ids for synthesized auxiliary gates.
	MaxIDNumber int

	// DefinedIDs lists the GateIDs that received an extracted definition,
	// for provenance.
	DefinedIDs []GateID
	// DefinitionAliases lists the aliases of gates introduced as
	// definitions, in splice order; used by Verilog/DIMACS emission.
	DefinitionAliases []Alias
}

// New returns an empty graph with the dummy slot 0 populated.
func New() *Graph {
	g := &Graph{
		gates:                make([]Gate, 1, 64),
		idToAlias:            make(map[GateID]Alias, 64),
		VariableGateBoundary: 1,
	}
	return g
}

// Len returns the number of alias slots, including the dummy at 0.
func (g *Graph) Len() int { return len(g.gates) }

// Gate returns the gate stored at alias. Callers must only pass in-range
// aliases (1 <= alias < Len()); this mirrors the teacher's direct slice
// indexing and panics on misuse rather than silently returning a zero value.
func (g *Graph) Gate(a Alias) *Gate { return &g.gates[a] }

// LookupID returns the alias registered for id, if any.
func (g *Graph) LookupID(id GateID) (Alias, bool) {
	a, ok := g.idToAlias[id]
	return a, ok
}

// GetOrCreateAlias returns the existing alias for id, or creates a fresh
// placeholder Gate{id, KindNone} — used to resolve forward references that
// are only fully defined later in a well-formed file.
func (g *Graph) GetOrCreateAlias(id GateID) Alias {
	if a, ok := g.idToAlias[id]; ok {
		return a
	}
	a := Alias(len(g.gates))
	g.gates = append(g.gates, Gate{ID: id})
	g.idToAlias[id] = a
	return a
}

// OpenQuantifierBlock advances the quantifier-prefix depth counter; callers
// invoke this once per contiguous same-kind block before adding its variables.
func (g *Graph) OpenQuantifierBlock() {
	g.currentDepth++
	if g.currentDepth > g.MaxQuantifierDepth {
		g.MaxQuantifierDepth = g.currentDepth
	}
}

// AddVariable appends a variable at the next alias. It fails if id already
// names a gate in this graph.
func (g *Graph) AddVariable(id GateID, kind GateKind) (Alias, error) {
	if !kind.IsVariable() {
		panic("gatedag: AddVariable requires an Existential or Universal kind")
	}
	if _, ok := g.idToAlias[id]; ok {
		return 0, ErrDuplicateID{id}
	}
	noteNumericID(g, id)
	a := Alias(len(g.gates))
	g.gates = append(g.gates, Gate{ID: id, Kind: kind, Depth: g.currentDepth})
	g.idToAlias[id] = a
	if kind == KindExistential {
		g.numberVariables[0]++
	} else {
		g.numberVariables[1]++
	}
	g.VariableGateBoundary = Alias(len(g.gates))
	return a, nil
}

// AddGate resolves each input id (creating a placeholder alias for unseen
// forward references) and stores the signed aliases in order. Pre: gate id
// was not previously defined as a gate (a placeholder from a forward
// reference is fine and is upgraded in place).
func (g *Graph) AddGate(id GateID, kind GateKind, inputLiterals []Literal) (Alias, error) {
	if !kind.IsGate() {
		panic("gatedag: AddGate requires an And or Or kind")
	}
	noteNumericID(g, id)
	a := g.GetOrCreateAlias(id)
	if g.gates[a].Kind != KindNone {
		return 0, ErrDuplicateID{id}
	}
	inputs := make([]int32, len(inputLiterals))
	for i, lit := range inputLiterals {
		inputAlias := g.GetOrCreateAlias(lit.ID)
		if lit.Negated {
			inputs[i] = -int32(inputAlias)
		} else {
			inputs[i] = int32(inputAlias)
		}
	}
	g.gates[a].Kind = kind
	g.gates[a].Inputs = inputs
	g.gates[a].ID = id
	return a, nil
}

// Literal is a signed reference to a gate id, as produced by a parser before
// aliases are known.
type Literal struct {
	ID      GateID
	Negated bool
}

// SetOutput records the output gate id, creating a placeholder alias if it
// has not been seen yet (a QCIR-family output(...) line comes before the
// gate it names is defined; the placeholder is filled in by AddGate).
func (g *Graph) SetOutput(id GateID) {
	g.OutputAlias = g.GetOrCreateAlias(id)
}

// NumberVariables returns how many variables of the given kind were added.
func (g *Graph) NumberVariables(kind GateKind) int {
	switch kind {
	case KindExistential:
		return g.numberVariables[0]
	case KindUniversal:
		return g.numberVariables[1]
	default:
		return 0
	}
}

// MaxVariableAlias returns the largest alias in use, i.e. getMaxVariableInt
// in the original source: the declared CNF variable count.
func (g *Graph) MaxVariableAlias() Alias { return Alias(len(g.gates) - 1) }

// NextNumericID allocates and returns a fresh numeric id string, used when
// splicing a definition into a gate that has no id of its own.
func (g *Graph) NextNumericID() GateID {
	g.MaxIDNumber++
	return GateID(strconv.Itoa(g.MaxIDNumber))
}

func noteNumericID(g *Graph, id GateID) {
	if n, err := strconv.Atoi(string(id)); err == nil && n > g.MaxIDNumber {
		g.MaxIDNumber = n
	}
}
