// Package solver defines the InterpolatingSolver contract the definition
// extractor depends on (spec §6). The core treats the actual SAT and
// Craig-interpolation procedure as an external collaborator; this package
// only pins down the interface and a small registry for pluggable
// implementations, the way qplay/qc/simulator.RunnerRegistry lets backend
// runners register themselves without the caller importing them directly.
package solver

import "fmt"

// Label distinguishes which side of an interpolation pair a clause belongs
// to when it is not shared between both copies of the formula.
type Label int

const (
	// LabelShared marks a clause that belongs to both the A-side and the
	// B-side (e.g. the equivalence clauses promoting a variable to shared).
	LabelShared Label = 0
	LabelA      Label = 1
	LabelB      Label = 2
)

// AIG is an opaque, read-only And-Inverter Graph handle produced by
// GetCircuit. The extractor only walks it in DFS order via the accessor
// methods below; it never mutates it (spec §9, "Aig_Man_t* ownership").
type AIG interface {
	// Nodes returns every internal AND node in DFS order (inputs before
	// the nodes that consume them), each as a 2-input gate over Fanins
	// that are themselves either primary inputs (by CIO index) or earlier
	// nodes in this same slice.
	Nodes() []AIGNode
	// Outputs returns one Fanin per AIG output, in the order in which
	// GetInterpolant first returned true for each output variable.
	Outputs() []Fanin
	// UsesConstTrue reports whether any fanin in this AIG is the constant-
	// true node.
	UsesConstTrue() bool
}

// AIGNode is one 2-input AND gate of an AIG.
type AIGNode struct {
	Fanin0, Fanin1 Fanin
}

// Fanin is a signed reference into an AIG: either a primary input
// (IsInput, by CIO index), the constant-true node (IsConst), or a previously
// emitted internal node (by its position in AIG.Nodes()).
type Fanin struct {
	Negated  bool
	IsInput  bool
	IsConst  bool
	InputIdx int // valid when IsInput
	NodeIdx  int // valid when neither IsInput nor IsConst: index into Nodes()
}

// InterpolatingSolver is the black-box capability the extractor drives
// (spec §6). Literal encoding follows IPASIR/MiniSat convention:
// 2*|v| + (sign<0).
type InterpolatingSolver interface {
	// AddFormula installs two labeled clause sets: the A-side copy F(X,Y)
	// and the B-side copy F(X,Y').
	AddFormula(a, b [][]int32) error
	// AddClause adds one more clause, labeled per Label.
	AddClause(clause []int32, label Label) error
	// Solve runs the base (unconditional) satisfiability check.
	Solve() (sat bool, err error)
	// GetInterpolant attempts to refute under assumptions; true means UNSAT
	// and an interpolant over sharedVars was recorded internally, keyed by
	// outputVar, for later retrieval via GetCircuit. false means SAT or the
	// conflict budget was exhausted before a verdict.
	GetInterpolant(outputVar int32, assumptions []int32, sharedVars []int32, conflictLimit int) (bool, error)
	// GetCircuit asks for one AIG containing an output for every variable
	// for which GetInterpolant previously returned true, parameterized by
	// sharedVars (the final promoted-to-shared vocabulary). useAllInterpolants
	// selects whether partial (interrupted) results should still be
	// extracted. Returns nil if no circuit is available.
	GetCircuit(sharedVars []int32, useAllInterpolants bool) (AIG, error)
	// Interrupt asks any in-progress Solve/GetInterpolant call to return
	// early; cooperative, not synchronous.
	Interrupt()
}

// Literal encodes a signed DIMACS-style literal into the solver's native
// 2*|v|+(sign<0) encoding (spec §6).
func Literal(lit int32) int32 {
	v := lit
	neg := int32(0)
	if v < 0 {
		v = -v
		neg = 1
	}
	return 2*v + neg
}

// ErrOutOfMemory is returned by a solver implementation when it cannot
// continue due to resource exhaustion; the extractor treats this as
// recoverable (spec §5, §7).
var ErrOutOfMemory = fmt.Errorf("solver: out of memory")

// Factory builds a fresh solver instance sized for maxVar variables.
type Factory func(maxVar int32) InterpolatingSolver

// Registry manages named solver factories so callers can select a backend
// by name instead of importing its package directly, mirroring
// qplay/qc/simulator.RunnerRegistry.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{factories: make(map[string]Factory)} }

// Register records factory under name. Returns an error if name is empty,
// factory is nil, or the name is already taken.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("solver: registry: name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("solver: registry: factory must not be nil")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("solver: registry: %q is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create builds a new solver using the factory registered under name.
func (r *Registry) Create(name string, maxVar int32) (InterpolatingSolver, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("solver: registry: unknown backend %q", name)
	}
	return factory(maxVar), nil
}

// Names returns the registered backend names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Default is the package-level registry that solver backend packages
// register themselves into from an init() function.
var Default = NewRegistry()
