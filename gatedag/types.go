// Package gatedag implements the gate-DAG intermediate representation shared
// by the QCIR/QDIMACS/DQCIR/DQDIMACS front ends: a dense, alias-indexed
// directed acyclic graph of quantified variables and AND/OR gates, with
// Tseitin-oriented polarity analysis, redundant-gate elimination and
// topological emission.
package gatedag

import "fmt"

// Alias is a positive integer identifying a variable or gate within one
// parse/build session. Slot 0 is reserved so literals can be signed
// (negative = negation of the alias). Aliases are dense starting at 1.
type Alias int32

// GateID is the textual identifier carried from input and used on output.
type GateID string

// GateKind classifies a node in the gate graph.
type GateKind uint8

const (
	// KindNone marks a deleted gate or an as-yet-unresolved forward reference.
	KindNone GateKind = iota
	KindExistential
	KindUniversal
	KindAnd
	KindOr
)

func (k GateKind) String() string {
	switch k {
	case KindExistential:
		return "exists"
	case KindUniversal:
		return "forall"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	default:
		return "none"
	}
}

// IsVariable reports whether the kind denotes a quantified variable.
func (k GateKind) IsVariable() bool {
	return k == KindExistential || k == KindUniversal
}

// IsGate reports whether the kind denotes an And/Or gate.
func (k GateKind) IsGate() bool {
	return k == KindAnd || k == KindOr
}

// Gate is one vertex of the DAG: a quantified variable (no inputs) or an
// And/Or gate (ordered, signed inputs referencing earlier aliases).
type Gate struct {
	ID     GateID
	Kind   GateKind
	Depth  int     // 1-based quantifier-block depth for variables; 0 for gates
	Inputs []int32 // signed aliases; empty for variables
}

// Polarity is the lattice {None ⊑ Positive, Negative ⊑ Both} used to decide
// which Tseitin clauses a gate needs.
type Polarity uint8

const (
	PolarityNone Polarity = iota
	PolarityPositive
	PolarityNegative
	PolarityBoth
)

// Negate implements -Positive=Negative, -Negative=Positive, -None=None, -Both=Both.
func (p Polarity) Negate() Polarity {
	switch p {
	case PolarityPositive:
		return PolarityNegative
	case PolarityNegative:
		return PolarityPositive
	default:
		return p
	}
}

// Join implements the lattice join ("+" in spec §3).
func (p Polarity) Join(other Polarity) Polarity {
	if p == other {
		return p
	}
	sum := int(p) + int(other)
	if sum > int(PolarityBoth) {
		sum = int(PolarityBoth)
	}
	return Polarity(sum)
}

func (p Polarity) String() string {
	switch p {
	case PolarityPositive:
		return "positive"
	case PolarityNegative:
		return "negative"
	case PolarityBoth:
		return "both"
	default:
		return "none"
	}
}

// ErrUnknownGate is returned when a dependency line names a gate id that
// was never defined. Gate inputs that reference an unseen id are not
// rejected; they get a placeholder alias instead.
type ErrUnknownGate struct{ ID GateID }

func (e ErrUnknownGate) Error() string {
	return fmt.Sprintf("gatedag: gate %q was referenced but never defined", e.ID)
}

// ErrDuplicateID is returned by AddVariable/AddGate when id already names a
// gate in this graph.
type ErrDuplicateID struct{ ID GateID }

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("gatedag: gate id %q already defined", e.ID)
}

// ErrBadAlias is returned when a literal's alias falls outside [1, N).
type ErrBadAlias struct{ Alias int32 }

func (e ErrBadAlias) Error() string {
	return fmt.Sprintf("gatedag: alias %d out of range", e.Alias)
}
