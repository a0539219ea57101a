package selector

import (
	"bufio"
	"io"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

// Ordering is a user-supplied preference over variable ids, loaded from a
// single line of whitespace-separated tokens (spec §6: "one line,
// whitespace-separated tokens matching variable ids; earlier = higher
// priority"). Grounded on VariableComparator in original_source/unique.
type Ordering struct {
	index map[gatedag.GateID]int
}

// ParseOrdering reads the first line of r and builds an Ordering from its
// whitespace-separated tokens.
func ParseOrdering(r io.Reader) (*Ordering, error) {
	scanner := bufio.NewScanner(r)
	o := &Ordering{index: make(map[gatedag.GateID]int)}
	if scanner.Scan() {
		for i, tok := range strings.Fields(scanner.Text()) {
			o.index[gatedag.GateID(tok)] = i
		}
	}
	return o, scanner.Err()
}

// less implements the fixed VariableComparator semantics from spec §9's
// REDESIGN note: the original's third branch ("x" in the ordering, "y" not)
// was dead code duplicating the second branch; the intended semantics,
// per the note, is "if y is in the ordering but x is not, order y first".
func (o *Ordering) less(xID, yID gatedag.GateID, xAlias, yAlias int) bool {
	xi, xok := o.index[xID]
	yi, yok := o.index[yID]
	switch {
	case xok && yok:
		return xi < yi
	case xok && !yok:
		// x is in the ordering, y is not: x precedes y.
		return true
	case !xok && yok:
		// y is in the ordering, x is not: y precedes x.
		return false
	default:
		return xAlias < yAlias
	}
}
