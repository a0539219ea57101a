// Package selector partitions a gate graph's prefix variables into the
// "defining" (shared) set and the "query" set handed to the definition
// extractor, per spec §4.3. Grounded on
// QBFParser::getQueryVariableSets/DQDIMACSParser::getExistentialQuerySets
// in original_source/unique.
package selector

import (
	"sort"

	"github.com/fslivovsky/unique/gatedag"
)

// VariableType selects which quantifier kind is being tested for
// definability.
type VariableType int

const (
	Existential VariableType = iota
	Universal
)

func (t VariableType) gateKind() gatedag.GateKind {
	if t == Universal {
		return gatedag.KindUniversal
	}
	return gatedag.KindExistential
}

// Result is the named record the original returns as an unnamed tuple:
// (defining, query, mask).
type Result struct {
	Defining []gatedag.Alias
	Query    []gatedag.Alias
	Mask     []bool
}

// SelectQBF computes the defining/query/mask triple for ordinary QBF
// prefixes (spec §4.3 step 1–2).
func SelectQBF(g *gatedag.Graph, t VariableType, ordering *Ordering) Result {
	variableKind := t.gateKind()
	var defining []gatedag.Alias
	a := gatedag.Alias(1)

	if t == Universal {
		// Don't look for unique Herbrand functions of outermost universals.
		for ; a < g.VariableGateBoundary && g.Gate(a).Kind == gatedag.KindUniversal; a++ {
			defining = append(defining, a)
		}
	}
	for ; a < g.VariableGateBoundary && g.Gate(a).Kind != variableKind; a++ {
		defining = append(defining, a)
	}

	type tuple struct {
		alias gatedag.Alias
		id    gatedag.GateID
		mask  bool
	}
	var tuples []tuple
	for ; a < g.VariableGateBoundary; a++ {
		tuples = append(tuples, tuple{a, g.Gate(a).ID, g.Gate(a).Kind == variableKind})
	}

	if ordering != nil {
		sort.SliceStable(tuples, func(i, j int) bool {
			return ordering.less(tuples[i].id, tuples[j].id, int(tuples[i].alias), int(tuples[j].alias))
		})
	}

	res := Result{Defining: defining}
	for _, tp := range tuples {
		res.Query = append(res.Query, tp.alias)
		res.Mask = append(res.Mask, tp.mask)
	}
	return res
}

// SelectDQBFOrdinary computes defining/query/mask for existentials that
// carry no explicit dependency line: defining = all variables before the
// first non-outermost existential; query = remaining prefix variables
// without explicit deps; mask = existential?
//
// Grounded on DQDIMACSParser::getExistentialQuerySets.
func SelectDQBFOrdinary(g *gatedag.Graph, deps *gatedag.DependencyMap) Result {
	var defining []gatedag.Alias
	a := gatedag.Alias(1)
	// The outermost existential run is part of the defining set.
	for ; a < g.VariableGateBoundary && g.Gate(a).Kind == gatedag.KindExistential; a++ {
		defining = append(defining, a)
	}
	for ; a < g.VariableGateBoundary && g.Gate(a).Kind != gatedag.KindExistential; a++ {
		defining = append(defining, a)
	}
	res := Result{Defining: defining}
	for ; a < g.VariableGateBoundary; a++ {
		if _, hasDeps := deps.Deps[a]; hasDeps {
			continue
		}
		res.Query = append(res.Query, a)
		res.Mask = append(res.Mask, g.Gate(a).Kind == gatedag.KindExistential)
	}
	return res
}

// DependentGroup is one DQBF dependent-existential extraction unit: run the
// extractor with shared=Depset, query=Variables, mask=all-true.
type DependentGroup struct {
	Depset    []gatedag.Alias
	Variables []gatedag.Alias
}

// SelectDQBFDependent enumerates one DependentGroup per non-empty depset in
// deps.ReverseDeps, skipping variables with empty dependency sets (spec
// §4.3).
func SelectDQBFDependent(deps *gatedag.DependencyMap) []DependentGroup {
	var groups []DependentGroup
	deps.ReverseDeps(func(depset []gatedag.Alias, variables []gatedag.Alias) {
		if len(depset) == 0 {
			return
		}
		groups = append(groups, DependentGroup{Depset: depset, Variables: variables})
	})
	return groups
}
