// Package literal implements the bounded literal domains and dependent
// parameter bindings of SPEC_FULL.md §3.3/§4.3: a combinator's
// parameters enumerate a finite, kind-supplied domain of host values in
// order, each guarded by a predicate over the variables already bound.
package literal

import (
	"fmt"
	"sort"

	"github.com/funvibe/bcdinhabit/internal/types"
)

// Value is a host value drawn from a literal kind's finite domain. Any
// comparable Go value works (ints, strings, bools, ...); the subtype
// decider compares Values with ==, so non-comparable values (slices,
// maps, funcs) must not be used.
type Value = interface{}

// Kind names a finite domain of admissible values. Domains are supplied
// by the caller of Inhabit (SPEC_FULL.md §5.4) — the engine never
// invents values.
type Kind struct {
	Name   string
	Domain []Value
}

// Bound is one resolved (variable, kind, value) triple.
type Bound struct {
	Kind  string
	Value Value
}

// Bindings maps already-bound parameter variable names to their
// resolved kind and value. Predicates receive a Bindings built up left
// to right as parameters are explored.
type Bindings map[string]Bound

// Predicate decides whether a candidate binding is admissible given the
// variables already bound. Predicates are assumed pure and are never
// introspected by the engine (SPEC_FULL.md §4.6).
type Predicate func(Bindings) bool

// Param is one parameter binding in a combinator's schema: a variable
// name, the kind supplying its candidate domain, and a predicate over
// previously bound variables.
type Param struct {
	Var       string
	Kind      string
	Predicate Predicate
}

// AlwaysTrue is the predicate for parameters with no admissibility
// constraint.
func AlwaysTrue(Bindings) bool { return true }

// Enumerate walks the tree of partial bindings described by params
// (depth = len(params)), pruning at each level by its predicate, and
// calls visit once per complete, admissible binding. An empty domain
// for a required parameter silently yields no bindings — per
// SPEC_FULL.md §6.3 this makes the target uninhabited, not an error.
func Enumerate(domains map[string]Kind, params []Param, visit func(Bindings)) {
	enumerate(domains, params, 0, Bindings{}, visit)
}

func enumerate(domains map[string]Kind, params []Param, i int, acc Bindings, visit func(Bindings)) {
	if i == len(params) {
		visit(cloneBindings(acc))
		return
	}
	p := params[i]
	kind, ok := domains[p.Kind]
	if !ok {
		return // undeclared kind: treated as an empty domain.
	}
	for _, v := range kind.Domain {
		acc[p.Var] = Bound{Kind: p.Kind, Value: v}
		pred := p.Predicate
		if pred == nil {
			pred = AlwaysTrue
		}
		if pred(acc) {
			enumerate(domains, params, i+1, acc, visit)
		}
	}
	delete(acc, p.Var)
}

func cloneBindings(b Bindings) Bindings {
	cp := make(Bindings, len(b))
	for k, v := range b {
		cp[k] = v
	}
	return cp
}

// Substitution builds the types.Substitute map a binding induces: every
// bound variable resolves to a types.Literal carrying its value and
// kind (SPEC_FULL.md §4.3 — "A TypeVariable(x) occurring in a schema
// body is resolved against the current binding to a Literal(v,
// kind_of_x)").
func (b Bindings) Substitution() map[string]types.Type {
	out := make(map[string]types.Type, len(b))
	for name, bound := range b {
		out[name] = types.Literal{Value: bound.Value, Kind: bound.Kind}
	}
	return out
}

// String renders a binding deterministically (sorted by variable name)
// for use in logs and production printing.
func (b Bindings) String() string {
	if len(b) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := "{"
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", k, b[k].Value)
	}
	return s + "}"
}
