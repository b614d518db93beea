package types

import "fmt"

// UnboundVariableError reports that a schema body referenced a type
// variable with no matching parameter binding (SPEC_FULL.md §6.3).
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound type variable: %s", e.Name)
}

// MalformedTypeError indicates a programmer error: a closed-variant
// switch encountered a value that does not implement one of the known
// Type variants, or a TypeVariable reached a stage (such as the subtype
// decider) that requires fully-resolved types. Per SPEC_FULL.md §7 this
// is surfaced immediately rather than folded into the boolean subtype
// result.
type MalformedTypeError struct {
	Reason string
}

func (e *MalformedTypeError) Error() string {
	return fmt.Sprintf("malformed type: %s", e.Reason)
}

// FreeVariables collects the distinct TypeVariable names occurring in t,
// in first-occurrence order.
func FreeVariables(t Type) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(Type)
	walk = func(t Type) {
		switch n := t.(type) {
		case TypeVariable:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case Constructor:
			walk(n.Arg)
		case Arrow:
			walk(n.Source)
			walk(n.Target)
		case Product:
			walk(n.Left)
			walk(n.Right)
		case Intersection:
			walk(n.Left)
			walk(n.Right)
		case Omega, Literal:
			// atomic, no children
		}
	}
	walk(t)
	return out
}

// Substitute replaces every TypeVariable named in subst by its mapped
// Type, leaving unmapped variables untouched. It is capture-free: the
// only binders in this algebra are schema-level parameter lists, which
// are not represented inside Type itself, so there is no shadowing to
// account for.
func Substitute(t Type, subst map[string]Type) Type {
	switch n := t.(type) {
	case TypeVariable:
		if r, ok := subst[n.Name]; ok {
			return r
		}
		return n
	case Constructor:
		return Constructor{Name: n.Name, Arg: Substitute(n.Arg, subst)}
	case Arrow:
		return Arrow{Source: Substitute(n.Source, subst), Target: Substitute(n.Target, subst)}
	case Product:
		return Product{Left: Substitute(n.Left, subst), Right: Substitute(n.Right, subst)}
	case Intersection:
		return Intersection{Left: Substitute(n.Left, subst), Right: Substitute(n.Right, subst)}
	default:
		return t
	}
}

// ResolveVars substitutes every TypeVariable in t using subst and fails
// if any variable in t has no entry in subst — the "unbound type
// variable during schema instantiation" error of SPEC_FULL.md §6.3.
func ResolveVars(t Type, subst map[string]Type) (Type, error) {
	for _, name := range FreeVariables(t) {
		if _, ok := subst[name]; !ok {
			return nil, &UnboundVariableError{Name: name}
		}
	}
	return Substitute(t, subst), nil
}
