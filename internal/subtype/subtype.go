// Package subtype implements the BCD-style subtype decision procedure
// of SPEC_FULL.md §4.2/§5.3: check(Σ, τ) accumulates candidate
// subcomponents of σ and recurses on τ's head constructor, and
// minimize(S) reduces a set of types to its maximal antichain.
//
// The recursion shape — accumulate candidates into a cast, descend into
// Intersections, recurse on the new target — mirrors the co-inductive,
// visited-set-guarded walk of the teacher's unification routine, here
// specialized from unification's symmetric two-type walk to
// inhabitation's asymmetric multiset-vs-single-type walk.
package subtype

import (
	"github.com/funvibe/bcdinhabit/internal/subenv"
	"github.com/funvibe/bcdinhabit/internal/types"
)

// Decider decides σ ≤ τ under a closed subtype environment.
type Decider struct {
	env *subenv.Env
}

// New builds a Decider over the given closed environment.
func New(env *subenv.Env) *Decider {
	return &Decider{env: env}
}

// Check decides sigma ≤ tau (construct-subtypes(E); check-subtype(σ,τ)
// of SPEC_FULL.md §6.1). It panics with a *types.MalformedTypeError when
// the procedure reaches an unresolved TypeVariable as the type being
// checked against (tau, a component of tau, or an arrow source taken
// from sigma) — the decider operates on closed (schema-instantiated)
// types only, per §7. A TypeVariable among sigma's other candidates is
// skipped as a non-matching candidate rather than reported.
func (d *Decider) Check(sigma, tau types.Type) bool {
	return d.check([]types.Type{sigma}, tau)
}

// check implements the case-analysis of SPEC_FULL.md §4.2. The order in
// which Σ is consumed does not affect the result: every case either
// scans all of Σ's flattened candidates or recurses structurally.
func (d *Decider) check(sigma []types.Type, tau types.Type) bool {
	if tau.IsOmega() {
		return true
	}

	flat := flatten(sigma)

	switch t := tau.(type) {
	case types.Omega:
		return true

	case types.Constructor:
		var cast []types.Type
		for _, s := range flat {
			c, ok := s.(types.Constructor)
			if !ok {
				continue
			}
			if c.Name == t.Name || d.env.IsSupertype(c.Name, t.Name) {
				cast = append(cast, c.Arg)
			}
		}
		return len(cast) > 0 && d.check(cast, t.Arg)

	case types.Literal:
		// Literals are atomic constructors: matched only by exact
		// (value, kind) equality, never promoted via E* (SPEC_FULL.md
		// §4.1 — literal kinds are not constructor names).
		for _, s := range flat {
			l, ok := s.(types.Literal)
			if ok && l.Kind == t.Kind && l.Value == t.Value {
				return true
			}
		}
		return false

	case types.Arrow:
		var cast []types.Type
		for _, s := range flat {
			a, ok := s.(types.Arrow)
			if !ok {
				continue
			}
			if d.check([]types.Type{t.Source}, a.Source) {
				cast = append(cast, a.Target)
			}
		}
		return len(cast) > 0 && d.check(cast, t.Target)

	case types.Product:
		var castL, castR []types.Type
		for _, s := range flat {
			p, ok := s.(types.Product)
			if !ok {
				continue
			}
			castL = append(castL, p.Left)
			castR = append(castR, p.Right)
		}
		return len(castL) > 0 && d.check(castL, t.Left) && d.check(castR, t.Right)

	case types.Intersection:
		return d.check(sigma, t.Left) && d.check(sigma, t.Right)

	case types.TypeVariable:
		panic(&types.MalformedTypeError{Reason: "unresolved type variable reached the subtype decider: " + t.Name})

	default:
		panic(&types.MalformedTypeError{Reason: "unknown type variant in subtype check"})
	}
}

// flatten unfolds every Intersection in sigma, descending recursively,
// so every element of the result is a non-Intersection candidate.
func flatten(sigma []types.Type) []types.Type {
	out := make([]types.Type, 0, len(sigma))
	var walk func(types.Type)
	walk = func(t types.Type) {
		if inter, ok := t.(types.Intersection); ok {
			walk(inter.Left)
			walk(inter.Right)
			return
		}
		out = append(out, t)
	}
	for _, s := range sigma {
		walk(s)
	}
	return out
}

// Minimize returns the maximal antichain of S under ≤, keeping the more
// specific (smaller) of any two comparable types: fold left over S,
// dropping a candidate already subsumed by a retained subtype of it,
// and otherwise evicting any retained supertype of the candidate before
// inserting it (SPEC_FULL.md §4.2).
func (d *Decider) Minimize(s []types.Type) []types.Type {
	var retained []types.Type
	for _, t := range s {
		subsumed := false
		for _, r := range retained {
			if d.Check(r, t) {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		kept := retained[:0:0]
		for _, r := range retained {
			if !d.Check(t, r) {
				kept = append(kept, r)
			}
		}
		retained = append(kept, t)
	}
	return retained
}
