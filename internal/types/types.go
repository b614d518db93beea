// Package types implements the algebra of intersection types with
// constructors and products described by this engine: an immutable,
// structurally-hashed closed variant representation with size,
// omega-detection, and organized decomposition derived from structure.
package types

import "fmt"

// Type is the closed interface implemented by every type variant.
// Derived attributes (Size, IsOmega, Organized) are recomputed from the
// type's structure on every call; no variant caches them.
type Type interface {
	fmt.Stringer
	// Size is the number of nodes in the type's tree (omega and atoms
	// count 1).
	Size() int
	// IsOmega reports whether this type behaves as the universal
	// supertype.
	IsOmega() bool
	// Organized returns the omega-uniform path decomposition of the
	// type, the structural normal form defined independently of the
	// subtype decision procedure (§3.1): it is not consulted by the
	// decider, or by rule construction, which factor arrow spines and
	// intersections on their own terms rather than through this
	// decomposition. The returned slice must not be mutated by callers.
	Organized() []Type

	isType() // seals the variant set
}

// Omega is the universal supertype. There is exactly one logical value;
// OmegaType is provided as the canonical instance.
type Omega struct{}

// OmegaType is the canonical Omega value.
var OmegaType Type = Omega{}

func (Omega) isType()          {}
func (Omega) Size() int        { return 1 }
func (Omega) IsOmega() bool    { return true }
func (Omega) Organized() []Type { return nil }
func (Omega) String() string   { return "ω" } // ω

// Constructor is a named type constructor with a single type argument.
// Constructor(n) (no argument) is sugar for Constructor(n, Omega).
type Constructor struct {
	Name string
	Arg  Type
}

// NewConstructor builds a Constructor, applying the nullary and
// multi-argument sugar described in SPEC_FULL.md §4.1: zero arguments
// desugars to an Omega argument; more than one argument is bundled into
// a single Product so the constructor remains unary at the algebra
// level.
func NewConstructor(name string, args ...Type) Constructor {
	switch len(args) {
	case 0:
		return Constructor{Name: name, Arg: OmegaType}
	case 1:
		return Constructor{Name: name, Arg: args[0]}
	default:
		arg := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			arg = Product{Left: args[i], Right: arg}
		}
		return Constructor{Name: name, Arg: arg}
	}
}

func (Constructor) isType()       {}
func (c Constructor) Size() int   { return 1 + c.Arg.Size() }
func (Constructor) IsOmega() bool { return false }

func (c Constructor) Organized() []Type {
	argPaths := c.Arg.Organized()
	if len(argPaths) <= 1 {
		return []Type{c}
	}
	out := make([]Type, len(argPaths))
	for i, p := range argPaths {
		out[i] = Constructor{Name: c.Name, Arg: p}
	}
	return out
}

// Arrow is a function type; IsOmega holds iff the target is omega.
type Arrow struct {
	Source Type
	Target Type
}

func (Arrow) isType()     {}
func (a Arrow) Size() int { return 1 + a.Source.Size() + a.Target.Size() }
func (a Arrow) IsOmega() bool {
	return a.Target.IsOmega()
}

func (a Arrow) Organized() []Type {
	tPaths := a.Target.Organized()
	switch len(tPaths) {
	case 0:
		return nil
	case 1:
		return []Type{a}
	default:
		out := make([]Type, len(tPaths))
		for i, p := range tPaths {
			out[i] = Arrow{Source: a.Source, Target: p}
		}
		return out
	}
}

// Product is a pair type. Never omega.
type Product struct {
	Left  Type
	Right Type
}

func (Product) isType()       {}
func (p Product) Size() int   { return 1 + p.Left.Size() + p.Right.Size() }
func (Product) IsOmega() bool { return false }

func (p Product) Organized() []Type {
	lPaths := p.Left.Organized()
	rPaths := p.Right.Organized()
	if len(lPaths)+len(rPaths) <= 1 {
		return []Type{p}
	}
	out := make([]Type, 0, len(lPaths)+len(rPaths))
	for _, l := range lPaths {
		out = append(out, Product{Left: l, Right: OmegaType})
	}
	for _, r := range rPaths {
		out = append(out, Product{Left: OmegaType, Right: r})
	}
	return out
}

// Intersection is a conjunctive type; IsOmega holds iff both sides are
// omega.
type Intersection struct {
	Left  Type
	Right Type
}

func (Intersection) isType()     {}
func (i Intersection) Size() int { return 1 + i.Left.Size() + i.Right.Size() }
func (i Intersection) IsOmega() bool {
	return i.Left.IsOmega() && i.Right.IsOmega()
}

func (i Intersection) Organized() []Type {
	return append(append([]Type{}, i.Left.Organized()...), i.Right.Organized()...)
}

// Literal is a singleton type carrying a host value from a declared
// finite domain named by Kind. Per SPEC_FULL.md §4.1 a literal behaves
// as an atomic, non-promotable constructor: it is never omega and its
// Organized decomposition is always itself.
type Literal struct {
	Value interface{}
	Kind  string
}

func (Literal) isType()        {}
func (Literal) Size() int      { return 1 }
func (Literal) IsOmega() bool  { return false }
func (l Literal) Organized() []Type { return []Type{l} }

// TypeVariable is a placeholder resolved during inhabitation by a
// parameter binding. It must never reach the subtype decider
// unresolved; encountering one there is a malformed-input error.
type TypeVariable struct {
	Name string
}

func (TypeVariable) isType()       {}
func (TypeVariable) Size() int     { return 1 }
func (TypeVariable) IsOmega() bool { return false }
func (t TypeVariable) Organized() []Type { return []Type{t} }

// Intersect folds a sequence of types right into nested Intersections.
// An empty sequence yields Omega.
func Intersect(ts []Type) Type {
	if len(ts) == 0 {
		return OmegaType
	}
	out := ts[len(ts)-1]
	for i := len(ts) - 2; i >= 0; i-- {
		out = Intersection{Left: ts[i], Right: out}
	}
	return out
}

// Equal reports structural equality. Two equivalent types always print
// identically, so this is implemented as a string comparison — the same
// hash-stability guarantee the canonical printer provides is reused
// here rather than duplicated as a second equality routine.
func Equal(a, b Type) bool {
	return a.String() == b.String()
}
