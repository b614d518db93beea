// Package repo implements the repository interface of SPEC_FULL.md
// §3.3/§5.5: a mapping from combinator names to schemas, built either
// programmatically (the fluent Declare API) or loaded from a YAML
// document (yamlrepo.go), mirroring the teacher's symbol-table
// registration idiom reduced to this engine's flat, module-free
// combinator namespace.
package repo

import (
	"fmt"
	"sort"

	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/types"
)

// CombinatorName identifies a combinator in a Repository.
type CombinatorName = string

// Schema is a possibly-empty sequence of parameter bindings followed by
// a body type. TypeVariables in Body are resolved against a binding of
// Params at grammar-construction time.
type Schema struct {
	Params []literal.Param
	Body   types.Type
}

// Repository is Γ: a finite map from combinator names to schemas.
type Repository struct {
	combinators map[CombinatorName]Schema
	order       []CombinatorName // preserves declaration order for deterministic iteration
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{combinators: make(map[CombinatorName]Schema)}
}

// Declare registers a combinator's schema. Re-declaring a name
// overwrites its schema but does not change its position in iteration
// order.
func (r *Repository) Declare(name CombinatorName, schema Schema) *Repository {
	if _, exists := r.combinators[name]; !exists {
		r.order = append(r.order, name)
	}
	r.combinators[name] = schema
	return r
}

// Const declares a combinator with no parameters and the given body
// type — the common case (spec.md scenario constants like `a : A`).
func (r *Repository) Const(name CombinatorName, body types.Type) *Repository {
	return r.Declare(name, Schema{Body: body})
}

// Lookup returns the schema for name, if declared.
func (r *Repository) Lookup(name CombinatorName) (Schema, bool) {
	s, ok := r.combinators[name]
	return s, ok
}

// Names returns combinator names in declaration order.
func (r *Repository) Names() []CombinatorName {
	out := make([]CombinatorName, len(r.order))
	copy(out, r.order)
	return out
}

// Each calls fn once per combinator, in declaration order.
func (r *Repository) Each(fn func(CombinatorName, Schema)) {
	for _, name := range r.order {
		fn(name, r.combinators[name])
	}
}

// SortedNames returns combinator names in lexicographic order, useful
// for deterministic test fixtures independent of declaration order.
func (r *Repository) SortedNames() []CombinatorName {
	out := r.Names()
	sort.Strings(out)
	return out
}

func (r *Repository) String() string {
	return fmt.Sprintf("Repository{%d combinators}", len(r.combinators))
}
