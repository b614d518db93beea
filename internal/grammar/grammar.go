// Package grammar implements the tree grammar of SPEC_FULL.md §3.4/§7:
// a mapping from canonical type keys to the set of productions that
// derive them.
package grammar

import (
	"sort"
	"strings"

	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/repo"
	"github.com/funvibe/bcdinhabit/internal/types"
)

// Production is one (combinator, argument types, binding) triple.
// ArgKeys are the canonical printer keys of the argument types, which
// are guaranteed to be keys of the owning Grammar (the invariant of
// SPEC_FULL.md §3.4).
type Production struct {
	Combinator repo.CombinatorName
	Args       []types.Type
	Binding    literal.Bindings
}

// ArgKeys returns the canonical type-key string for each argument,
// suitable for indexing into a Grammar.
func (p Production) ArgKeys() []string {
	keys := make([]string, len(p.Args))
	for i, a := range p.Args {
		keys[i] = a.String()
	}
	return keys
}

func (p Production) String() string {
	var b strings.Builder
	b.WriteString(p.Combinator)
	if len(p.Args) > 0 {
		b.WriteString("(")
		for i, a := range p.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(")")
	}
	if len(p.Binding) > 0 {
		b.WriteString(" ")
		b.WriteString(p.Binding.String())
	}
	return b.String()
}

// Grammar is G: a map from canonical type keys (the precedence-aware
// printer of internal/types) to their productions. Root is the query
// type's key. Truncated reports whether saturation stopped early due to
// a production cap or cooperative cancellation (SPEC_FULL.md §7).
type Grammar struct {
	Root        string
	Productions map[string][]Production
	Truncated   bool

	// keys records each key's representative Type, so callers can
	// recover the full type from its canonical string form.
	keys map[string]types.Type
}

// New returns an empty grammar rooted at root.
func New(root types.Type) *Grammar {
	return &Grammar{
		Root:        root.String(),
		Productions: make(map[string][]Production),
		keys:        map[string]types.Type{root.String(): root},
	}
}

// Add registers a production under key's type, interning key's Type
// representative on first use.
func (g *Grammar) Add(key types.Type, p Production) {
	k := key.String()
	if _, ok := g.keys[k]; !ok {
		g.keys[k] = key
	}
	g.Productions[k] = append(g.Productions[k], p)
}

// Has reports whether key is a known grammar key (may still have zero
// productions if it was added only as an argument reference before
// being processed).
func (g *Grammar) Has(key types.Type) bool {
	_, ok := g.keys[key.String()]
	return ok
}

// EnsureKey interns key without adding any production, so the
// saturation worklist can record "reachable but not yet processed"
// targets (SPEC_FULL.md §4.4 invariant: every argument type is itself a
// key of G).
func (g *Grammar) EnsureKey(key types.Type) {
	k := key.String()
	if _, ok := g.keys[k]; !ok {
		g.keys[k] = key
		if _, ok := g.Productions[k]; !ok {
			g.Productions[k] = nil
		}
	}
}

// TypeOf returns the representative Type for a canonical key, if known.
func (g *Grammar) TypeOf(key string) (types.Type, bool) {
	t, ok := g.keys[key]
	return t, ok
}

// Keys returns all known type keys in sorted order.
func (g *Grammar) Keys() []string {
	keys := make([]string, 0, len(g.keys))
	for k := range g.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inhabited reports whether key has at least one production. It does
// not look at the productions' arguments: only after pruning
// (SPEC_FULL.md §4.4's dead-target fixpoint, which Inhabit runs before
// returning) does every surviving production have inhabited arguments,
// so that this answers whether key derives a ground term.
func (g *Grammar) Inhabited(key string) bool {
	return len(g.Productions[key]) > 0
}

// Dump renders the grammar as a map for tests and CLI display, the
// "grammar serialized form" of SPEC_FULL.md §7.
func (g *Grammar) Dump() map[string][]string {
	out := make(map[string][]string, len(g.Productions))
	for k, prods := range g.Productions {
		strs := make([]string, len(prods))
		for i, p := range prods {
			strs[i] = p.String()
		}
		out[k] = strs
	}
	return out
}

// RemoveKey deletes a key and its productions entirely — used by
// pruning to drop dead (uninhabited) targets.
func (g *Grammar) RemoveKey(key string) {
	delete(g.Productions, key)
	delete(g.keys, key)
}

// SetProductions replaces key's production list — used by pruning to
// drop individual productions that reference a now-dead argument.
func (g *Grammar) SetProductions(key string, prods []Production) {
	g.Productions[key] = prods
}
