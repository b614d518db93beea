// Package inhabit implements the finite combinatory logic inhabitation
// algorithm of SPEC_FULL.md §4.4: given a repository, a subtype
// environment, and literal domains, it builds the tree grammar G of
// every combinator application that produces a term of the query type,
// by worklist-driven saturation with target-type canonicalization and
// dead-target pruning.
package inhabit

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/funvibe/bcdinhabit/internal/config"
	"github.com/funvibe/bcdinhabit/internal/grammar"
	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/repo"
	"github.com/funvibe/bcdinhabit/internal/subenv"
	"github.com/funvibe/bcdinhabit/internal/subtype"
	"github.com/funvibe/bcdinhabit/internal/types"
)

// Options bounds a saturation run.
type Options struct {
	// MaxProductions caps the number of productions added to G before
	// saturation stops and reports Grammar.Truncated. Zero selects a
	// conservative default, since a pathological repository (no two
	// distinct target types ever mutually subtype) can otherwise
	// saturate forever.
	MaxProductions int

	// Log enables per-run progress lines tagged with the run's UUID. Off
	// by default so tests stay quiet; also enabled process-wide by
	// config.Verbose (the CLI's -v flag) when left unset.
	Log bool
}

// rule is one ground production candidate: a combinator schema
// instantiated against one parameter binding, with its body's arrow
// spine peeled into argument types and a result type.
type rule struct {
	combinator repo.CombinatorName
	args       []types.Type
	result     types.Type
	binding    literal.Bindings
}

// Inhabit builds the tree grammar for query under repository r, subtype
// environment env, and literal domains. The returned Grammar is non-nil
// whenever err is nil, even when query turns out uninhabited (an empty production
// list under its root key, not an error — SPEC_FULL.md §6.3).
func Inhabit(ctx context.Context, r *repo.Repository, env *subenv.Env, domains map[string]literal.Kind, query types.Type, opts Options) (*grammar.Grammar, error) {
	runID := uuid.New().String()
	decider := subtype.New(env)

	rules, err := buildRules(r, domains)
	if err != nil {
		return nil, err
	}

	if opts.MaxProductions <= 0 {
		opts.MaxProductions = config.DefaultMaxProductions
	}
	if !opts.Log {
		opts.Log = config.Verbose
	}
	if opts.Log {
		log.Printf("inhabit[%s]: %d rule candidates, query=%s", runID, len(rules), query.String())
	}

	canon := &canonicalizer{decider: decider}
	root := canon.of(query)

	g := grammar.New(root)
	visited := map[string]bool{root.String(): true}
	queue := []types.Type{root}

	productions := 0
	capped := false

	for len(queue) > 0 && !capped {
		select {
		case <-ctx.Done():
			g.Truncated = true
			if opts.Log {
				log.Printf("inhabit[%s]: cancelled after %d productions", runID, productions)
			}
			return g, nil
		default:
		}

		target := queue[0]
		queue = queue[1:]

		for _, ru := range rules {
			if !decider.Check(ru.result, target) {
				continue
			}
			if productions >= opts.MaxProductions {
				capped = true
				break
			}

			args := make([]types.Type, len(ru.args))
			for i, a := range ru.args {
				args[i] = canon.of(a)
			}

			g.Add(target, grammar.Production{
				Combinator: ru.combinator,
				Args:       args,
				Binding:    ru.binding,
			})
			productions++

			for _, a := range args {
				g.EnsureKey(a)
				if k := a.String(); !visited[k] {
					visited[k] = true
					queue = append(queue, a)
				}
			}
		}
	}

	if capped {
		g.Truncated = true
		if opts.Log {
			log.Printf("inhabit[%s]: truncated at production cap %d", runID, opts.MaxProductions)
		}
	}

	prune(g)

	if opts.Log {
		log.Printf("inhabit[%s]: done, %d keys, root inhabited=%v", runID, len(g.Keys()), g.Inhabited(g.Root))
	}

	return g, nil
}

// buildRules instantiates every combinator's schema against every
// admissible parameter binding and factors the instantiated body into
// one rule per arrow spine (SPEC_FULL.md §4.4).
func buildRules(r *repo.Repository, domains map[string]literal.Kind) ([]rule, error) {
	var rules []rule
	var firstErr error

	r.Each(func(name repo.CombinatorName, schema repo.Schema) {
		if firstErr != nil {
			return
		}
		literal.Enumerate(domains, schema.Params, func(b literal.Bindings) {
			if firstErr != nil {
				return
			}
			resolved, err := types.ResolveVars(schema.Body, b.Substitution())
			if err != nil {
				firstErr = &SchemaError{Combinator: name, Reason: err}
				return
			}
			for _, spine := range arrowSpines(resolved, nil) {
				rules = append(rules, rule{combinator: name, args: spine.args, result: spine.result, binding: b})
			}
		})
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return rules, nil
}

// spine is one factored arrow spine: the leading argument types and the
// non-arrow, non-intersection result they apply to.
type spine struct {
	args   []types.Type
	result types.Type
}

// arrowSpines factors t into its arrow spines. Arrows are peeled
// directly (each source becomes the next argument); an Intersection
// splits into one spine per conjunct, each continuing to peel from the
// arguments already accumulated on the path that reached it — this is
// what lets an intersection-typed combinator like (Int -> Int) & (Bool
// -> Bool) yield two independently-checkable productions, while a
// combinator like A -> B -> A*B (no intersection on the path) yields a
// single rule whose result is the whole, unfragmented Product. The
// unsplit Intersection is kept as a spine of its own as well, with the
// same accumulated arguments, so a body such as X -> (Base & c(1)) can
// satisfy an intersection query like Base & c(1) as a whole.
func arrowSpines(t types.Type, argsSoFar []types.Type) []spine {
	switch n := t.(type) {
	case types.Arrow:
		return arrowSpines(n.Target, append(append([]types.Type{}, argsSoFar...), n.Source))
	case types.Intersection:
		split := append(arrowSpines(n.Left, argsSoFar), arrowSpines(n.Right, argsSoFar)...)
		return append(split, spine{args: argsSoFar, result: t})
	default:
		return []spine{{args: argsSoFar, result: t}}
	}
}

// canonicalizer merges target types that are mutual subtypes into a
// single representative, keeping G finite whenever the underlying type
// language permits it (SPEC_FULL.md §4.4).
type canonicalizer struct {
	decider *subtype.Decider
	reps    []types.Type
}

func (c *canonicalizer) of(t types.Type) types.Type {
	for _, r := range c.reps {
		if c.decider.Check(t, r) && c.decider.Check(r, t) {
			return r
		}
	}
	c.reps = append(c.reps, t)
	return t
}

// prune removes every key unreachable by a finite ground term: the
// classical productive-symbol fixpoint over G viewed as a context-free
// grammar, with a production "productive" iff every argument key is
// itself productive (nullary productions are trivially productive).
func prune(g *grammar.Grammar) {
	productive := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for _, key := range g.Keys() {
			if productive[key] {
				continue
			}
			for _, p := range g.Productions[key] {
				if allProductive(p, productive) {
					productive[key] = true
					changed = true
					break
				}
			}
		}
	}

	for _, key := range g.Keys() {
		if !productive[key] {
			g.RemoveKey(key)
			continue
		}
		var kept []grammar.Production
		for _, p := range g.Productions[key] {
			if allProductive(p, productive) {
				kept = append(kept, p)
			}
		}
		g.SetProductions(key, kept)
	}
}

func allProductive(p grammar.Production, productive map[string]bool) bool {
	for _, k := range p.ArgKeys() {
		if !productive[k] {
			return false
		}
	}
	return true
}

// Uninhabited is a convenience check: a grammar whose root has no
// surviving productions after pruning derives no ground term.
func Uninhabited(g *grammar.Grammar) bool {
	return !g.Inhabited(g.Root)
}
