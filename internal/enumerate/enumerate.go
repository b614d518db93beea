// Package enumerate implements the term enumerator of SPEC_FULL.md §4.5:
// a lazy, fair, deterministic traversal of a tree grammar's language
// starting at a given key, followed by a small host-callback
// interpreter. Results are streamed one term per channel receive
// rather than materialized, matching the teacher's evaluator's use of a
// buffered output channel fed by a blocking-send goroutine
// (internal/evaluator/builtins_term.go's double-buffering idiom,
// adapted here from bytes to terms).
package enumerate

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/funvibe/bcdinhabit/internal/config"
	"github.com/funvibe/bcdinhabit/internal/grammar"
	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/repo"
)

// Term is one enumerated applicative term: a combinator applied to its
// argument sub-terms under the parameter binding that instantiated it
// (SPEC_FULL.md §4.5).
type Term struct {
	Combinator repo.CombinatorName
	Args       []*Term
	Binding    literal.Bindings
}

// Size is the node count of the term (the combinator itself plus every
// argument's size) — the metric the dovetailing order in §4.5 is keyed
// on.
func (t *Term) Size() int {
	n := 1
	for _, a := range t.Args {
		n += a.Size()
	}
	return n
}

func (t *Term) String() string {
	s := t.Combinator
	if len(t.Args) > 0 {
		s += "("
		for i, a := range t.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		s += ")"
	}
	if len(t.Binding) > 0 {
		s += " " + t.Binding.String()
	}
	return s
}

// Options configures an enumeration run.
type Options struct {
	// Log enables a progress line per size level, tagged with the
	// session's UUID. Off by default so tests stay quiet; also enabled
	// process-wide by config.Verbose (the CLI's -v flag) when unset.
	Log bool
}

// session is the per-call state of one enumeration: a memo of terms of
// each exact size already computed per key, so a key reached again at
// a size already computed (through a grammar cycle or several
// productions) is answered from the memo, and so resuming at the next
// size level reuses every smaller term already built. Recursion itself
// ends because argument budgets shrink (see termsOfSize).
type session struct {
	id     string
	g      *grammar.Grammar
	memo   map[string]map[int][]*Term
	cyclic map[string]bool // keys from which a production cycle is reachable
	opts   Options
}

// Enumerate streams every finite term of G reachable from start, in
// non-decreasing size order, dovetailing fairly across productions and
// across argument-size splits (SPEC_FULL.md §4.5). The returned channel
// is closed either when the language is exhausted (a grammar with no
// cycle reachable from start has a finite language) or when ctx is
// cancelled. Consumers that stop reading before exhaustion must cancel
// ctx so the feeding goroutine does not block forever on an unread
// send — the cooperative-cancellation contract of SPEC_FULL.md §6.
func Enumerate(ctx context.Context, g *grammar.Grammar, start string, opts Options) <-chan *Term {
	id := uuid.New().String()
	if !opts.Log {
		opts.Log = config.Verbose
	}
	s := &session{
		id:   id,
		g:    g,
		memo: make(map[string]map[int][]*Term),
		opts: opts,
	}
	s.cyclic = detectCyclic(g, start)

	out := make(chan *Term)
	go func() {
		defer close(out)
		emptyStreak := 0
		maxEmptyStreak := len(g.Keys()) + 2
		for size := 1; ; size++ {
			select {
			case <-ctx.Done():
				return
			default:
			}

			terms := s.termsOfSize(start, size)
			if opts.Log {
				fmt.Printf("enumerate[%s]: size=%d key=%s produced=%d\n", id, size, start, len(terms))
			}

			if len(terms) == 0 {
				emptyStreak++
			} else {
				emptyStreak = 0
			}

			for _, t := range terms {
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}

			// A grammar with no cycle reachable from start derives only
			// finitely many terms; once a run of empty size-levels at
			// least as long as the key count has passed, every
			// remaining size is empty too, since no production can ever
			// grow past the longest acyclic derivation chain.
			if !s.cyclic[start] && emptyStreak > maxEmptyStreak {
				return
			}
		}
	}()
	return out
}

// termsOfSize returns every term rooted at key with exactly the given
// node count, computing and memoizing it on first request. Because the
// argument sizes summing to size-1 are strictly smaller than size,
// recursion through this function always terminates even when key
// re-appears as its own argument (a grammar cycle) — the cycle only
// means the *language* is infinite, not that any single size-level
// computation is.
func (s *session) termsOfSize(key string, size int) []*Term {
	if size < 1 {
		return nil
	}
	if byKey, ok := s.memo[key]; ok {
		if terms, ok := byKey[size]; ok {
			return terms
		}
	} else {
		s.memo[key] = make(map[int][]*Term)
	}

	var terms []*Term
	for _, p := range s.g.Productions[key] {
		terms = append(terms, s.expand(p, size-1)...)
	}
	s.memo[key][size] = terms
	return terms
}

// expand returns every term built from production p whose arguments'
// sizes sum to exactly budget, in deterministic order: increasing
// lexicographic order of the argument size tuple, then in the order
// termsOfSize returns for each argument (SPEC_FULL.md §4.5 — "dovetail
// ... by size, then by lexicographic order of sub-term sizes").
func (s *session) expand(p grammar.Production, budget int) []*Term {
	argKeys := p.ArgKeys()
	k := len(argKeys)
	if k == 0 {
		if budget != 0 {
			return nil
		}
		return []*Term{{Combinator: p.Combinator, Binding: p.Binding}}
	}

	var out []*Term
	for _, sizes := range sizeTuples(k, budget) {
		streams := make([][]*Term, k)
		ok := true
		for i, sz := range sizes {
			streams[i] = s.termsOfSize(argKeys[i], sz)
			if len(streams[i]) == 0 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, combo := range cartesian(streams) {
			args := make([]*Term, k)
			copy(args, combo)
			out = append(out, &Term{Combinator: p.Combinator, Args: args, Binding: p.Binding})
		}
	}
	return out
}

// sizeTuples enumerates every k-tuple of positive integers summing to
// total, in increasing lexicographic order — the "lexicographic order
// of sub-term sizes" tie-break of SPEC_FULL.md §4.5.
func sizeTuples(k, total int) [][]int {
	if k == 0 {
		if total == 0 {
			return [][]int{{}}
		}
		return nil
	}
	if total < k {
		return nil
	}
	var out [][]int
	var rec func(pos, remaining int, acc []int)
	rec = func(pos, remaining int, acc []int) {
		if pos == k-1 {
			cp := append(append([]int{}, acc...), remaining)
			out = append(out, cp)
			return
		}
		maxHead := remaining - (k - pos - 1)
		for head := 1; head <= maxHead; head++ {
			rec(pos+1, remaining-head, append(acc, head))
		}
	}
	rec(0, total, nil)
	sort.Slice(out, func(i, j int) bool {
		for x := range out[i] {
			if out[i][x] != out[j][x] {
				return out[i][x] < out[j][x]
			}
		}
		return false
	})
	return out
}

// cartesian returns the Cartesian product of streams, each element a
// slice of one term per stream, in row-major (last stream fastest)
// order — deterministic given deterministic input streams.
func cartesian(streams [][]*Term) [][]*Term {
	if len(streams) == 0 {
		return [][]*Term{{}}
	}
	rest := cartesian(streams[1:])
	out := make([][]*Term, 0, len(streams[0])*len(rest))
	for _, head := range streams[0] {
		for _, tail := range rest {
			combo := make([]*Term, 0, 1+len(tail))
			combo = append(combo, head)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}

// detectCyclic returns the set of keys from which a production cycle
// is reachable: if start is in this set, G's language from start is
// potentially infinite and Enumerate must rely on ctx cancellation
// rather than an empty-streak heuristic to ever stop.
func detectCyclic(g *grammar.Grammar, start string) map[string]bool {
	// onStack/visited drive a standard DFS cycle detection over the
	// argument-reachability graph; cyclic records every key from which
	// some back-edge is reachable.
	visited := map[string]int{} // 0=unvisited 1=on-stack 2=done
	cyclic := map[string]bool{}

	var walk func(key string) bool
	walk = func(key string) bool {
		switch visited[key] {
		case 1:
			return true
		case 2:
			return cyclic[key]
		}
		visited[key] = 1
		found := false
		for _, p := range g.Productions[key] {
			for _, a := range p.ArgKeys() {
				if walk(a) {
					found = true
				}
			}
		}
		visited[key] = 2
		cyclic[key] = found
		return found
	}
	walk(start)
	return cyclic
}
