package enumerate

import (
	"context"
	"testing"

	"github.com/funvibe/bcdinhabit/internal/inhabit"
	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/repo"
	"github.com/funvibe/bcdinhabit/internal/subenv"
	"github.com/funvibe/bcdinhabit/internal/types"
)

func collect(ch <-chan *Term, n int) []*Term {
	var out []*Term
	for t := range ch {
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}

// Scenario 1: Γ = { id : a -> a, x : a }; query a. Applying id to x
// grows the arrow spine's result, so enumeration at "a" yields x itself
// (size 1) before id(x) (size 2), and Interpret on id(x) applies the
// host identity function.
func TestEnumerateSingletonIdentity(t *testing.T) {
	r := repo.New()
	a := types.NewConstructor("A")
	r.Const("id", types.Arrow{Source: a, Target: a})
	r.Const("x", a)

	g, err := inhabit.Inhabit(context.Background(), r, subenv.New(nil), nil, a, inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	terms := collect(Enumerate(ctx, g, g.Root, Options{}), 2)
	if len(terms) != 2 || terms[0].String() != "x" || terms[1].String() != "id(x)" {
		t.Fatalf("enumeration of A = %v, want [x, id(x)]", terms)
	}

	semantics := map[string]Semantic{
		"id": func(_ literal.Bindings, args ...interface{}) (interface{}, error) { return args[0], nil },
		"x":  func(_ literal.Bindings, args ...interface{}) (interface{}, error) { return "the-x-value", nil },
	}
	v, err := Interpret(terms[1], semantics)
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if v != "the-x-value" {
		t.Fatalf("Interpret(id(x)) = %v, want \"the-x-value\"", v)
	}
}

// Scenario 2: subtype promotion — adopt(fido) is the sole enumerated
// term of type Home.
func TestEnumerateSubtypePromotion(t *testing.T) {
	r := repo.New()
	r.Const("fido", types.NewConstructor("Dog"))
	r.Const("adopt", types.Arrow{Source: types.NewConstructor("Animal"), Target: types.NewConstructor("Home")})

	env := subenv.New(map[string][]string{"Dog": {"Animal"}})
	g, err := inhabit.Inhabit(context.Background(), r, env, nil, types.NewConstructor("Home"), inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	terms := collect(Enumerate(ctx, g, g.Root, Options{}), 1)
	if len(terms) != 1 || terms[0].String() != "adopt(fido)" {
		t.Fatalf("enumeration of Home = %v, want exactly [adopt(fido)]", terms)
	}
}

// Scenario 4: pair(a)(b) enumerates as the sole term of type A*B.
func TestEnumerateProduct(t *testing.T) {
	r := repo.New()
	a, b := types.NewConstructor("A"), types.NewConstructor("B")
	r.Const("a", a)
	r.Const("b", b)
	r.Const("pair", types.Arrow{Source: a, Target: types.Arrow{Source: b, Target: types.Product{Left: a, Right: b}}})

	g, err := inhabit.Inhabit(context.Background(), r, subenv.New(nil), nil, types.Product{Left: a, Right: b}, inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	terms := collect(Enumerate(ctx, g, g.Root, Options{}), 1)
	if len(terms) != 1 || terms[0].String() != "pair(a, b)" {
		t.Fatalf("enumeration of A*B = %v, want exactly [pair(a, b)]", terms)
	}
}

// A finite grammar's enumeration channel must close once its language
// is exhausted: querying A with a single nullary combinator yields one
// term and then the channel closes without hanging.
func TestEnumerateFiniteLanguageCloses(t *testing.T) {
	r := repo.New()
	r.Const("a", types.NewConstructor("A"))

	g, err := inhabit.Inhabit(context.Background(), r, subenv.New(nil), nil, types.NewConstructor("A"), inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []*Term
	for term := range Enumerate(ctx, g, g.Root, Options{}) {
		got = append(got, term)
	}
	if len(got) != 1 || got[0].Combinator != "a" {
		t.Fatalf("enumeration of A = %v, want exactly [a]", got)
	}
}

// A self-referential grammar (List = Nil | Cons(Elem, List)) must
// stream an unbounded, strictly size-increasing sequence of terms
// rather than hang or stop early.
func TestEnumerateCyclicGrammarIsLazyAndFair(t *testing.T) {
	r := repo.New()
	elem := types.NewConstructor("Elem")
	list := types.NewConstructor("List")
	r.Const("elem", elem)
	r.Const("nil", list)
	r.Const("cons", types.Arrow{Source: elem, Target: types.Arrow{Source: list, Target: list}})

	g, err := inhabit.Inhabit(context.Background(), r, subenv.New(nil), nil, list, inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	terms := collect(Enumerate(ctx, g, g.Root, Options{}), 5)
	if len(terms) != 5 {
		t.Fatalf("expected 5 terms from an infinite list language, got %d", len(terms))
	}
	for i := 1; i < len(terms); i++ {
		if terms[i].Size() < terms[i-1].Size() {
			t.Fatalf("enumeration not size-monotonic: term %d size %d < term %d size %d", i, terms[i].Size(), i-1, terms[i-1].Size())
		}
	}
	if terms[0].Combinator != "nil" {
		t.Fatalf("first (smallest) term = %v, want nil (size 1)", terms[0])
	}
}

func TestInterpretUnboundCombinator(t *testing.T) {
	term := &Term{Combinator: "mystery"}
	_, err := Interpret(term, map[string]Semantic{})
	if err == nil {
		t.Fatalf("expected an UnboundCombinatorError")
	}
	if _, ok := err.(*UnboundCombinatorError); !ok {
		t.Fatalf("err = %T, want *UnboundCombinatorError", err)
	}
}
