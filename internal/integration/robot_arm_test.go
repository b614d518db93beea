// Package integration exercises the repository loader, the
// inhabitation engine, and the term enumerator together end to end
// against the checked-in robot-arm fixture (SPEC_FULL.md §9 / spec.md
// §8.2.6), supplementing the distilled spec's prose-only description
// with a concrete YAML repository. It lives in its own package because
// internal/repo cannot import internal/inhabit (inhabit already
// imports repo) without a cycle.
package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/funvibe/bcdinhabit/internal/enumerate"
	"github.com/funvibe/bcdinhabit/internal/inhabit"
	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/repo"
	"github.com/funvibe/bcdinhabit/internal/subenv"
	"github.com/funvibe/bcdinhabit/internal/types"
)

func robotArmPredicates() repo.ParamPredicates {
	return repo.ParamPredicates{
		"lessThanThree": func(b literal.Bindings) bool {
			return b["n"].Value.(int) < 3
		},
		"isSuccessorOfN": func(b literal.Bindings) bool {
			return b["m"].Value.(int) == b["n"].Value.(int)+1
		},
	}
}

// Every enumerated term at "Base & c(3)" applies "motor" exactly three
// times over "base" (spec.md §8.2.6's invariant: "no term violates the
// count invariant").
func TestRobotArmFixtureEndToEnd(t *testing.T) {
	r, rel, domains, err := repo.LoadYAMLFile("../repo/testdata/robot_arm.yaml", robotArmPredicates())
	if err != nil {
		t.Fatalf("LoadYAMLFile: %v", err)
	}

	env := subenv.New(rel)
	query := types.Intersection{
		Left:  types.NewConstructor("Base"),
		Right: types.NewConstructor("c", types.Literal{Value: 3, Kind: "Int"}),
	}

	g, err := inhabit.Inhabit(context.Background(), r, env, domains, query, inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}
	if inhabit.Uninhabited(g) {
		t.Fatalf("Base & c(3) should be inhabited by the robot-arm fixture")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	terms := 0
	for term := range enumerate.Enumerate(ctx, g, g.Root, enumerate.Options{}) {
		terms++
		if got := strings.Count(term.String(), "motor("); got != 3 {
			t.Fatalf("term %s applies motor %d times, want exactly 3", term, got)
		}
		if terms >= 5 {
			break
		}
	}
	if terms == 0 {
		t.Fatalf("expected at least one enumerated term")
	}
}

// Subtype promotion: the fixture's Dog -> Animal relation lets adopt
// accept fido.
func TestRobotArmFixtureSubtypePromotion(t *testing.T) {
	r, rel, _, err := repo.LoadYAMLFile("../repo/testdata/robot_arm.yaml", robotArmPredicates())
	if err != nil {
		t.Fatalf("LoadYAMLFile: %v", err)
	}
	env := subenv.New(rel)

	g, err := inhabit.Inhabit(context.Background(), r, env, nil, types.NewConstructor("Home"), inhabit.Options{})
	if err != nil {
		t.Fatalf("Inhabit: %v", err)
	}
	prods := g.Productions[g.Root]
	if len(prods) != 1 || prods[0].String() != "adopt(Animal)" {
		t.Fatalf("productions for Home = %v, want exactly [adopt(Animal)]", prods)
	}
}
