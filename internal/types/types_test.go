package types

import "testing"

func TestSize(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		want int
	}{
		{"omega", OmegaType, 1},
		{"constructor nullary", NewConstructor("A"), 2},
		{"constructor unary", NewConstructor("A", NewConstructor("B")), 3},
		{"arrow", Arrow{Source: NewConstructor("A"), Target: NewConstructor("B")}, 5},
		{"product", Product{Left: NewConstructor("A"), Right: NewConstructor("B")}, 5},
		{"intersection", Intersection{Left: NewConstructor("A"), Right: NewConstructor("B")}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.typ.Size(); got != c.want {
				t.Errorf("Size() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestIsOmega(t *testing.T) {
	a := NewConstructor("A")
	if a.IsOmega() {
		t.Errorf("Constructor(A) should not be omega")
	}
	arrowToOmega := Arrow{Source: a, Target: OmegaType}
	if !arrowToOmega.IsOmega() {
		t.Errorf("Arrow(A, omega) should be omega")
	}
	prod := Product{Left: OmegaType, Right: OmegaType}
	if prod.IsOmega() {
		t.Errorf("Product is never omega")
	}
	inter := Intersection{Left: OmegaType, Right: OmegaType}
	if !inter.IsOmega() {
		t.Errorf("Intersection(omega, omega) should be omega")
	}
	inter2 := Intersection{Left: OmegaType, Right: a}
	if inter2.IsOmega() {
		t.Errorf("Intersection(omega, A) should not be omega")
	}
}

func TestOrganized(t *testing.T) {
	a := NewConstructor("A")
	b := NewConstructor("B")

	if len(OmegaType.Organized()) != 0 {
		t.Errorf("Organized(omega) should be empty")
	}

	// Constructor with a compound (intersection) arg splits.
	ctor := Constructor{Name: "c", Arg: Intersection{Left: a, Right: b}}
	paths := ctor.Organized()
	if len(paths) != 2 {
		t.Fatalf("expected 2 organized paths, got %d", len(paths))
	}

	// Arrow with singleton target organized stays whole.
	arrow := Arrow{Source: a, Target: b}
	if len(arrow.Organized()) != 1 || !Equal(arrow.Organized()[0], arrow) {
		t.Errorf("Arrow(A,B) should organize to itself")
	}

	// Intersection of two simple arrows organizes into both branches.
	interArrow := Intersection{
		Left:  Arrow{Source: NewConstructor("Int"), Target: NewConstructor("Int")},
		Right: Arrow{Source: NewConstructor("Bool"), Target: NewConstructor("Bool")},
	}
	ip := interArrow.Organized()
	if len(ip) != 2 {
		t.Fatalf("expected 2 organized arrow spines, got %d", len(ip))
	}
}

func TestStringPrecedence(t *testing.T) {
	a := NewConstructor("A")
	b := NewConstructor("B")
	c := NewConstructor("C")

	arrow := Arrow{Source: a, Target: Arrow{Source: b, Target: c}}
	if got, want := arrow.String(), "A -> B -> C"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	arrowSource := Arrow{Source: Arrow{Source: a, Target: b}, Target: c}
	if got, want := arrowSource.String(), "(A -> B) -> C"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	prod := Product{Left: a, Right: Arrow{Source: b, Target: c}}
	if got, want := prod.String(), "A * (B -> C)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	prodNestedLeft := Product{Left: Product{Left: a, Right: b}, Right: c}
	if got, want := prodNestedLeft.String(), "A * B * C"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	prodNestedRight := Product{Left: a, Right: Product{Left: b, Right: c}}
	if got, want := prodNestedRight.String(), "A * (B * C)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	inter := Intersection{Left: Arrow{Source: a, Target: b}, Right: c}
	if got, want := inter.String(), "(A -> B) & C"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"A",
		"a",
		"A -> B -> C",
		"(A -> B) -> C",
		"A * B",
		"A & B",
		"(Int -> Int) & (Bool -> Bool)",
		"c(3)",
		"ω",
	}
	for _, s := range cases {
		typ, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if got := typ.String(); got != s {
			t.Errorf("Parse(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestResolveVars(t *testing.T) {
	body := Arrow{Source: TypeVariable{Name: "n"}, Target: NewConstructor("c", TypeVariable{Name: "n"})}
	_, err := ResolveVars(body, map[string]Type{})
	if err == nil {
		t.Fatalf("expected unbound variable error")
	}

	resolved, err := ResolveVars(body, map[string]Type{"n": Literal{Value: 3, Kind: "Int"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "3 -> c(3)"
	if got := resolved.String(); got != want {
		t.Errorf("resolved = %q, want %q", got, want)
	}
}
