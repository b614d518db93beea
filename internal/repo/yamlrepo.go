package repo

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/bcdinhabit/internal/literal"
	"github.com/funvibe/bcdinhabit/internal/types"
)

// Document is the YAML shape a repository is loaded from (mirroring the
// teacher's funxy.yaml ext-config idiom — a declarative document that
// reuses the package's own canonical type printer/parser as its string
// vocabulary for types, so printed grammars and input fixtures share one
// syntax).
type Document struct {
	// Constructors declares the direct subtype relation E: a
	// constructor name maps to the list of names it is a direct
	// subtype of.
	Constructors map[string][]string `yaml:"constructors"`

	// Domains declares the finite literal kind domains L. Each value
	// must parse as a YAML scalar (numbers and strings are supported).
	Domains map[string][]literal.Value `yaml:"domains"`

	// Combinators declares Γ: each combinator's parameters and body.
	Combinators map[string]CombinatorDoc `yaml:"combinators"`
}

// CombinatorDoc is one combinator's YAML schema declaration.
type CombinatorDoc struct {
	Params []ParamDoc `yaml:"params"`
	Body   string     `yaml:"body"`
}

// ParamDoc is one parameter's YAML declaration. Predicate is an
// optional named predicate registered by the host via
// ParamPredicates — the engine never evaluates arbitrary code loaded
// from YAML (SPEC_FULL.md's Repository interface keeps predicates
// host-supplied Go values, never serialized).
type ParamDoc struct {
	Var       string `yaml:"var"`
	Kind      string `yaml:"kind"`
	Predicate string `yaml:"predicate,omitempty"`
}

// ParamPredicates maps the named predicates a YAML document may
// reference by name to the host-side literal.Predicate implementing
// them.
type ParamPredicates map[string]literal.Predicate

// LoadYAML parses a repository document from bytes, resolving any named
// predicates against preds. It returns the built Repository, the
// subtype-environment relation (ready for subenv.New), and the literal
// domains (ready for use by internal/inhabit).
func LoadYAML(data []byte, preds ParamPredicates) (*Repository, map[string][]string, map[string]literal.Kind, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("repo.LoadYAML: %w", err)
	}

	domains := make(map[string]literal.Kind, len(doc.Domains))
	for name, values := range doc.Domains {
		domains[name] = literal.Kind{Name: name, Domain: values}
	}

	r := New()
	for _, name := range sortedKeys(doc.Combinators) {
		cdoc := doc.Combinators[name]
		body, err := types.Parse(cdoc.Body)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("repo.LoadYAML: combinator %q: body %q: %w", name, cdoc.Body, err)
		}
		params := make([]literal.Param, 0, len(cdoc.Params))
		for _, pd := range cdoc.Params {
			pred := literal.AlwaysTrue
			if pd.Predicate != "" {
				p, ok := preds[pd.Predicate]
				if !ok {
					return nil, nil, nil, fmt.Errorf("repo.LoadYAML: combinator %q: unknown predicate %q", name, pd.Predicate)
				}
				pred = p
			}
			params = append(params, literal.Param{Var: pd.Var, Kind: pd.Kind, Predicate: pred})
		}
		r.Declare(name, Schema{Params: params, Body: body})
	}

	return r, doc.Constructors, domains, nil
}

// LoadYAMLFile reads and parses a repository document from path.
func LoadYAMLFile(path string, preds ParamPredicates) (*Repository, map[string][]string, map[string]literal.Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("repo.LoadYAMLFile: %w", err)
	}
	return LoadYAML(data, preds)
}

func sortedKeys(m map[string]CombinatorDoc) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
