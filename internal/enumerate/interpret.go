package enumerate

import (
	"fmt"

	"github.com/funvibe/bcdinhabit/internal/literal"
)

// Semantic is a host-provided function bound to one combinator name: it
// receives the parameter binding selected for this application and the
// already-evaluated results of its argument sub-terms, in order, and
// returns the application's host-side value (SPEC_FULL.md §4.5
// Interpretation — "the engine places no constraints on the host
// return type").
type Semantic func(literal.Bindings, ...interface{}) (interface{}, error)

// UnboundCombinatorError reports that a term referenced a combinator
// name absent from the semantics map passed to Interpret.
type UnboundCombinatorError struct {
	Combinator string
}

func (e *UnboundCombinatorError) Error() string {
	return fmt.Sprintf("enumerate: no semantic function bound for combinator %q", e.Combinator)
}

// Interpret walks term bottom-up, evaluating every argument before
// calling the semantic function bound to its combinator name, mirroring
// the teacher's tree-walking evaluator's post-order dispatch
// (internal/evaluator/evaluator.go's Eval) reduced to a single generic
// recursion over one term shape instead of the full AST node type
// switch funxy's dual VM/tree-walk backends need.
func Interpret(term *Term, semantics map[string]Semantic) (interface{}, error) {
	fn, ok := semantics[term.Combinator]
	if !ok {
		return nil, &UnboundCombinatorError{Combinator: term.Combinator}
	}

	args := make([]interface{}, len(term.Args))
	for i, a := range term.Args {
		v, err := Interpret(a, semantics)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return fn(term.Binding, args...)
}
