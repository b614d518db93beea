// Package cli implements the thin inspection CLI of SPEC_FULL.md §5.8:
// a flag-based subcommand dispatcher over the inhabitation engine,
// grounded on the teacher's cmd/funxy/main.go + pkg/cli/entry.go
// thin-main-delegates-to-pkg/cli shape, reduced from funxy's dozen
// script-execution subcommands to the handful of operations this engine
// exposes for manual inspection: check, enumerate, subtype, version.
// This is not a product surface — it exists to exercise the engine by
// hand against a YAML repository (SPEC_FULL.md §10 Non-goals).
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/funvibe/bcdinhabit/internal/config"
	"github.com/funvibe/bcdinhabit/internal/enumerate"
	"github.com/funvibe/bcdinhabit/internal/inhabit"
	"github.com/funvibe/bcdinhabit/internal/repo"
	"github.com/funvibe/bcdinhabit/internal/subenv"
	"github.com/funvibe/bcdinhabit/internal/subtype"
	"github.com/funvibe/bcdinhabit/internal/types"
)

const usage = `inhabit: combinatory-logic type inhabitation engine inspector

Usage:
  inhabit check <repo.yaml> <type>
  inhabit enumerate <repo.yaml> <type> [-n N]
  inhabit subtype <repo.yaml> <sigma> <tau>
  inhabit version
  inhabit -v <subcommand> ...   (verbose: logs saturation/enumeration progress)
`

// Run dispatches one invocation of the inhabit CLI, writing all output
// to out, and returns the process exit code — the same
// switch-on-os.Args[1] subcommand shape the teacher's entry point uses,
// reduced to this engine's inspection operations.
func Run(args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(out, usage)
		return 2
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], out)
	case "enumerate":
		return runEnumerate(args[1:], out)
	case "subtype":
		return runSubtype(args[1:], out)
	case "-version", "--version", "version":
		fmt.Fprintf(out, "inhabit %s\n", config.Version)
		return 0
	case "-v", "--verbose":
		config.Verbose = true
		return Run(args[1:], out)
	case "-help", "--help", "help":
		fmt.Fprint(out, usage)
		return 0
	default:
		fmt.Fprintf(out, "inhabit: unknown subcommand %q\n\n%s", args[0], usage)
		return 2
	}
}

// Main is the entry point cmd/inhabit/main.go delegates to.
func Main() {
	os.Exit(Run(os.Args[1:], os.Stdout))
}

func runCheck(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	prodCap := fs.Int("cap", 0, "production cap for saturation (0 = engine default)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprint(out, usage)
		return 2
	}

	requestID := uuid.New().String()
	repoPath, typeStr := fs.Arg(0), fs.Arg(1)

	r, rawRel, domains, err := repo.LoadYAMLFile(repoPath, repo.ParamPredicates{})
	if err != nil {
		fmt.Fprintf(out, "inhabit check[%s]: %v\n", requestID, err)
		return 1
	}
	env := subenv.New(rawRel)

	query, err := types.Parse(typeStr)
	if err != nil {
		fmt.Fprintf(out, "inhabit check[%s]: parsing %q: %v\n", requestID, typeStr, err)
		return 1
	}

	g, err := inhabit.Inhabit(context.Background(), r, env, domains, query, inhabit.Options{MaxProductions: *prodCap})
	if err != nil {
		fmt.Fprintf(out, "inhabit check[%s]: %v\n", requestID, err)
		return 1
	}

	totalProductions := 0
	for _, prods := range g.Productions {
		totalProductions += len(prods)
	}

	fmt.Fprintf(out, "run %s\n", requestID)
	fmt.Fprintf(out, "query: %s\n", query.String())
	fmt.Fprintf(out, "keys: %s\n", humanize.Comma(int64(len(g.Keys()))))
	fmt.Fprintf(out, "productions: %s\n", humanize.Comma(int64(totalProductions)))
	fmt.Fprintf(out, "inhabited: %v\n", !inhabit.Uninhabited(g))
	fmt.Fprintf(out, "truncated: %v\n", g.Truncated)
	fmt.Fprint(out, dim("(add -cap to bound saturation on a repository you suspect is infinite)\n"))
	return 0
}

func runEnumerate(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("enumerate", flag.ContinueOnError)
	n := fs.Int("n", 10, "number of terms to print")
	// The usage line puts -n after the positional arguments, and flag
	// parsing stops at the first positional, so leading positionals are
	// split off before the flags are parsed.
	var positional []string
	for len(args) > 0 && (args[0] == "" || args[0][0] != '-') {
		positional = append(positional, args[0])
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	positional = append(positional, fs.Args()...)
	if len(positional) != 2 {
		fmt.Fprint(out, usage)
		return 2
	}

	requestID := uuid.New().String()
	repoPath, typeStr := positional[0], positional[1]

	r, rawRel, domains, err := repo.LoadYAMLFile(repoPath, repo.ParamPredicates{})
	if err != nil {
		fmt.Fprintf(out, "inhabit enumerate[%s]: %v\n", requestID, err)
		return 1
	}
	env := subenv.New(rawRel)

	query, err := types.Parse(typeStr)
	if err != nil {
		fmt.Fprintf(out, "inhabit enumerate[%s]: parsing %q: %v\n", requestID, typeStr, err)
		return 1
	}

	g, err := inhabit.Inhabit(context.Background(), r, env, domains, query, inhabit.Options{})
	if err != nil {
		fmt.Fprintf(out, "inhabit enumerate[%s]: %v\n", requestID, err)
		return 1
	}
	if inhabit.Uninhabited(g) {
		fmt.Fprintf(out, "run %s: %s is uninhabited\n", requestID, query.String())
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Fprint(out, dim(fmt.Sprintf("run %s: streaming up to %s terms\n", requestID, humanize.Comma(int64(*n)))))
	count := 0
	for term := range enumerate.Enumerate(ctx, g, g.Root, enumerate.Options{}) {
		fmt.Fprintln(out, term.String())
		count++
		if count >= *n {
			break
		}
	}
	return 0
}

func runSubtype(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("subtype", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprint(out, usage)
		return 2
	}

	repoPath, sigmaStr, tauStr := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	_, rawRel, _, err := repo.LoadYAMLFile(repoPath, repo.ParamPredicates{})
	if err != nil {
		fmt.Fprintf(out, "inhabit subtype: %v\n", err)
		return 1
	}
	env := subenv.New(rawRel)

	sigma, err := types.Parse(sigmaStr)
	if err != nil {
		fmt.Fprintf(out, "inhabit subtype: parsing %q: %v\n", sigmaStr, err)
		return 1
	}
	tau, err := types.Parse(tauStr)
	if err != nil {
		fmt.Fprintf(out, "inhabit subtype: parsing %q: %v\n", tauStr, err)
		return 1
	}

	decider := subtype.New(env)
	fmt.Fprintf(out, "%s <= %s: %v\n", sigma.String(), tau.String(), decider.Check(sigma, tau))
	return 0
}
