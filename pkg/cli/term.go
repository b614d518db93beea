package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTTY reports whether stdout is an interactive terminal, matching
// the teacher's own terminal-capability probe (internal/evaluator's
// builtins_term.go checks both IsTerminal and IsCygwinTerminal so
// Windows' Cygwin/MSYS ptys are recognized too).
func isTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// dim wraps s in a dim-gray ANSI escape when stdout is a terminal, and
// returns s unchanged when it is redirected to a file or pipe — the CLI
// never emits escape codes into piped output.
func dim(s string) string {
	if !isTTY() {
		return s
	}
	return "\x1b[2m" + s + "\x1b[0m"
}
