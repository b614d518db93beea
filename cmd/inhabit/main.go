// Command inhabit is a thin entry point delegating to pkg/cli, matching
// the teacher's cmd/funxy/main.go shape of a main package with no logic
// of its own.
package main

import "github.com/funvibe/bcdinhabit/pkg/cli"

func main() {
	cli.Main()
}
