// Package config holds build/version metadata and the small set of
// process-wide mode flags the engine and its CLI consult, mirroring the
// teacher's internal/config/constants.go (a plain var/const package with
// no logic of its own, set once at startup and read everywhere else).
package config

// Version is the current engine version. Set at build time via
// -ldflags, the same convention funxy's own Version var documents.
var Version = "0.1.0"

// DefaultMaxProductions bounds a saturation run (SPEC_FULL.md §5.6's
// production cap) when the caller does not supply its own via
// inhabit.Options.MaxProductions, or supplies zero (the CLI's
// "check -cap" default).
const DefaultMaxProductions = 100_000

// Verbose toggles progress logging in internal/inhabit and
// internal/enumerate when a caller's Options.Log is left unset. It is
// off by default so library use stays quiet; the CLI's -v flag sets it
// once at startup, matching funxy's IsTestMode/IsLSPMode startup-flag
// convention.
var Verbose = false
