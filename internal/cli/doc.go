// Package cli wires together the Cobra command tree for the ablens binary.
//
// It defines the root command and all subcommands (analyze, fetch, config,
// models, cache, version), binds flags, reads configuration, assembles
// variants, invokes the analysis engine, and returns deterministic exit
// codes for scripting.
package cli
