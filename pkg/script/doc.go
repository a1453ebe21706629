// Package script evaluates Lua configuration scripts into document trees.
//
// An [Environment] describes one evaluation: the entry script, an optional
// module search root (set when the input path is a directory holding
// init.lua), an optional values script that runs first to define defaults,
// and an ordered list of [Global] assignments that are applied after the
// values script so they take precedence over it.
//
// Every call to [Evaluate] runs in a fresh interpreter; no state is shared
// between evaluations.
package script
