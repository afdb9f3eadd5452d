// Package main hosts the sweeper CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into deletion
// runs, preflight checks, journal queries, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: the scheduling and deletion machinery lives in the
// internal packages; commands only parse flags, render output, and decide
// exit codes.
package main
