// Package preflight runs the checks that gate a deletion run: the target
// exists and is a directory, the safety gate passes, and no other sweeper
// process holds the target's run lock.
//
// Results are plain pass/fail records; rendering belongs to the CLI.
package preflight
