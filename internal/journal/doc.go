// Package journal persists a record of completed deletion runs in SQLite.
//
// One row per run: what was targeted, how much was deleted, how long each
// phase took, and whether the run finished clean, partial, or as a dry run.
// Journal failures are never allowed to fail a deletion; callers log and move
// on. Read back with `sweeper history`.
package journal
