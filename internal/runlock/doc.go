// Package runlock guards a deletion target against concurrent sweeper
// processes with a per-target advisory file lock.
//
// The lock lives outside the target tree (in the state directory, keyed by a
// digest of the canonical target path) so it never interferes with the
// deletion itself. It is an outer guard only; the core pipeline still assumes
// exclusive ownership of the tree for the duration of the run.
package runlock
