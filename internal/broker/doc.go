// Package broker owns the live dependency graph for a deletion run and
// dispatches directories in strict bottom-up order.
//
// The broker converts a tree.DirectoryTree into remaining-child counts and a
// child-to-parent map, seeds the work channel with the initial leaves, and
// releases a parent only once every one of its children has reported
// completion. Closing the work channel when the completed count reaches the
// total is the run's sole termination signal.
package broker
