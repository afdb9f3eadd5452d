// Package tree discovers the directory hierarchy beneath a target root and
// produces the immutable snapshot the broker schedules from.
//
// Discovery walks the tree once, up front, and records every directory, each
// directory's immediate subdirectories, and the set of leaves (directories
// with no subdirectories). Unreadable directories are logged and skipped;
// their subtrees simply never enter the snapshot.
package tree
