// Package sweep orchestrates a deletion run: discover the tree, build the
// broker, drive the worker pool, and sample progress until the run completes
// or the caller's context ends.
//
// The pipeline itself has no timeout and never surfaces worker errors as run
// failures; a stalled branch leaves the run waiting until the surrounding
// process decides to stop, and the summary reports what actually happened.
package sweep
