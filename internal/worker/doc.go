// Package worker runs the fixed pool of goroutines that consume ready
// directories from the broker, clear their file contents, remove them, and
// report completion.
//
// Workers never touch the same directory twice: the broker enqueues each
// directory exactly once, so units operate on disjoint paths by construction.
// A directory whose removal fails is never reported complete; its ancestor
// chain stalls, and the run finishes partial.
package worker
