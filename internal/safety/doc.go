// Package safety validates a deletion target before any work starts.
//
// The gate refuses system directories outright and flags overridable hazards
// such as the user's home directory or a path containing the current working
// directory. It runs exactly once per invocation, before tree discovery.
package safety
