// Package removal provides the low-level deletion primitives workers call:
// one for files and symlinks, one for directories expected to be empty.
//
// Failures are classified into ErrNotFound, ErrPermission, ErrNotEmpty, and
// untyped errors so callers can decide policy with errors.Is. Platform files
// select the fastest available syscall path; semantics are identical on every
// platform.
package removal
