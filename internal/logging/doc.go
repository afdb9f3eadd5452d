// Package logging assembles the structured slog loggers used across sweeper.
//
// It owns the console and JSON handlers, level and output plumbing, and small
// attr helpers so components emit data with a consistent shape. Tests and
// wiring code that cannot fail should use NewNop.
package logging
