package preflight

import (
	"fmt"
	"os"

	"sweeper/internal/config"
	"sweeper/internal/runlock"
	"sweeper/internal/safety"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options tune how the checks run.
type Options struct {
	// Force downgrades overridable safety findings to a pass.
	Force bool
	// SkipLock omits the run lock probe (used with --no-lock).
	SkipLock bool
}

// Run executes all preflight checks for target. Checks after a missing or
// non-directory target are skipped; there is nothing meaningful to probe.
func Run(cfg *config.Config, target string, opts Options) []Result {
	var results []Result

	info, err := os.Lstat(target)
	if err != nil {
		results = append(results, Result{
			Name:   "Target exists",
			Detail: err.Error(),
		})
		return results
	}
	results = append(results, Result{Name: "Target exists", Passed: true, Detail: target})

	if !info.IsDir() {
		results = append(results, Result{
			Name:   "Target is a directory",
			Detail: fmt.Sprintf("%s is not a directory", target),
		})
		return results
	}
	results = append(results, Result{Name: "Target is a directory", Passed: true})

	results = append(results, checkSafety(cfg, target, opts.Force))

	if !opts.SkipLock && cfg != nil {
		results = append(results, checkLock(cfg, target))
	}

	return results
}

// Passed reports whether every check succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func checkSafety(cfg *config.Config, target string, force bool) Result {
	var extra []string
	if cfg != nil {
		extra = cfg.Safety.AdditionalProtected
	}
	verdict := safety.Check(target, extra)
	switch {
	case verdict.Safe:
		return Result{Name: "Safety gate", Passed: true}
	case verdict.Overridable && force:
		return Result{Name: "Safety gate", Passed: true, Detail: verdict.Reason + " (overridden by --force)"}
	case verdict.Overridable:
		return Result{Name: "Safety gate", Detail: verdict.Reason + " (use --force to proceed)"}
	default:
		return Result{Name: "Safety gate", Detail: verdict.Reason}
	}
}

func checkLock(cfg *config.Config, target string) Result {
	available, err := runlock.Probe(cfg.LockDir(), target)
	if err != nil {
		return Result{Name: "Run lock", Detail: err.Error()}
	}
	if !available {
		return Result{Name: "Run lock", Detail: "another sweeper process is deleting this target"}
	}
	return Result{Name: "Run lock", Passed: true}
}
