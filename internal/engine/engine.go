package engine

import (
	"time"

	"github.com/arkive/arkive/internal/config"
	"github.com/arkive/arkive/internal/rules"
	"github.com/arkive/arkive/internal/types"
	"github.com/arkive/arkive/internal/walker"
)

// Config controls a check run.
type Config struct {
	Resolved       config.Resolved
	FollowSymlinks bool
	Progress       func()
}

// Result carries the ordered violation report and run statistics. Access
// errors are recorded inline and never abort the run.
type Result struct {
	Violations     []types.Violation
	Errors         []error // access errors, in walk order
	EntriesChecked int
	Duration       time.Duration
}

// Check walks the configured root and evaluates every entry against every
// active rule exactly once. The report order follows walk order and is
// stable across runs on an unchanged tree. The file system is never
// mutated.
func Check(cfg Config) (Result, error) {
	var res Result
	started := time.Now()

	entries, err := walker.Walk(cfg.Resolved.Root, walker.Options{FollowSymlinks: cfg.FollowSymlinks})
	if err != nil {
		return res, err
	}

	active := rules.FromConfig(cfg.Resolved)
	for _, e := range entries {
		if Excluded(e.Rel, cfg.Resolved.Exclude) {
			continue
		}
		if e.Err != nil {
			res.Errors = append(res.Errors, e.Err)
			continue
		}
		res.EntriesChecked++
		res.Violations = append(res.Violations, rules.RunAll(active, e)...)
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}

	res.Duration = time.Since(started)
	return res, nil
}

// CountTargets estimates the number of entries a check run will evaluate,
// for progress reporting.
func CountTargets(cfg Config) (int, error) {
	entries, err := walker.Walk(cfg.Resolved.Root, walker.Options{FollowSymlinks: cfg.FollowSymlinks})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.Err == nil && !Excluded(e.Rel, cfg.Resolved.Exclude) {
			n++
		}
	}
	return n, nil
}
