// Package engine orchestrates check runs: it drives the tree walker,
// applies exclude globs, evaluates the active rule set against every entry
// and aggregates the resulting violation report.
package engine
