package core

import (
	"github.com/arkive/arkive/internal/engine"
	"github.com/arkive/arkive/internal/mirror"
	"github.com/arkive/arkive/internal/rules"
	"github.com/arkive/arkive/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Violation = types.Violation
type CheckResult = engine.Result
type MirrorResult = mirror.Result

// Check is the stable validation entrypoint for other programs.
func Check(cfg Config) (CheckResult, error) {
	return engine.Check(cfg)
}

// Mirror replicates the tree structure of src under dst with empty
// placeholder files.
func Mirror(src, dst string) (MirrorResult, error) {
	return mirror.Mirror(src, dst, mirror.Options{})
}

// RuleIDs returns the list of known rule identifiers.
// This is exposed for convenience to avoid importing internals directly.
func RuleIDs() []string { return rules.IDs() }
