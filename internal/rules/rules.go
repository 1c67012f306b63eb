package rules

import (
	"github.com/arkive/arkive/internal/config"
	"github.com/arkive/arkive/internal/types"
)

// Rule is a pure predicate over a PathEntry. It returns zero or more
// violations and never touches the file system.
type Rule func(e types.PathEntry) []types.Violation

// Rule identifiers as they appear in reports.
const (
	IDInvalidCharacters = "invalid_characters"
	IDForbiddenNames    = "forbidden_names"
	IDMaxPathLength     = "max_path_length"
	IDMaxNameLength     = "max_name_length"
	IDEmptyDir          = "empty_dir"
)

// IDs lists every known rule identifier.
func IDs() []string {
	return []string{
		IDInvalidCharacters,
		IDForbiddenNames,
		IDMaxPathLength,
		IDMaxNameLength,
		IDEmptyDir,
	}
}

// FromConfig builds the active rule set for a resolved configuration.
func FromConfig(cfg config.Resolved) []Rule {
	var active []Rule
	if cfg.Checks&config.CheckCharacters != 0 {
		active = append(active, InvalidCharacters(cfg.InvalidCharacters))
		if len(cfg.ForbiddenNames) > 0 {
			active = append(active, ForbiddenNames(cfg.ForbiddenNames, cfg.CaseSensitive))
		}
	}
	if cfg.Checks&config.CheckLength != 0 {
		active = append(active, MaxPathLength(cfg.EffectiveMaxPathLength()), MaxNameLength(cfg.MaxNameLength))
	}
	if cfg.Checks&config.CheckEmpty != 0 {
		active = append(active, EmptyDir())
	}
	return active
}

// RunAll evaluates every rule against the entry once, in order.
func RunAll(active []Rule, e types.PathEntry) []types.Violation {
	var out []types.Violation
	for _, r := range active {
		out = append(out, r(e)...)
	}
	return out
}
