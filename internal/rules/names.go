package rules

import (
	"fmt"
	"strings"

	"github.com/arkive/arkive/internal/types"
)

// ForbiddenNames flags entries whose name, or name stem, is on the
// forbidden list. The stem is included so reserved device names like
// CON remain forbidden with any extension.
func ForbiddenNames(names []string, caseSensitive bool) Rule {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if !caseSensitive {
			n = strings.ToLower(n)
		}
		set[n] = true
	}
	return func(e types.PathEntry) []types.Violation {
		name, stem := e.Name(), e.Stem()
		if !caseSensitive {
			name, stem = strings.ToLower(name), strings.ToLower(stem)
		}
		if !set[name] && !set[stem] {
			return nil
		}
		return []types.Violation{{
			Path:    e.Rel,
			Kind:    e.Kind,
			Rule:    IDForbiddenNames,
			Message: fmt.Sprintf("name %q is forbidden", e.Name()),
		}}
	}
}
