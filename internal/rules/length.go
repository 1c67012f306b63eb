package rules

import (
	"fmt"

	"github.com/arkive/arkive/internal/types"
)

// MaxPathLength flags entries whose absolute path exceeds the limit. The
// limit already accounts for any copy-destination prefix.
func MaxPathLength(limit int) Rule {
	return func(e types.PathEntry) []types.Violation {
		if n := len(e.Path); n > limit {
			return []types.Violation{{
				Path:    e.Rel,
				Kind:    e.Kind,
				Rule:    IDMaxPathLength,
				Message: fmt.Sprintf("path is %d characters long (limit %d)", n, limit),
			}}
		}
		return nil
	}
}

// MaxNameLength flags entries whose final path element exceeds the limit.
func MaxNameLength(limit int) Rule {
	return func(e types.PathEntry) []types.Violation {
		if n := len(e.Name()); n > limit {
			return []types.Violation{{
				Path:    e.Rel,
				Kind:    e.Kind,
				Rule:    IDMaxNameLength,
				Message: fmt.Sprintf("name is %d characters long (limit %d)", n, limit),
			}}
		}
		return nil
	}
}
