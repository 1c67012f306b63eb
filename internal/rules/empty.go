package rules

import "github.com/arkive/arkive/internal/types"

// EmptyDir flags directories that contain nothing, or only directories that
// are themselves empty. The walker computes transitive emptiness.
func EmptyDir() Rule {
	return func(e types.PathEntry) []types.Violation {
		if e.Kind != types.KindDir || !e.Empty {
			return nil
		}
		return []types.Violation{{
			Path:    e.Rel,
			Kind:    e.Kind,
			Rule:    IDEmptyDir,
			Message: "directory is empty",
		}}
	}
}
