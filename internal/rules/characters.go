package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arkive/arkive/internal/types"
)

// InvalidCharacters flags entries whose name stem contains characters from
// the configured invalid class. The extension is exempt, matching the
// fix pass which only rewrites stems.
func InvalidCharacters(class *regexp.Regexp) Rule {
	return func(e types.PathEntry) []types.Violation {
		matches := class.FindAllString(e.Stem(), -1)
		if len(matches) == 0 {
			return nil
		}
		seen := map[string]bool{}
		var uniq []string
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				uniq = append(uniq, fmt.Sprintf("%q", m))
			}
		}
		return []types.Violation{{
			Path:    e.Rel,
			Kind:    e.Kind,
			Rule:    IDInvalidCharacters,
			Message: fmt.Sprintf("name contains invalid characters: %s", strings.Join(uniq, " ")),
		}}
	}
}
