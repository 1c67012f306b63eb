package engine

import (
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Excluded reports whether rel matches any exclude glob. Globs match the
// full relative path, the base name, and every ancestor directory, so
// excluding "tmp" also excludes everything below it. Matching uses
// forward-slash semantics.
func Excluded(rel string, globs []string) bool {
	if len(globs) == 0 {
		return false
	}
	for _, g := range globs {
		g = strings.TrimSpace(strings.TrimPrefix(g, "./"))
		if g == "" {
			continue
		}
		if matchGlob(g, rel) {
			return true
		}
		for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if matchGlob(g, dir) {
				return true
			}
		}
	}
	return false
}

func matchGlob(g, rel string) bool {
	if ok, _ := doublestar.Match(g, rel); ok {
		return true
	}
	if ok, _ := doublestar.Match(g, path.Base(rel)); ok {
		return true
	}
	return false
}
