package fix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/arkive/arkive/internal/config"
	"github.com/arkive/arkive/internal/engine"
	"github.com/arkive/arkive/internal/rules"
	"github.com/arkive/arkive/internal/types"
	"github.com/arkive/arkive/internal/walker"
	"golang.org/x/text/unicode/norm"
)

// Collision selects what happens when a rename target already exists.
type Collision string

const (
	CollisionIncrement Collision = "increment" // add "(n)" before the extension
	CollisionSkip      Collision = "skip"      // leave the path as-is
)

// ParseCollision validates a collision policy name.
func ParseCollision(s string) (Collision, error) {
	switch Collision(strings.ToLower(s)) {
	case CollisionIncrement:
		return CollisionIncrement, nil
	case CollisionSkip:
		return CollisionSkip, nil
	}
	return "", &config.RuleConfigError{Field: "collision", Reason: fmt.Sprintf("unknown policy %q", s)}
}

// Options controls a fix run.
type Options struct {
	DryRun    bool
	Collision Collision
}

// Change records one applied (or planned, under dry-run) rename.
type Change struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path"`
	Rule    string `json:"rule"`
}

// Result summarizes a fix run.
type Result struct {
	Changes     []Change
	RemovedDirs []string          // empty directories removed (empty check active)
	Unfixed     []types.Violation // violations renaming could not address
	Errors      []error
}

// Clean reports whether everything invalid was fixed.
func (r Result) Clean() bool { return len(r.Unfixed) == 0 && len(r.Errors) == 0 }

// Apply renames paths to conform with the configured rules: invalid
// characters in name stems are replaced, then the configured rename
// patterns are applied. Entries are processed deepest-first so renames
// never invalidate paths that are still pending. With the empty check
// active, empty directories are removed afterwards; path-length violations
// that renaming cannot address are reported as unfixed.
func Apply(cfg config.Resolved, opts Options) (Result, error) {
	var res Result
	if opts.Collision == "" {
		opts.Collision = CollisionIncrement
	}

	entries, err := walker.Walk(cfg.Root, walker.Options{})
	if err != nil {
		return res, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Err != nil {
			res.Errors = append(res.Errors, e.Err)
			continue
		}
		if engine.Excluded(e.Rel, cfg.Exclude) {
			continue
		}
		name := e.Name()
		newName, rule := rewriteName(name, cfg)
		if newName == name || newName == "" {
			continue
		}
		target := filepath.Join(filepath.Dir(e.Path), newName)
		final, ok, err := safeRename(e.Path, target, opts)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		if ok {
			res.Changes = append(res.Changes, Change{Path: e.Path, NewPath: final, Rule: rule})
		}
	}

	if cfg.Checks&config.CheckEmpty != 0 {
		removed, errs := removeEmptyDirs(cfg, opts.DryRun)
		res.RemovedDirs = removed
		res.Errors = append(res.Errors, errs...)
	}

	if cfg.Checks&config.CheckLength != 0 {
		lengthCfg := cfg
		lengthCfg.Checks = config.CheckLength
		chk, err := engine.Check(engine.Config{Resolved: lengthCfg})
		if err != nil {
			return res, err
		}
		res.Unfixed = chk.Violations
	}

	return res, nil
}

// rewriteName applies the character replacement and rename patterns to one
// name, returning the new name and the rule that first changed it.
func rewriteName(name string, cfg config.Resolved) (string, string) {
	rule := ""
	stem, ext := splitExt(name)

	if cfg.Checks&config.CheckCharacters != 0 {
		replaced := cfg.InvalidCharacters.ReplaceAllString(stem, cfg.Replacement)
		if replaced != stem {
			stem = replaced
			rule = rules.IDInvalidCharacters
		}
	}
	out := stem + ext

	for _, p := range cfg.Rename {
		s := out
		if p.NoAccent {
			s = stripAccents(s)
		}
		if p.Match.MatchString(s) {
			out = p.Match.ReplaceAllString(s, p.Replacement)
			if rule == "" {
				rule = "rename_pattern"
			}
		}
	}
	return out, rule
}

// safeRename renames path to target honoring the collision policy. It
// returns the final target and whether a rename was performed (or planned
// under dry-run).
func safeRename(path, target string, opts Options) (string, bool, error) {
	if _, err := os.Lstat(target); err == nil {
		if opts.Collision == CollisionSkip {
			return "", false, nil
		}
		target = incrementTarget(target)
	}
	if !opts.DryRun {
		if err := os.Rename(path, target); err != nil {
			return "", false, fmt.Errorf("rename %s: %w", path, err)
		}
	}
	return target, true, nil
}

// incrementTarget finds the first free "(n)" variant of target.
func incrementTarget(target string) string {
	dir := filepath.Dir(target)
	stem, ext := splitExt(filepath.Base(target))
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s(%d)%s", stem, n, ext))
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
	}
}

func removeEmptyDirs(cfg config.Resolved, dryRun bool) ([]string, []error) {
	entries, err := walker.Walk(cfg.Root, walker.Options{})
	if err != nil {
		return nil, []error{err}
	}
	var removed []string
	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Err != nil || e.Kind != types.KindDir || !e.Empty {
			continue
		}
		if engine.Excluded(e.Rel, cfg.Exclude) {
			continue
		}
		if !dryRun {
			if err := os.Remove(e.Path); err != nil {
				errs = append(errs, fmt.Errorf("remove %s: %w", e.Path, err))
				continue
			}
		}
		removed = append(removed, e.Path)
	}
	return removed, errs
}

func splitExt(name string) (string, string) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i:]
		}
	}
	return name, ""
}

// stripAccents removes combining diacritical marks so accent-insensitive
// patterns can match their base letters.
func stripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out = append(out, r)
	}
	return norm.NFC.String(string(out))
}
