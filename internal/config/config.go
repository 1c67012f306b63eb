package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for arkive.
type FileConfig struct {
	Filesystem        *string      `yaml:"filesystem"`
	MaxPathLength     *int         `yaml:"max_path_length"`
	MaxNameLength     *int         `yaml:"max_name_length"`
	InvalidCharacters *string      `yaml:"invalid_characters"` // extra character class, added to the profile's
	Replacement       *string      `yaml:"replacement"`
	ForbiddenNames    []string     `yaml:"forbidden_names"`
	CaseSensitive     *bool        `yaml:"case_sensitive"`
	Exclude           []string     `yaml:"exclude"`
	Checks            []string     `yaml:"checks"`
	NoColor           *bool        `yaml:"no_color"`
	Output            *string      `yaml:"output"`
	Rename            []RenameRule `yaml:"rename"`
}

// RenameRule is one fix-pass substitution: paths whose name matches Pattern
// are renamed using Replacement.
type RenameRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	NoCase      bool   `yaml:"no_case"`
	NoAccent    bool   `yaml:"no_accent"`
}

// RuleConfigError is a fatal configuration problem, reported before any
// traversal starts.
type RuleConfigError struct {
	Field  string
	Reason string
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("invalid rule configuration: %s: %s", e.Field, e.Reason)
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, &RuleConfigError{Field: path, Reason: err.Error()}
	}
	return cfg, nil
}

// LoadLocal searches for a tree-local config file in the given root.
// It supports .arkive.yml/.yaml and arkive.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".arkive.yml", ".arkive.yaml", "arkive.yml", "arkive.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "arkive", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Check selects which rule groups a run evaluates.
type Check uint8

const (
	CheckEmpty Check = 1 << iota
	CheckCharacters
	CheckLength
)

// DefaultChecks matches the historical default: character and length rules
// on, empty-directory detection off.
const DefaultChecks = CheckCharacters | CheckLength

// ParseChecks converts config-file check names into a Check set.
func ParseChecks(names []string) (Check, error) {
	var c Check
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "empty":
			c |= CheckEmpty
		case "characters":
			c |= CheckCharacters
		case "length":
			c |= CheckLength
		default:
			return 0, &RuleConfigError{Field: "checks", Reason: fmt.Sprintf("unknown check %q", n)}
		}
	}
	return c, nil
}

// String lists the active checks in a fixed order.
func (c Check) String() string {
	var parts []string
	if c&CheckEmpty != 0 {
		parts = append(parts, "empty directories")
	}
	if c&CheckCharacters != 0 {
		parts = append(parts, "invalid characters")
	}
	if c&CheckLength != 0 {
		parts = append(parts, "path length")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// RenamePattern is a compiled rename rule.
type RenamePattern struct {
	Match       *regexp.Regexp
	Replacement string
	NoAccent    bool
}

// Resolved is the configuration object consumed by the rule engine. All
// precedence (CLI > local file > global file > profile defaults) has been
// applied and all patterns compiled.
type Resolved struct {
	Root              string
	Profile           Profile
	Checks            Check
	InvalidCharacters *regexp.Regexp
	Replacement       string
	ForbiddenNames    []string
	CaseSensitive     bool
	MaxPathLength     int
	MaxNameLength     int
	BasePathLength    int // length of the copy destination prefix, counted into the path budget
	Exclude           []string
	Rename            []RenamePattern
	NoColor           bool
	Output            string
}

// ChecksSelection mirrors the CLI's tri-state check toggles. Nil means the
// flag was not given.
type ChecksSelection struct {
	All        bool
	Empty      *bool
	Characters *bool
	Length     *bool
}

// Options carries raw configuration inputs into Resolve. Zero values mean
// "not set" and defer to file config or profile defaults.
type Options struct {
	Root              string
	ConfigPath        string
	Filesystem        string
	Destination       string
	MaxPathLength     int
	MaxNameLength     int
	InvalidCharacters string
	Replacement       string
	ForbiddenNames    []string
	Exclude           []string
	CaseSensitive     *bool
	Checks            ChecksSelection
	NoColor           bool
	Output            string
}

// Resolve merges CLI options, file config and the filesystem profile into a
// Resolved configuration. Any malformed input yields a RuleConfigError.
func Resolve(opts Options) (Resolved, error) {
	var local, global FileConfig
	if opts.ConfigPath != "" {
		c, err := LoadFile(opts.ConfigPath)
		if err != nil {
			return Resolved{}, err
		}
		local = c
	} else {
		if c, err := LoadLocal(opts.Root); err == nil {
			local = c
		}
		if c, err := LoadGlobal(); err == nil {
			global = c
		}
	}

	fsName := firstString(opts.Filesystem, local.Filesystem, global.Filesystem)
	profile, err := ProfileByName(fsName, opts.Root)
	if err != nil {
		return Resolved{}, err
	}

	res := Resolved{
		Root:           opts.Root,
		Profile:        profile,
		Replacement:    firstString(opts.Replacement, local.Replacement, global.Replacement),
		ForbiddenNames: profile.ForbiddenNames,
		CaseSensitive:  profile.CaseSensitive,
		MaxPathLength:  firstInt(opts.MaxPathLength, local.MaxPathLength, global.MaxPathLength),
		MaxNameLength:  firstInt(opts.MaxNameLength, local.MaxNameLength, global.MaxNameLength),
		Exclude:        append(append([]string{}, opts.Exclude...), local.Exclude...),
		NoColor:        opts.NoColor || boolValue(local.NoColor) || boolValue(global.NoColor),
		Output:         firstString(opts.Output, local.Output, global.Output),
	}
	if res.Replacement == "" {
		res.Replacement = "_"
	}
	if res.MaxPathLength == 0 {
		res.MaxPathLength = profile.MaxPathLength
	}
	if res.MaxNameLength == 0 {
		res.MaxNameLength = profile.MaxNameLength
	}
	if res.MaxPathLength <= 0 {
		return Resolved{}, &RuleConfigError{Field: "max_path_length", Reason: "must be positive"}
	}
	if res.MaxNameLength <= 0 {
		return Resolved{}, &RuleConfigError{Field: "max_name_length", Reason: "must be positive"}
	}

	res.ForbiddenNames = append(res.ForbiddenNames, local.ForbiddenNames...)
	res.ForbiddenNames = append(res.ForbiddenNames, global.ForbiddenNames...)
	res.ForbiddenNames = append(res.ForbiddenNames, opts.ForbiddenNames...)

	if opts.CaseSensitive != nil {
		res.CaseSensitive = *opts.CaseSensitive
	} else if local.CaseSensitive != nil {
		res.CaseSensitive = *local.CaseSensitive
	} else if global.CaseSensitive != nil {
		res.CaseSensitive = *global.CaseSensitive
	}

	extra := firstString(opts.InvalidCharacters, local.InvalidCharacters, global.InvalidCharacters)
	res.InvalidCharacters, err = compileCharacterClass(profile.CharacterClass, extra)
	if err != nil {
		return Resolved{}, err
	}

	res.Checks, err = resolveChecks(opts.Checks, local.Checks, global.Checks)
	if err != nil {
		return Resolved{}, err
	}

	if opts.Destination != "" {
		abs, err := filepath.Abs(opts.Destination)
		if err != nil {
			return Resolved{}, err
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return Resolved{}, &RuleConfigError{Field: "destination", Reason: "not an existing directory"}
		}
		res.BasePathLength = len(abs) + 1
	}

	for _, r := range append(append([]RenameRule{}, local.Rename...), global.Rename...) {
		pat := r.Pattern
		if r.NoCase {
			pat = "(?i)" + pat
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return Resolved{}, &RuleConfigError{Field: "rename", Reason: err.Error()}
		}
		res.Rename = append(res.Rename, RenamePattern{Match: re, Replacement: r.Replacement, NoAccent: r.NoAccent})
	}

	return res, nil
}

// EffectiveMaxPathLength returns the path-length budget after reserving room
// for the copy destination prefix.
func (r Resolved) EffectiveMaxPathLength() int {
	return r.MaxPathLength - r.BasePathLength
}

// resolveChecks applies the historical toggle semantics: --check-all wins;
// no toggles means defaults (or the config file's list); only-true toggles
// select exactly those; only-false toggles subtract from the defaults.
func resolveChecks(sel ChecksSelection, localNames, globalNames []string) (Check, error) {
	if sel.All {
		return CheckEmpty | CheckCharacters | CheckLength, nil
	}

	if sel.Empty == nil && sel.Characters == nil && sel.Length == nil {
		if len(localNames) > 0 {
			return ParseChecks(localNames)
		}
		if len(globalNames) > 0 {
			return ParseChecks(globalNames)
		}
		return DefaultChecks, nil
	}

	anyTrue := boolValue(sel.Empty) || boolValue(sel.Characters) || boolValue(sel.Length)
	var c Check
	if anyTrue {
		if boolValue(sel.Empty) {
			c |= CheckEmpty
		}
		if boolValue(sel.Characters) {
			c |= CheckCharacters
		}
		if boolValue(sel.Length) {
			c |= CheckLength
		}
		return c, nil
	}

	// only deselections: start from all and subtract
	c = CheckEmpty | CheckCharacters | CheckLength
	if sel.Empty != nil && !*sel.Empty {
		c &^= CheckEmpty
	}
	if sel.Characters != nil && !*sel.Characters {
		c &^= CheckCharacters
	}
	if sel.Length != nil && !*sel.Length {
		c &^= CheckLength
	}
	return c, nil
}

func compileCharacterClass(base, extra string) (*regexp.Regexp, error) {
	extra = strings.ReplaceAll(extra, `\`, `\\`)
	extra = strings.ReplaceAll(extra, `-`, `\-`)
	extra = strings.ReplaceAll(extra, `]`, `\]`)
	re, err := regexp.Compile("[" + base + extra + "]")
	if err != nil {
		return nil, &RuleConfigError{Field: "invalid_characters", Reason: err.Error()}
	}
	return re, nil
}

func firstString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func firstInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func boolValue(b *bool) bool { return b != nil && *b }
