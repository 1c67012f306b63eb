package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arkive/arkive/internal/config"
)

func testResolved(root string) config.Resolved {
	return config.Resolved{
		Root:              root,
		Checks:            config.DefaultChecks,
		InvalidCharacters: regexp.MustCompile(`[<>:"/\\|?*]`),
		ForbiddenNames:    []string{"CON", "Thumbs.db"},
		MaxPathLength:     255,
		MaxNameLength:     255,
		Replacement:       "_",
	}
}

func TestCheck_CleanTree(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "fine.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Check(Config{Resolved: testResolved(dir)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 0 || len(res.Errors) != 0 {
		t.Fatalf("expected clean report, got %+v", res)
	}
	if res.EntriesChecked != 2 {
		t.Fatalf("expected 2 entries checked, got %d", res.EntriesChecked)
	}
}

func TestCheck_ForbiddenNameReportedOnce(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Thumbs.db"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Check(Config{Resolved: testResolved(dir)})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("expected exactly one violation, got %+v", res.Violations)
	}
	if res.Violations[0].Rule != "forbidden_names" {
		t.Fatalf("unexpected rule %q", res.Violations[0].Rule)
	}
}

func TestCheck_EmptyDirsOnlyWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "hollow"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := testResolved(dir)
	res, err := Check(Config{Resolved: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("empty check should be off by default, got %+v", res.Violations)
	}

	cfg.Checks |= config.CheckEmpty
	res, err = Check(Config{Resolved: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 1 || res.Violations[0].Rule != "empty_dir" {
		t.Fatalf("expected one empty_dir violation, got %+v", res.Violations)
	}
}

func TestCheck_ExcludeSkipsSubtree(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "tmp"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tmp", "bad:name.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testResolved(dir)
	cfg.Exclude = []string{"tmp"}
	res, err := Check(Config{Resolved: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("excluded subtree still reported: %+v", res.Violations)
	}
	if res.EntriesChecked != 0 {
		t.Fatalf("expected 0 entries checked, got %d", res.EntriesChecked)
	}
}

func TestCheck_ProgressCallback(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ticks := 0
	cfg := Config{Resolved: testResolved(dir), Progress: func() { ticks++ }}
	total, err := CountTargets(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Check(cfg); err != nil {
		t.Fatal(err)
	}
	if ticks != total || ticks != 3 {
		t.Fatalf("expected 3 progress ticks, got %d (total %d)", ticks, total)
	}
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		rel   string
		globs []string
		want  bool
	}{
		{"tmp/file.txt", []string{"tmp"}, true},        // ancestor dir
		{"a/b/c.log", []string{"*.log"}, true},         // base name
		{"a/b/c.log", []string{"**/*.log"}, true},      // full path
		{"keep/file.txt", []string{"tmp"}, false},
		{"node_modules", []string{"./node_modules"}, true},
		{"deep/node_modules/x", []string{"node_modules"}, true},
		{"file.txt", nil, false},
	}
	for _, c := range cases {
		if got := Excluded(c.rel, c.globs); got != c.want {
			t.Errorf("Excluded(%q, %v) = %v, want %v", c.rel, c.globs, got, c.want)
		}
	}
}
