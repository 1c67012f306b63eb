package fix

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arkive/arkive/internal/config"
)

func fixResolved(root string) config.Resolved {
	return config.Resolved{
		Root:              root,
		Checks:            config.CheckCharacters,
		InvalidCharacters: regexp.MustCompile(`[<>:"|?*]`),
		Replacement:       "_",
		MaxPathLength:     255,
		MaxNameLength:     255,
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestApply_ReplacesInvalidCharacters(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "draft: v2.txt"))

	res, err := Apply(fixResolved(dir), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected 1 change, got %+v", res.Changes)
	}
	c := res.Changes[0]
	if c.Rule != "invalid_characters" {
		t.Fatalf("unexpected rule %q", c.Rule)
	}
	if filepath.Base(c.NewPath) != "draft_ v2.txt" {
		t.Fatalf("unexpected new name %q", filepath.Base(c.NewPath))
	}
	if _, err := os.Stat(c.NewPath); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(c.Path); !os.IsNotExist(err) {
		t.Fatalf("old path still present: %v", err)
	}
}

func TestApply_ExtensionLeftAlone(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clean.t?t"))

	res, err := Apply(fixResolved(dir), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 0 {
		t.Fatalf("extension must not be rewritten, got %+v", res.Changes)
	}
}

func TestApply_DeepestFirst(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "bad:dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "bad:dir", "bad:file.txt"))

	res, err := Apply(fixResolved(dir), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %+v", res.Changes)
	}
	// the file inside is renamed before its parent directory
	if filepath.Base(res.Changes[0].Path) != "bad:file.txt" {
		t.Fatalf("expected deepest entry first, got %+v", res.Changes)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad_dir", "bad_file.txt")); err != nil {
		t.Fatalf("final tree wrong: %v", err)
	}
}

func TestApply_CollisionIncrement(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a:b.txt"))
	touch(t, filepath.Join(dir, "a_b.txt"))

	res, err := Apply(fixResolved(dir), Options{Collision: CollisionIncrement})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected 1 change, got %+v", res.Changes)
	}
	if filepath.Base(res.Changes[0].NewPath) != "a_b(1).txt" {
		t.Fatalf("unexpected increment target %q", res.Changes[0].NewPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "a_b(1).txt")); err != nil {
		t.Fatal(err)
	}
}

func TestApply_CollisionSkip(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a:b.txt"))
	touch(t, filepath.Join(dir, "a_b.txt"))

	res, err := Apply(fixResolved(dir), Options{Collision: CollisionSkip})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 0 {
		t.Fatalf("skip policy must not rename, got %+v", res.Changes)
	}
	if _, err := os.Stat(filepath.Join(dir, "a:b.txt")); err != nil {
		t.Fatalf("original should be untouched: %v", err)
	}
}

func TestApply_DryRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "bad?.txt"))

	res, err := Apply(fixResolved(dir), Options{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("dry run should still plan changes, got %+v", res.Changes)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad?.txt")); err != nil {
		t.Fatalf("dry run touched the tree: %v", err)
	}
}

func TestApply_RemovesEmptyDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "outer", "inner"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := fixResolved(dir)
	cfg.Checks |= config.CheckEmpty
	res, err := Apply(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.RemovedDirs) != 2 {
		t.Fatalf("expected both empty dirs removed, got %v", res.RemovedDirs)
	}
	if _, err := os.Stat(filepath.Join(dir, "outer")); !os.IsNotExist(err) {
		t.Fatal("outer dir should be gone")
	}
}

func TestApply_RenamePatternsWithAccents(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "résumé draft.txt")) // résumé

	cfg := fixResolved(dir)
	cfg.Rename = []config.RenamePattern{{
		Match:       regexp.MustCompile(`resume draft`),
		Replacement: "resume",
		NoAccent:    true,
	}}
	res, err := Apply(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 {
		t.Fatalf("expected 1 change, got %+v", res.Changes)
	}
	if filepath.Base(res.Changes[0].NewPath) != "resume.txt" {
		t.Fatalf("unexpected result %q", res.Changes[0].NewPath)
	}
}

func TestApply_UnfixedLengthViolations(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "name-that-cannot-be-shortened.txt"))

	cfg := fixResolved(dir)
	cfg.Checks |= config.CheckLength
	cfg.MaxNameLength = 10
	res, err := Apply(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Unfixed) != 1 || res.Unfixed[0].Rule != "max_name_length" {
		t.Fatalf("expected one unfixed length violation, got %+v", res.Unfixed)
	}
	if res.Clean() {
		t.Fatal("result with unfixed violations is not clean")
	}
}

func TestParseCollision(t *testing.T) {
	if _, err := ParseCollision("increment"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseCollision("SKIP"); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseCollision("overwrite"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestStripAccents(t *testing.T) {
	if got := stripAccents("café"); got != "cafe" {
		t.Fatalf("stripAccents = %q", got)
	}
	if got := stripAccents("plain"); got != "plain" {
		t.Fatalf("stripAccents = %q", got)
	}
}
