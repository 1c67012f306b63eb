package core

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/arkive/arkive/internal/config"
)

func TestCheckAndMirrorRoundTrip(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "bad:name.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Check(Config{Resolved: config.Resolved{
		Root:              src,
		Checks:            config.CheckCharacters,
		InvalidCharacters: regexp.MustCompile(`[:]`),
		MaxPathLength:     255,
		MaxNameLength:     255,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %+v", res.Violations)
	}

	var buf bytes.Buffer
	if err := MarshalViolations(&buf, res.Violations); err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalViolations(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0].Rule != res.Violations[0].Rule {
		t.Fatalf("round trip lost data: %+v", back)
	}

	mres, err := Mirror(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if mres.DirsCreated != 1 || mres.FilesCreated != 1 {
		t.Fatalf("unexpected mirror result %+v", mres)
	}
}

func TestRuleIDs(t *testing.T) {
	ids := RuleIDs()
	if len(ids) == 0 {
		t.Fatal("expected rule IDs")
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate rule ID %q", id)
		}
		seen[id] = true
	}
	if !seen["invalid_characters"] {
		t.Fatal("missing invalid_characters")
	}
}
