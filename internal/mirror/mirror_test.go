package mirror

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMirror_ReplicatesStructure(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("more"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Mirror(src, dst, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.DirsCreated != 1 || res.FilesCreated != 2 {
		t.Fatalf("expected 1 dir and 2 files created, got %+v", res)
	}
	if !res.Clean() || !res.Changed() {
		t.Fatalf("expected clean changed run, got %+v", res)
	}

	// placeholders carry structure, never contents
	info, err := os.Stat(filepath.Join(dst, "sub", "b.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("placeholder should be empty, has %d bytes", info.Size())
	}
	if fi, err := os.Stat(filepath.Join(dst, "sub")); err != nil || !fi.IsDir() {
		t.Fatalf("expected mirrored directory: %v", err)
	}
}

func TestMirror_Idempotent(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Mirror(src, dst, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := Mirror(src, dst, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed() {
		t.Fatalf("second run should create nothing, got %+v", res)
	}
	if res.Skipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", res.Skipped)
	}
}

func TestMirror_DirTargetOccupiedByFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "other.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// destination already has a non-empty file where the directory must go
	if err := os.WriteFile(filepath.Join(dst, "sub"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Mirror(src, dst, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", res.Conflicts)
	}
	var conflict *DestinationConflictError
	if !errors.As(res.Conflicts[0], &conflict) {
		t.Fatalf("expected DestinationConflictError, got %T", res.Conflicts[0])
	}
	if !conflict.Filled {
		t.Fatal("expected conflict to flag the non-empty file")
	}
	// the rest of the run still happened
	if res.FilesCreated != 1 {
		t.Fatalf("expected sibling placeholder created, got %+v", res)
	}
}

func TestMirror_FileTargetOccupiedByDir(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "x"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dst, "x"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Mirror(src, dst, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Conflicts) != 1 || res.Clean() {
		t.Fatalf("expected a conflict, got %+v", res)
	}
}

func TestMirror_MissingSource(t *testing.T) {
	if _, err := Mirror(filepath.Join(t.TempDir(), "nope"), t.TempDir(), Options{}); err == nil {
		t.Fatal("expected error for missing source")
	}
}
