package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkive/arkive/internal/types"
	"github.com/arkive/arkive/internal/walker"
)

// DestinationConflictError reports a destination path occupied by a node of
// an incompatible kind. Conflicts are per-entry and never abort the run.
type DestinationConflictError struct {
	Path   string     // destination path
	Need   types.Kind // what the mirror wanted to create
	Found  types.Kind // what occupies the path
	Filled bool       // the occupying file is non-empty
}

func (e *DestinationConflictError) Error() string {
	detail := ""
	if e.Found == types.KindFile && e.Filled {
		detail = " (non-empty file)"
	}
	return fmt.Sprintf("%s: need %s, found %s%s", e.Path, e.Need, e.Found, detail)
}

// Options controls a mirror run.
type Options struct {
	Progress func()
}

// Result summarizes a mirror run.
type Result struct {
	DirsCreated  int
	FilesCreated int
	Skipped      int // targets that already existed with the right kind
	Conflicts    []error
	Errors       []error // access errors from the source walk or creation failures
}

// Changed reports whether the run created anything.
func (r Result) Changed() bool { return r.DirsCreated+r.FilesCreated > 0 }

// Clean reports whether the run completed without conflicts or errors.
func (r Result) Clean() bool { return len(r.Conflicts) == 0 && len(r.Errors) == 0 }

// Mirror reproduces the directory hierarchy of src under dst, creating an
// empty placeholder file for every source file. Runs are idempotent:
// existing directories and existing files at file targets are left as-is
// and counted as skipped. Placeholder creation is atomic by construction
// since files are created empty.
func Mirror(src, dst string, opts Options) (Result, error) {
	var res Result

	entries, err := walker.Walk(src, walker.Options{})
	if err != nil {
		return res, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(absDst, 0o755); err != nil {
		return res, err
	}

	for _, e := range entries {
		if e.Err != nil {
			res.Errors = append(res.Errors, e.Err)
			continue
		}
		target := filepath.Join(absDst, filepath.FromSlash(e.Rel))
		switch e.Kind {
		case types.KindDir:
			mirrorDir(target, &res)
		default:
			mirrorFile(target, &res)
		}
		if opts.Progress != nil {
			opts.Progress()
		}
	}
	return res, nil
}

func mirrorDir(target string, res *Result) {
	info, err := os.Lstat(target)
	switch {
	case err == nil && info.IsDir():
		res.Skipped++
	case err == nil:
		res.Conflicts = append(res.Conflicts, &DestinationConflictError{
			Path:   target,
			Need:   types.KindDir,
			Found:  types.KindFile,
			Filled: info.Size() > 0,
		})
	default:
		if err := os.Mkdir(target, 0o755); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("create %s: %w", target, err))
			return
		}
		res.DirsCreated++
	}
}

func mirrorFile(target string, res *Result) {
	info, err := os.Lstat(target)
	switch {
	case err == nil && info.IsDir():
		res.Conflicts = append(res.Conflicts, &DestinationConflictError{
			Path:  target,
			Need:  types.KindFile,
			Found: types.KindDir,
		})
	case err == nil:
		res.Skipped++ // placeholder (or any file) already present
	default:
		f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("create %s: %w", target, err))
			return
		}
		_ = f.Close()
		res.FilesCreated++
	}
}
