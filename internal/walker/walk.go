package walker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/arkive/arkive/internal/types"
)

// AccessError reports a directory that could not be read during traversal.
// The walk records it as a terminal entry for that subtree and continues
// with siblings.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Options controls traversal behavior.
type Options struct {
	// FollowSymlinks descends into symlinked directories. Targets already
	// visited on the current directory chain are skipped so link cycles
	// terminate.
	FollowSymlinks bool
}

// Walk enumerates every file and directory strictly below root in
// lexicographic pre-order by relative path. The order is stable across
// repeated runs on an unchanged tree. Directories that cannot be read
// appear as entries with Err set; the rest of the tree is still visited.
func Walk(root string, opts Options) ([]types.PathEntry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	w := &walker{opts: opts, chain: map[string]bool{}}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		w.chain[real] = true
	}
	if _, err := w.descend(abs, "", 0); err != nil {
		return nil, &AccessError{Path: abs, Err: err}
	}
	return w.entries, nil
}

type walker struct {
	opts    Options
	entries []types.PathEntry
	chain   map[string]bool // resolved dirs on the current descent path
}

// descend reads dir and emits entries for its children, recursing into
// subdirectories. It reports whether the directory is empty, i.e. contains
// nothing or only empty directories, and returns the read error when the
// directory itself is unreadable.
func (w *walker) descend(dir, rel string, depth int) (bool, error) {
	children, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return false, err
	}

	empty := true
	for _, c := range children {
		childAbs := filepath.Join(dir, c.Name())
		childRel := path.Join(rel, c.Name())

		if c.Type()&os.ModeSymlink != 0 {
			empty = false
			if !w.followable(childAbs) {
				w.emit(types.PathEntry{Path: childAbs, Rel: childRel, Kind: types.KindFile, Depth: depth + 1})
				continue
			}
		}

		if isDir(childAbs, c) {
			idx := len(w.entries)
			w.emit(types.PathEntry{Path: childAbs, Rel: childRel, Kind: types.KindDir, Depth: depth + 1})

			real, rerr := filepath.EvalSymlinks(childAbs)
			if rerr == nil {
				w.chain[real] = true
			}
			childEmpty, cerr := w.descend(childAbs, childRel, depth+1)
			if rerr == nil {
				delete(w.chain, real)
			}

			if cerr != nil {
				w.entries[idx].Err = &AccessError{Path: childAbs, Err: cerr}
				empty = false
				continue
			}
			w.entries[idx].Empty = childEmpty
			if !childEmpty {
				empty = false
			}
			continue
		}

		w.emit(types.PathEntry{Path: childAbs, Rel: childRel, Kind: types.KindFile, Depth: depth + 1})
		empty = false
	}
	return empty, nil
}

// followable reports whether a symlink should be descended into: only when
// following is enabled and its target is not already on the current chain.
func (w *walker) followable(link string) bool {
	if !w.opts.FollowSymlinks {
		return false
	}
	real, err := filepath.EvalSymlinks(link)
	if err != nil {
		return false
	}
	return !w.chain[real]
}

func (w *walker) emit(e types.PathEntry) {
	w.entries = append(w.entries, e)
}

func isDir(abs string, d os.DirEntry) bool {
	if d.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(abs)
		return err == nil && info.IsDir()
	}
	return d.IsDir()
}
