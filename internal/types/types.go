package types

// Kind distinguishes file-system node types encountered during traversal.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// PathEntry describes one file-system node visited by the tree walker.
// Entries are immutable once produced; Err is non-nil for access-error
// entries, in which case the subtree below Path was not traversed.
type PathEntry struct {
	Path  string // absolute path
	Rel   string // slash-separated path relative to the traversal root
	Kind  Kind
	Depth int
	Empty bool  // directories only: contains nothing, or only empty directories
	Err   error // access error for this entry, if any
}

// Name returns the final path element of the entry.
func (e PathEntry) Name() string {
	if i := lastSlash(e.Rel); i >= 0 {
		return e.Rel[i+1:]
	}
	return e.Rel
}

// Stem returns the entry name without its extension.
func (e PathEntry) Stem() string {
	name := e.Name()
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// Violation records a failed rule evaluation for a path.
type Violation struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
