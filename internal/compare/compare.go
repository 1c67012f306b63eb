package compare

import (
	"sort"

	"github.com/arkive/arkive/internal/types"
	"github.com/arkive/arkive/internal/walker"
	xxhash "github.com/cespare/xxhash/v2"
)

// Diff is the structural difference between two trees. Paths are relative
// and slash-separated.
type Diff struct {
	LeftOnly     []string
	RightOnly    []string
	KindMismatch []string
	LeftDigest   uint64
	RightDigest  uint64
}

// Equal reports whether both trees have the same structure.
func (d Diff) Equal() bool {
	return len(d.LeftOnly) == 0 && len(d.RightOnly) == 0 && len(d.KindMismatch) == 0
}

// Trees compares the structure of two directory trees. Identical trees are
// recognized cheaply by comparing digests over the sorted entry list; only
// differing trees pay for the per-path diff.
func Trees(left, right string) (Diff, error) {
	var d Diff

	le, err := walker.Walk(left, walker.Options{})
	if err != nil {
		return d, err
	}
	re, err := walker.Walk(right, walker.Options{})
	if err != nil {
		return d, err
	}

	d.LeftDigest = digest(le)
	d.RightDigest = digest(re)
	if d.LeftDigest == d.RightDigest {
		return d, nil
	}

	lk := kinds(le)
	rk := kinds(re)
	for rel, kind := range lk {
		other, ok := rk[rel]
		switch {
		case !ok:
			d.LeftOnly = append(d.LeftOnly, rel)
		case other != kind:
			d.KindMismatch = append(d.KindMismatch, rel)
		}
	}
	for rel := range rk {
		if _, ok := lk[rel]; !ok {
			d.RightOnly = append(d.RightOnly, rel)
		}
	}
	sort.Strings(d.LeftOnly)
	sort.Strings(d.RightOnly)
	sort.Strings(d.KindMismatch)
	return d, nil
}

func kinds(entries []types.PathEntry) map[string]types.Kind {
	m := make(map[string]types.Kind, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		m[e.Rel] = e.Kind
	}
	return m
}

// digest hashes the ordered (rel, kind) sequence of a tree. Walk order is
// deterministic, so equal trees always produce equal digests.
func digest(entries []types.PathEntry) uint64 {
	h := xxhash.New()
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		_, _ = h.WriteString(e.Rel)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(string(e.Kind))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}
