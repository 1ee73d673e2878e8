package theory

// exclKey canonically orders a pair by term id so (a, b) and (b, a) hash
// the same.
type exclKey struct{ Lo, Hi int64 }

func newExclKey(a, b *Term) exclKey {
	if a.ID <= b.ID {
		return exclKey{a.ID, b.ID}
	}
	return exclKey{b.ID, a.ID}
}

// ExclusionTable is the backtrackable set of term pairs known to be
// disequal after canonicalization (spec.md section 3 "Exclusion pair").
// check_extensionality (pipeline.go) consults it to avoid re-probing a
// pair the sequence rewriter has already refuted, and records a fresh
// entry whenever it refutes one itself.
type ExclusionTable struct {
	trail   *Trail
	entries map[exclKey]bool
}

// NewExclusionTable creates an empty, trailed exclusion table.
func NewExclusionTable(t *Trail) *ExclusionTable {
	return &ExclusionTable{trail: t, entries: make(map[exclKey]bool)}
}

// Add records a and b as known-disequal. A duplicate Add is a no-op and
// records no undo.
func (x *ExclusionTable) Add(a, b *Term) {
	k := newExclKey(a, b)
	if x.entries[k] {
		return
	}
	x.entries[k] = true
	x.trail.Record(func() { delete(x.entries, k) })
}

// Contains reports whether a and b are already recorded as excluded.
func (x *ExclusionTable) Contains(a, b *Term) bool {
	return x.entries[newExclKey(a, b)]
}

// Size returns the number of excluded pairs, used by statistics and
// tests.
func (x *ExclusionTable) Size() int { return len(x.entries) }
