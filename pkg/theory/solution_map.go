package theory

// solEntry is a solution-map slot: under the leaves of dep, lhs (the term
// owning the slot) equals rhs.
type solEntry struct {
	rhs *Term
	dep *Dependency
}

// SolutionMap is the backtrackable normalization map described in spec.md
// section 4.2: an array (here, a map) indexed by term id, each slot
// holding (rhs, dep) or empty, plus a trail-backed update log and a
// per-scope find cache.
//
// Invariants enforced by callers (Update does not run the occurs check;
// its callers do, per spec.md section 9): at most one entry per lhs id; the mapping is
// acyclic when followed through Find.
//
// This adapts the teacher's Substitution (core.go), which maps var id to
// term directly with no dependency or backtracking story -- here every
// binding additionally carries the Dependency that justifies it, and the
// whole map is trail-backed so PopScope can restore prior slots exactly
// the way a stack of duplicate writes would.
type SolutionMap struct {
	trail   *Trail
	entries map[int64]solEntry
	cache   map[int64]solEntry // per-scope find() memo; cleared on every mutation
}

// NewSolutionMap creates an empty solution map trailed through t.
func NewSolutionMap(t *Trail) *SolutionMap {
	return &SolutionMap{
		trail:   t,
		entries: make(map[int64]solEntry),
		cache:   make(map[int64]solEntry),
	}
}

// IsRoot reports whether e currently has no solution-map entry.
func (m *SolutionMap) IsRoot(e *Term) bool {
	_, ok := m.entries[e.ID]
	return !ok
}

// Update commits e -> (r, dep), recording the prior slot (if any) on the
// trail so a later PopScope restores it. occurs is run by the caller
// (solve_unit_eq in pipeline.go) before Update is invoked; Update itself
// only guards against the degenerate e == r case.
func (m *SolutionMap) Update(e, r *Term, dep *Dependency) {
	if e.ID == r.ID {
		return
	}
	prior, had := m.entries[e.ID]
	m.entries[e.ID] = solEntry{rhs: r, dep: dep}
	m.invalidateCache()
	id := e.ID
	if had {
		m.trail.Record(func() {
			m.entries[id] = prior
			m.invalidateCache()
		})
	} else {
		m.trail.Record(func() {
			delete(m.entries, id)
			m.invalidateCache()
		})
	}
}

// invalidateCache drops the find() memo. Called on every Update, matching
// spec.md's description of the cache as "a hot, frequently rebuilt memo"
// rather than something that needs fine-grained invalidation.
func (m *SolutionMap) invalidateCache() {
	if len(m.cache) != 0 {
		m.cache = make(map[int64]solEntry)
	}
}

// Find follows e's chain to its fixed point, joining dependencies along
// the way, and returns the normal form plus the accumulated justification.
// A per-scope cache (cleared on every Update and on every PopScope via
// ClearCache) short-circuits repeated finds within one pipeline pass.
func (m *SolutionMap) Find(e *Term) (*Term, *Dependency) {
	if hit, ok := m.cache[e.ID]; ok {
		return hit.rhs, hit.dep
	}
	cur := e
	var dep *Dependency
	visited := map[int64]bool{}
	for {
		entry, ok := m.entries[cur.ID]
		if !ok {
			break
		}
		if visited[cur.ID] {
			// A cycle slipped past the occurs check; fail closed rather
			// than loop forever. This should never happen if Update's
			// callers honor the precondition in spec.md section 9.
			break
		}
		visited[cur.ID] = true
		dep = Join(dep, entry.dep)
		cur = entry.rhs
	}
	m.cache[e.ID] = solEntry{rhs: cur, dep: dep}
	return cur, dep
}

// ClearCache drops the find() memo without touching any entry. The engine
// calls this on every PopScope (spec.md section 5: "at every pop the
// solution map's query cache is cleared"), even though Update already
// clears it on every mutation -- a pop can restore entries via trail
// replay without going through Update, so the cache must be dropped
// there too.
func (m *SolutionMap) ClearCache() {
	m.cache = make(map[int64]solEntry)
}

// Size returns the number of active entries, used by statistics and
// tests.
func (m *SolutionMap) Size() int { return len(m.entries) }
