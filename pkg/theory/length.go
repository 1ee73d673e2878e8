package theory

// LengthCoherence implements add_length_to_eqc and check_int_string
// (spec.md section 4.7): it ensures every tracked sequence term has a
// companion length term, and that itos/stoi terms have a length term on
// the appropriate side so the axiom module can bind digit content to
// numeric value.
type LengthCoherence struct {
	terms        *TermManager
	arith        ArithTheory
	hasLength    map[int64]bool
	trackedIS    map[int64]bool // itos/stoi calls already processed
	boundSplit   map[int64]bool // sequence vars already decomposed by a length bound
	trail        *Trail
}

// NewLengthCoherence creates a length-coherence tracker.
func NewLengthCoherence(terms *TermManager, arith ArithTheory, trail *Trail) *LengthCoherence {
	return &LengthCoherence{
		terms:      terms,
		arith:      arith,
		hasLength:  make(map[int64]bool),
		trackedIS:  make(map[int64]bool),
		boundSplit: make(map[int64]bool),
		trail:      trail,
	}
}

// EnsureLength registers e in the has_length set if it is not there
// already, returning whether this call newly added it (the caller uses
// this to decide whether a fresh length axiom needs to be enqueued).
func (l *LengthCoherence) EnsureLength(e *Term) bool {
	if l.hasLength[e.ID] {
		return false
	}
	l.hasLength[e.ID] = true
	id := e.ID
	l.trail.Record(func() { delete(l.hasLength, id) })
	return true
}

// HasLength reports whether e is already tracked.
func (l *LengthCoherence) HasLength(e *Term) bool { return l.hasLength[e.ID] }

// MarkIntString records that call (an itos or stoi application) has had
// its length-coherence obligation discharged, so check_int_string does
// not re-fire on it every round.
func (l *LengthCoherence) MarkIntString(call *Term) bool {
	if l.trackedIS[call.ID] {
		return false
	}
	l.trackedIS[call.ID] = true
	id := call.ID
	l.trail.Record(func() { delete(l.trackedIS, id) })
	return true
}

// MarkBoundDecomposed records that t has already been split against a
// known length lower bound (the rule 12 head/tail decomposition), so
// checkLengthCoherence does not re-split it on every later round.
func (l *LengthCoherence) MarkBoundDecomposed(t *Term) bool {
	if l.boundSplit[t.ID] {
		return false
	}
	l.boundSplit[t.ID] = true
	id := t.ID
	l.trail.Record(func() { delete(l.boundSplit, id) })
	return true
}
