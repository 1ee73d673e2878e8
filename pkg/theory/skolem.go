package theory

import "fmt"

// SkolemKind names one of the Skolem function families the core
// constructs and recognizes (spec.md section 4.5). Each kind pins down the
// arity and result sort the axiom module relies on when it emits that
// family's defining clauses; the clause shapes themselves live in
// axioms.go, kept separate because the axiom module is, per spec.md
// section 1, an external collaborator the core calls by name.
//
// Skolem predicates about automata (Accept, Step) are not safe to copy
// across SMT contexts: they close over the automaton instantiated for a
// specific regex term at creation time, so SkolemKind values for those two
// families additionally carry the automaton table entry they were minted
// against via Term.Args (see regex.go).
type SkolemKind struct {
	Name   string
	Arity  int
	Result Sort
}

// ResultSort returns the sort the axiom module assigns to an application
// of this Skolem kind.
func (k *SkolemKind) ResultSort() Sort { return k.Result }

var (
	// SkTail is tail(s, i): suffix of s starting at position i+1.
	SkTail = &SkolemKind{Name: "tail", Arity: 2, Result: SortSeq}
	// SkPre is pre(s, i): prefix of s of length i.
	SkPre = &SkolemKind{Name: "pre", Arity: 2, Result: SortSeq}
	// SkPost is post(s, i): suffix of s starting at position i.
	SkPost = &SkolemKind{Name: "post", Arity: 2, Result: SortSeq}
	// SkIndexOfLeft is indexof_left(s, t): prefix of s before the first
	// match of t.
	SkIndexOfLeft = &SkolemKind{Name: "indexof_left", Arity: 2, Result: SortSeq}
	// SkIndexOfRight is indexof_right(s, t): suffix of s after the first
	// match of t.
	SkIndexOfRight = &SkolemKind{Name: "indexof_right", Arity: 2, Result: SortSeq}
	// SkPrefixInv is prefix_inv(a, b): the continuation that makes a a
	// prefix of b.
	SkPrefixInv = &SkolemKind{Name: "prefix_inv", Arity: 2, Result: SortSeq}
	// SkSuffixInv is suffix_inv(a, b): the prolongation that makes a a
	// suffix of b.
	SkSuffixInv = &SkolemKind{Name: "suffix_inv", Arity: 2, Result: SortSeq}
	// SkFirst is seq_first(s): the first element of a non-empty s,
	// represented as a length-1 sequence.
	SkFirst = &SkolemKind{Name: "seq_first", Arity: 1, Result: SortSeq}
	// SkDigit2Int is digit2int(c): the numeric value of a decimal digit
	// unit.
	SkDigit2Int = &SkolemKind{Name: "digit2int", Arity: 1, Result: SortInt}
	// SkAccept is accept(s, i, R, q): s is accepted by the automaton for R
	// from state q, starting at position i.
	SkAccept = &SkolemKind{Name: "accept", Arity: 4, Result: SortBool}
	// SkStep is step(s, i, R, q, q', t): one automaton transition from q to
	// q' guarded by predicate t.
	SkStep = &SkolemKind{Name: "step", Arity: 6, Result: SortBool}
	// SkMaxUnfolding is max_unfolding(d): the budget literal at unfolding
	// depth d.
	SkMaxUnfolding = &SkolemKind{Name: "max_unfolding", Arity: 1, Result: SortBool}
	// SkLengthLimit is length_limit(s, k): the budget literal bounding
	// |s| <= k.
	SkLengthLimit = &SkolemKind{Name: "length_limit", Arity: 2, Result: SortBool}
)

// SkolemModule constructs and recognizes Skolem applications. It is kept
// as a thin wrapper over TermManager.Skol so that recognition (IsTail,
// Args, ...) has one place to live, matching spec.md's description of a
// "Skolem index" that answers inverse queries.
type SkolemModule struct {
	terms *TermManager
}

// NewSkolemModule creates a Skolem module backed by the given term
// manager.
func NewSkolemModule(terms *TermManager) *SkolemModule {
	return &SkolemModule{terms: terms}
}

// Tail returns tail(s, i).
func (s *SkolemModule) Tail(seq, i *Term) *Term { return s.terms.Skol(SkTail, seq, i) }

// Pre returns pre(s, i).
func (s *SkolemModule) Pre(seq, i *Term) *Term { return s.terms.Skol(SkPre, seq, i) }

// Post returns post(s, i).
func (s *SkolemModule) Post(seq, i *Term) *Term { return s.terms.Skol(SkPost, seq, i) }

// IndexOfLeft returns indexof_left(s, t).
func (s *SkolemModule) IndexOfLeft(seq, needle *Term) *Term {
	return s.terms.Skol(SkIndexOfLeft, seq, needle)
}

// IndexOfRight returns indexof_right(s, t).
func (s *SkolemModule) IndexOfRight(seq, needle *Term) *Term {
	return s.terms.Skol(SkIndexOfRight, seq, needle)
}

// PrefixInv returns prefix_inv(a, b).
func (s *SkolemModule) PrefixInv(a, b *Term) *Term { return s.terms.Skol(SkPrefixInv, a, b) }

// SuffixInv returns suffix_inv(a, b).
func (s *SkolemModule) SuffixInv(a, b *Term) *Term { return s.terms.Skol(SkSuffixInv, a, b) }

// First returns seq_first(s).
func (s *SkolemModule) First(seq *Term) *Term { return s.terms.Skol(SkFirst, seq) }

// Digit2Int returns digit2int(c).
func (s *SkolemModule) Digit2Int(c *Term) *Term { return s.terms.Skol(SkDigit2Int, c) }

// Accept returns accept(s, i, R, q). q is encoded as an integer literal
// state id; R is the regex term.
func (s *SkolemModule) Accept(seq, i, regex *Term, state int) *Term {
	return s.terms.Skol(SkAccept, seq, i, regex, s.terms.IntLit(int64(state)))
}

// Step returns step(s, i, R, q, q', t).
func (s *SkolemModule) Step(seq, i, regex *Term, q, qp int, guard *Term) *Term {
	return s.terms.Skol(SkStep, seq, i, regex, s.terms.IntLit(int64(q)), s.terms.IntLit(int64(qp)), guard)
}

// MaxUnfolding returns max_unfolding(d).
func (s *SkolemModule) MaxUnfolding(depth int) *Term {
	return s.terms.Skol(SkMaxUnfolding, s.terms.IntLit(int64(depth)))
}

// LengthLimit returns length_limit(s, k).
func (s *SkolemModule) LengthLimit(seq *Term, k int64) *Term {
	return s.terms.Skol(SkLengthLimit, seq, s.terms.IntLit(k))
}

// IsSkolem reports whether t is an application of kind, returning its
// arguments if so.
func IsSkolem(t *Term, kind *SkolemKind) ([]*Term, bool) {
	if t.Op == OpSkolem && t.Skolem == kind {
		return t.Args, true
	}
	return nil, false
}

// Describe renders a one-line description of a Skolem application for log
// fields and error messages.
func Describe(t *Term) string {
	if t.Op != OpSkolem {
		return t.String()
	}
	return fmt.Sprintf("%s/%d", t.Skolem.Name, t.Skolem.Arity)
}
