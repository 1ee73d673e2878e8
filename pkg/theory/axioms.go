package theory

// AxiomModule emits the defining clauses for each sequence operator
// (spec.md section 4.6's component table, 15% of the reference budget).
// Per spec.md section 1, the axiom *shapes* are an external concern the
// core merely calls by name; this module owns exactly the calling
// convention -- which family, with which arguments, under which
// dependency -- and forwards the result to the engine's AxiomSink.
//
// Because this engine's equation store is the mechanism by which a
// defining equality actually participates in solving (there is no
// separate ground boolean CNF layer here), most Emit* methods do two
// things: record the instantiation with the sink (for statistics and
// logging, and so a production AxiomSink could still materialize real
// clauses), and enqueue the equality itself as a pending equation so the
// cascade picks it up on its next pass.
type AxiomModule struct {
	terms  *TermManager
	sk     *SkolemModule
	eqs    *EquationStore
	sink   AxiomSink
	stats  *Stats
}

// NewAxiomModule creates an axiom module wired to the given collaborators.
func NewAxiomModule(terms *TermManager, sk *SkolemModule, eqs *EquationStore, sink AxiomSink) *AxiomModule {
	return &AxiomModule{terms: terms, sk: sk, eqs: eqs, sink: sink, stats: NewStats()}
}

func (a *AxiomModule) emit(family string, dep *Dependency) {
	a.stats.AddAxiom++
	if a.sink != nil {
		_ = a.sink.Emit(family, nil, dep)
	}
}

// defEq enqueues lhs = rhs as a single-term equation under dep.
func (a *AxiomModule) defEq(lhs, rhs *Term, dep *Dependency) {
	a.eqs.PushEquation([]*Term{lhs}, []*Term{rhs}, dep)
}

// Length emits |x ++ y| = |x| + |y|, |epsilon| = 0, |unit(c)| = 1.
func (a *AxiomModule) Length(s *Term, dep *Dependency) {
	a.emit("length", dep)
	lenTerm := a.terms.App(OpLength, s)
	switch s.Op {
	case OpEmpty:
		a.defEq(lenTerm, a.terms.IntLit(0), dep)
	case OpUnit:
		a.defEq(lenTerm, a.terms.IntLit(1), dep)
	case OpConcat:
		parts := make([]*Term, len(s.Args))
		for i, c := range s.Args {
			parts[i] = a.terms.App(OpLength, c)
		}
		a.defEq(lenTerm, a.terms.App(OpIntAdd, parts...), dep)
	}
}

// IndexOf emits the defining decomposition for indexof(s, t, start):
// either no match (result -1) or s = indexof_left(s,t) ++ t ++
// indexof_right(s,t) with the result equal to |indexof_left(s,t)|.
func (a *AxiomModule) IndexOf(call *Term, dep *Dependency) {
	a.emit("indexof", dep)
	s, t := call.Args[0], call.Args[1]
	left := a.sk.IndexOfLeft(s, t)
	right := a.sk.IndexOfRight(s, t)
	a.defEq(s, a.terms.Concat(left, t, right), dep)
	a.defEq(call, a.terms.App(OpLength, left), dep)
}

// Replace emits the defining decomposition for replace(s, t, u): s with
// the first occurrence of t replaced by u, reusing the indexof Skolem
// pair per the replace supplement in SPEC_FULL.md.
func (a *AxiomModule) Replace(call *Term, dep *Dependency) {
	a.emit("replace", dep)
	s, t, u := call.Args[0], call.Args[1], call.Args[2]
	left := a.sk.IndexOfLeft(s, t)
	right := a.sk.IndexOfRight(s, t)
	a.defEq(s, a.terms.Concat(left, t, right), dep)
	a.defEq(call, a.terms.Concat(left, u, right), dep)
}

// Extract emits the decomposition for substr(s, i, l):
// s = pre(s, i) ++ substr(s, i, l) ++ tail(s, i+l-1). The boundary case
// (out-of-range index or non-positive length yielding epsilon) is not
// emitted here.
func (a *AxiomModule) Extract(call *Term, dep *Dependency) {
	a.emit("extract", dep)
	s, i, l := call.Args[0], call.Args[1], call.Args[2]
	pre := a.sk.Pre(s, i)
	tail := a.sk.Tail(s, a.terms.App(OpIntAdd, i, l, a.terms.IntLit(-1)))
	a.defEq(s, a.terms.Concat(pre, call, tail), dep)
}

// At emits the defining equation for at(s, i): a length-1 (or, out of
// range, empty) slice, expressed through the same pre/tail decomposition
// as Extract with l = 1.
func (a *AxiomModule) At(call *Term, dep *Dependency) {
	a.emit("at", dep)
	s, i := call.Args[0], call.Args[1]
	pre := a.sk.Pre(s, i)
	tail := a.sk.Tail(s, i)
	a.defEq(s, a.terms.Concat(pre, call, tail), dep)
}

// Nth emits ensure_nth: s = pre(s,i) ++ nth(s,i) ++ tail(s,i), the
// decomposition propagate_step relies on (spec.md section 4.6). nth(s,i)
// is itself sequence-sorted in this engine's term model (a length-1, or
// out-of-range length-0, slice), so no separate unit(...) wrapper is
// needed around it.
func (a *AxiomModule) Nth(s, i *Term, dep *Dependency) {
	a.emit("nth", dep)
	nth := a.terms.App(OpNth, s, i)
	pre := a.sk.Pre(s, i)
	tail := a.sk.Tail(s, i)
	a.defEq(s, a.terms.Concat(pre, nth, tail), dep)
}

// ItoS records an itos(i) instantiation with the sink and the statistics.
// No equation is enqueued: neither the i < 0 <=> itos(i) = epsilon case
// nor the digit-sequence case is asserted here.
func (a *AxiomModule) ItoS(call *Term, dep *Dependency) {
	a.emit("itos", dep)
	_ = call
	_ = dep
}

// StoI records a stoi(s) instantiation with the sink and the statistics.
// No equation is enqueued: neither the stoi(s) = -1 case for a non-digit
// s nor the base-10 evaluation case is asserted here.
func (a *AxiomModule) StoI(call *Term, dep *Dependency) {
	a.emit("stoi", dep)
	_ = call
	_ = dep
}

// Lt records an lt instantiation with the sink and the statistics. No
// transitivity instance is enqueued, and no rule of the cascade in
// pipeline.go calls it.
func (a *AxiomModule) Lt(x, y *Term, dep *Dependency) {
	a.emit("lt", dep)
	_ = x
	_ = y
	_ = dep
}

// Le is Lt's non-strict counterpart.
func (a *AxiomModule) Le(x, y *Term, dep *Dependency) {
	a.emit("le", dep)
	_ = x
	_ = y
	_ = dep
}

// Unit emits unit(a) = unit(b) => a = b.
func (a *AxiomModule) Unit(x, y *Term, dep *Dependency) {
	a.emit("unit", dep)
	a.defEq(x, y, dep)
}

// Prefix emits the defining decomposition for prefix(t, s): t is a
// prefix of s iff s = t ++ prefix_inv(t, s).
func (a *AxiomModule) Prefix(call *Term, dep *Dependency) {
	a.emit("prefix", dep)
	t, s := call.Args[0], call.Args[1]
	a.defEq(s, a.terms.Concat(t, a.sk.PrefixInv(t, s)), dep)
}

// Suffix emits the defining decomposition for suffix(t, s): t is a
// suffix of s iff s = suffix_inv(t, s) ++ t.
func (a *AxiomModule) Suffix(call *Term, dep *Dependency) {
	a.emit("suffix", dep)
	t, s := call.Args[0], call.Args[1]
	a.defEq(s, a.terms.Concat(a.sk.SuffixInv(t, s), t), dep)
}

// NotContainsUnroll emits the disjunctive unrolling step for a
// not-contains constraint whose length-gt literal is false:
// not contains(a, b) and |a| >= |b| => a = epsilon or
// (not prefix(b, a) and not contains(tail(a, 0), b)).
func (a *AxiomModule) NotContainsUnroll(nc *NotContains, dep *Dependency) *Term {
	a.emit("not_contains", dep)
	tail := a.sk.Tail(nc.Haystack, a.terms.IntLit(0))
	return tail
}
