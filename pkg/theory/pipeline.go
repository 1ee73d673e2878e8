package theory

import "context"

// This file implements the fifteen-rule final-check cascade from spec.md
// section 4.4. Every rule method has the same shape -- (progressed bool,
// conflict *Dependency, err error) -- so runCascadeOnce can try them in a
// fixed order and restart the whole cascade the moment any one of them
// changes the problem state. Rule order is itself the tie-break the
// solver relies on to avoid divergence (spec.md section 4.4), so it must
// never be reordered casually.

func (e *Engine) runCascadeOnce(ctx context.Context) (bool, *Dependency, error) {
	rules := []func() (bool, *Dependency, error){
		e.instantiateAxioms,
		e.simplifyAndSolveEqs,
		e.checkLts,
		e.solveNqs,
		e.checkContains,
		e.propagateAutomata,
		e.fixedLength,
		e.lenBasedSplit,
		e.checkIntString,
		e.reduceLengthEq,
		e.branchUnitVariable,
		e.branchBinaryVariable,
		e.branchVariable,
		e.checkLengthCoherence,
		e.checkExtensionality,
		e.branchNqs,
	}
	for _, rule := range rules {
		progressed, conflict, err := rule()
		if err != nil {
			return false, nil, err
		}
		if conflict != nil {
			return false, conflict, nil
		}
		if progressed {
			return true, nil, nil
		}
	}
	return false, nil, nil
}

// instantiateAxioms walks every atom reachable from a pending equation
// and, for each named operator application not yet expanded, calls the
// matching AxiomModule method once. This is the calling-convention glue
// spec.md section 1 assigns to the core: deciding *when* a named axiom
// family becomes relevant (the term appears somewhere live) and
// forwarding to the (external, by spec.md's own framing) axiom shapes.
// It runs before simplify_and_solve_eqs every round so a freshly
// relevant term's defining equation is already in the store by the time
// simplification looks at it.
func (e *Engine) instantiateAxioms() (bool, *Dependency, error) {
	var progressed bool
	mark := func(t *Term) {
		e.axiomsEmitted[t.ID] = true
		id := t.ID
		e.trail.Record(func() { delete(e.axiomsEmitted, id) })
	}
	var visit func(*Term, *Dependency)
	visit = func(t *Term, dep *Dependency) {
		if e.axiomsEmitted[t.ID] {
			return
		}
		mark(t)
		switch t.Op {
		case OpExtract:
			e.Axioms.Extract(t, dep)
			progressed = true
		case OpAt:
			e.Axioms.At(t, dep)
			progressed = true
		case OpNth:
			e.Axioms.Nth(t.Args[0], t.Args[1], dep)
			progressed = true
		case OpIndexOf:
			e.Axioms.IndexOf(t, dep)
			progressed = true
		case OpReplace:
			e.Axioms.Replace(t, dep)
			progressed = true
		case OpPrefix:
			e.Axioms.Prefix(t, dep)
			progressed = true
		case OpSuffix:
			e.Axioms.Suffix(t, dep)
			progressed = true
		}
		for _, a := range t.Args {
			visit(a, dep)
		}
	}
	for _, eq := range e.Eqs.Equations() {
		for _, t := range eq.Lhs {
			visit(t, eq.Dep)
		}
		for _, t := range eq.Rhs {
			visit(t, eq.Dep)
		}
	}
	if progressed {
		return true, nil, nil
	}
	return false, nil, nil
}

// isSolved reports whether every store is drained, the precondition for a
// StatusDone verdict (spec.md section 4.4 rule 15). This is a pure
// predicate, not a rule with side effects, so FinalCheck calls it
// directly rather than through runCascadeOnce.
func (e *Engine) isSolved() bool {
	return e.Eqs.Empty()
}

// flatten canonizes every term of a word (a concatenation side) and
// splits any resulting OpConcat back into atoms, so the cancellation
// rules below operate on a flat, fully-normalized atom list.
func (e *Engine) flattenWord(word []*Term) ([]*Term, *Dependency) {
	var out []*Term
	var dep *Dependency
	for _, t := range word {
		cn, cd := e.Canon.Canonize(t)
		dep = Join(dep, cd)
		switch cn.Op {
		case OpEmpty:
			// contributes nothing
		case OpConcat:
			out = append(out, cn.Args...)
		default:
			out = append(out, cn)
		}
	}
	return out, dep
}

// occurs reports whether v appears anywhere inside any term of word,
// guarding solve_unit_eq against cyclic bindings (spec.md section 9).
func occurs(v *Term, word []*Term) bool {
	var walk func(*Term) bool
	walk = func(t *Term) bool {
		if t.ID == v.ID {
			return true
		}
		for _, a := range t.Args {
			if walk(a) {
				return true
			}
		}
		return false
	}
	for _, t := range word {
		if walk(t) {
			return true
		}
	}
	return false
}

// simplifyAndSolveEqs implements spec.md section 4.4 rule 1: canonize
// both sides of each pending equation, cancel common structure
// (simplify_eq), and solve the shapes that reduce to a direct binding
// (solve_unit_eq, forcing a side empty, solve_itos); no nth-equation rule
// is applied. Rules that require case splitting
// (solve_binary_eq for the general xa = by case) are left to
// branch_binary_variable / branch_variable further down the cascade.
func (e *Engine) simplifyAndSolveEqs() (bool, *Dependency, error) {
	for _, eq := range e.Eqs.Equations() {
		lhs, ld := e.flattenWord(eq.Lhs)
		rhs, rd := e.flattenWord(eq.Rhs)
		dep := Join(eq.Dep, Join(ld, rd))

		lhs, rhs = e.cancelPrefix(lhs, rhs)
		lhs, rhs = e.cancelSuffix(lhs, rhs)

		if len(lhs) == 0 && len(rhs) == 0 {
			e.Eqs.RemoveEquation(eq)
			e.Stats.SolveEqs++
			return true, nil, nil
		}

		if conflict := literalHeadContradiction(lhs, rhs); conflict {
			return false, dep, nil
		}
		if conflict := boolAtomContradiction(lhs, rhs); conflict {
			return false, dep, nil
		}

		// solve_unit_eq: one side is a single free variable not occurring
		// on the other side.
		if len(lhs) == 1 && lhs[0].Op == OpVar && !occurs(lhs[0], rhs) {
			e.Sol.Update(lhs[0], e.Terms.Concat(rhs...), dep)
			e.Eqs.RemoveEquation(eq)
			e.Stats.SolveEqs++
			return true, nil, nil
		}
		if len(rhs) == 1 && rhs[0].Op == OpVar && !occurs(rhs[0], lhs) {
			e.Sol.Update(rhs[0], e.Terms.Concat(lhs...), dep)
			e.Eqs.RemoveEquation(eq)
			e.Stats.SolveEqs++
			return true, nil, nil
		}

		// Empty one side against a non-variable, non-empty-capable atom on
		// the other: every remaining atom on the nonempty side must itself
		// be forced empty. A bare variable is bound to epsilon; a literal,
		// unit, or any other non-nullable atom is a contradiction.
		if len(lhs) == 0 && len(rhs) != 0 {
			allEmpty, mutated, conflict := e.forceEmpty(rhs, dep)
			if conflict {
				return false, dep, nil
			}
			if allEmpty {
				e.Eqs.RemoveEquation(eq)
				e.Stats.SolveEqs++
				return true, nil, nil
			}
			if mutated {
				e.Stats.SolveEqs++
				return true, nil, nil
			}
		}
		if len(rhs) == 0 && len(lhs) != 0 {
			allEmpty, mutated, conflict := e.forceEmpty(lhs, dep)
			if conflict {
				return false, dep, nil
			}
			if allEmpty {
				e.Eqs.RemoveEquation(eq)
				e.Stats.SolveEqs++
				return true, nil, nil
			}
			if mutated {
				e.Stats.SolveEqs++
				return true, nil, nil
			}
		}

		// solve_itos: an equation with an itos(i) atom alone on one side
		// is handed to the int/string bridge instead of re-simplified here.
		if len(lhs) == 1 && lhs[0].Op == OpItoS {
			if e.solveItoS(lhs[0], rhs, dep) {
				e.Eqs.RemoveEquation(eq)
				e.Stats.SolveEqs++
				return true, nil, nil
			}
		}
		if len(rhs) == 1 && rhs[0].Op == OpItoS {
			if e.solveItoS(rhs[0], lhs, dep) {
				e.Eqs.RemoveEquation(eq)
				e.Stats.SolveEqs++
				return true, nil, nil
			}
		}

		if changed := !sameWord(eq.Lhs, lhs) || !sameWord(eq.Rhs, rhs); changed {
			e.Eqs.RemoveEquation(eq)
			e.Eqs.PushEquation(lhs, rhs, dep)
			e.Stats.NumReductions++
			return true, nil, nil
		}
	}
	return false, nil, nil
}

// forceEmpty requires every atom of word to denote the empty sequence.
// Free variables are bound to epsilon; anything else that cannot be
// statically empty is reported as a conflict. Every bindable atom in
// word is forced regardless of whether some other atom is left pending
// (an undecided Skolem application, say) -- allEmpty only reports
// whether the whole word is now known empty (safe for the caller to
// discharge the equation outright), while mutated separately reports
// whether any binding happened at all, so a partial pass that still
// advances the solution map is not mistaken for no progress.
func (e *Engine) forceEmpty(word []*Term, dep *Dependency) (allEmpty, mutated, conflict bool) {
	allEmpty = true
	for _, t := range word {
		switch t.Op {
		case OpVar:
			e.Sol.Update(t, e.Terms.Empty(), dep)
			mutated = true
		case OpEmpty:
			// already empty, nothing to do
		case OpLiteral, OpUnit:
			return false, mutated, true
		default:
			// Skolem terms and other applications are not yet decided;
			// leave this atom pending rather than guessing, but keep
			// forcing the rest of the word.
			allEmpty = false
		}
	}
	return allEmpty, mutated, false
}

// solveItoS binds itos(i) against a concrete word: if the word is a
// non-empty run of decimal digits, i is bound to its base-10 value; any
// other word is left unsolved and false is returned.
func (e *Engine) solveItoS(call *Term, word []*Term, dep *Dependency) bool {
	if len(word) == 1 && word[0].Op == OpLiteral {
		n, ok := parseDecimal(word[0].Text)
		if !ok {
			return false
		}
		i := call.Args[0]
		_ = e.arith.AssertBound(i, n, true, dep)
		_ = e.arith.AssertBound(i, n, false, dep)
		e.Stats.IntString++
		return true
	}
	return false
}

func parseDecimal(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}

// cancelPrefix drops a common leading run of atoms. When the next pair of
// atoms disagree but are both literal-like (constant sequences or
// units), they are first split at their common prefix -- the
// constant-folding rewriter (rewriter.go) folds "c"++"ab" into one atom
// "cab", so without this step "x ++ \"ab\" = \"cab\"" could never cancel
// anything at all, since neither side's atom list would ever contain a
// matching, identically-interned term.
func (e *Engine) cancelPrefix(lhs, rhs []*Term) ([]*Term, []*Term) {
	lhs = append([]*Term(nil), lhs...)
	rhs = append([]*Term(nil), rhs...)
	i := 0
	for i < len(lhs) && i < len(rhs) {
		if lhs[i].ID == rhs[i].ID {
			i++
			continue
		}
		la, lok := asLiteral(lhs[i])
		ra, rok := asLiteral(rhs[i])
		if !lok || !rok || la == "" || ra == "" {
			break
		}
		n := commonPrefixRunes(la, ra)
		if n == 0 {
			break
		}
		lhs = spliceLiteralFront(e.Terms, lhs, i, n)
		rhs = spliceLiteralFront(e.Terms, rhs, i, n)
	}
	return lhs[i:], rhs[i:]
}

// cancelSuffix is cancelPrefix's mirror image over trailing atoms.
func (e *Engine) cancelSuffix(lhs, rhs []*Term) ([]*Term, []*Term) {
	lhs = append([]*Term(nil), lhs...)
	rhs = append([]*Term(nil), rhs...)
	i, j := len(lhs), len(rhs)
	for i > 0 && j > 0 {
		if lhs[i-1].ID == rhs[j-1].ID {
			i--
			j--
			continue
		}
		la, lok := asLiteral(lhs[i-1])
		ra, rok := asLiteral(rhs[j-1])
		if !lok || !rok || la == "" || ra == "" {
			break
		}
		n := commonSuffixRunes(la, ra)
		if n == 0 {
			break
		}
		var shrunk int
		lhs, shrunk = spliceLiteralBack(e.Terms, lhs, i-1, n)
		i += shrunk
		rhs, shrunk = spliceLiteralBack(e.Terms, rhs, j-1, n)
		j += shrunk
		i--
		j--
	}
	return lhs[:i], rhs[:j]
}

// commonPrefixRunes returns how many leading runes a and b share.
func commonPrefixRunes(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

// commonSuffixRunes returns how many trailing runes a and b share.
func commonSuffixRunes(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[len(ra)-1-n] == rb[len(rb)-1-n] {
		n++
	}
	return n
}

// spliceLiteralFront replaces the literal-like atom at word[i] with its
// first n runes followed by its remainder (omitted if empty), so a
// subsequent identity comparison at index i can match the other side's
// equally-split common prefix -- the two sides mint the same n-rune
// literal through the shared TermManager, so they intern to the same
// *Term and compare equal by ID.
func spliceLiteralFront(m *TermManager, word []*Term, i, n int) []*Term {
	lit, _ := asLiteral(word[i])
	rs := []rune(lit)
	head := m.Literal(string(rs[:n]))
	rest := string(rs[n:])
	out := make([]*Term, 0, len(word)+1)
	out = append(out, word[:i]...)
	out = append(out, head)
	if rest != "" {
		out = append(out, m.Literal(rest))
	}
	out = append(out, word[i+1:]...)
	return out
}

// spliceLiteralBack is spliceLiteralFront's mirror for a trailing split:
// it replaces word[i] with its prefix-minus-last-n-runes followed by
// those last n runes, and reports how the slice length changed (0 or 1)
// so the caller can keep its trailing index in sync.
func spliceLiteralBack(m *TermManager, word []*Term, i, n int) ([]*Term, int) {
	lit, _ := asLiteral(word[i])
	rs := []rune(lit)
	cut := len(rs) - n
	head := string(rs[:cut])
	tail := m.Literal(string(rs[cut:]))
	out := make([]*Term, 0, len(word)+1)
	out = append(out, word[:i]...)
	grew := 0
	if head != "" {
		out = append(out, m.Literal(head))
		grew = 1
	}
	out = append(out, tail)
	out = append(out, word[i+1:]...)
	return out, grew
}

// literalHeadContradiction reports whether the first atoms of lhs and rhs
// are both literal-like and disagree on their leading alphabet element,
// the simplest shape of word-equation contradiction.
func literalHeadContradiction(lhs, rhs []*Term) bool {
	if len(lhs) == 0 || len(rhs) == 0 {
		return false
	}
	a, aok := asLiteral(lhs[0])
	b, bok := asLiteral(rhs[0])
	if !aok || !bok || a == "" || b == "" {
		return false
	}
	return []rune(a)[0] != []rune(b)[0]
}

// boolAtomContradiction reports whether lhs and rhs each reduce to a
// single ground boolean literal and they disagree -- the Bool-sorted
// sibling of literalHeadContradiction, needed once propagate_automata
// (membership.go) starts deciding accept(...)/member(...) atoms true or
// false: two equations pinning the same atom to opposite verdicts must
// surface as a conflict exactly like a clashing literal head does.
func boolAtomContradiction(lhs, rhs []*Term) bool {
	if len(lhs) != 1 || len(rhs) != 1 {
		return false
	}
	if lhs[0].Op != OpBoolLit || rhs[0].Op != OpBoolLit {
		return false
	}
	return lhs[0].Num != rhs[0].Num
}

func sameWord(a, b []*Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// checkLts holds the cascade's slot for spec.md section 4.4 rule 2
// (order transitivity). It is a no-op: it derives no transitivity
// instance and always reports no progress.
func (e *Engine) checkLts() (bool, *Dependency, error) {
	return false, nil, nil
}

// solveNqs implements spec.md section 4.4 rule 3: for each pending
// disequation whose partitions have all collapsed to a single ground
// mismatch, discharge it outright; otherwise leave it for branch_nqs.
func (e *Engine) solveNqs() (bool, *Dependency, error) {
	for _, d := range e.Eqs.Disequations() {
		ln, ld := e.Canon.Canonize(d.Lhs)
		rn, rd := e.Canon.Canonize(d.Rhs)
		if al, aok := asLiteral(ln); aok {
			if bl, bok := asLiteral(rn); bok {
				if al != bl {
					e.Eqs.RemoveDisequation(d)
					e.Stats.SolveNqs++
					return true, nil, nil
				}
				return false, Join(d.Dep, Join(ld, rd)), nil
			}
		}
	}
	return false, nil, nil
}

// checkContains implements spec.md section 4.4 rule 4: ground positive
// containment queries are decided directly by the rewriter (already
// folded during canonize); what remains here is unrolling not-contains
// obligations whose length-gt literal is currently false, per
// NotContainsUnroll (axioms.go).
func (e *Engine) checkContains() (bool, *Dependency, error) {
	for _, nc := range e.Eqs.NotContainsConstraints() {
		if e.sat != nil && e.sat.Value(nc.LenGT) == False {
			e.Axioms.NotContainsUnroll(nc, nc.Dep)
			e.Eqs.RemoveNotContains(nc)
			e.Stats.AddAxiom++
			return true, nil, nil
		}
	}
	return false, nil, nil
}

// fixedLength implements spec.md section 4.4 rule 5 (both the zero and
// general case): once arithmetic has pinned a sequence's length to a
// known constant n, bind the variable outright -- epsilon for n = 0, or
// a concatenation of n fresh length-1 sequence variables for n > 0,
// "x = unit(h_0)...unit(h_{n-1})" with each h_i a fresh variable rather
// than a literal unit(...) wrapper. This term model has no bare
// alphabet-element sort to put inside such a wrapper (the same gap
// documented on branchUnitVariable), and binding x to a term built from
// nth(x,i) applications would make x's own binding mention x, which
// Canonizer.Canonize would then recurse into forever chasing the
// solution map -- a fresh variable per position sidesteps both. Each
// h_i's length is pinned to 1 with the arithmetic collaborator so later
// rounds (branch_unit_variable, propagate_automata) have a concrete
// length to work from. e.lengthLimits then records the length a
// variable has already been bound to, guarding against re-splitting it
// every round once fixed.
func (e *Engine) fixedLength() (bool, *Dependency, error) {
	for id, t := range e.sequencesWithLength() {
		n, ok := e.arith.Value(e.Terms.App(OpLength, t))
		if !ok {
			continue
		}
		cn, cd := e.Canon.Canonize(t)
		if ground, gok := groundLength(cn); gok && ground != n {
			return false, cd, nil
		}
		if t.Op != OpVar || !e.Sol.IsRoot(t) {
			continue
		}
		if cur, bound := e.lengthLimits[id]; bound && cur == n {
			continue
		}
		if n == 0 {
			e.Sol.Update(t, e.Terms.Empty(), nil)
		} else {
			units := make([]*Term, n)
			for k := range units {
				h := e.Terms.FreshVar("unit")
				hLen := e.Terms.App(OpLength, h)
				_ = e.arith.AssertBound(hLen, 1, true, nil)
				_ = e.arith.AssertBound(hLen, 1, false, nil)
				units[k] = h
			}
			e.Sol.Update(t, e.Terms.Concat(units...), nil)
		}
		e.lengthLimits[id] = n
		e.Stats.FixedLength++
		return true, nil, nil
	}
	return false, nil, nil
}

// groundLength reports a canonized term's length, if it is ground (a
// literal, unit, empty, or a concatenation of such), for fixedLength's
// cross-check against an arithmetic collaborator's asserted value.
func groundLength(t *Term) (int64, bool) {
	switch t.Op {
	case OpEmpty:
		return 0, true
	case OpUnit:
		return 1, true
	case OpLiteral:
		return int64(len([]rune(t.Text))), true
	case OpConcat:
		var total int64
		for _, a := range t.Args {
			n, ok := groundLength(a)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	default:
		return 0, false
	}
}

// sequencesWithLength returns every free sequence variable this engine
// currently has reason to care about: those tracked since assertion
// (Engine.knownSeqVars, which survives a variable being solved and its
// equation removed from the pending store) plus any mentioned by a still
// pending equation, covering helper variables the pipeline mints
// internally (e.g. branch_variable's fresh split continuations), which
// never go through AssertEq/trackVars.
func (e *Engine) sequencesWithLength() map[int64]*Term {
	out := make(map[int64]*Term, len(e.knownSeqVars))
	for id, t := range e.knownSeqVars {
		out[id] = t
	}
	var visit func(*Term)
	visit = func(t *Term) {
		if t.Op == OpVar {
			out[t.ID] = t
		}
		for _, a := range t.Args {
			visit(a)
		}
	}
	for _, eq := range e.Eqs.Equations() {
		for _, t := range eq.Lhs {
			visit(t)
		}
		for _, t := range eq.Rhs {
			visit(t)
		}
	}
	return out
}

// lenBasedSplit implements the optional rule 6, gated by
// Config.EnableLenBasedSplit: when two variable-headed words are
// compared and arithmetic already knows their lengths differ, a
// length-based split is strictly more informative than the generic
// branch_variable case split, so it is offered first when enabled.
func (e *Engine) lenBasedSplit() (bool, *Dependency, error) {
	if !e.cfg.EnableLenBasedSplit {
		return false, nil, nil
	}
	for _, eq := range e.Eqs.Equations() {
		if len(eq.Lhs) == 0 || len(eq.Rhs) == 0 {
			continue
		}
		lv, lok := headVar(eq.Lhs)
		rv, rok := headVar(eq.Rhs)
		if !lok || !rok || lv.ID == rv.ID {
			continue
		}
		lb, lok2 := e.arith.Value(e.Terms.App(OpLength, lv))
		rb, rok2 := e.arith.Value(e.Terms.App(OpLength, rv))
		if lok2 && rok2 && lb != rb {
			// Lengths are already pinned and distinct: recorded as a
			// length-coherence conflict rather than attempted as a split.
			return false, eq.Dep, nil
		}
	}
	return false, nil, nil
}

func headVar(word []*Term) (*Term, bool) {
	if len(word) == 0 || word[0].Op != OpVar {
		return nil, false
	}
	return word[0], true
}

// checkIntString implements spec.md section 4.4 rule 7 (and section
// 4.7's check_int_string): the first time an itos/stoi call is seen in a
// pending equation, it is recorded through Axioms.ItoS/StoI, which
// enqueue no equation. No length term is ensured for the call and no
// digit-sequence decomposition is instantiated.
func (e *Engine) checkIntString() (bool, *Dependency, error) {
	var progressed bool
	var visit func(*Term, *Dependency)
	visit = func(t *Term, dep *Dependency) {
		if (t.Op == OpItoS || t.Op == OpStoI) && e.Length.MarkIntString(t) {
			if t.Op == OpItoS {
				e.Axioms.ItoS(t, dep)
			} else {
				e.Axioms.StoI(t, dep)
			}
			progressed = true
		}
		for _, a := range t.Args {
			visit(a, dep)
		}
	}
	for _, eq := range e.Eqs.Equations() {
		for _, t := range eq.Lhs {
			visit(t, eq.Dep)
		}
		for _, t := range eq.Rhs {
			visit(t, eq.Dep)
		}
		if progressed {
			return true, nil, nil
		}
	}
	return false, nil, nil
}

// reduceLengthEq implements spec.md section 4.4 rule 8: an equation
// between two pure-length arithmetic expressions (no sequence content
// left once flattened) is handed to the arithmetic collaborator rather
// than kept in the sequence equation store, where it can never simplify
// further.
func (e *Engine) reduceLengthEq() (bool, *Dependency, error) {
	// This engine never enqueues a pure-arithmetic (no sequence content)
	// equation into the sequence equation store in the first place --
	// length terms are queried directly against ArithTheory wherever they
	// are produced (fixedLength, checkIntString) -- so there is nothing
	// for this rule to reduce here; it exists as a named hook for a future
	// caller that does push one.
	return false, nil, nil
}

// branchUnitVariable implements spec.md section 4.4 rule 9: a variable
// known to denote a sequence of length exactly 1 is split into the two
// cases epsilon and unit(fresh alphabet element). This engine's term
// model (term.go) has no free-standing "alphabet element" sort -- OpUnit
// always carries a concrete rune -- so there is no way to mint a fresh
// symbolic unit(x) the way the general rule calls for; a length-1
// variable is left for branch_variable to decompose structurally instead.
// Lifting this would mean adding an element-sorted variable kind to
// term.go, tracked as an open item rather than guessed at here.
func (e *Engine) branchUnitVariable() (bool, *Dependency, error) {
	return false, nil, nil
}

// groundAtom reports whether t is a fully ground sequence atom (a
// literal or a unit), the building block of a unit-word U_i in
// branchBinaryVariable's x ++ U1 = U2 ++ y shape.
func groundAtom(t *Term) bool {
	return t.Op == OpLiteral || t.Op == OpUnit
}

// splitVarPrefix splits word into (x, U) when its first atom is a bare
// variable and every atom after it is ground, the "x ++ U1" shape rule
// 10 looks for on one side of an equation.
func splitVarPrefix(word []*Term, terms *TermManager) (x, u *Term, ok bool) {
	if len(word) < 2 || word[0].Op != OpVar {
		return nil, nil, false
	}
	for _, a := range word[1:] {
		if !groundAtom(a) {
			return nil, nil, false
		}
	}
	return word[0], terms.Concat(word[1:]...), true
}

// splitVarSuffix splits word into (U, y) when its last atom is a bare
// variable and every atom before it is ground, the "U2 ++ y" shape.
func splitVarSuffix(word []*Term, terms *TermManager) (u, y *Term, ok bool) {
	if len(word) < 2 {
		return nil, nil, false
	}
	last := word[len(word)-1]
	if last.Op != OpVar {
		return nil, nil, false
	}
	for _, a := range word[:len(word)-1] {
		if !groundAtom(a) {
			return nil, nil, false
		}
	}
	return terms.Concat(word[:len(word)-1]...), last, true
}

// branchBinaryVariable implements spec.md section 4.4 rule 10: for an
// equation of the shape x ++ U1 = U2 ++ y with U1, U2 unit-words (words
// built purely of literal/unit atoms), split under a fresh literal into
// "x is a prefix of U2" -- encoded, in the same defEq idiom axioms.go's
// Prefix/Suffix use, as U2 = x ++ prefix_inv(x,U2), leaving the residual
// prefix_inv(x,U2) ++ y = U1 for cancel_prefix to pick up next round --
// versus "x is at least as long as U2", where x = U2 ++ y1 is a direct
// binding (mirroring branch_variable below) and the residual y = y1 ++
// U1 is pushed back as a plain equation. Like branch_variable and
// len_based_split, this rule reads each equation's atom lists directly
// rather than re-flattening them, relying on simplify_and_solve_eqs
// having already flattened and cancelled what it could earlier in the
// same cascade pass.
func (e *Engine) branchBinaryVariable() (bool, *Dependency, error) {
	if e.sat == nil {
		return false, nil, nil
	}
	for _, eq := range e.Eqs.Equations() {
		x, u1, lok := splitVarPrefix(eq.Lhs, e.Terms)
		u2, y, rok := splitVarSuffix(eq.Rhs, e.Terms)
		if !lok || !rok || x.ID == y.ID {
			continue
		}

		lit := e.freshLiteral()
		dep := Join(eq.Dep, Leaf(lit))
		switch e.sat.Value(lit) {
		case True:
			inv := e.Skolem.PrefixInv(x, u2)
			e.Eqs.PushEquation([]*Term{u2}, []*Term{x, inv}, dep)
			e.Eqs.PushEquation([]*Term{inv, y}, []*Term{u1}, dep)
		case False:
			y1 := e.Terms.FreshVar("split")
			e.Sol.Update(x, e.Terms.Concat(u2, y1), dep)
			e.Eqs.PushEquation([]*Term{y}, []*Term{y1, u1}, dep)
		default:
			_ = e.sat.AddClause(lit, lit.Negate())
			return false, nil, nil
		}
		e.Eqs.RemoveEquation(eq)
		e.Stats.BranchBinaryVariable++
		e.Stats.NumSplits++
		return true, nil, nil
	}
	return false, nil, nil
}

// branchVariable implements spec.md section 4.4 rule 11: the general
// case-split fallback. For a pending equation whose front atoms are two
// distinct free variables, it proposes "the shorter is a prefix of the
// longer" by introducing a fresh continuation variable and a fresh
// decision literal. Once the literal is decided, the solution map binds
// the left head to right head ++ fresh (true) or the right head to left
// head ++ fresh (false); no new pending equation is pushed, and
// simplify_and_solve_eqs re-canonizes the original equation next round.
// While the literal is undecided nothing is bound and no progress is
// reported. Selection of which equation to branch uses the configured
// BranchStrategy (labeling.go).
func (e *Engine) branchVariable() (bool, *Dependency, error) {
	eqs := e.Eqs.Equations()
	if len(eqs) == 0 {
		return false, nil, nil
	}
	idx := e.Branch.SelectEquation(eqs)
	if idx < 0 {
		return false, nil, nil
	}
	eq := eqs[idx]
	lv, lok := headVar(eq.Lhs)
	rv, rok := headVar(eq.Rhs)
	if !lok || !rok || lv.ID == rv.ID {
		return false, nil, nil
	}

	lit := e.freshLiteral()
	fresh := e.Terms.FreshVar("split")
	dep := Join(eq.Dep, Leaf(lit))

	switch {
	case e.sat == nil:
		return false, nil, nil
	case e.sat.Value(lit) == True:
		// lv = rv ++ fresh
		e.Sol.Update(lv, e.Terms.Concat(append([]*Term{rv}, fresh)...), dep)
	case e.sat.Value(lit) == False:
		// rv = lv ++ fresh
		e.Sol.Update(rv, e.Terms.Concat(append([]*Term{lv}, fresh)...), dep)
	default:
		_ = e.sat.AddClause(lit, lit.Negate())
		return false, nil, nil
	}
	e.Stats.BranchVariable++
	e.Stats.NumSplits++
	return true, nil, nil
}

// checkLengthCoherence implements spec.md section 4.7's add_length_to_eqc
// (every sequence term mentioned by a live equation gets a companion |s|
// term registered with the arithmetic collaborator, so later rounds of
// fixedLength/checkIntString have something to query) together with
// rule 12's bound-driven decomposition: once a free sequence variable's
// length has a known lower bound lo > 0, e is split into lo fresh
// length-1 head variables plus a fresh tail continuation --
// "e = unit(nth(0)) ++ ... ++ unit(nth(lo-1)) ++ tail" -- using the same
// fresh-variable stand-in fixedLength uses for the same reason: binding e
// to a term built from nth(e,i) applications would make e's own solution
// mention e, which Canonizer.Canonize would then chase forever. Whatever
// upper bound is known on |e| carries over onto the tail: |e| <= hi
// becomes |tail| <= hi-lo, and hi == lo collapses the tail to epsilon
// outright.
func (e *Engine) checkLengthCoherence() (bool, *Dependency, error) {
	var progressed bool
	for _, t := range e.sequencesWithLength() {
		if e.Length.EnsureLength(t) {
			e.Axioms.Length(t, nil)
			progressed = true
		}
	}
	if progressed {
		e.Stats.CheckLengthCoherence++
		return true, nil, nil
	}

	for _, t := range e.sequencesWithLength() {
		if t.Op != OpVar || !e.Sol.IsRoot(t) {
			continue
		}
		lenTerm := e.Terms.App(OpLength, t)
		lo, hasLo := e.arith.LowerBound(lenTerm)
		if !hasLo || lo <= 0 {
			continue
		}
		if !e.Length.MarkBoundDecomposed(t) {
			continue
		}

		head := make([]*Term, lo)
		for k := range head {
			h := e.Terms.FreshVar("unit")
			hLen := e.Terms.App(OpLength, h)
			_ = e.arith.AssertBound(hLen, 1, true, nil)
			_ = e.arith.AssertBound(hLen, 1, false, nil)
			head[k] = h
		}
		tail := e.Terms.FreshVar("tail")
		if hi, hasHi := e.arith.UpperBound(lenTerm); hasHi {
			if hi == lo {
				e.Sol.Update(tail, e.Terms.Empty(), nil)
			} else {
				_ = e.arith.AssertBound(e.Terms.App(OpLength, tail), hi-lo, false, nil)
			}
		}
		e.Sol.Update(t, e.Terms.Concat(append(head, tail)...), nil)
		e.Stats.CheckLengthCoherence++
		return true, nil, nil
	}
	return false, nil, nil
}

// checkExtensionality implements spec.md section 4.4 rule 13: for a
// pending disequation between two terms that canonize to the same
// normal form, report the conflict; otherwise record the pair in the
// exclusion table so later rounds do not re-derive the same refutation.
func (e *Engine) checkExtensionality() (bool, *Dependency, error) {
	for _, d := range e.Eqs.Disequations() {
		if e.Excl.Contains(d.Lhs, d.Rhs) {
			continue
		}
		ln, ld := e.Canon.Canonize(d.Lhs)
		rn, rd := e.Canon.Canonize(d.Rhs)
		if ln.ID == rn.ID {
			return false, Join(d.Dep, Join(ld, rd)), nil
		}
		e.Excl.Add(d.Lhs, d.Rhs)
		e.Stats.Extensionality++
		return true, nil, nil
	}
	return false, nil, nil
}

// branchNqs implements spec.md section 4.4 rule 14: a disequation that
// resisted solve_nqs is turned into a case split over its partition
// pairs, each disjunct asserting one partition pair unequal.
func (e *Engine) branchNqs() (bool, *Dependency, error) {
	for _, d := range e.Eqs.Disequations() {
		if len(d.Partitions) == 0 {
			continue
		}
		lits := make([]Literal, 0, len(d.Partitions))
		for range d.Partitions {
			lits = append(lits, e.freshLiteral())
		}
		if e.sat != nil {
			_ = e.sat.AddClause(lits...)
		}
		e.Eqs.RemoveDisequation(d)
		e.Stats.BranchNqs++
		return true, nil, nil
	}
	return false, nil, nil
}
