package theory

import "testing"

func newAxiomModule() (*AxiomModule, *TermManager, *EquationStore) {
	terms := NewTermManager()
	tr := NewTrail()
	sk := NewSkolemModule(terms)
	eqs := NewEquationStore(tr)
	return NewAxiomModule(terms, sk, eqs, nil), terms, eqs
}

func TestAxiomModuleLengthConcat(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	x := terms.Var("x")
	y := terms.Var("y")
	s := terms.App(OpConcat, x, y)

	a.Length(s, nil)

	got := eqs.Equations()
	if len(got) != 1 {
		t.Fatalf("expected exactly one defining equation, got %d", len(got))
	}
	want := terms.App(OpIntAdd, terms.App(OpLength, x), terms.App(OpLength, y))
	if got[0].Lhs[0] != terms.App(OpLength, s) || got[0].Rhs[0] != want {
		t.Errorf("length axiom = %v = %v, want |s| = |x|+|y|", got[0].Lhs[0], got[0].Rhs[0])
	}
}

func TestAxiomModuleLengthEmptyAndUnit(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	a.Length(terms.Empty(), nil)
	a.Length(terms.Unit('a'), nil)

	got := eqs.Equations()
	if len(got) != 2 {
		t.Fatalf("expected 2 equations, got %d", len(got))
	}
	if got[0].Rhs[0] != terms.IntLit(0) {
		t.Errorf("|eps| axiom rhs = %v, want 0", got[0].Rhs[0])
	}
	if got[1].Rhs[0] != terms.IntLit(1) {
		t.Errorf("|unit| axiom rhs = %v, want 1", got[1].Rhs[0])
	}
}

func TestAxiomModuleIndexOf(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	s := terms.Var("s")
	needle := terms.Var("t")
	call := terms.App(OpIndexOf, s, needle, terms.IntLit(0))

	a.IndexOf(call, nil)

	got := eqs.Equations()
	if len(got) != 2 {
		t.Fatalf("expected 2 defining equations (decomposition + result length), got %d", len(got))
	}
	if got[0].Lhs[0] != s {
		t.Errorf("first equation lhs = %v, want s", got[0].Lhs[0])
	}
	if got[1].Lhs[0] != call {
		t.Errorf("second equation lhs = %v, want the indexof call itself", got[1].Lhs[0])
	}
}

func TestAxiomModulePrefixSuffix(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	small := terms.Literal("ab")
	big := terms.Var("s")

	a.Prefix(terms.App(OpPrefix, small, big), nil)
	a.Suffix(terms.App(OpSuffix, small, big), nil)

	got := eqs.Equations()
	if len(got) != 2 {
		t.Fatalf("expected 2 defining equations, got %d", len(got))
	}
	for _, eq := range got {
		if eq.Lhs[0] != big {
			t.Errorf("expected each decomposition equation's lhs to be the haystack %v, got %v", big, eq.Lhs[0])
		}
	}
}

func TestAxiomModuleUnitCongruence(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	x := terms.IntVar("x")
	y := terms.IntVar("y")
	a.Unit(x, y, nil)
	got := eqs.Equations()
	if len(got) != 1 || got[0].Lhs[0] != x || got[0].Rhs[0] != y {
		t.Fatalf("Unit axiom = %v, want x = y enqueued", got)
	}
}

func TestAxiomModuleReplaceReusesIndexOfSkolems(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	s := terms.Var("s")
	needle := terms.Literal("x")
	replacement := terms.Literal("y")
	call := terms.App(OpReplace, s, needle, replacement)

	a.Replace(call, nil)

	got := eqs.Equations()
	if len(got) != 2 {
		t.Fatalf("expected 2 defining equations (decomposition + rebuilt result), got %d", len(got))
	}
	if got[0].Lhs[0] != s {
		t.Errorf("decomposition equation lhs = %v, want s", got[0].Lhs[0])
	}
	decomposed := got[0].Rhs[0]
	if decomposed.Op != OpConcat || len(decomposed.Args) != 3 || decomposed.Args[1] != needle {
		t.Errorf("decomposition rhs = %v, want left ++ needle ++ right", decomposed)
	}
	if got[1].Lhs[0] != call {
		t.Errorf("result equation lhs = %v, want the replace call itself", got[1].Lhs[0])
	}
	rebuilt := got[1].Rhs[0]
	if rebuilt.Op != OpConcat || len(rebuilt.Args) != 3 || rebuilt.Args[0] != decomposed.Args[0] ||
		rebuilt.Args[1] != replacement || rebuilt.Args[2] != decomposed.Args[2] {
		t.Errorf("result rhs = %v, want left ++ replacement ++ right sharing the decomposition's skolems", rebuilt)
	}
}

func TestAxiomModuleExtractDecomposesAroundTheSlice(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	s := terms.Var("s")
	call := terms.App(OpExtract, s, terms.IntLit(2), terms.IntLit(3))

	a.Extract(call, nil)

	got := eqs.Equations()
	if len(got) != 1 {
		t.Fatalf("expected 1 defining equation, got %d", len(got))
	}
	if got[0].Lhs[0] != s {
		t.Errorf("extract decomposition lhs = %v, want s", got[0].Lhs[0])
	}
	rhs := got[0].Rhs[0]
	if rhs.Op != OpConcat || len(rhs.Args) != 3 || rhs.Args[1] != call {
		t.Errorf("extract decomposition rhs = %v, want pre ++ call ++ tail", rhs)
	}
}

func TestAxiomModuleAtDecomposesAroundTheElement(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	s := terms.Var("s")
	i := terms.IntLit(1)
	call := terms.App(OpAt, s, i)

	a.At(call, nil)

	got := eqs.Equations()
	if len(got) != 1 {
		t.Fatalf("expected 1 defining equation, got %d", len(got))
	}
	rhs := got[0].Rhs[0]
	if rhs.Op != OpConcat || len(rhs.Args) != 3 || rhs.Args[1] != call {
		t.Errorf("at decomposition rhs = %v, want pre ++ call ++ tail", rhs)
	}
}

func TestAxiomModuleNthDecomposesAroundTheElement(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	s := terms.Var("s")
	i := terms.IntVar("i")

	a.Nth(s, i, nil)

	got := eqs.Equations()
	if len(got) != 1 {
		t.Fatalf("expected 1 defining equation, got %d", len(got))
	}
	if got[0].Lhs[0] != s {
		t.Errorf("nth decomposition lhs = %v, want s", got[0].Lhs[0])
	}
	rhs := got[0].Rhs[0]
	want := terms.App(OpNth, s, i)
	if rhs.Op != OpConcat || len(rhs.Args) != 3 || rhs.Args[1] != want {
		t.Errorf("nth decomposition rhs = %v, want pre ++ nth(s,i) ++ tail", rhs)
	}
}

// TestAxiomModuleDeferredFamiliesOnlyRecordStats covers ItoS, StoI, Lt, and
// Le: none of them enqueues an equation, so each should just count the
// emission and enqueue nothing.
func TestAxiomModuleDeferredFamiliesOnlyRecordStats(t *testing.T) {
	a, terms, eqs := newAxiomModule()
	n := terms.IntVar("n")
	s := terms.Var("s")

	a.ItoS(terms.App(OpItoS, n), nil)
	a.StoI(terms.App(OpStoI, s), nil)
	a.Lt(n, terms.IntVar("m"), nil)
	a.Le(n, terms.IntVar("m"), nil)

	if len(eqs.Equations()) != 0 {
		t.Fatalf("expected no equations enqueued by the deferred families, got %d", len(eqs.Equations()))
	}
	if a.stats.AddAxiom != 4 {
		t.Errorf("AddAxiom = %d, want 4", a.stats.AddAxiom)
	}
}

func TestAxiomModuleStatsIncrementsOnEveryEmit(t *testing.T) {
	a, terms, _ := newAxiomModule()
	before := a.stats.AddAxiom
	a.Length(terms.Empty(), nil)
	a.ItoS(terms.App(OpItoS, terms.IntVar("n")), nil)
	if got := a.stats.AddAxiom; got != before+2 {
		t.Errorf("AddAxiom = %d, want %d", got, before+2)
	}
}

func TestAxiomModuleNotContainsUnrollReturnsTail(t *testing.T) {
	a, terms, _ := newAxiomModule()
	hay := terms.Literal("abab")
	needle := terms.Var("x")
	nc := &NotContains{Haystack: hay, Needle: needle, LenGT: 1}

	tail := a.NotContainsUnroll(nc, nil)
	if tail.Op != OpSkolem || tail.Skolem != SkTail {
		t.Fatalf("NotContainsUnroll result = %v, want a tail(...) Skolem application", tail)
	}
}
