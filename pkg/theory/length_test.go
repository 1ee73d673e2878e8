package theory

import "testing"

func TestLengthCoherenceEnsureLengthOnce(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	lc := NewLengthCoherence(terms, nil, tr)
	x := terms.Var("x")

	if lc.HasLength(x) {
		t.Fatal("fresh term must not start tracked")
	}
	if !lc.EnsureLength(x) {
		t.Fatal("first EnsureLength call must report newly added")
	}
	if !lc.HasLength(x) {
		t.Fatal("expected x to be tracked after EnsureLength")
	}
	if lc.EnsureLength(x) {
		t.Fatal("second EnsureLength call must report already tracked")
	}
}

func TestLengthCoherenceTrailedAcrossScope(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	lc := NewLengthCoherence(terms, nil, tr)
	x := terms.Var("x")

	tr.PushScope()
	lc.EnsureLength(x)
	if !lc.HasLength(x) {
		t.Fatal("expected x tracked within the scope")
	}
	tr.PopScope(1)
	if lc.HasLength(x) {
		t.Fatal("expected x forgotten after popping its scope")
	}
}

func TestLengthCoherenceMarkIntStringOnce(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	lc := NewLengthCoherence(terms, nil, tr)
	n := terms.IntVar("n")
	call := terms.App(OpItoS, n)

	if !lc.MarkIntString(call) {
		t.Fatal("first MarkIntString call must report newly added")
	}
	if lc.MarkIntString(call) {
		t.Fatal("second MarkIntString call must report already tracked")
	}
}
