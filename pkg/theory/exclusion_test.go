package theory

import "testing"

func TestExclusionTableOrderIndependent(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	ex := NewExclusionTable(tr)

	a := terms.Literal("a")
	b := terms.Literal("b")

	ex.Add(a, b)
	if !ex.Contains(a, b) {
		t.Fatal("expected Contains(a, b)")
	}
	if !ex.Contains(b, a) {
		t.Fatal("Contains must be order-independent")
	}
}

func TestExclusionTableDuplicateAddIsNoop(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	ex := NewExclusionTable(tr)

	a := terms.Literal("a")
	b := terms.Literal("b")
	ex.Add(a, b)
	ex.Add(a, b)
	if ex.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after duplicate Add", ex.Size())
	}
}

func TestExclusionTableUnrecordedPairNotContained(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	ex := NewExclusionTable(tr)
	if ex.Contains(terms.Literal("a"), terms.Literal("c")) {
		t.Fatal("expected no entry for an unrecorded pair")
	}
}

func TestExclusionTableTrailedAcrossScopes(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	ex := NewExclusionTable(tr)
	a := terms.Literal("a")
	b := terms.Literal("b")

	tr.PushScope()
	ex.Add(a, b)
	if !ex.Contains(a, b) {
		t.Fatal("expected entry to be visible within its own scope")
	}
	tr.PopScope(1)
	if ex.Contains(a, b) {
		t.Fatal("expected entry to be forgotten after popping its scope")
	}
	if ex.Size() != 0 {
		t.Fatalf("Size() = %d, want 0 after pop", ex.Size())
	}
}
