package stub

import (
	"testing"

	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

func TestSATValueRespectsNegation(t *testing.T) {
	s := NewSAT()
	lit := s.FreshLiteral()
	if got := s.Value(lit); got != theory.Undef {
		t.Fatalf("expected Undef before assignment, got %v", got)
	}
	s.Assign(lit)
	if got := s.Value(lit); got != theory.True {
		t.Fatalf("expected True, got %v", got)
	}
	if got := s.Value(lit.Negate()); got != theory.False {
		t.Fatalf("expected False for negation, got %v", got)
	}
}

func TestSATAddClauseUnitPropagates(t *testing.T) {
	s := NewSAT()
	lit := s.FreshLiteral()
	if err := s.AddClause(lit.Negate()); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got := s.Value(lit); got != theory.False {
		t.Fatalf("expected unit clause to force False, got %v", got)
	}
}

func TestArithValueAndBounds(t *testing.T) {
	terms := theory.NewTermManager()
	e := terms.IntVar("e")

	a := NewArith()
	if _, ok := a.Value(e); ok {
		t.Fatal("expected no value before SetValue")
	}
	a.SetValue(e, 3)
	v, ok := a.Value(e)
	if !ok || v != 3 {
		t.Fatalf("expected value 3, got %d (%v)", v, ok)
	}
	lo, ok := a.LowerBound(e)
	if !ok || lo != 3 {
		t.Fatalf("expected lower bound 3, got %d (%v)", lo, ok)
	}
}

func TestEqualityGraphMerge(t *testing.T) {
	terms := theory.NewTermManager()
	x := terms.Var("x")
	y := terms.Var("y")

	g := NewEqualityGraph()
	nx := g.NodeOf(x)
	ny := g.NodeOf(y)
	if g.AreEqual(nx, ny) {
		t.Fatal("expected distinct nodes to start unequal")
	}
	if err := g.AssertEqual(nx, ny, nil); err != nil {
		t.Fatalf("AssertEqual: %v", err)
	}
	if !g.AreEqual(nx, ny) {
		t.Fatal("expected nodes to be equal after merge")
	}
}

func TestAxiomSinkRecordsByFamily(t *testing.T) {
	sink := NewAxiomSink()
	if err := sink.Emit("length", []theory.Literal{1, -2}, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := sink.Emit("length", []theory.Literal{3}, nil); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got := sink.CountFamily("length"); got != 2 {
		t.Fatalf("expected 2 length axioms, got %d", got)
	}
	if got := sink.CountFamily("indexof"); got != 0 {
		t.Fatalf("expected 0 indexof axioms, got %d", got)
	}
	if len(sink.Axioms()) != 2 {
		t.Fatalf("expected 2 recorded axioms, got %d", len(sink.Axioms()))
	}
}
