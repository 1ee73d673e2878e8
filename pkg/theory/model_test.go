package theory

import (
	"testing"

	"github.com/carlosolivasio/seqtheory/internal/stub"
)

func TestBuildModelSolvedVariable(t *testing.T) {
	terms := NewTermManager()
	sat := stub.NewSAT()
	arith := stub.NewArith()
	e, err := NewEngine(terms, sat, arith, stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	x := terms.Var("x")
	e.Sol.Update(x, terms.Literal("hello"), nil)

	model := e.BuildModel(x)
	if got := model.Values["x"]; got != "hello" {
		t.Errorf("Values[x] = %q, want %q", got, "hello")
	}
}

func TestBuildModelUnconstrainedVariableRendersEmpty(t *testing.T) {
	terms := NewTermManager()
	sat := stub.NewSAT()
	arith := stub.NewArith()
	e, err := NewEngine(terms, sat, arith, stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	x := terms.Var("x")
	model := e.BuildModel(x)
	if got := model.Values["x"]; got != "" {
		t.Errorf("Values[x] = %q, want the empty-sequence witness", got)
	}
}

func TestBuildModelIgnoresNonVarArgs(t *testing.T) {
	terms := NewTermManager()
	sat := stub.NewSAT()
	arith := stub.NewArith()
	e, err := NewEngine(terms, sat, arith, stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	model := e.BuildModel(terms.Literal("not a var"))
	if len(model.Values) != 0 {
		t.Errorf("Values = %v, want empty (non-var args are skipped)", model.Values)
	}
}

func TestRenderGroundConcatAndUnit(t *testing.T) {
	terms := NewTermManager()
	concat := terms.App(OpConcat, terms.Unit('a'), terms.Literal("bc"), terms.Empty())
	if got := renderGround(concat); got != "abc" {
		t.Errorf("renderGround(a++\"bc\"++eps) = %q, want %q", got, "abc")
	}
}
