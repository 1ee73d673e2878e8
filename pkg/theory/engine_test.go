package theory

import (
	"context"
	"testing"

	"github.com/carlosolivasio/seqtheory/internal/stub"
)

func TestNewEngineRequiresArithTheory(t *testing.T) {
	terms := NewTermManager()
	_, err := NewEngine(terms, stub.NewSAT(), nil, stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err == nil {
		t.Fatal("expected an error when arith is nil")
	}
	if !ErrIncompatibleArithTheory.Is(err) {
		t.Errorf("expected ErrIncompatibleArithTheory, got %v", err)
	}
}

func TestNewEngineToleratesNilSAT(t *testing.T) {
	terms := NewTermManager()
	e, err := NewEngine(terms, nil, stub.NewArith(), stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.unfoldingLit != 0 {
		t.Errorf("unfoldingLit = %d, want 0 with no SAT engine wired", e.unfoldingLit)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusContinue, "continue"},
		{StatusDone, "SAT"},
		{StatusGiveUp, "give-up"},
		{StatusConflict, "UNSAT"},
		{Status(99), "status?"},
	}
	for _, test := range tests {
		if got := test.s.String(); got != test.want {
			t.Errorf("Status(%d).String() = %q, want %q", test.s, got, test.want)
		}
	}
}

func TestFinalCheckEmptyEngineIsDone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	res, err := e.FinalCheck(context.Background())
	if err != nil {
		t.Fatalf("FinalCheck: %v", err)
	}
	if res.Status != StatusDone {
		t.Errorf("Status = %v, want SAT for an engine with nothing asserted", res.Status)
	}
}

func TestFinalCheckHonorsContextCancellation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	x := e.Terms.Var("x")
	y := e.Terms.Var("y")
	e.AssertEq(x, y, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := e.FinalCheck(ctx)
	if err == nil {
		t.Fatal("expected FinalCheck to surface ctx.Err()")
	}
	if res.Status != StatusGiveUp {
		t.Errorf("Status = %v, want give-up on cancellation", res.Status)
	}
}

func TestFinalCheckGivesUpWhenRoundBudgetExhausted(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.cfg.MaxCascadeRounds = 0

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		t.Fatalf("FinalCheck: %v", err)
	}
	if res.Status != StatusGiveUp {
		t.Errorf("Status = %v, want give-up with a zero round budget", res.Status)
	}
	if e.Stats.GiveUps != 1 {
		t.Errorf("Stats.GiveUps = %d, want 1", e.Stats.GiveUps)
	}
}

func TestAssertEqTracksSeqVars(t *testing.T) {
	e, _, _ := newTestEngine(t)
	x := e.Terms.Var("x")
	y := e.Terms.Var("y")
	e.AssertEq(x, y, nil)

	if _, ok := e.knownSeqVars[x.ID]; !ok {
		t.Error("expected x to be tracked after AssertEq")
	}
	if _, ok := e.knownSeqVars[y.ID]; !ok {
		t.Error("expected y to be tracked after AssertEq")
	}
	if len(e.Eqs.Equations()) != 1 {
		t.Errorf("expected one pending equation, got %d", len(e.Eqs.Equations()))
	}
}

func TestAssertDiseqTracksVarsAndPushesDisequation(t *testing.T) {
	e, sat, _ := newTestEngine(t)
	x := e.Terms.Var("x")
	lit := sat.FreshLiteral()
	e.AssertDiseq(x, e.Terms.Empty(), nil, []Literal{lit})

	if _, ok := e.knownSeqVars[x.ID]; !ok {
		t.Error("expected x to be tracked after AssertDiseq")
	}
}

func TestAssertNotContainsTracksVars(t *testing.T) {
	e, _, _ := newTestEngine(t)
	hay := e.Terms.Var("hay")
	needle := e.Terms.Var("needle")
	e.AssertNotContains(hay, needle, 0, nil)

	if _, ok := e.knownSeqVars[hay.ID]; !ok {
		t.Error("expected hay to be tracked after AssertNotContains")
	}
	if _, ok := e.knownSeqVars[needle.ID]; !ok {
		t.Error("expected needle to be tracked after AssertNotContains")
	}
}

func TestTrackVarsIsTrailedAcrossScope(t *testing.T) {
	e, _, _ := newTestEngine(t)
	outer := e.Terms.Var("outer")
	e.AssertEq(outer, e.Terms.Empty(), nil)

	e.PushScope()
	inner := e.Terms.Var("inner")
	e.AssertEq(inner, e.Terms.Empty(), nil)
	if _, ok := e.knownSeqVars[inner.ID]; !ok {
		t.Fatal("expected inner to be tracked before popping its scope")
	}

	e.PopScope(1)
	if _, ok := e.knownSeqVars[inner.ID]; ok {
		t.Error("expected inner to be forgotten after PopScope")
	}
	if _, ok := e.knownSeqVars[outer.ID]; !ok {
		t.Error("expected outer, tracked before the pushed scope, to survive PopScope")
	}
}

func TestPopScopeClearsCanonizerAndSolutionMapCaches(t *testing.T) {
	e, _, _ := newTestEngine(t)
	x := e.Terms.Var("x")
	e.PushScope()
	e.Sol.Update(x, e.Terms.Empty(), nil)
	e.Canon.Canonize(x)

	e.PopScope(1)

	if got, _ := e.Sol.Find(x); got != x {
		t.Errorf("Find(x) = %v after pop, want x to be unbound again", got)
	}
}
