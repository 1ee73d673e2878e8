package theory

import (
	"context"
	"testing"

	"github.com/carlosolivasio/seqtheory/internal/stub"
)

func newTestEngine(t *testing.T) (*Engine, *stub.SAT, *stub.Arith) {
	t.Helper()
	terms := NewTermManager()
	sat := stub.NewSAT()
	arith := stub.NewArith()
	e, err := NewEngine(terms, sat, arith, stub.NewEqualityGraph(), stub.NewAxiomSink())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, sat, arith
}

func assumeLit(sat *stub.SAT) *Dependency {
	lit := sat.FreshLiteral()
	sat.Assign(lit)
	return Leaf(lit)
}

func TestGroundMembershipAccepted(t *testing.T) {
	e, sat, _ := newTestEngine(t)
	terms := e.Terms
	rb := e.RegexB

	ab := rb.Union(rb.CharLit('a'), rb.CharLit('b'))
	regex := rb.Star(ab)

	s := terms.Literal("aabba")
	if err := e.AssertMember(s, regex, assumeLit(sat)); err != nil {
		t.Fatalf("AssertMember: %v", err)
	}

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		t.Fatalf("FinalCheck: %v", err)
	}
	if res.Status != StatusDone {
		t.Fatalf("Status = %v, want SAT (the ground literal is in (a|b)*)", res.Status)
	}
}

// TestGroundMembershipRejected checks that a ground sequence outside the
// regex resolves member(s,R) to false. AssertMember only defines the
// predicate; nothing here asserts it must hold, so a rejection is not by
// itself a conflict and the cascade still reaches StatusDone.
func TestGroundMembershipRejected(t *testing.T) {
	e, sat, _ := newTestEngine(t)
	terms := e.Terms
	rb := e.RegexB

	ab := rb.Union(rb.CharLit('a'), rb.CharLit('b'))
	regex := rb.Star(ab)

	s := terms.Literal("aabca")
	member := terms.App(OpMember, s, regex)
	if err := e.AssertMember(s, regex, assumeLit(sat)); err != nil {
		t.Fatalf("AssertMember: %v", err)
	}

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		t.Fatalf("FinalCheck: %v", err)
	}
	if res.Status != StatusDone {
		t.Fatalf("Status = %v, want SAT (membership is defined, not yet enforced)", res.Status)
	}

	got, _ := e.Canon.Canonize(member)
	if got != terms.BoolLit(false) {
		t.Errorf("canonized member(s,R) = %v, want false", got)
	}
}

// TestPropagateAutomataDecidesBoundedUnreachableLength exercises the
// symbolic fallback: x is not ground, but its length is pinned to a
// value for which no assignment of the remaining positions can reach an
// accepting state, so accept(...) is soundly forced false without
// needing to know which characters x actually holds.
func TestPropagateAutomataDecidesBoundedUnreachableLength(t *testing.T) {
	e, sat, arith := newTestEngine(t)
	terms := e.Terms
	rb := e.RegexB

	x := terms.Var("x")
	regex := rb.CharLit('c') // accepts exactly "c", a single character
	arith.SetValue(terms.App(OpLength, x), 0)
	if err := e.AssertMember(x, regex, assumeLit(sat)); err != nil {
		t.Fatalf("AssertMember: %v", err)
	}

	progressed, conflict, err := e.propagateAutomata()
	if err != nil {
		t.Fatalf("propagateAutomata: %v", err)
	}
	if conflict != nil {
		t.Fatalf("unexpected conflict: %v", conflict)
	}
	if !progressed {
		t.Fatal("expected propagateAutomata to decide accept(...) false on an unreachable length")
	}

	member := terms.App(OpMember, x, regex)
	got, _ := e.Canon.Canonize(member)
	if got != terms.BoolLit(false) {
		t.Errorf("canonized member(x,R) = %v, want false", got)
	}
}

// TestPropagateAutomataLeavesReachableLengthPending checks the other
// side of the soundness boundary: when some assignment of the pinned
// length could reach accept, propagateAutomata must not force a verdict
// (that would assume a specific, not-yet-chosen assignment of x).
func TestPropagateAutomataLeavesReachableLengthPending(t *testing.T) {
	e, sat, arith := newTestEngine(t)
	terms := e.Terms
	rb := e.RegexB

	x := terms.Var("x")
	ab := rb.Union(rb.CharLit('a'), rb.CharLit('b'))
	regex := rb.Concat(rb.Star(ab), rb.CharLit('c'))
	arith.SetValue(terms.App(OpLength, x), 2)
	if err := e.AssertMember(x, regex, assumeLit(sat)); err != nil {
		t.Fatalf("AssertMember: %v", err)
	}

	progressed, conflict, err := e.propagateAutomata()
	if err != nil {
		t.Fatalf("propagateAutomata: %v", err)
	}
	if conflict != nil {
		t.Fatalf("unexpected conflict: %v", conflict)
	}
	if progressed {
		t.Error("expected propagateAutomata not to force a verdict when some length-2 string is accepted (e.g. \"ac\")")
	}
}

func TestInitialStateAxiomRejectsUncompilableRegex(t *testing.T) {
	e, sat, _ := newTestEngine(t)
	terms := e.Terms
	notRegex := terms.Var("not-a-regex")
	err := e.AssertMember(terms.Literal("a"), notRegex, assumeLit(sat))
	if err == nil {
		t.Fatal("expected an error asserting membership against a non-regex term")
	}
}
