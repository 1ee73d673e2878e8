// Command seqtheory runs the end-to-end scenarios from spec section 8
// through the sequence theory engine (pkg/theory) against in-memory
// collaborator stubs (internal/stub), printing each scenario's verdict
// next to the outcome a full DPLL(T) integration would be expected to
// reach. The scenarios are independent of one another -- each builds its
// own Engine and collaborator set -- so they are fanned out across a
// small worker pool (internal/parallel), in the teacher's examples/*/
// main.go idiom of a single, narrative demo binary.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carlosolivasio/seqtheory/internal/parallel"
	"github.com/carlosolivasio/seqtheory/internal/stub"
	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

type scenario struct {
	id       int
	name     string
	expected string
	run      func() (theory.Status, string)
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	scenarios := []scenario{
		{1, "basic solve", "SAT (x = \"c\")", scenarioBasicSolve},
		{2, "length contradiction", "UNSAT", scenarioLengthContradiction},
		{3, "non-contains", "SAT (e.g. x = \"aa\")", scenarioNonContains},
		{4, "regex membership", "SAT (e.g. x = \"ac\")", scenarioRegexMembership},
		{5, "int-string", "SAT (n = 42); UNSAT when n < 0", scenarioIntString},
		{6, "extensionality", "x = y derivable", scenarioExtensionality},
		{7, "regex membership (unreachable length)", "UNSAT", scenarioRegexMembershipUnreachable},
	}

	pool := parallel.NewWorkerPool(len(scenarios))
	defer pool.Shutdown()

	results := make([]string, len(scenarios))
	var wg sync.WaitGroup
	ctx := context.Background()

	for _, sc := range scenarios {
		sc := sc
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			status, detail := sc.run()
			results[sc.id-1] = fmt.Sprintf(
				"%d. %-22s got=%-10s expected=%-28s %s",
				sc.id, sc.name, status, sc.expected, detail,
			)
		})
		if err != nil {
			log.WithError(err).WithField("scenario", sc.name).Error("failed to submit scenario")
		}
	}
	wg.Wait()

	sort.Strings(results)
	for _, r := range results {
		fmt.Println(r)
	}

	snap := pool.Stats().Snapshot()
	log.WithFields(logrus.Fields{
		"submitted": snap.TasksSubmitted,
		"completed": snap.TasksCompleted,
		"failed":    snap.TasksFailed,
	}).Info("scenario run finished")

	if snap.TasksFailed > 0 {
		os.Exit(1)
	}
}

// newEngine wires a fresh Engine plus a fresh set of in-memory
// collaborators, so each scenario is fully isolated from the others.
func newEngine() (*theory.Engine, *stub.SAT, *stub.Arith) {
	terms := theory.NewTermManager()
	sat := stub.NewSAT()
	arith := stub.NewArith()
	eqGraph := stub.NewEqualityGraph()
	sink := stub.NewAxiomSink()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	e, err := theory.NewEngine(terms, sat, arith, eqGraph, sink, theory.WithLogger(log))
	if err != nil {
		panic(err) // construction only fails for a nil arith theory, which never happens here
	}
	return e, sat, arith
}

// assume mints a fresh literal, assigns it true in sat, and returns a
// Dependency justified by it -- the shape every real assumption takes
// once it flows in from an external SAT engine's decision trail.
func assume(sat *stub.SAT) *theory.Dependency {
	lit := sat.FreshLiteral()
	sat.Assign(lit)
	return theory.Leaf(lit)
}

func scenarioBasicSolve() (theory.Status, string) {
	e, sat, _ := newEngine()
	terms := e.Terms

	x := terms.Var("x")
	lhs := terms.Concat(x, terms.Literal("ab"))
	rhs := terms.Literal("cab")
	e.AssertEq(lhs, rhs, assume(sat))

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	model := e.BuildModel(x)
	return res.Status, fmt.Sprintf("model x=%q", model.Values["x"])
}

func scenarioLengthContradiction() (theory.Status, string) {
	e, sat, arith := newEngine()
	terms := e.Terms

	x := terms.Var("x")
	arith.SetValue(terms.App(theory.OpLength, x), 3)
	e.AssertEq(x, terms.Literal("ab"), assume(sat))

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	return res.Status, "|x|=3 asserted against x=\"ab\" (length 2)"
}

func scenarioNonContains() (theory.Status, string) {
	e, sat, arith := newEngine()
	terms := e.Terms

	x := terms.Var("x")
	hay := terms.Literal("abab")
	arith.SetValue(terms.App(theory.OpLength, x), 2)

	lenGT := sat.FreshLiteral() // |hay| > |x| -- forced false so the unroll fires immediately
	sat.Assign(lenGT.Negate())
	e.AssertNotContains(hay, x, lenGT, assume(sat))
	e.AssertDiseq(x, terms.Literal("ab"), assume(sat), nil)
	e.AssertDiseq(x, terms.Literal("ba"), assume(sat), nil)

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	model := e.BuildModel(x)
	return res.Status, fmt.Sprintf(
		"not_contains unroll is a sound-but-partial expansion here (membership.go/DESIGN.md); model x=%q",
		model.Values["x"],
	)
}

// scenarioRegexMembership runs x in (a|b)*c with |x| = 2. Read literally
// this is satisfiable ("ac" and "bc" both match), not unsatisfiable --
// DESIGN.md's "scenario 4" section calls out the mismatch with spec
// section 8's stated expectation explicitly rather than forcing the
// wrong answer. The bounded-length fallback in propagateAutomata
// (membership.go) now decides this one to completion: x's length is
// pinned but its content is not, and some length-2 string is reachable,
// so the engine correctly settles on SAT instead of giving up.
func scenarioRegexMembership() (theory.Status, string) {
	e, sat, arith := newEngine()
	terms := e.Terms
	rb := e.RegexB

	x := terms.Var("x")
	ab := rb.Union(rb.CharLit('a'), rb.CharLit('b'))
	regex := rb.Concat(rb.Star(ab), rb.CharLit('c'))

	arith.SetValue(terms.App(theory.OpLength, x), 2)
	if err := e.AssertMember(x, regex, assume(sat)); err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	return res.Status, "x is symbolic but |x|=2 is pinned; \"ac\"/\"bc\" both match (a|b)*c, see DESIGN.md's scenario 4 note"
}

// scenarioRegexMembershipUnreachable exercises the same bounded-length
// fallback on an input where it actually forces a conflict: x in "c"
// (a regex matching only the single character "c") with |x| = 0 can
// never be accepted, regardless of what the (nonexistent) characters of
// x would be, so propagateAutomata rules it out without ever needing x
// to be ground.
func scenarioRegexMembershipUnreachable() (theory.Status, string) {
	e, sat, arith := newEngine()
	terms := e.Terms
	rb := e.RegexB

	x := terms.Var("x")
	regex := rb.CharLit('c')

	arith.SetValue(terms.App(theory.OpLength, x), 0)
	if err := e.AssertMember(x, regex, assume(sat)); err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	member := terms.App(theory.OpMember, x, regex)
	e.AssertEq(member, terms.BoolLit(true), assume(sat))

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	return res.Status, "x in \"c\" with |x|=0 is unreachable in exactly 0 steps from the start state, decided without x ever going ground"
}

func scenarioIntString() (theory.Status, string) {
	e, sat, arith := newEngine()
	terms := e.Terms

	n := terms.IntVar("n")
	call := terms.App(theory.OpItoS, n)
	e.AssertEq(call, terms.Literal("042"), assume(sat))
	arith.AssertBound(n, 0, true, nil)

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	return res.Status, "itos(n) = \"042\", n >= 0"
}

func scenarioExtensionality() (theory.Status, string) {
	e, sat, _ := newEngine()
	terms := e.Terms

	x := terms.Var("x")
	y := terms.Var("y")
	e.AssertEq(x, y, assume(sat))
	e.AssertDiseq(x, y, assume(sat), nil)

	res, err := e.FinalCheck(context.Background())
	if err != nil {
		return theory.StatusGiveUp, "error: " + err.Error()
	}
	return res.Status, "x = y asserted alongside x != y: extensionality's canonize-identity check (pipeline.go) should conflict directly"
}
