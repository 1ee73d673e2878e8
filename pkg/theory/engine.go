package theory

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Status is the outcome of a FinalCheck round.
type Status int

const (
	// StatusContinue is never returned from FinalCheck; it is the
	// internal per-rule signal a round uses to decide whether to loop
	// again. Exported for use in tests that drive the cascade one rule
	// at a time.
	StatusContinue Status = iota
	// StatusDone means every store is drained and the cascade is
	// saturated: the conjunction is (locally) satisfiable.
	StatusDone
	// StatusGiveUp means the cascade saturated without reaching DONE or
	// a conflict.
	StatusGiveUp
	// StatusConflict means a contradiction was found; the caller should
	// treat the current assumption set as unsatisfiable.
	StatusConflict
)

// String renders a Status's mnemonic name, used in log fields and the
// demo CLI's scenario table.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusDone:
		return "SAT"
	case StatusGiveUp:
		return "give-up"
	case StatusConflict:
		return "UNSAT"
	default:
		return "status?"
	}
}

// Result is FinalCheck's outcome.
type Result struct {
	Status Status
	// Conflict carries the justification for a StatusConflict result.
	Conflict *Dependency
}

// Engine wires every component from spec.md section 4 into the final-check
// cascade described in section 4.4. It is the sequence theory's plugin
// object inside a DPLL(T) search; per section 5 it is driven synchronously
// by a single external SAT engine and never spawns goroutines of its own
// in the solving path (contrast the teacher, gokando, whose Goal/Stream
// machinery is built around concurrent exploration of many solutions at
// once -- inapplicable here, since the cascade's rule order is itself the
// tie-break for divergence avoidance and so must stay deterministic and
// sequential).
type Engine struct {
	cfg *Config
	log logrus.FieldLogger

	Terms    *TermManager
	Skolem   *SkolemModule
	Rewriter *TermRewriter
	Canon    *Canonizer
	Sol      *SolutionMap
	Excl     *ExclusionTable
	Eqs      *EquationStore
	RegexB   *RegexBuilder
	Automata *AutomatonTable
	Length   *LengthCoherence
	Axioms   *AxiomModule
	Branch   BranchStrategy

	trail *Trail

	sat     SATEngine
	arith   ArithTheory
	eqGraph EqualityGraph
	sink    AxiomSink

	Stats *Stats

	maxUnfoldingDepth int
	unfoldingLit      Literal
	lengthLimits      map[int64]int64
	lengthLimitLits   map[int64]Literal

	activeRegex     map[int64]*Term // sequence term id -> current active regex term
	regexLitsIssued map[int64]bool  // accept(...) term id -> already queued in acceptQueue
	axiomsEmitted   map[int64]bool  // term id -> defining axiom already instantiated

	// acceptQueue holds every still-undecided accept(...) obligation
	// initialStateAxiom has issued, in assertion order. propagateAutomata
	// (membership.go) consults this directly rather than rediscovering
	// accept(...) atoms by scanning the equation store: member(s,R)'s
	// defining equation (member = accept(...)) is itself solved away by
	// simplify_and_solve_eqs the moment member canonizes to exactly
	// accept(...), which happens on the very first round, before
	// propagateAutomata ever gets a turn -- leaving nothing in the
	// equation store to find. acceptQueue survives that cancellation.
	acceptQueue []acceptObligation

	// knownSeqVars is every free sequence variable ever mentioned by an
	// asserted equation, disequation, or not-contains constraint, kept
	// around (trailed) even after the variable is solved and its
	// originating equation removed from the pending store -- fixedLength
	// (pipeline.go) needs to keep checking a variable's arithmetic length
	// against its solved value, and the live equation store alone no
	// longer has anywhere to find it once solve_unit_eq has fired.
	knownSeqVars map[int64]*Term
}

// NewEngine constructs an engine. It returns ErrIncompatibleArithTheory if
// arith is nil, matching spec.md section 7's "fails at search
// initialization if neither arithmetic engine is configured."
func NewEngine(terms *TermManager, sat SATEngine, arith ArithTheory, eqGraph EqualityGraph, sink AxiomSink, opts ...Option) (*Engine, error) {
	if arith == nil {
		return nil, ErrIncompatibleArithTheory.New()
	}
	cfg := DefaultConfig(opts...)
	trail := NewTrail()
	rw := NewTermRewriter(terms)
	sol := NewSolutionMap(trail)
	sk := NewSkolemModule(terms)
	eqs := NewEquationStore(trail)

	e := &Engine{
		cfg:             cfg,
		log:             cfg.Log,
		Terms:           terms,
		Skolem:          sk,
		Rewriter:        rw,
		Canon:           NewCanonizer(terms, sol, rw),
		Sol:             sol,
		Excl:            NewExclusionTable(trail),
		Eqs:             eqs,
		RegexB:          NewRegexBuilder(terms),
		Automata:        NewAutomatonTable(),
		Length:          NewLengthCoherence(terms, arith, trail),
		Axioms:          NewAxiomModule(terms, sk, eqs, sink),
		Branch:          NewShortestEquationFirst(),
		trail:           trail,
		sat:             sat,
		arith:           arith,
		eqGraph:         eqGraph,
		sink:            sink,
		Stats:           NewStats(),
		maxUnfoldingDepth: cfg.InitialMaxUnfoldingDepth,
		lengthLimits:    make(map[int64]int64),
		lengthLimitLits: make(map[int64]Literal),
		activeRegex:     make(map[int64]*Term),
		regexLitsIssued: make(map[int64]bool),
		axiomsEmitted:   make(map[int64]bool),
		knownSeqVars:    make(map[int64]*Term),
	}
	if sat != nil {
		e.Canon.iteCond = func(t *Term) TriState { return sat.Value(Literal(t.ID)) }
	}
	e.unfoldingLit = e.freshLiteral()
	return e, nil
}

func (e *Engine) freshLiteral() Literal {
	if e.sat != nil {
		return e.sat.FreshLiteral()
	}
	return 0
}

// PushScope stamps every scoped container (spec.md section 5): the
// solution map, exclusion table, equation/disequation/not-contains
// stores, and the length trackers all share the one trail, so a single
// Trail.PushScope is sufficient.
func (e *Engine) PushScope() {
	e.trail.PushScope()
}

// PopScope truncates k scopes, replaying inverse trail items, and drops
// the solution map's and canonizer's caches, per spec.md section 5's "at
// every pop the solution map's query cache is cleared."
func (e *Engine) PopScope(k int) {
	e.trail.PopScope(k)
	e.Sol.ClearCache()
	e.Canon.ClearCache()
}

// AssertEq adds a new (l, r) equation, justified by dep, to the equation
// store -- this is how new_eq(n1, n2) events from the equality graph
// (spec.md section 6) enter the cascade.
func (e *Engine) AssertEq(l, r *Term, dep *Dependency) {
	e.trackVars(l, r)
	e.Eqs.PushEquation([]*Term{l}, []*Term{r}, dep)
}

// AssertDiseq adds a new disequation, justified by dep and active
// literals lits, to the disequation store -- new_diseq(n1, n2).
func (e *Engine) AssertDiseq(l, r *Term, dep *Dependency, lits []Literal) {
	e.trackVars(l, r)
	e.Eqs.PushDisequation(l, r, dep, lits)
}

// AssertNotContains registers a negative contains constraint.
func (e *Engine) AssertNotContains(hay, needle *Term, lenGT Literal, dep *Dependency) {
	e.trackVars(hay, needle)
	e.Eqs.PushNotContains(hay, needle, lenGT, dep)
}

// trackVars records every free sequence variable reachable from ts into
// knownSeqVars, trailed so a later PopScope forgets variables introduced
// only within the popped scopes.
func (e *Engine) trackVars(ts ...*Term) {
	var visit func(*Term)
	visit = func(t *Term) {
		if t.Op == OpVar {
			if _, ok := e.knownSeqVars[t.ID]; !ok {
				e.knownSeqVars[t.ID] = t
				id := t.ID
				e.trail.Record(func() { delete(e.knownSeqVars, id) })
			}
		}
		for _, a := range t.Args {
			visit(a)
		}
	}
	for _, t := range ts {
		visit(t)
	}
}

// AssertMember registers s in R as a pending membership obligation by
// pushing the membership equation described in spec.md section 4.6 onto
// the equation store, via initialStateAxiom (membership.go).
func (e *Engine) AssertMember(s, regex *Term, dep *Dependency) error {
	return e.initialStateAxiom(s, regex, dep)
}

// FinalCheck runs the cascade (spec.md section 4.4) to quiescence, one
// round per invocation of runCascadeOnce, until a round makes no progress.
// It is invoked at every SMT final-check round by the outer SAT engine.
func (e *Engine) FinalCheck(ctx context.Context) (Result, error) {
	for round := 0; round < e.cfg.MaxCascadeRounds; round++ {
		select {
		case <-ctx.Done():
			return Result{Status: StatusGiveUp}, ctx.Err()
		default:
		}
		e.Stats.CascadeRounds++
		progressed, conflict, err := e.runCascadeOnce(ctx)
		if err != nil {
			return Result{}, err
		}
		if conflict != nil {
			return Result{Status: StatusConflict, Conflict: conflict}, nil
		}
		if !progressed {
			if e.isSolved() {
				return Result{Status: StatusDone}, nil
			}
			e.Stats.GiveUps++
			return Result{Status: StatusGiveUp}, nil
		}
	}
	e.Stats.GiveUps++
	return Result{Status: StatusGiveUp}, nil
}
