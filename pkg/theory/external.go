package theory

// This file pins down the thin interfaces to the collaborators spec.md
// section 1 treats as out of scope. The shape of SATEngine follows the
// assign/value/add-clause surface of the retrieval pack's standalone SAT
// solver reference file (etsangsplk/go-sat, solver.go); scope push/pop is
// not part of the interface;
// ArithTheory and EqualityGraph follow spec.md section 6 directly.

// TriState is a three-valued truth value: a literal may be undecided.
type TriState int

const (
	// Undef means the SAT engine has not yet assigned this literal.
	Undef TriState = iota
	// True means the literal currently holds.
	True
	// False means the literal's negation currently holds.
	False
)

// SATEngine is the propositional DPLL engine driving the core. The core
// never owns a literal's truth value or scope depth -- it only reads and
// proposes through this interface.
type SATEngine interface {
	// Value returns the current truth value of lit.
	Value(lit Literal) TriState

	// AssignLiteral proposes assigning lit true under justification just.
	// Equivalent to mk_th_axiom followed by an external unit-propagation
	// step in a real SAT engine; the stub implementation in
	// internal/stub applies it directly.
	AssignLiteral(lit Literal, just LinDep) error

	// AddClause emits a clause (a disjunction of literals) as a theory
	// axiom. This is mk_th_axiom from spec.md section 6.
	AddClause(lits ...Literal) error

	// FreshLiteral allocates a new literal the core can assign and query,
	// used for max_unfolding/length_limit budget literals.
	FreshLiteral() Literal
}

// EqualityGraph is the ground term manager / congruence closure
// collaborator: enode equivalence queries and shared-variable
// bookkeeping.
type EqualityGraph interface {
	// NodeOf returns the enode id for a term, creating one if the term is
	// not yet tracked.
	NodeOf(t *Term) NodeID

	// AreEqual reports whether two enodes are currently in the same
	// equivalence class.
	AreEqual(a, b NodeID) bool

	// AssertEqual proposes merging two enodes' equivalence classes,
	// justified by dep. This is assign_eq from spec.md section 6.
	AssertEqual(a, b NodeID, dep *Dependency) error
}

// ArithTheory is the integer arithmetic collaborator providing bounds and
// equivalence-class values for length and index terms.
type ArithTheory interface {
	// LowerBound returns the current lower bound on integer term e, and
	// whether one is known.
	LowerBound(e *Term) (int64, bool)

	// UpperBound returns the current upper bound on integer term e, and
	// whether one is known.
	UpperBound(e *Term) (int64, bool)

	// Value returns the fixed numeric value of e's equivalence class, if
	// arithmetic has already determined one.
	Value(e *Term) (int64, bool)

	// AssertBound proposes a bound (bound <= e when isLower, else
	// e <= bound) as a theory axiom.
	AssertBound(e *Term, bound int64, isLower bool, dep *Dependency) error
}

// AxiomSink is the external axiom module: it "emits canonical clauses for
// named operators... the core calls it by name but the axiom shapes
// themselves are external" (spec.md section 1). The core's own axioms.go
// implements the *calling* convention (which named axiom to emit, with
// which arguments, under which dependency); AxiomSink is where those
// calls land. A production build wires this to the SAT engine's clause
// pool; tests and the demo CLI wire it to an in-memory recorder
// (internal/stub).
type AxiomSink interface {
	// Emit records a clause named by the axiom family (e.g. "length",
	// "indexof", "replace", "extract", "at", "itos", "stoi", "lt", "le",
	// "unit", "prefix", "suffix", "nth", "accept", "step",
	// "not_contains") together with the literals composing it and the
	// dependency under which it is valid.
	Emit(family string, lits []Literal, dep *Dependency) error
}
