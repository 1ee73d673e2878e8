// Package stub provides in-memory implementations of the collaborator
// interfaces pkg/theory/external.go declares (SATEngine, ArithTheory,
// EqualityGraph, AxiomSink). Nothing here is a real constraint solver --
// each type does only the bookkeeping a single scenario run or test case
// needs, the same role the teacher's recorder/fixture types (e.g. the
// in-memory goal environments used across its test suite) play for
// exercising a collaborator boundary without standing up the real thing.
package stub

import (
	"sync"

	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

// SAT is a minimal boolean-literal store: it has no search of its own,
// only assignment bookkeeping and trivial unit propagation, enough to
// drive pkg/theory.Engine.FinalCheck through a fixed scenario.
type SAT struct {
	mu       sync.Mutex
	nextLit  int64
	assigned map[theory.Literal]bool
	clauses  [][]theory.Literal
}

// NewSAT creates an empty literal store.
func NewSAT() *SAT {
	return &SAT{assigned: make(map[theory.Literal]bool)}
}

// Value returns the current truth value of lit, propagating through the
// sign convention Literal.Negate documents (a negative literal is the
// complement of its positive counterpart).
func (s *SAT) Value(lit theory.Literal) theory.TriState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked(lit)
}

func (s *SAT) valueLocked(lit theory.Literal) theory.TriState {
	if lit < 0 {
		switch s.rawValueLocked(-lit) {
		case theory.True:
			return theory.False
		case theory.False:
			return theory.True
		default:
			return theory.Undef
		}
	}
	return s.rawValueLocked(lit)
}

func (s *SAT) rawValueLocked(lit theory.Literal) theory.TriState {
	v, ok := s.assigned[lit]
	if !ok {
		return theory.Undef
	}
	if v {
		return theory.True
	}
	return theory.False
}

// Assign forces lit true, for scenario setup code that wants to decide a
// branch literal before calling FinalCheck.
func (s *SAT) Assign(lit theory.Literal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignLocked(lit)
}

func (s *SAT) assignLocked(lit theory.Literal) {
	if lit < 0 {
		s.assigned[-lit] = false
		return
	}
	s.assigned[lit] = true
}

// AssignLiteral proposes lit true under justification just. The stub
// applies the assignment directly, ignoring just: it has no conflict
// analysis to re-derive it from.
func (s *SAT) AssignLiteral(lit theory.Literal, just theory.LinDep) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignLocked(lit)
	return nil
}

// AddClause records a clause and, when it is a unit clause, immediately
// assigns its one literal -- the only propagation this stub performs.
func (s *SAT) AddClause(lits ...theory.Literal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cl := append([]theory.Literal(nil), lits...)
	s.clauses = append(s.clauses, cl)
	if len(cl) == 1 {
		s.assignLocked(cl[0])
	}
	return nil
}

// FreshLiteral allocates a new, as yet unassigned literal.
func (s *SAT) FreshLiteral() theory.Literal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextLit++
	return theory.Literal(s.nextLit)
}

// Clauses returns a snapshot of every clause recorded so far, for test
// assertions and the demo CLI's verbose output.
func (s *SAT) Clauses() [][]theory.Literal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]theory.Literal, len(s.clauses))
	copy(out, s.clauses)
	return out
}
