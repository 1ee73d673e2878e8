package stub

import (
	"sync"

	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

// Arith is a minimal integer-theory stand-in: it stores bounds and fixed
// values per term identity, with no propagation of its own. Values are
// set through SetValue and bounds through AssertBound; the engine reads
// them back through LowerBound/UpperBound/Value.
type Arith struct {
	mu     sync.Mutex
	values map[int64]int64
	lower  map[int64]int64
	upper  map[int64]int64
}

// NewArith creates an empty bound/value store.
func NewArith() *Arith {
	return &Arith{
		values: make(map[int64]int64),
		lower:  make(map[int64]int64),
		upper:  make(map[int64]int64),
	}
}

// LowerBound returns the known lower bound on e, if any.
func (a *Arith) LowerBound(e *theory.Term) (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.lower[e.ID]
	return v, ok
}

// UpperBound returns the known upper bound on e, if any.
func (a *Arith) UpperBound(e *theory.Term) (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.upper[e.ID]
	return v, ok
}

// Value returns the fixed value of e's equivalence class, if one has
// been set.
func (a *Arith) Value(e *theory.Term) (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.values[e.ID]
	return v, ok
}

// AssertBound records a proposed bound on e.
func (a *Arith) AssertBound(e *theory.Term, bound int64, isLower bool, dep *theory.Dependency) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if isLower {
		a.lower[e.ID] = bound
	} else {
		a.upper[e.ID] = bound
	}
	return nil
}

// SetValue fixes e's equivalence-class value, for scenario setup (e.g.
// pinning a length term to a concrete integer before FinalCheck).
func (a *Arith) SetValue(e *theory.Term, v int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[e.ID] = v
	a.lower[e.ID] = v
	a.upper[e.ID] = v
}
