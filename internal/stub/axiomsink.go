package stub

import (
	"sync"

	"github.com/carlosolivasio/seqtheory/pkg/theory"
)

// Axiom is a single recorded clause emission, named by the axiom family
// that produced it.
type Axiom struct {
	Family string
	Lits   []theory.Literal
}

// AxiomSink records every clause the core's axiom module emits instead of
// routing it to a real SAT engine's clause pool, so tests and the demo
// CLI can assert on which axiom families fired.
type AxiomSink struct {
	mu     sync.Mutex
	axioms []Axiom
}

// NewAxiomSink creates an empty recorder.
func NewAxiomSink() *AxiomSink {
	return &AxiomSink{}
}

// Emit records family and lits.
func (a *AxiomSink) Emit(family string, lits []theory.Literal, dep *theory.Dependency) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := append([]theory.Literal(nil), lits...)
	a.axioms = append(a.axioms, Axiom{Family: family, Lits: cp})
	return nil
}

// Axioms returns a snapshot of every axiom recorded so far.
func (a *AxiomSink) Axioms() []Axiom {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Axiom, len(a.axioms))
	copy(out, a.axioms)
	return out
}

// CountFamily returns how many times family was emitted.
func (a *AxiomSink) CountFamily(family string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, ax := range a.axioms {
		if ax.Family == family {
			n++
		}
	}
	return n
}
