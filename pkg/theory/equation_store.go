package theory

// Equation is a structured equation (id, lhs, rhs, dep) whose both sides
// are ordered lists of sequence terms whose concatenation must be equal
// (spec.md section 3). The fresh monotone id orders processing, which
// matters because the pipeline's rule order is the problem's tie-break
// for divergence avoidance (spec.md section 4.4).
type Equation struct {
	ID  int64
	Lhs []*Term
	Rhs []*Term
	Dep *Dependency
}

// Pair packs an equation pair produced by a Disequation's partition list
// -- sub-equations that would have to hold simultaneously for the
// disequality to be violated.
type Pair struct {
	Lhs, Rhs *Term
}

// Disequation is (lhs, rhs, dep, literals, partitions): the disequality is
// violated iff every partition pair holds and every literal is true
// (spec.md section 3).
type Disequation struct {
	ID         int64
	Lhs, Rhs   *Term
	Dep        *Dependency
	Literals   []Literal
	Partitions []Pair
}

// NotContains is a negative contains constraint: (contains_expr,
// len_gt_literal, dep). LenGT is the literal asserting |hay| > |needle|
// whose truth value controls unfolding (spec.md section 3).
type NotContains struct {
	ID       int64
	Haystack *Term
	Needle   *Term
	LenGT    Literal
	Dep      *Dependency
}

// EquationStore is the trail-backed stack of pending equations, plus a
// fresh-id counter shared with disequations and not-contains constraints
// so all three can be ordered consistently across a run.
type EquationStore struct {
	trail   *Trail
	nextID  int64
	eqs     []*Equation
	diseqs  []*Disequation
	nots    []*NotContains
}

// NewEquationStore creates an empty, trailed equation/disequation/
// not-contains store triple. Spec.md keeps these as three separate
// entities (section 3); they are grouped into one Go type only because
// they share the same fresh-id sequence and the same push/pop lifecycle
// (section 5 lists them as siblings stamped together).
func NewEquationStore(t *Trail) *EquationStore {
	return &EquationStore{trail: t}
}

func (s *EquationStore) freshID() int64 {
	s.nextID++
	return s.nextID
}

// PushEquation enqueues a pending sequence equation and returns it.
func (s *EquationStore) PushEquation(lhs, rhs []*Term, dep *Dependency) *Equation {
	eq := &Equation{ID: s.freshID(), Lhs: lhs, Rhs: rhs, Dep: dep}
	s.eqs = append(s.eqs, eq)
	n := len(s.eqs)
	s.trail.Record(func() { s.eqs = s.eqs[:n-1] })
	return eq
}

// PushDisequation enqueues a pending disequation.
func (s *EquationStore) PushDisequation(lhs, rhs *Term, dep *Dependency, lits []Literal) *Disequation {
	d := &Disequation{ID: s.freshID(), Lhs: lhs, Rhs: rhs, Dep: dep, Literals: lits}
	s.diseqs = append(s.diseqs, d)
	n := len(s.diseqs)
	s.trail.Record(func() { s.diseqs = s.diseqs[:n-1] })
	return d
}

// PushNotContains enqueues a pending not-contains constraint.
func (s *EquationStore) PushNotContains(hay, needle *Term, lenGT Literal, dep *Dependency) *NotContains {
	nc := &NotContains{ID: s.freshID(), Haystack: hay, Needle: needle, LenGT: lenGT, Dep: dep}
	s.nots = append(s.nots, nc)
	n := len(s.nots)
	s.trail.Record(func() { s.nots = s.nots[:n-1] })
	return nc
}

// Equations returns the live pending equations in id order.
func (s *EquationStore) Equations() []*Equation { return s.eqs }

// Disequations returns the live pending disequations in id order.
func (s *EquationStore) Disequations() []*Disequation { return s.diseqs }

// NotContainsConstraints returns the live pending not-contains
// constraints in id order.
func (s *EquationStore) NotContainsConstraints() []*NotContains { return s.nots }

// RemoveEquation removes eq from the pending set. Used once an equation
// has been fully solved (simplify_and_solve_eqs drains it to nothing) or
// superseded by its own sub-equations.
func (s *EquationStore) RemoveEquation(eq *Equation) {
	s.removeEq(eq.ID)
}

func (s *EquationStore) removeEq(id int64) {
	for i, e := range s.eqs {
		if e.ID == id {
			removed := e
			idx := i
			s.eqs = append(s.eqs[:i:i], s.eqs[i+1:]...)
			s.trail.Record(func() {
				s.eqs = append(s.eqs[:idx:idx], append([]*Equation{removed}, s.eqs[idx:]...)...)
			})
			return
		}
	}
}

// RemoveDisequation removes d from the pending set, used once it has been
// resolved (its negation is a conflict, or one of its literals is false).
func (s *EquationStore) RemoveDisequation(d *Disequation) {
	for i, e := range s.diseqs {
		if e.ID == d.ID {
			removed := e
			idx := i
			s.diseqs = append(s.diseqs[:i:i], s.diseqs[i+1:]...)
			s.trail.Record(func() {
				s.diseqs = append(s.diseqs[:idx:idx], append([]*Disequation{removed}, s.diseqs[idx:]...)...)
			})
			return
		}
	}
}

// RemoveNotContains removes nc from the pending set once solve_nc has
// fully unrolled it.
func (s *EquationStore) RemoveNotContains(nc *NotContains) {
	for i, e := range s.nots {
		if e.ID == nc.ID {
			removed := e
			idx := i
			s.nots = append(s.nots[:i:i], s.nots[i+1:]...)
			s.trail.Record(func() {
				s.nots = append(s.nots[:idx:idx], append([]*NotContains{removed}, s.nots[idx:]...)...)
			})
			return
		}
	}
}

// Empty reports whether every store is drained, one of the preconditions
// of is_solved (spec.md section 4.4 rule 15).
func (s *EquationStore) Empty() bool {
	return len(s.eqs) == 0 && len(s.diseqs) == 0 && len(s.nots) == 0
}
