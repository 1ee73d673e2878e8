package theory

// This file implements the regex-membership propagation spec.md section
// 4.6 describes as propagate_accept/propagate_step: once a term is
// constrained by s in R, the automaton compiled for R drives incremental
// unfolding of the accept(s, i, R, q) Skolem predicate.
//
// Full symbolic unfolding (deriving a disjunctive case split over every
// outgoing transition of the current state, each guarded by its own
// step(...) predicate and a fresh decision literal) is the general
// algorithm; this engine instantiates it fully once s is ground
// (canonizes to a literal sequence), where the automaton can simply be
// walked to a yes/no answer. When s is not yet ground but its overall
// length has been pinned to a known constant (fixedLength/
// checkLengthCoherence's rule 5/12 decompositions produce exactly this
// shape), propagateAutomata falls back to a bounded reachability check:
// if no sequence of exactly the remaining length can reach an accepting
// state from the current automaton state, accept(...) is forced false
// regardless of which characters the still-unbound positions end up
// taking. This is sound in one direction only -- reachability existing
// does not mean every assignment accepts, so a positive reachability
// result is left pending rather than forced true. The symbolic case
// beyond this (deriving a genuine case split per transition) is left
// pending, matching the rest of this cascade's documented limitations
// (DESIGN.md).

// acceptObligation pairs an accept(...) Skolem term with the dependency
// that justified asserting its owning membership in the first place, so
// propagateAutomata can still report a sound justification once it
// decides the term, long after the defining equation that introduced it
// has been solved away.
type acceptObligation struct {
	accept *Term
	dep    *Dependency
}

// initialStateAxiom wires a fresh s in R obligation: it defines
// member(s, R) to equal accept(s, 0, R, q0), where q0 is R's compiled
// automaton start state, recorded both as a pending equation (for
// simplify_and_solve_eqs's ordinary bookkeeping) and directly in the
// solution map, since Canonizer.Canonize only ever follows the solution
// map and member=accept's defining equation is solved away (lhs and rhs
// cancel to nothing) the moment member canonizes to exactly accept(...),
// typically within the same round it is asserted -- well before
// propagateAutomata gets a turn to decide accept(...) itself. accept is
// additionally queued on acceptQueue so propagateAutomata keeps a
// durable handle on the obligation regardless of what happens to the
// equation that first introduced it.
func (e *Engine) initialStateAxiom(s, regex *Term, dep *Dependency) error {
	automaton, err := e.Automata.Compile(regex)
	if err != nil {
		return err
	}
	accept := e.Skolem.Accept(s, e.Terms.IntLit(0), regex, automaton.Start)
	member := e.Terms.App(OpMember, s, regex)
	e.Eqs.PushEquation([]*Term{member}, []*Term{accept}, dep)
	if e.Sol.IsRoot(member) {
		e.Sol.Update(member, accept, dep)
	}
	if !e.regexLitsIssued[accept.ID] {
		e.regexLitsIssued[accept.ID] = true
		e.acceptQueue = append(e.acceptQueue, acceptObligation{accept: accept, dep: dep})
		id := accept.ID
		e.trail.Record(func() {
			delete(e.regexLitsIssued, id)
			e.acceptQueue = e.acceptQueue[:len(e.acceptQueue)-1]
		})
	}
	e.Stats.PropagateAutomata++
	return nil
}

// propagateAutomata implements propagate_accept for the ground case: it
// takes the first still-undecided accept(s, i, R, q) obligation in
// acceptQueue and, if its s canonizes to a literal sequence, walks the
// automaton over the suffix s[i:] to decide true/false. When s is not
// ground but its length is pinned, the bounded-reachability fallback
// documented at the top of this file applies instead. Obligations after
// the first undecided one are not examined in the same call.
func (e *Engine) propagateAutomata() (bool, *Dependency, error) {
	var found *Term
	var foundDep *Dependency
	for _, ob := range e.acceptQueue {
		if !e.Sol.IsRoot(ob.accept) {
			continue // already decided by an earlier round
		}
		found = ob.accept
		foundDep = ob.dep
		break
	}
	if found == nil {
		return false, nil, nil
	}

	s, i, regex, stateTerm := found.Args[0], found.Args[1], found.Args[2], found.Args[3]
	automaton, err := e.Automata.Compile(regex)
	if err != nil {
		return false, nil, err
	}
	from := int(i.Num)

	sn, sd := e.Canon.Canonize(s)
	if lit, ok := asLiteral(sn); ok {
		rs := []rune(lit)
		if from > len(rs) {
			from = len(rs)
		}
		accepted := automaton.Accepts(string(rs[from:]))
		dep := Join(foundDep, sd)
		verdict := e.Terms.BoolLit(accepted)
		e.Eqs.PushEquation([]*Term{found}, []*Term{verdict}, dep)
		if conflict := e.bindBoolAtom(found, verdict, dep); conflict != nil {
			return false, conflict, nil
		}
		e.Stats.PropagateAutomata++
		return true, nil, nil
	}

	if n, ok := e.arith.Value(e.Terms.App(OpLength, s)); ok {
		remaining := n - int64(from)
		if remaining >= 0 && !automaton.ReachableAcceptInExactly([]int{int(stateTerm.Num)}, int(remaining)) {
			verdict := e.Terms.BoolLit(false)
			e.Eqs.PushEquation([]*Term{found}, []*Term{verdict}, foundDep)
			if conflict := e.bindBoolAtom(found, verdict, foundDep); conflict != nil {
				return false, conflict, nil
			}
			e.Stats.PropagateAutomata++
			return true, nil, nil
		}
	}
	return false, nil, nil
}

// bindBoolAtom binds a ground boolean-sorted atom (here, always an
// accept(...) Skolem term) to verdict in the solution map, the same
// direct-bind idiom fixedLength/checkLengthCoherence use for their own
// domains (pipeline.go) -- Canonizer.Canonize only ever follows the
// solution map, so without this the verdicts propagateAutomata derives
// would never surface through Canonize. If atom is already bound to the
// opposite ground literal, that prior binding's dependency is returned as
// a conflict instead of silently overwriting it.
func (e *Engine) bindBoolAtom(atom, verdict *Term, dep *Dependency) *Dependency {
	if !e.Sol.IsRoot(atom) {
		cur, curDep := e.Sol.Find(atom)
		if cur.Op == OpBoolLit && cur.Num != verdict.Num {
			return Join(dep, curDep)
		}
		return nil
	}
	e.Sol.Update(atom, verdict, dep)
	return nil
}
