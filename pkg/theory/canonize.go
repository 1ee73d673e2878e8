package theory

// canonResult is the cached (output, dep) pair for one canonize() call.
type canonResult struct {
	out *Term
	dep *Dependency
}

// Canonizer recursively replaces sub-terms using the solution map,
// applies the term rewriter, and caches the normal form per term together
// with the accumulated justification (spec.md section 4.3).
type Canonizer struct {
	terms *TermManager
	sol   *SolutionMap
	rw    *TermRewriter
	sat   SATEngine
	cache map[int64]canonResult
	// iteCond, when non-nil, is called to resolve an ITE condition's
	// current truth value; wired to the SAT engine in Engine.
	iteCond func(*Term) TriState
}

// NewCanonizer creates a canonizer over the given solution map and
// rewriter.
func NewCanonizer(terms *TermManager, sol *SolutionMap, rw *TermRewriter) *Canonizer {
	return &Canonizer{terms: terms, sol: sol, rw: rw, cache: make(map[int64]canonResult)}
}

// ClearCache drops the canonize memo. The engine calls this whenever the
// solution map mutates, since a stale cached normal form would otherwise
// survive a solution-map update that should have changed it.
func (c *Canonizer) ClearCache() {
	c.cache = make(map[int64]canonResult)
}

// Canonize rewrites e to normal form, returning the result and the
// dependency it relies on. Steps, per spec.md section 4.3:
//  1. cache hit short-circuits;
//  2. otherwise each child is recursively canonized and the same-operator
//     node is rebuilt over the normalized children;
//  3. ITE with a decided condition selects a branch, folding the
//     condition literal into the dependency; undecided defers by
//     returning the ITE unresolved (its condition is "relevant");
//  4. the rewriter is applied to the rebuilt node;
//  5. the cache is populated with (input, output, dep).
func (c *Canonizer) Canonize(e *Term) (*Term, *Dependency) {
	if hit, ok := c.cache[e.ID]; ok {
		return hit.out, hit.dep
	}

	var dep *Dependency

	// Step through the solution map first, the way find() is described to
	// interact with canonize in spec.md section 4.2/4.3: a root term with
	// no entry canonizes its children directly; a non-root term adopts the
	// dependency of its solution-map chain in addition to its own
	// recursive expansion.
	if !c.sol.IsRoot(e) {
		rhs, sdep := c.sol.Find(e)
		out, rdep := c.Canonize(rhs)
		dep = Join(sdep, rdep)
		c.cache[e.ID] = canonResult{out, dep}
		return out, dep
	}

	if e.Op == OpIte {
		cond, then, els := e.Args[0], e.Args[1], e.Args[2]
		condN, condDep := c.Canonize(cond)
		if c.iteCond != nil {
			switch c.iteCond(condN) {
			case True:
				out, d := c.Canonize(then)
				dep = Join(Join(condDep, d), Leaf(Literal(condN.ID)))
				result := canonResult{out, dep}
				c.cache[e.ID] = result
				return out, dep
			case False:
				out, d := c.Canonize(els)
				dep = Join(Join(condDep, d), Leaf(Literal(condN.ID).Negate()))
				result := canonResult{out, dep}
				c.cache[e.ID] = result
				return out, dep
			}
		}
		// Undef: the condition is relevant but undecided; defer by
		// returning the (children-canonized) ITE itself, unresolved.
		thenN, thenDep := c.Canonize(then)
		elsN, elsDep := c.Canonize(els)
		out := c.terms.App(OpIte, condN, thenN, elsN)
		dep = Join(condDep, Join(thenDep, elsDep))
		c.cache[e.ID] = canonResult{out, dep}
		return out, dep
	}

	if len(e.Args) == 0 {
		out := c.rw.Rewrite(e)
		c.cache[e.ID] = canonResult{out, nil}
		return out, nil
	}

	children := make([]*Term, len(e.Args))
	for i, a := range e.Args {
		cn, cd := c.Canonize(a)
		children[i] = cn
		dep = Join(dep, cd)
	}
	rebuilt := rebuildWithArgs(c.terms, e, children)
	out := c.rw.Rewrite(rebuilt)
	c.cache[e.ID] = canonResult{out, dep}
	return out, dep
}

// rebuildWithArgs reconstructs e's operator node over newArgs, using the
// term manager's smart constructors where one exists (Concat flattens and
// folds epsilon) and the generic App constructor otherwise.
func rebuildWithArgs(m *TermManager, e *Term, newArgs []*Term) *Term {
	switch e.Op {
	case OpConcat:
		return m.Concat(newArgs...)
	case OpSkolem:
		return m.Skol(e.Skolem, newArgs...)
	case OpRegex:
		t := &Term{Op: OpRegex, Args: newArgs, Regex: e.Regex}
		return m.intern(t)
	default:
		return m.App(e.Op, newArgs...)
	}
}
