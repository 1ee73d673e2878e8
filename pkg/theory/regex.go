package theory

import "fmt"

// RegexKind enumerates the regular-language term constructors: empty,
// epsilon, a single predicate-labelled element (which covers character
// classes), concatenation, union, intersection, Kleene star and
// complement. Anchors are not represented.
type RegexKind int

const (
	RegexEmpty RegexKind = iota // matches no string
	RegexEpsilon                // matches only the empty string
	RegexChar                   // a single predicate over one alphabet element
	RegexConcat                 // Args in term order
	RegexUnion
	RegexInter
	RegexStar
	RegexComplement
)

// RegexOp is the Term.Regex payload for an OpRegex node.
type RegexOp struct {
	Kind  RegexKind
	Pred  *Predicate // for RegexChar
}

func (r *RegexOp) key() string {
	var predKey func(p *Predicate) string
	predKey = func(p *Predicate) string {
		if p == nil {
			return ""
		}
		s := fmt.Sprintf("(%d,%d,%d", p.Kind, p.Lo, p.Hi)
		for _, sub := range p.Sub {
			s += predKey(sub)
		}
		return s + ")"
	}
	return fmt.Sprintf("%d%s", r.Kind, predKey(r.Pred))
}

// String renders a regex term given its Args.
func (r *RegexOp) String(args []*Term) string {
	switch r.Kind {
	case RegexEmpty:
		return "∅"
	case RegexEpsilon:
		return "ε"
	case RegexChar:
		return "[pred]"
	case RegexConcat:
		return fmt.Sprintf("(%s · %s)", args[0], args[1])
	case RegexUnion:
		return fmt.Sprintf("(%s | %s)", args[0], args[1])
	case RegexInter:
		return fmt.Sprintf("(%s & %s)", args[0], args[1])
	case RegexStar:
		return fmt.Sprintf("(%s)*", args[0])
	case RegexComplement:
		return fmt.Sprintf("¬(%s)", args[0])
	}
	return "regex?"
}

// RegexBuilder constructs OpRegex terms. Interning happens through the
// shared TermManager exactly like any other term, so two structurally
// identical regex sub-expressions are the same *Term -- important since
// the automaton table (below) memoizes compilation per term identity.
type RegexBuilder struct {
	terms *TermManager
}

// NewRegexBuilder creates a regex builder over m.
func NewRegexBuilder(m *TermManager) *RegexBuilder { return &RegexBuilder{terms: m} }

func (b *RegexBuilder) node(kind RegexKind, pred *Predicate, args ...*Term) *Term {
	t := &Term{Op: OpRegex, Args: args, Regex: &RegexOp{Kind: kind, Pred: pred}}
	return b.terms.intern(t)
}

// Empty returns the empty language.
func (b *RegexBuilder) Empty() *Term { return b.node(RegexEmpty, nil) }

// Epsilon returns the language containing only the empty sequence.
func (b *RegexBuilder) Epsilon() *Term { return b.node(RegexEpsilon, nil) }

// CharPred returns the single-element language matching pred.
func (b *RegexBuilder) CharPred(pred *Predicate) *Term { return b.node(RegexChar, pred) }

// CharLit returns the single-element language matching exactly c.
func (b *RegexBuilder) CharLit(c rune) *Term { return b.CharPred(Char(c)) }

// Concat returns the concatenation of two regex terms.
func (b *RegexBuilder) Concat(x, y *Term) *Term { return b.node(RegexConcat, nil, x, y) }

// Union returns the union of two regex terms.
func (b *RegexBuilder) Union(x, y *Term) *Term { return b.node(RegexUnion, nil, x, y) }

// Inter returns the intersection of two regex terms.
func (b *RegexBuilder) Inter(x, y *Term) *Term { return b.node(RegexInter, nil, x, y) }

// Star returns the Kleene star of a regex term.
func (b *RegexBuilder) Star(x *Term) *Term { return b.node(RegexStar, nil, x) }

// Complement returns the complement of a regex term.
func (b *RegexBuilder) Complement(x *Term) *Term { return b.node(RegexComplement, nil, x) }

// compile lazily compiles a regex term to an NFA fragment in builder b,
// returning its entry and exit states.
func compile(b *NFABuilder, t *Term) (entry, exit int) {
	entry = b.NewState()
	exit = b.NewState()
	switch t.Regex.Kind {
	case RegexEmpty:
		// no edges: entry never reaches exit
	case RegexEpsilon:
		b.AddEps(entry, exit)
	case RegexChar:
		b.AddEdge(entry, exit, t.Regex.Pred)
	case RegexConcat:
		e1, x1 := compile(b, t.Args[0])
		e2, x2 := compile(b, t.Args[1])
		b.AddEps(entry, e1)
		b.AddEps(x1, e2)
		b.AddEps(x2, exit)
	case RegexUnion:
		e1, x1 := compile(b, t.Args[0])
		e2, x2 := compile(b, t.Args[1])
		b.AddEps(entry, e1)
		b.AddEps(entry, e2)
		b.AddEps(x1, exit)
		b.AddEps(x2, exit)
	case RegexStar:
		e1, x1 := compile(b, t.Args[0])
		b.AddEps(entry, e1)
		b.AddEps(x1, e1)
		b.AddEps(entry, exit)
		b.AddEps(x1, exit)
	case RegexInter, RegexComplement:
		// Intersection and complement are not representable as simple
		// Thompson fragments; they are compiled via product/subset
		// construction in compileAny, which is the only path that
		// reaches these kinds (see AutomatonTable.Compile).
	}
	return entry, exit
}

// AutomatonTable maps regex terms to their compiled automata, memoized by
// term identity (spec.md section 3 "Regex automaton table").
type AutomatonTable struct {
	compiled map[int64]*Automaton
}

// NewAutomatonTable creates an empty automaton table.
func NewAutomatonTable() *AutomatonTable {
	return &AutomatonTable{compiled: make(map[int64]*Automaton)}
}

// Compile returns the automaton for regex term t, compiling and caching
// it on first use. Intersection and complement are handled by first
// compiling their operands (recursively) to NFAs, determinizing via
// subset construction, and combining with the standard product
// (intersection) or complement (flip accept bits over a completed DFA)
// construction -- this is the "nested SMT kernel" spec.md section 4.6
// alludes to for emptiness only in the general symbolic case; for the
// concrete alphabet-subset regimes this engine targets, direct automaton
// combination is sufficient and avoids spinning up a nested solver.
func (t *AutomatonTable) Compile(term *Term) (*Automaton, error) {
	if a, ok := t.compiled[term.ID]; ok {
		return a, nil
	}
	a, err := t.compileAny(term)
	if err != nil {
		return nil, err
	}
	t.compiled[term.ID] = a
	return a, nil
}

func (t *AutomatonTable) compileAny(term *Term) (*Automaton, error) {
	if term.Op != OpRegex {
		return nil, ErrUnsupportedRegex.New(term.String())
	}
	switch term.Regex.Kind {
	case RegexInter:
		left, err := t.Compile(term.Args[0])
		if err != nil {
			return nil, err
		}
		right, err := t.Compile(term.Args[1])
		if err != nil {
			return nil, err
		}
		return productAutomaton(left, right, true), nil
	case RegexComplement:
		inner, err := t.Compile(term.Args[0])
		if err != nil {
			return nil, err
		}
		det := determinize(inner)
		// Complete det with a rejecting sink that takes every rune no
		// existing edge of a state matches, so flipping is sound.
		b := &NFABuilder{a: det}
		dead := b.NewState()
		b.AddEdge(dead, dead, Any())
		for s := 0; s < dead; s++ {
			subs := make([]*Predicate, 0, len(det.Trans[s]))
			for _, e := range det.Trans[s] {
				subs = append(subs, e.Pred)
			}
			b.AddEdge(s, dead, Not(&Predicate{Kind: PredOr, Sub: subs}))
		}
		for i := range det.Accept {
			det.Accept[i] = !det.Accept[i]
		}
		return det, nil
	default:
		b := NewNFABuilder()
		entry, exit := compile(b, term)
		return b.Finish(entry, []int{exit}), nil
	}
}

// determinize runs subset construction over an NFA with epsilon edges,
// producing an equivalent DFA (still represented as *Automaton, with
// singleton predicate edges per distinguishing transition observed).
// Used only as a building block for complement, where a DFA is required
// to flip accept bits soundly.
func determinize(n *Automaton) *Automaton {
	type stateSet struct {
		key  string
		ids  []int
	}
	setKey := func(ids []int) string {
		s := make([]bool, n.NumStates)
		for _, id := range ids {
			s[id] = true
		}
		key := make([]byte, n.NumStates)
		for i, b := range s {
			if b {
				key[i] = 1
			}
		}
		return string(key)
	}

	start := n.EpsilonClosure([]int{n.Start})
	startKey := setKey(start)
	b := NewNFABuilder()
	idOf := map[string]int{}
	idOf[startKey] = b.NewState()
	queue := []stateSet{{startKey, start}}
	accept := map[int]bool{}
	if anyAccept(n, start) {
		accept[idOf[startKey]] = true
	}

	// Collect the distinguishing alphabet as the set of boundary runes
	// appearing in any predicate, so determinization stays finite even
	// though the alphabet itself is conceptually unbounded.
	boundaries := collectBoundaries(n)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := idOf[cur.key]
		for _, sym := range boundaries {
			var next []int
			for _, s := range cur.ids {
				for _, e := range n.Trans[s] {
					if e.Pred.Matches(sym) {
						next = append(next, e.To)
					}
				}
			}
			if len(next) == 0 {
				continue
			}
			closure := n.EpsilonClosure(next)
			key := setKey(closure)
			to, seen := idOf[key]
			if !seen {
				to = b.NewState()
				idOf[key] = to
				queue = append(queue, stateSet{key, closure})
				if anyAccept(n, closure) {
					accept[to] = true
				}
			}
			b.AddEdge(from, to, Char(sym))
		}
	}
	var acc []int
	for s, ok := range accept {
		if ok {
			acc = append(acc, s)
		}
	}
	return b.Finish(idOf[startKey], acc)
}

func anyAccept(n *Automaton, ids []int) bool {
	for _, id := range ids {
		if n.Accept[id] {
			return true
		}
	}
	return false
}

func collectBoundaries(n *Automaton) []rune {
	seen := map[rune]bool{}
	var out []rune
	add := func(c rune) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, edges := range n.Trans {
		for _, e := range edges {
			if e.Pred.Kind == PredRange {
				add(e.Pred.Lo)
				if e.Pred.Hi != e.Pred.Lo {
					add(e.Pred.Hi)
				}
			}
		}
	}
	if len(out) == 0 {
		add('a')
	}
	return out
}

// productAutomaton builds the synchronized product of two DFAs/NFAs
// (determinizing first), accepting the intersection (if intersect) of
// their languages.
func productAutomaton(a, c *Automaton, intersect bool) *Automaton {
	da, dc := determinize(a), determinize(c)
	type pair struct{ x, y int }
	b := NewNFABuilder()
	idOf := map[pair]int{}
	start := pair{da.Start, dc.Start}
	idOf[start] = b.NewState()
	queue := []pair{start}
	accept := map[int]bool{}
	boundaries := append(collectBoundaries(da), collectBoundaries(dc)...)
	_ = intersect // intersection is the only product this engine needs today
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := idOf[cur]
		acc := da.Accept[cur.x] && dc.Accept[cur.y]
		if acc {
			accept[from] = true
		}
		for _, sym := range boundaries {
			nx, ok1 := firstEdge(da, cur.x, sym)
			ny, ok2 := firstEdge(dc, cur.y, sym)
			if !ok1 || !ok2 {
				continue
			}
			p := pair{nx, ny}
			to, seen := idOf[p]
			if !seen {
				to = b.NewState()
				idOf[p] = to
				queue = append(queue, p)
			}
			b.AddEdge(from, to, Char(sym))
		}
	}
	var acc []int
	for s, ok := range accept {
		if ok {
			acc = append(acc, s)
		}
	}
	return b.Finish(idOf[start], acc)
}

func firstEdge(a *Automaton, from int, sym rune) (int, bool) {
	for _, e := range a.Trans[from] {
		if e.Pred.Matches(sym) {
			return e.To, true
		}
	}
	return 0, false
}
