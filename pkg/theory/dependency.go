package theory

// Literal is an opaque boolean-literal identifier owned by the external
// SAT engine. A negative value denotes the negation of the literal with
// the corresponding positive id, matching the usual DIMACS convention the
// SAT engine collaborator is expected to follow.
type Literal int64

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

// NodeID is an opaque equality-graph node identifier owned by the
// external ground term manager.
type NodeID int64

// NodePair is an unordered pair of enode ids asserted equal.
type NodePair struct {
	A, B NodeID
}

// depKind distinguishes Dependency DAG node shapes.
type depKind int

const (
	depNil depKind = iota
	depLeafLit
	depLeafEq
	depJoin
)

// Dependency is a DAG whose leaves are assumptions -- a currently-true
// boolean literal or a known equenode pair -- and whose internal nodes are
// binary joins. It carries exactly the information content of its leaf
// set; Linearize flattens it to that set. Dependencies are immutable and
// safe to share; building one never mutates an existing one, so a
// Dependency computed before a push remains valid (if its own leaves
// remain assigned) after a pop.
type Dependency struct {
	kind       depKind
	lit        Literal
	n1, n2     NodeID
	left, right *Dependency
}

// Leaf creates a dependency leaf from a currently-asserted boolean
// literal.
func Leaf(lit Literal) *Dependency {
	return &Dependency{kind: depLeafLit, lit: lit}
}

// LeafEq creates a dependency leaf from a known enode equality.
func LeafEq(a, b NodeID) *Dependency {
	return &Dependency{kind: depLeafEq, n1: a, n2: b}
}

// Join combines two dependencies. Join is commutative in information
// content (linearization dedups) and nil is the identity element, so
// Join(nil, d) == d and Join(d, nil) == d without allocating a new node.
func Join(d1, d2 *Dependency) *Dependency {
	if d1 == nil {
		return d2
	}
	if d2 == nil {
		return d1
	}
	return &Dependency{kind: depJoin, left: d1, right: d2}
}

// LinDep is the flattened, deduplicated leaf set of a Dependency.
type LinDep struct {
	Lits []Literal
	Eqs  []NodePair
}

// Linearize flattens d to its leaf set. The precondition (spec.md section
// 4.1) is that every literal leaf is currently assigned true in the SAT
// context; Linearize itself does not check this.
func (d *Dependency) Linearize() LinDep {
	var out LinDep
	seenLit := make(map[Literal]bool)
	seenEq := make(map[NodePair]bool)
	var walk func(*Dependency)
	walk = func(n *Dependency) {
		if n == nil {
			return
		}
		switch n.kind {
		case depLeafLit:
			if !seenLit[n.lit] {
				seenLit[n.lit] = true
				out.Lits = append(out.Lits, n.lit)
			}
		case depLeafEq:
			p := NodePair{A: n.n1, B: n.n2}
			if p.A > p.B {
				p.A, p.B = p.B, p.A
			}
			if !seenEq[p] {
				seenEq[p] = true
				out.Eqs = append(out.Eqs, p)
			}
		case depJoin:
			walk(n.left)
			walk(n.right)
		}
	}
	walk(d)
	return out
}

// IsEmpty reports whether d carries no leaves at all.
func (d *Dependency) IsEmpty() bool {
	return d == nil
}
