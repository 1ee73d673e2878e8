package theory

import (
	"fmt"
	"strings"
	"sync"
)

// Op enumerates the closed set of sequence-theory operators. Per the
// design note on deep dispatch (spec.md section 9), the operator
// enumeration is fixed at compile time and every traversal (canonize,
// add-axiom, relevant-eh, model construction) switches on Op directly --
// never through per-operator Go types dispatched behind an interface.
type Op int

const (
	// OpVar is a free sequence variable.
	OpVar Op = iota
	// OpEmpty is the empty sequence epsilon.
	OpEmpty
	// OpUnit lifts a single alphabet element (Term.Code) into a sequence.
	OpUnit
	// OpLiteral is a constant sequence (Term.Text holds its elements).
	OpLiteral
	// OpConcat is n-ary concatenation (Term.Args, left to right).
	OpConcat
	// OpLength is |s|, an integer-sorted term.
	OpLength
	// OpExtract is substr(s, i, l).
	OpExtract
	// OpAt is at(s, i): the length-1 (or empty) sequence at position i.
	OpAt
	// OpNth is nth(s, i): the alphabet element at position i.
	OpNth
	// OpContains is contains(s, t), boolean-sorted.
	OpContains
	// OpPrefix is prefix(t, s): t is a prefix of s.
	OpPrefix
	// OpSuffix is suffix(t, s): t is a suffix of s.
	OpSuffix
	// OpIndexOf is indexof(s, t, start), integer-sorted.
	OpIndexOf
	// OpReplace is replace(s, t, u): first occurrence of t in s replaced by u.
	OpReplace
	// OpItoS converts an integer term to its decimal sequence.
	OpItoS
	// OpStoI converts a sequence term to its integer value (-1 if not a
	// valid non-negative decimal literal).
	OpStoI
	// OpMember is s in R, boolean-sorted; Term.Args[1] is the regex term.
	OpMember
	// OpLt is strict lexicographic less-than.
	OpLt
	// OpLe is non-strict lexicographic less-or-equal.
	OpLe
	// OpIte is if-then-else; Args = [cond, then, else].
	OpIte

	// OpIntVar is a free integer variable (length/index arithmetic).
	OpIntVar
	// OpIntLit is an integer literal (Term.Num).
	OpIntLit
	// OpIntAdd is n-ary integer addition.
	OpIntAdd
	// OpIntNeg is integer negation.
	OpIntNeg
	// OpIntLt is integer strict less-than, boolean-sorted.
	OpIntLt
	// OpIntLe is integer non-strict less-or-equal, boolean-sorted.
	OpIntLe

	// OpBoolLit is a boolean constant, true or false (Term.Num != 0 means true).
	OpBoolLit

	// OpSkolem is an application of one of the named Skolem functions from
	// the Skolem module (skolem.go). Term.Skolem names the family and
	// Term.Args carries its arguments.
	OpSkolem

	// OpRegex nodes build the regular-language term algebra consumed by
	// the regex engine: union, concat, star, class, intersection,
	// complement (anchors are not represented). Term.Regex distinguishes
	// the sub-case.
	OpRegex
)

// String renders an Op's mnemonic name, used in Term.String and in log
// fields.
func (o Op) String() string {
	switch o {
	case OpVar:
		return "var"
	case OpEmpty:
		return "eps"
	case OpUnit:
		return "unit"
	case OpLiteral:
		return "lit"
	case OpConcat:
		return "concat"
	case OpLength:
		return "len"
	case OpExtract:
		return "substr"
	case OpAt:
		return "at"
	case OpNth:
		return "nth"
	case OpContains:
		return "contains"
	case OpPrefix:
		return "prefix"
	case OpSuffix:
		return "suffix"
	case OpIndexOf:
		return "indexof"
	case OpReplace:
		return "replace"
	case OpItoS:
		return "itos"
	case OpStoI:
		return "stoi"
	case OpMember:
		return "member"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpIte:
		return "ite"
	case OpIntVar:
		return "ivar"
	case OpIntLit:
		return "inum"
	case OpIntAdd:
		return "iadd"
	case OpIntNeg:
		return "ineg"
	case OpIntLt:
		return "ilt"
	case OpIntLe:
		return "ile"
	case OpBoolLit:
		return "bool"
	case OpSkolem:
		return "skolem"
	case OpRegex:
		return "regex"
	default:
		return "op?"
	}
}

// Sort classifies a Term's result sort. The pipeline and axiom module use
// this to decide, e.g., whether a term needs a companion length term.
type Sort int

const (
	// SortSeq is the sequence sort.
	SortSeq Sort = iota
	// SortInt is the integer sort (lengths, indices).
	SortInt
	// SortBool is the boolean sort (contains, membership, comparisons).
	SortBool
	// SortRegex is the regular-language term sort.
	SortRegex
)

// Sort returns the result sort of a term, used by the length-coherence
// bridge and the model constructor.
func (t *Term) Sort() Sort {
	switch t.Op {
	case OpVar, OpEmpty, OpUnit, OpLiteral, OpConcat, OpAt, OpReplace, OpItoS, OpSkolem:
		if t.Op == OpSkolem {
			return t.Skolem.ResultSort()
		}
		return SortSeq
	case OpLength, OpIndexOf, OpStoI, OpIntVar, OpIntLit, OpIntAdd, OpIntNeg:
		return SortInt
	case OpContains, OpPrefix, OpSuffix, OpMember, OpLt, OpLe, OpIntLt, OpIntLe, OpBoolLit:
		return SortBool
	case OpRegex:
		return SortRegex
	case OpExtract, OpNth:
		// OpNth returns an element, modeled here as a length-1/empty
		// sequence so it shares the sequence rewrite rules with at/substr.
		return SortSeq
	case OpIte:
		if len(t.Args) == 3 {
			return t.Args[1].Sort()
		}
		return SortSeq
	default:
		return SortSeq
	}
}

// Term is a ground expression in the sequence signature. Terms are shared
// by identity: two structurally equal terms built through the same
// TermManager are the same *Term pointer. Creation is monotone -- terms are
// never freed within a search, matching the external term manager's arena
// ownership model (spec.md section 9).
type Term struct {
	// ID is a monotone identifier assigned at creation, used to index the
	// solution map and to order equations.
	ID int64

	Op Op

	// Args holds operator children in left-to-right order.
	Args []*Term

	// Code is the alphabet element carried by OpUnit.
	Code rune

	// Text is the literal content of an OpLiteral sequence term.
	Text string

	// Num is the integer value carried by OpIntLit, or the boolean value
	// (0/1) carried by OpBoolLit.
	Num int64

	// Skolem identifies which named Skolem family an OpSkolem term
	// applies; nil for all other ops.
	Skolem *SkolemKind

	// Regex distinguishes the regular-language sub-case for OpRegex terms.
	Regex *RegexOp

	// Name is the optional user-facing name of an OpVar/OpIntVar, used
	// only for display.
	Name string
}

// IsVar reports whether t is a free sequence or integer variable.
func (t *Term) IsVar() bool { return t.Op == OpVar || t.Op == OpIntVar }

// String renders a term for debugging and log fields. It is not a parser
// round-trip format.
func (t *Term) String() string {
	switch t.Op {
	case OpVar, OpIntVar:
		if t.Name != "" {
			return t.Name
		}
		return fmt.Sprintf("%s_%d", t.Op, t.ID)
	case OpEmpty:
		return "ε"
	case OpUnit:
		return fmt.Sprintf("unit(%q)", t.Code)
	case OpLiteral:
		return fmt.Sprintf("%q", t.Text)
	case OpIntLit:
		return fmt.Sprintf("%d", t.Num)
	case OpBoolLit:
		return fmt.Sprintf("%t", t.Num != 0)
	case OpSkolem:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.Skolem.Name, strings.Join(parts, ","))
	case OpRegex:
		return t.Regex.String(t.Args)
	default:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.Op, strings.Join(parts, ","))
	}
}

// key returns a canonical structural key used by TermManager to intern
// terms by identity.
func (t *Term) key() string {
	var b strings.Builder
	b.WriteString(t.Op.String())
	switch t.Op {
	case OpVar, OpIntVar:
		fmt.Fprintf(&b, ":%s", t.Name)
	case OpUnit:
		fmt.Fprintf(&b, ":%d", t.Code)
	case OpLiteral:
		fmt.Fprintf(&b, ":%s", t.Text)
	case OpIntLit, OpBoolLit:
		fmt.Fprintf(&b, ":%d", t.Num)
	case OpSkolem:
		fmt.Fprintf(&b, ":%s", t.Skolem.Name)
	case OpRegex:
		fmt.Fprintf(&b, ":%s", t.Regex.key())
	}
	for _, a := range t.Args {
		b.WriteByte('/')
		fmt.Fprintf(&b, "%d", a.ID)
	}
	return b.String()
}

// TermManager interns terms by structural key so identical sub-expressions
// share one *Term, and assigns each fresh shape a monotone ID. It is the
// stand-in for the external ground term manager's arena; in this package it
// owns term allocation directly rather than delegating to an enode graph,
// since the enode graph itself is named as an external collaborator
// (spec.md section 1) that the core only queries for equivalences.
type TermManager struct {
	mu      sync.Mutex
	nextID  int64
	bySig   map[string]*Term
	freshID int64
}

// NewTermManager creates an empty term manager.
func NewTermManager() *TermManager {
	return &TermManager{bySig: make(map[string]*Term)}
}

func (m *TermManager) intern(t *Term) *Term {
	m.mu.Lock()
	defer m.mu.Unlock()
	// t.ID must be stable before key() is computed for composite terms,
	// so children are always interned before their parent.
	key := t.key()
	if existing, ok := m.bySig[key]; ok {
		return existing
	}
	m.nextID++
	t.ID = m.nextID
	m.bySig[key] = t
	return t
}

// Var creates (or returns the existing interned) fresh free sequence
// variable with the given display name. Each call with a distinct name
// yields a distinct variable; re-using a name returns the same variable,
// matching the teacher's Substitution keyed-by-id semantics built on top
// of stable identity.
func (m *TermManager) Var(name string) *Term {
	return m.intern(&Term{Op: OpVar, Name: name})
}

// FreshVar allocates a sequence variable with a manager-generated unique
// name, used by the Skolem module and the pipeline's branching rules to
// introduce helper variables.
func (m *TermManager) FreshVar(prefix string) *Term {
	m.mu.Lock()
	m.freshID++
	id := m.freshID
	m.mu.Unlock()
	return m.Var(fmt.Sprintf("%s!%d", prefix, id))
}

// IntVar creates an integer variable.
func (m *TermManager) IntVar(name string) *Term {
	return m.intern(&Term{Op: OpIntVar, Name: name})
}

// FreshIntVar allocates an integer variable with a manager-generated name.
func (m *TermManager) FreshIntVar(prefix string) *Term {
	m.mu.Lock()
	m.freshID++
	id := m.freshID
	m.mu.Unlock()
	return m.IntVar(fmt.Sprintf("%s!%d", prefix, id))
}

// Empty returns the (unique) empty-sequence term.
func (m *TermManager) Empty() *Term { return m.intern(&Term{Op: OpEmpty}) }

// Unit lifts an alphabet element to a length-1 sequence.
func (m *TermManager) Unit(c rune) *Term { return m.intern(&Term{Op: OpUnit, Code: c}) }

// Literal creates a constant sequence term.
func (m *TermManager) Literal(s string) *Term {
	if s == "" {
		return m.Empty()
	}
	return m.intern(&Term{Op: OpLiteral, Text: s})
}

// IntLit creates an integer literal term.
func (m *TermManager) IntLit(n int64) *Term { return m.intern(&Term{Op: OpIntLit, Num: n}) }

// BoolLit creates a boolean literal term.
func (m *TermManager) BoolLit(v bool) *Term {
	n := int64(0)
	if v {
		n = 1
	}
	return m.intern(&Term{Op: OpBoolLit, Num: n})
}

// Concat builds (flattening nested concats) the concatenation of parts.
func (m *TermManager) Concat(parts ...*Term) *Term {
	flat := make([]*Term, 0, len(parts))
	for _, p := range parts {
		if p.Op == OpEmpty {
			continue
		}
		if p.Op == OpConcat {
			flat = append(flat, p.Args...)
		} else {
			flat = append(flat, p)
		}
	}
	if len(flat) == 0 {
		return m.Empty()
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return m.intern(&Term{Op: OpConcat, Args: flat})
}

// App builds a generic application term for the remaining operators.
func (m *TermManager) App(op Op, args ...*Term) *Term {
	return m.intern(&Term{Op: op, Args: args})
}

// Skol builds an application of a named Skolem function.
func (m *TermManager) Skol(kind *SkolemKind, args ...*Term) *Term {
	return m.intern(&Term{Op: OpSkolem, Skolem: kind, Args: args})
}
