package theory

import "testing"

func TestJoinNilIsIdentity(t *testing.T) {
	d := Leaf(5)
	if got := Join(nil, d); got != d {
		t.Fatalf("Join(nil, d) = %v, want d itself", got)
	}
	if got := Join(d, nil); got != d {
		t.Fatalf("Join(d, nil) = %v, want d itself", got)
	}
	if got := Join(nil, nil); got != nil {
		t.Fatalf("Join(nil, nil) = %v, want nil", got)
	}
}

func TestDependencyIsEmpty(t *testing.T) {
	var nilDep *Dependency
	if !nilDep.IsEmpty() {
		t.Error("nil Dependency must report IsEmpty")
	}
	if Leaf(1).IsEmpty() {
		t.Error("a leaf Dependency must not report IsEmpty")
	}
}

func TestLinearizeDedupsLiteralsAndEqs(t *testing.T) {
	d := Join(Join(Leaf(1), Leaf(2)), Join(Leaf(1), LeafEq(10, 20)))
	d = Join(d, LeafEq(20, 10)) // same pair, swapped order

	lin := d.Linearize()

	if len(lin.Lits) != 2 {
		t.Fatalf("Lits = %v, want 2 distinct literals", lin.Lits)
	}
	seen := map[Literal]bool{}
	for _, l := range lin.Lits {
		seen[l] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("Lits = %v, want {1, 2}", lin.Lits)
	}

	if len(lin.Eqs) != 1 {
		t.Fatalf("Eqs = %v, want exactly 1 deduped pair (A,B) order-independent", lin.Eqs)
	}
}

func TestLinearizeOfNilIsEmpty(t *testing.T) {
	var d *Dependency
	lin := d.Linearize()
	if len(lin.Lits) != 0 || len(lin.Eqs) != 0 {
		t.Fatalf("Linearize of nil = %+v, want empty", lin)
	}
}

func TestNegateIsInvolution(t *testing.T) {
	l := Literal(7)
	if got := l.Negate().Negate(); got != l {
		t.Fatalf("double negation = %v, want %v", got, l)
	}
	if l.Negate() == l {
		t.Fatal("Negate must not be a no-op for a nonzero literal")
	}
}
