package theory

import "testing"

func TestSolutionMapFindChain(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)

	x := terms.Var("x")
	y := terms.Var("y")
	z := terms.Literal("z")

	if !sol.IsRoot(x) {
		t.Fatal("fresh term must start as its own root")
	}

	d1 := Leaf(1)
	d2 := Leaf(2)
	sol.Update(x, y, d1)
	sol.Update(y, z, d2)

	if sol.IsRoot(x) {
		t.Fatal("x must no longer be a root after Update")
	}

	root, dep := sol.Find(x)
	if root != z {
		t.Fatalf("Find(x) = %v, want z", root)
	}
	lin := dep.Linearize()
	if len(lin.Lits) != 2 {
		t.Fatalf("Find(x) dependency = %v, want both d1 and d2's literals", lin.Lits)
	}
}

func TestSolutionMapFindIsCached(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)

	x := terms.Var("x")
	y := terms.Var("y")
	sol.Update(x, y, nil)

	root1, _ := sol.Find(x)
	root2, _ := sol.Find(x)
	if root1 != root2 {
		t.Fatal("repeated Find must agree")
	}

	// Mutating a different term invalidates the cache, but the fixed point
	// for x is unaffected; this mainly exercises that invalidation doesn't
	// corrupt subsequent lookups.
	z := terms.Literal("z")
	w := terms.Var("w")
	sol.Update(w, z, nil)
	root3, _ := sol.Find(x)
	if root3 != y {
		t.Fatalf("Find(x) after unrelated Update = %v, want y", root3)
	}
}

func TestSolutionMapUpdateSelfIsNoop(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)
	x := terms.Var("x")
	sol.Update(x, x, nil)
	if !sol.IsRoot(x) {
		t.Fatal("Update(e, e) must be a no-op")
	}
}

func TestSolutionMapTrailRestoresPriorBinding(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)

	x := terms.Var("x")
	a := terms.Literal("a")
	b := terms.Literal("b")

	sol.Update(x, a, nil)

	tr.PushScope()
	sol.Update(x, b, nil)
	root, _ := sol.Find(x)
	if root != b {
		t.Fatalf("Find(x) = %v, want b", root)
	}

	tr.PopScope(1)
	sol.ClearCache()
	root, _ = sol.Find(x)
	if root != a {
		t.Fatalf("after pop, Find(x) = %v, want the restored binding a", root)
	}
}

func TestSolutionMapTrailRemovesNewBindingOnPop(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)

	x := terms.Var("x")
	a := terms.Literal("a")

	tr.PushScope()
	sol.Update(x, a, nil)
	if sol.IsRoot(x) {
		t.Fatal("expected x bound within the scope")
	}

	tr.PopScope(1)
	if !sol.IsRoot(x) {
		t.Fatal("popping the scope that introduced the only binding must restore root status")
	}
}

func TestSolutionMapSize(t *testing.T) {
	terms := NewTermManager()
	tr := NewTrail()
	sol := NewSolutionMap(tr)
	if sol.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", sol.Size())
	}
	sol.Update(terms.Var("x"), terms.Literal("a"), nil)
	sol.Update(terms.Var("y"), terms.Literal("b"), nil)
	if sol.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", sol.Size())
	}
}
