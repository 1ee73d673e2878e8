package theory

import "testing"

func TestShortestEquationFirst(t *testing.T) {
	terms := NewTermManager()
	x := terms.Var("x")
	y := terms.Var("y")

	short := &Equation{ID: 1, Lhs: []*Term{x}, Rhs: []*Term{y}}
	long := &Equation{ID: 2, Lhs: []*Term{x, y, x}, Rhs: []*Term{y}}

	strat := NewShortestEquationFirst()
	if got := strat.SelectEquation([]*Equation{long, short}); got != 1 {
		t.Errorf("SelectEquation = %d, want index 1 (the shorter equation)", got)
	}
	if got := strat.SelectEquation(nil); got != -1 {
		t.Errorf("SelectEquation(nil) = %d, want -1", got)
	}
	if got := strat.Name(); got == "" {
		t.Error("expected a non-empty strategy name")
	}
}

func TestOldestEquationFirst(t *testing.T) {
	x := NewTermManager().Var("x")
	first := &Equation{ID: 1, Lhs: []*Term{x}, Rhs: []*Term{x}}
	second := &Equation{ID: 2, Lhs: []*Term{x}, Rhs: []*Term{x}}

	strat := NewOldestEquationFirst()
	if got := strat.SelectEquation([]*Equation{second, first}); got != 1 {
		t.Errorf("SelectEquation = %d, want index 1 (the older equation id)", got)
	}
	if got := strat.SelectEquation(nil); got != -1 {
		t.Errorf("SelectEquation(nil) = %d, want -1", got)
	}
}
