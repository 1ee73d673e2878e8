package theory

import "strings"

// Model is a concrete witness assignment for every tracked free sequence
// variable, built by walking the solution map to a fixed point and
// rendering any remaining free variable as the empty sequence -- the
// smallest value consistent with a saturated, conflict-free cascade
// (spec.md section 4.4's DONE verdict only promises local satisfiability,
// not a unique model, so picking the minimal witness is a deliberate,
// documented choice alongside the Open Questions in DESIGN.md).
type Model struct {
	Values map[string]string
}

// BuildModel composes a model from the current solution map for the
// given root variables, the same way the teacher's Goal success path
// surfaces a finished Substitution as a walkable binding environment,
// generalized here to decimal string values instead of arbitrary terms.
func (e *Engine) BuildModel(vars ...*Term) *Model {
	m := &Model{Values: make(map[string]string, len(vars))}
	for _, v := range vars {
		if v.Op != OpVar {
			continue
		}
		cn, _ := e.Canon.Canonize(v)
		m.Values[v.Name] = renderGround(cn)
	}
	return m
}

// renderGround renders a canonized term as a concrete string if it is
// ground (composed only of literal/unit/empty/concat nodes), substituting
// epsilon for any leftover free variable so every variable still gets a
// witness even when the cascade under-constrained it.
func renderGround(t *Term) string {
	var b strings.Builder
	var walk func(*Term)
	walk = func(t *Term) {
		switch t.Op {
		case OpEmpty, OpVar:
			// epsilon, or an unconstrained variable rendered as epsilon
		case OpUnit:
			b.WriteRune(t.Code)
		case OpLiteral:
			b.WriteString(t.Text)
		case OpConcat:
			for _, a := range t.Args {
				walk(a)
			}
		default:
			// Non-sequence-shaped leftovers (Skolem applications that were
			// never resolved) contribute nothing rather than panicking; a
			// fully saturated, conflict-free run should not reach this
			// case for any variable actually asked about.
		}
	}
	walk(t)
	return b.String()
}
