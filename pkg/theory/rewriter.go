package theory

// TermRewriter is the external algebraic simplifier spec.md section 1
// names as a collaborator: "algebraic simplification of sequence and
// arithmetic expressions." The core calls it from two places -- the
// canonizer's final rebuild step (canonize.go) and simplify_eq
// (pipeline.go) -- and never duplicates its rewrite rules internally.
type TermRewriter struct {
	terms *TermManager
}

// NewTermRewriter creates a rewriter over terms built with m.
func NewTermRewriter(m *TermManager) *TermRewriter {
	return &TermRewriter{terms: m}
}

// Rewrite applies one pass of algebraic simplification to t, assuming its
// children are already in normal form. It folds constant sequence
// concatenation, |epsilon| = 0 / |unit| = 1 / |x++y| = |x|+|y|, constant
// substr/at bounds (nth is left as is), and decides trivially-true/false contains,
// prefix, suffix and comparisons over two literal sequences.
func (r *TermRewriter) Rewrite(t *Term) *Term {
	switch t.Op {
	case OpConcat:
		return r.rewriteConcat(t)
	case OpLength:
		return r.rewriteLength(t)
	case OpExtract:
		return r.rewriteExtract(t)
	case OpAt:
		return r.rewriteAt(t)
	case OpNth:
		return t
	case OpContains:
		return r.rewriteContains(t)
	case OpPrefix:
		return r.rewritePrefixSuffix(t, true)
	case OpSuffix:
		return r.rewritePrefixSuffix(t, false)
	case OpLt, OpLe:
		return r.rewriteCompare(t)
	case OpIntAdd:
		return r.rewriteIntAdd(t)
	default:
		return t
	}
}

func asLiteral(t *Term) (string, bool) {
	switch t.Op {
	case OpEmpty:
		return "", true
	case OpLiteral:
		return t.Text, true
	case OpUnit:
		return string(t.Code), true
	}
	return "", false
}

func (r *TermRewriter) rewriteConcat(t *Term) *Term {
	// Fold maximal runs of literal/unit/empty children into one literal.
	out := make([]*Term, 0, len(t.Args))
	var run string
	haveRun := false
	flush := func() {
		if haveRun {
			out = append(out, r.terms.Literal(run))
			run = ""
			haveRun = false
		}
	}
	for _, a := range t.Args {
		if lit, ok := asLiteral(a); ok {
			run += lit
			haveRun = true
			continue
		}
		flush()
		out = append(out, a)
	}
	flush()
	return r.terms.Concat(out...)
}

func (r *TermRewriter) rewriteLength(t *Term) *Term {
	s := t.Args[0]
	switch s.Op {
	case OpEmpty:
		return r.terms.IntLit(0)
	case OpUnit:
		return r.terms.IntLit(1)
	case OpLiteral:
		return r.terms.IntLit(int64(len([]rune(s.Text))))
	case OpConcat:
		parts := make([]*Term, len(s.Args))
		for i, a := range s.Args {
			parts[i] = r.rewriteLength(r.terms.App(OpLength, a))
		}
		return r.rewriteIntAdd(r.terms.App(OpIntAdd, parts...))
	}
	return t
}

func (r *TermRewriter) rewriteIntAdd(t *Term) *Term {
	var sum int64
	haveConst := false
	rest := make([]*Term, 0, len(t.Args))
	for _, a := range t.Args {
		if a.Op == OpIntLit {
			sum += a.Num
			haveConst = true
			continue
		}
		if a.Op == OpIntAdd {
			for _, n := range a.Args {
				if n.Op == OpIntLit {
					sum += n.Num
					haveConst = true
				} else {
					rest = append(rest, n)
				}
			}
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) == 0 {
		return r.terms.IntLit(sum)
	}
	if haveConst && sum != 0 {
		rest = append(rest, r.terms.IntLit(sum))
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return r.terms.App(OpIntAdd, rest...)
}

// substrConst extracts a constant substring of text, applying spec.md
// section 8's boundary rule: out-of-range or non-positive length yields
// epsilon.
func substrConst(text string, i, l int64) (string, bool) {
	rs := []rune(text)
	n := int64(len(rs))
	if i < 0 || i >= n || l <= 0 {
		return "", true
	}
	end := i + l
	if end > n {
		end = n
	}
	return string(rs[i:end]), true
}

func (r *TermRewriter) rewriteExtract(t *Term) *Term {
	s, idx, ln := t.Args[0], t.Args[1], t.Args[2]
	lit, ok := asLiteral(s)
	if !ok || idx.Op != OpIntLit || ln.Op != OpIntLit {
		return t
	}
	out, _ := substrConst(lit, idx.Num, ln.Num)
	return r.terms.Literal(out)
}

func (r *TermRewriter) rewriteAt(t *Term) *Term {
	s, idx := t.Args[0], t.Args[1]
	lit, ok := asLiteral(s)
	if !ok || idx.Op != OpIntLit {
		return t
	}
	out, _ := substrConst(lit, idx.Num, 1)
	return r.terms.Literal(out)
}

func (r *TermRewriter) rewriteContains(t *Term) *Term {
	hay, needle := t.Args[0], t.Args[1]
	hl, ok1 := asLiteral(hay)
	nl, ok2 := asLiteral(needle)
	if !ok1 || !ok2 {
		return t
	}
	return r.terms.BoolLit(containsRunes(hl, nl))
}

func containsRunes(hay, needle string) bool {
	hr, nr := []rune(hay), []rune(needle)
	if len(nr) == 0 {
		return true
	}
	if len(nr) > len(hr) {
		return false
	}
	for i := 0; i+len(nr) <= len(hr); i++ {
		match := true
		for j := range nr {
			if hr[i+j] != nr[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (r *TermRewriter) rewritePrefixSuffix(t *Term, prefix bool) *Term {
	small, big := t.Args[0], t.Args[1]
	sl, ok1 := asLiteral(small)
	bl, ok2 := asLiteral(big)
	if !ok1 || !ok2 {
		return t
	}
	sr, br := []rune(sl), []rune(bl)
	if len(sr) > len(br) {
		return r.terms.BoolLit(false)
	}
	var ok bool
	if prefix {
		ok = string(br[:len(sr)]) == string(sr)
	} else {
		ok = string(br[len(br)-len(sr):]) == string(sr)
	}
	return r.terms.BoolLit(ok)
}

func (r *TermRewriter) rewriteCompare(t *Term) *Term {
	a, b := t.Args[0], t.Args[1]
	al, ok1 := asLiteral(a)
	bl, ok2 := asLiteral(b)
	if !ok1 || !ok2 {
		return t
	}
	if t.Op == OpLt {
		return r.terms.BoolLit(al < bl)
	}
	return r.terms.BoolLit(al <= bl)
}
