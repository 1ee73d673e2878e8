// Package theory implements the core decision procedure for the theory of
// finite sequences (strings) as a theory plugin inside a DPLL(T) style SMT
// solver.
//
// The package decides satisfiability of conjunctions of equalities,
// disequalities, length constraints, membership in regular languages, and
// string functions (concatenation, length, extract, contains, index-of,
// prefix/suffix, at, nth, replace, lt/le, int<->string) over variables
// ranging over finite sequences of alphabet elements.
//
// The hard part, and the sole focus of this package, is the equation-solving
// engine plus its axiomatic companions: a backtrackable solution map, a
// cascading check loop invoked at every SMT final-check round, and a
// regular-language engine compiling regular expressions to automata.
//
// Surrounding machinery -- the propositional SAT/DPLL engine, the ground
// term manager and equality graph, the arithmetic theory, the term
// rewriter, the axiom module, and model construction -- are external
// collaborators reached through the thin interfaces in external.go. The
// engine is sound but incomplete for unbounded-alphabet word equations; it
// does not model infinite sequences, and its regex decisions are bounded
// by what an NFA representation affords.
package theory
