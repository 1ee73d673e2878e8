package theory

import (
	"github.com/pkg/errors"
	kinds "gopkg.in/src-d/go-errors.v1"
)

// Error kinds surfaced to callers. These are the only two conditions spec.md
// section 7 treats as exceptional rather than a propagated literal, a
// conflict, or a plain "no progress" bool: a regex the automaton engine
// cannot compile, and a search session started without a usable arithmetic
// theory wired in.
var (
	// ErrUnsupportedRegex is raised when a regex term cannot be compiled to
	// an automaton by the regex engine (regex.go).
	ErrUnsupportedRegex = kinds.NewKind("unsupported regex expression: %s")

	// ErrIncompatibleArithTheory is raised at engine construction when
	// neither arithmetic theory adapter the engine knows how to drive is
	// configured.
	ErrIncompatibleArithTheory = kinds.NewKind("no compatible arithmetic theory configured")
)

// wrapExternal annotates an error returned by an external collaborator
// (rewriter, arithmetic theory, SAT engine) with the operation that invoked
// it, so the root cause survives the justification bookkeeping that wraps
// every core call site.
func wrapExternal(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "theory: %s", op)
}
