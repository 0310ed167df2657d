package rootfind

import "errors"

var (
	// ErrPrecondition reports a bracket or option the solver cannot start from:
	// an empty or non-finite bracket, no sign change, or a bad tolerance.
	ErrPrecondition = errors.New("rootfind: precondition violated")
	// ErrDomain reports a trial point where the function is undefined.
	ErrDomain = errors.New("rootfind: function undefined at trial point")
	// ErrNoConvergence reports an exhausted iteration budget.
	ErrNoConvergence = errors.New("rootfind: no convergence")
)
