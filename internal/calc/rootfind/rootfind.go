// Package rootfind finds roots of scalar functions on a bracketing interval.
//
// Two strategies share one contract: Bisection halves the bracket until it is
// narrower than the tolerance, Brent mixes inverse quadratic interpolation and
// secant steps with bisection fallbacks. Both require a sign change across the
// bracket and report failures through ErrPrecondition, ErrDomain and
// ErrNoConvergence.
package rootfind

import (
	"fmt"
	"math"
	"strings"
)

// Func is a scalar function of one variable. Returning NaN marks x as outside
// the function's domain.
type Func func(x float64) float64

// Bracket is the closed interval [Lo, Hi] searched for a root.
type Bracket struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Width is Hi - Lo.
func (b Bracket) Width() float64 { return b.Hi - b.Lo }

// Step is one iteration as seen by Options.OnStep. Lo and Hi bound the root
// after the step; X is the point evaluated during it.
type Step struct {
	Iteration int
	Lo        float64
	Hi        float64
	X         float64
	FX        float64
}

// Options tune a single solve. The zero value uses the defaults.
type Options struct {
	// Tolerance bounds the bracket width at termination. Zero means DefaultTolerance.
	Tolerance float64
	// MaxIterations caps the loop. Zero picks a per-method budget.
	MaxIterations int
	// OnStep, when set, is called after every iteration.
	OnStep func(Step)
}

// DefaultTolerance is used when Options.Tolerance is zero.
const DefaultTolerance = 1e-8

// Result carries the root and how it was reached.
type Result struct {
	Root        float64 `json:"root"`
	Residual    float64 `json:"residual"`
	Iterations  int     `json:"iterations"`
	Evaluations int     `json:"evaluations"`
	Width       float64 `json:"width"`
}

// Method names a root finding strategy.
type Method string

const (
	MethodBisection Method = "bisection"
	MethodBrent     Method = "brent"
)

// Methods lists the supported strategies.
func Methods() []Method { return []Method{MethodBisection, MethodBrent} }

// ParseMethod accepts a method name in any case. The empty string selects Brent.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodBisection:
		return MethodBisection, nil
	case MethodBrent, "":
		return MethodBrent, nil
	}
	return "", fmt.Errorf("unknown root finding method %q", s)
}

// Solver is implemented by every root finding strategy.
type Solver interface {
	Solve(f Func, b Bracket, opts Options) (Result, error)
}

// BisectionSolver is the Solver for MethodBisection.
type BisectionSolver struct{}

func (BisectionSolver) Solve(f Func, b Bracket, opts Options) (Result, error) {
	return Bisection(f, b, opts)
}

// BrentSolver is the Solver for MethodBrent.
type BrentSolver struct{}

func (BrentSolver) Solve(f Func, b Bracket, opts Options) (Result, error) {
	return Brent(f, b, opts)
}

// SolverFor returns the Solver registered for m.
func SolverFor(m Method) (Solver, error) {
	switch m {
	case MethodBisection:
		return BisectionSolver{}, nil
	case MethodBrent:
		return BrentSolver{}, nil
	}
	return nil, fmt.Errorf("unknown root finding method %q", m)
}

// Solve runs the solver registered for m.
func Solve(m Method, f Func, b Bracket, opts Options) (Result, error) {
	s, err := SolverFor(m)
	if err != nil {
		return Result{}, err
	}
	return s.Solve(f, b, opts)
}

// endpoints is the validated starting state shared by both methods.
type endpoints struct {
	lo, hi   float64
	flo, fhi float64
	tol      float64
}

// prepare checks the bracket and tolerance and evaluates f at both ends. When
// an end is an exact root it is returned in done.
func prepare(f Func, b Bracket, opts Options) (ep endpoints, done *Result, err error) {
	tol := opts.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if !(tol > 0) || math.IsInf(tol, 0) {
		return ep, nil, fmt.Errorf("%w: tolerance %g must be positive", ErrPrecondition, opts.Tolerance)
	}
	if opts.MaxIterations < 0 {
		return ep, nil, fmt.Errorf("%w: negative iteration budget %d", ErrPrecondition, opts.MaxIterations)
	}
	if !finite(b.Lo) || !finite(b.Hi) {
		return ep, nil, fmt.Errorf("%w: bracket [%g, %g] is not finite", ErrPrecondition, b.Lo, b.Hi)
	}
	if b.Lo >= b.Hi {
		return ep, nil, fmt.Errorf("%w: bracket [%g, %g] is empty", ErrPrecondition, b.Lo, b.Hi)
	}

	flo, fhi := f(b.Lo), f(b.Hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return ep, nil, fmt.Errorf("%w: function undefined at bracket end (f(%g)=%g, f(%g)=%g)",
			ErrPrecondition, b.Lo, flo, b.Hi, fhi)
	}
	if flo == 0 {
		return ep, &Result{Root: b.Lo, Evaluations: 2, Width: b.Width()}, nil
	}
	if fhi == 0 {
		return ep, &Result{Root: b.Hi, Evaluations: 2, Width: b.Width()}, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return ep, nil, fmt.Errorf("%w: f(%g)=%g and f(%g)=%g have the same sign",
			ErrPrecondition, b.Lo, flo, b.Hi, fhi)
	}
	return endpoints{lo: b.Lo, hi: b.Hi, flo: flo, fhi: fhi, tol: tol}, nil, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
