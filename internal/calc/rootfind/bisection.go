package rootfind

import (
	"fmt"
	"math"
)

const (
	// bisectionSlack is added to the halvings the tolerance strictly needs.
	bisectionSlack = 8
	// maxHalvings covers the whole float64 exponent range.
	maxHalvings = 2200
)

// Bisection halves the bracket until its width is at most the tolerance and
// returns the midpoint of the final bracket.
func Bisection(f Func, b Bracket, opts Options) (Result, error) {
	ep, done, err := prepare(f, b, opts)
	if err != nil {
		return Result{}, err
	}
	if done != nil {
		return *done, nil
	}

	budget := opts.MaxIterations
	if budget == 0 {
		budget = bisectionBudget(ep.hi-ep.lo, ep.tol)
	}

	lo, hi, flo := ep.lo, ep.hi, ep.flo
	evals := 2
	iter := 0
	for hi-lo > ep.tol {
		if iter == budget {
			return Result{}, fmt.Errorf("%w: bisection used %d iterations, bracket [%g, %g] still wider than %g",
				ErrNoConvergence, iter, lo, hi, ep.tol)
		}
		mid := 0.5 * (lo + hi)
		if mid <= lo || mid >= hi {
			return Result{}, fmt.Errorf("%w: bracket [%g, %g] cannot be split below tolerance %g",
				ErrNoConvergence, lo, hi, ep.tol)
		}
		iter++
		fmid := f(mid)
		evals++
		if math.IsNaN(fmid) {
			return Result{}, fmt.Errorf("%w: f(%g) is NaN", ErrDomain, mid)
		}
		if fmid == 0 {
			return Result{Root: mid, Iterations: iter, Evaluations: evals, Width: hi - lo}, nil
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
		if opts.OnStep != nil {
			opts.OnStep(Step{Iteration: iter, Lo: lo, Hi: hi, X: mid, FX: fmid})
		}
	}

	root := 0.5 * (lo + hi)
	return Result{
		Root:        root,
		Residual:    f(root),
		Iterations:  iter,
		Evaluations: evals + 1,
		Width:       hi - lo,
	}, nil
}

// bisectionBudget is the number of halvings that take width below tol, plus slack.
func bisectionBudget(width, tol float64) int {
	n := math.Ceil(math.Log2(width / tol))
	if math.IsNaN(n) || n < 0 {
		n = 0
	}
	if n > maxHalvings {
		return maxHalvings
	}
	return int(n) + bisectionSlack
}
