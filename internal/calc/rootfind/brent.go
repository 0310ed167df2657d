package rootfind

import (
	"fmt"
	"math"
)

const (
	brentMaxIterations = 100
	machineEpsilon     = 0x1p-52
)

// Brent finds a root with the Brent-Dekker method. b is the best estimate and
// c the opposite end of the bracket; a is the previous estimate. An
// interpolated step is taken only when it lands inside the bracket and shrinks
// faster than the step before last, otherwise the method bisects.
//
// It stops when half the bracket is within 2*eps*|b| + Tolerance/2, so the
// final bracket is no wider than Tolerance plus a few ulps of the root.
func Brent(f Func, br Bracket, opts Options) (Result, error) {
	ep, done, err := prepare(f, br, opts)
	if err != nil {
		return Result{}, err
	}
	if done != nil {
		return *done, nil
	}

	budget := opts.MaxIterations
	if budget == 0 {
		budget = brentMaxIterations
	}

	a, b := ep.lo, ep.hi
	fa, fb := ep.flo, ep.fhi
	c, fc := b, fb
	var d, e float64
	evals := 2

	for iter := 0; ; iter++ {
		if math.Signbit(fb) == math.Signbit(fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*machineEpsilon*math.Abs(b) + 0.5*ep.tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return Result{
				Root:        b,
				Residual:    fb,
				Iterations:  iter,
				Evaluations: evals,
				Width:       math.Abs(c - b),
			}, nil
		}
		if iter == budget {
			return Result{}, fmt.Errorf("%w: brent used %d iterations, bracket [%g, %g] still wider than %g",
				ErrNoConvergence, iter, math.Min(b, c), math.Max(b, c), ep.tol)
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
		evals++
		if math.IsNaN(fb) {
			return Result{}, fmt.Errorf("%w: f(%g) is NaN", ErrDomain, b)
		}

		if opts.OnStep != nil {
			other := c
			if math.Signbit(fb) == math.Signbit(fc) {
				other = a
			}
			opts.OnStep(Step{
				Iteration: iter + 1,
				Lo:        math.Min(b, other),
				Hi:        math.Max(b, other),
				X:         b,
				FX:        fb,
			})
		}
	}
}
