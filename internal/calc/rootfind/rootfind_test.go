package rootfind

import (
	"errors"
	"math"
	"testing"
)

var knownRoots = []struct {
	name string
	f    Func
	b    Bracket
	want float64
}{
	{"sqrt2", func(x float64) float64 { return x*x - 2 }, Bracket{0, 2}, math.Sqrt2},
	{"dottie", func(x float64) float64 { return math.Cos(x) - x }, Bracket{0, 1}, 0.7390851332151607},
	{"cubic", func(x float64) float64 { return x*x*x - x - 2 }, Bracket{1, 2}, 1.5213797068045676},
	{"decreasing", func(x float64) float64 { return 1/math.Sqrt(x) - 4 }, Bracket{0.01, 1}, 0.0625},
}

var solvers = []struct {
	name string
	s    Solver
}{
	{"bisection", BisectionSolver{}},
	{"brent", BrentSolver{}},
}

func TestSolvers_KnownRoots(t *testing.T) {
	for _, sv := range solvers {
		for _, tc := range knownRoots {
			t.Run(sv.name+"/"+tc.name, func(t *testing.T) {
				res, err := sv.s.Solve(tc.f, tc.b, Options{})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if math.Abs(res.Root-tc.want) > DefaultTolerance {
					t.Fatalf("root = %.15g, want %.15g", res.Root, tc.want)
				}
				if res.Width > DefaultTolerance+4*machineEpsilon*math.Abs(res.Root) {
					t.Fatalf("final bracket width %g exceeds tolerance", res.Width)
				}
				if res.Iterations == 0 || res.Evaluations < res.Iterations {
					t.Fatalf("implausible counters: %+v", res)
				}
			})
		}
	}
}

func TestSolvers_Agree(t *testing.T) {
	for _, tol := range []float64{1e-6, 1e-8, 1e-11} {
		for _, tc := range knownRoots {
			opts := Options{Tolerance: tol}
			bis, err := Bisection(tc.f, tc.b, opts)
			if err != nil {
				t.Fatalf("%s bisection: %v", tc.name, err)
			}
			br, err := Brent(tc.f, tc.b, opts)
			if err != nil {
				t.Fatalf("%s brent: %v", tc.name, err)
			}
			if d := math.Abs(bis.Root - br.Root); d > 10*tol {
				t.Errorf("%s tol=%g: bisection %.15g and brent %.15g differ by %g", tc.name, tol, bis.Root, br.Root, d)
			}
		}
	}
}

func TestBisection_HalvesBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	prev := 2.0
	steps := 0
	_, err := Bisection(f, Bracket{0, 2}, Options{OnStep: func(s Step) {
		steps++
		if s.Iteration != steps {
			t.Fatalf("iteration %d reported as %d", steps, s.Iteration)
		}
		w := s.Hi - s.Lo
		if math.Abs(w-prev/2) > 1e-15*prev {
			t.Fatalf("step %d: width %g, want %g", s.Iteration, w, prev/2)
		}
		if !(s.Lo <= math.Sqrt2 && math.Sqrt2 <= s.Hi) {
			t.Fatalf("step %d: bracket [%g, %g] lost the root", s.Iteration, s.Lo, s.Hi)
		}
		prev = w
	}})
	if err != nil {
		t.Fatal(err)
	}
	if steps != 28 {
		t.Errorf("steps = %d, want 28", steps)
	}
}

func TestBrent_StepsKeepRootBracketed(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) - x }
	const root = 0.7390851332151607
	res, err := Brent(f, Bracket{0, 1}, Options{OnStep: func(s Step) {
		if s.Lo-1e-12 > root || root > s.Hi+1e-12 {
			t.Fatalf("step %d: bracket [%g, %g] lost the root", s.Iteration, s.Lo, s.Hi)
		}
	}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations >= 27 {
		t.Errorf("brent took %d iterations, bisection needs 27", res.Iterations)
	}
}

func TestSolvers_ExactRootAtEndpoint(t *testing.T) {
	f := func(x float64) float64 { return x - 1 }
	for _, sv := range solvers {
		for _, b := range []Bracket{{1, 3}, {-1, 1}} {
			res, err := sv.s.Solve(f, b, Options{})
			if err != nil {
				t.Fatalf("%s %v: %v", sv.name, b, err)
			}
			if res.Root != 1 || res.Iterations != 0 {
				t.Errorf("%s %v: got %+v, want root 1 after 0 iterations", sv.name, b, res)
			}
		}
	}
}

func TestSolvers_Preconditions(t *testing.T) {
	square := func(x float64) float64 { return x*x - 2 }
	logf := func(x float64) float64 { return math.Log(x) }
	cases := []struct {
		name string
		f    Func
		b    Bracket
		opts Options
	}{
		{"same sign", square, Bracket{2, 3}, Options{}},
		{"both negative", square, Bracket{-1, 1}, Options{}},
		{"reversed", square, Bracket{2, 0}, Options{}},
		{"empty", square, Bracket{1, 1}, Options{}},
		{"infinite", square, Bracket{0, math.Inf(1)}, Options{}},
		{"nan end", square, Bracket{math.NaN(), 2}, Options{}},
		{"undefined end", logf, Bracket{-1, 2}, Options{}},
		{"negative tolerance", square, Bracket{0, 2}, Options{Tolerance: -1e-8}},
		{"nan tolerance", square, Bracket{0, 2}, Options{Tolerance: math.NaN()}},
		{"negative budget", square, Bracket{0, 2}, Options{MaxIterations: -1}},
	}
	for _, sv := range solvers {
		for _, tc := range cases {
			t.Run(sv.name+"/"+tc.name, func(t *testing.T) {
				res, err := sv.s.Solve(tc.f, tc.b, tc.opts)
				if !errors.Is(err, ErrPrecondition) {
					t.Fatalf("err = %v, want ErrPrecondition", err)
				}
				if res != (Result{}) {
					t.Fatalf("partial result returned: %+v", res)
				}
			})
		}
	}
}

func TestSolvers_DomainError(t *testing.T) {
	hole := func(x float64) float64 {
		if x > 0.4 && x < 0.6 {
			return math.NaN()
		}
		return x - 0.5
	}
	for _, sv := range solvers {
		_, err := sv.s.Solve(hole, Bracket{0, 1}, Options{})
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%s: err = %v, want ErrDomain", sv.name, err)
		}
		if errors.Is(err, ErrNoConvergence) || errors.Is(err, ErrPrecondition) {
			t.Errorf("%s: domain error conflated with %v", sv.name, err)
		}
	}
}

func TestSolvers_NoConvergence(t *testing.T) {
	for _, sv := range solvers {
		for _, tc := range knownRoots {
			_, err := sv.s.Solve(tc.f, tc.b, Options{Tolerance: 1e-12, MaxIterations: 3})
			if !errors.Is(err, ErrNoConvergence) {
				t.Errorf("%s/%s: err = %v, want ErrNoConvergence", sv.name, tc.name, err)
			}
		}
	}
}

func TestBisection_ToleranceBelowResolution(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	_, err := Bisection(f, Bracket{1, 2}, Options{Tolerance: 1e-300})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("err = %v, want ErrNoConvergence", err)
	}

	// Brent's own floor of a few ulps keeps it converging.
	res, err := Brent(f, Bracket{1, 2}, Options{Tolerance: 1e-300})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-15 {
		t.Errorf("root = %.17g", res.Root)
	}
}

func TestSolvers_Idempotent(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) - x }
	for _, sv := range solvers {
		first, err := sv.s.Solve(f, Bracket{0, 1}, Options{})
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			again, err := sv.s.Solve(f, Bracket{0, 1}, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if math.Float64bits(again.Root) != math.Float64bits(first.Root) || again != first {
				t.Fatalf("%s: run %d gave %+v, first gave %+v", sv.name, i, again, first)
			}
		}
	}
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"bisection": MethodBisection,
		" Bisection": MethodBisection,
		"BRENT":      MethodBrent,
		"":           MethodBrent,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMethod("newton"); err == nil {
		t.Error("expected an error for an unknown method")
	}
	if _, err := SolverFor("newton"); err == nil {
		t.Error("expected an error for an unknown solver")
	}
	for _, m := range Methods() {
		if _, err := Solve(m, func(x float64) float64 { return x }, Bracket{-1, 2}, Options{}); err != nil {
			t.Errorf("Solve(%s): %v", m, err)
		}
	}
}
