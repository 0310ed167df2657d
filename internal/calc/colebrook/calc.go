package colebrook

import (
	"fmt"
	"math"

	"Pipeflow/internal/calc/reynolds"
	"Pipeflow/internal/calc/rootfind"
)

type Input struct {
	Method            string  `json:"method"` // bisection or brent
	Roughness         float64 `json:"roughness"`
	HydraulicDiameter float64 `json:"hydraulic_diameter"`
	Reynolds          float64 `json:"reynolds"`
	BracketLo         float64 `json:"bracket_lo"`
	BracketHi         float64 `json:"bracket_hi"`
	Tolerance         float64 `json:"tolerance"`
	MaxIterations     int     `json:"max_iterations"`
}

type Result struct {
	FrictionFactor float64             `json:"friction_factor"`
	Method         rootfind.Method     `json:"method"`
	Iterations     int                 `json:"iterations"`
	Evaluations    int                 `json:"evaluations"`
	Residual       float64             `json:"residual"`
	BracketWidth   float64             `json:"bracket_width"`
	Regime         reynolds.FlowRegime `json:"regime"`
	Notes          string              `json:"notes"`
}

// Calculate solves one case. Zero bracket ends and tolerance fall back to
// DefaultBracket and DefaultTolerance; any other invalid value is reported by
// the solver.
func Calculate(in Input) (Result, error) {
	return CalculateWithSteps(in, nil)
}

// CalculateWithSteps is Calculate with onStep called after every solver
// iteration.
func CalculateWithSteps(in Input, onStep func(rootfind.Step)) (Result, error) {
	method, err := rootfind.ParseMethod(in.Method)
	if err != nil {
		return Result{}, err
	}
	b := DefaultBracket
	if in.BracketLo != 0 {
		b.Lo = in.BracketLo
	}
	if in.BracketHi != 0 {
		b.Hi = in.BracketHi
	}
	if in.Tolerance == 0 {
		in.Tolerance = DefaultTolerance
	}

	res, err := FrictionFactorWithin(method, in.params(), b, rootfind.Options{
		Tolerance:     in.Tolerance,
		MaxIterations: in.MaxIterations,
		OnStep:        onStep,
	})
	if err != nil {
		return Result{}, err
	}

	regime := reynolds.Regime(in.Reynolds)
	notes := "Darcy friction factor from the Colebrook-White equation."
	if regime != reynolds.Turbulent {
		notes = fmt.Sprintf("Colebrook-White is a turbulent-flow correlation; Re=%g is %s. For laminar flow f=64/Re=%.6f.",
			in.Reynolds, regime, 64/in.Reynolds)
	}
	return Result{
		FrictionFactor: res.Root,
		Method:         method,
		Iterations:     res.Iterations,
		Evaluations:    res.Evaluations,
		Residual:       res.Residual,
		BracketWidth:   res.Width,
		Regime:         regime,
		Notes:          notes,
	}, nil
}

func (in Input) params() Params {
	return Params{Roughness: in.Roughness, HydraulicDiameter: in.HydraulicDiameter, Reynolds: in.Reynolds}
}

type Comparison struct {
	Bisection  Result  `json:"bisection"`
	Brent      Result  `json:"brent"`
	Difference float64 `json:"difference"`
	Agree      bool    `json:"agree"`
}

// Compare solves the case with both methods. They agree when their friction
// factors are within ten tolerances of each other.
func Compare(in Input) (Comparison, error) {
	in.Method = string(rootfind.MethodBisection)
	bis, err := Calculate(in)
	if err != nil {
		return Comparison{}, err
	}
	in.Method = string(rootfind.MethodBrent)
	br, err := Calculate(in)
	if err != nil {
		return Comparison{}, err
	}
	tol := in.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	diff := math.Abs(bis.FrictionFactor - br.FrictionFactor)
	return Comparison{
		Bisection:  bis,
		Brent:      br,
		Difference: diff,
		Agree:      diff <= 10*tol,
	}, nil
}
