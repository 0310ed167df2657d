// Package colebrook solves the Colebrook-White equation for the Darcy friction
// factor f:
//
//	1/sqrt(f) = -2 log10( eps/(3.7 D_H) + 2.51/(Re sqrt(f)) )
//
// The equation is implicit in f, so it is rewritten as a residual whose root
// is handed to a bracketing root finder.
package colebrook

import (
	"errors"
	"fmt"
	"math"

	"Pipeflow/internal/calc/rootfind"
)

var ErrInvalidParameter = errors.New("colebrook: invalid parameter")

// Params are the inputs of one solve. Roughness and HydraulicDiameter must
// share a length unit.
type Params struct {
	Roughness         float64
	HydraulicDiameter float64
	Reynolds          float64
}

func (p Params) validate() error {
	switch {
	case math.IsNaN(p.Roughness) || math.IsInf(p.Roughness, 0) || p.Roughness < 0:
		return fmt.Errorf("%w: roughness %g must be finite and non-negative", ErrInvalidParameter, p.Roughness)
	case math.IsNaN(p.HydraulicDiameter) || math.IsInf(p.HydraulicDiameter, 0) || p.HydraulicDiameter <= 0:
		return fmt.Errorf("%w: hydraulic diameter %g must be finite and positive", ErrInvalidParameter, p.HydraulicDiameter)
	case math.IsNaN(p.Reynolds) || math.IsInf(p.Reynolds, 0) || p.Reynolds <= 0:
		return fmt.Errorf("%w: reynolds number %g must be finite and positive", ErrInvalidParameter, p.Reynolds)
	}
	return nil
}

// Residual returns 1/sqrt(f) + 2 log10(eps/(3.7 D_H) + 2.51/(Re sqrt(f))).
// It is NaN where the equation is undefined: f <= 0 or a non-positive
// logarithm argument.
func Residual(p Params) (rootfind.Func, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	relative := p.Roughness / (3.7 * p.HydraulicDiameter)
	viscous := 2.51 / p.Reynolds
	return func(f float64) float64 {
		if !(f > 0) {
			return math.NaN()
		}
		s := math.Sqrt(f)
		arg := relative + viscous/s
		if !(arg > 0) {
			return math.NaN()
		}
		return 1/s + 2*math.Log10(arg)
	}, nil
}

// DefaultBracket holds the friction factor of any turbulent pipe flow.
var DefaultBracket = rootfind.Bracket{Lo: 1e-4, Hi: 1}

const DefaultTolerance = 1e-8

// FrictionFactor solves for the Darcy friction factor on DefaultBracket with
// DefaultTolerance.
func FrictionFactor(method rootfind.Method, roughness, hydraulicDiameter, reynolds float64) (float64, error) {
	res, err := FrictionFactorWithin(method, Params{
		Roughness:         roughness,
		HydraulicDiameter: hydraulicDiameter,
		Reynolds:          reynolds,
	}, DefaultBracket, rootfind.Options{Tolerance: DefaultTolerance})
	if err != nil {
		return 0, err
	}
	return res.Root, nil
}

// FrictionFactorWithin solves on an explicit bracket and returns the solver
// diagnostics along with the friction factor.
func FrictionFactorWithin(method rootfind.Method, p Params, b rootfind.Bracket, opts rootfind.Options) (rootfind.Result, error) {
	residual, err := Residual(p)
	if err != nil {
		return rootfind.Result{}, err
	}
	return rootfind.Solve(method, residual, b, opts)
}
