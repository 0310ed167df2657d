package reynolds

import (
	"errors"
	"fmt"
	"math"
)

// Reynolds number for flow in a pipe, https://en.wikipedia.org/wiki/Reynolds_number
//
// The dynamic forms take density rho and dynamic viscosity mu, the kinematic
// forms take kinematic viscosity nu = mu/rho. Mean velocity u or volumetric
// flow rate Q combine with either the hydraulic diameter D_H or the area A and
// wetted perimeter P, since D_H = 4A/P. Units are not converted.

// VelocityDiameter is rho*u*D_H/mu.
func VelocityDiameter(rho, u, dh, mu float64) float64 {
	return (rho * u * dh) / mu
}

// VelocityArea is rho*u*4A/(mu*P).
func VelocityArea(rho, u, a, mu, p float64) float64 {
	return (rho * u * 4 * a) / (mu * p)
}

// FlowDiameter is rho*Q*D_H/(mu*A).
func FlowDiameter(rho, q, dh, mu, a float64) float64 {
	return (rho * q * dh) / (mu * a)
}

// FlowPerimeter is rho*Q*4/(mu*P).
func FlowPerimeter(rho, q, mu, p float64) float64 {
	return (rho * q * 4) / (mu * p)
}

// KinematicVelocityDiameter is u*D_H/nu.
func KinematicVelocityDiameter(u, dh, nu float64) float64 {
	return (u * dh) / nu
}

// KinematicVelocityArea is u*4A/(nu*P).
func KinematicVelocityArea(u, a, nu, p float64) float64 {
	return (u * 4 * a) / (nu * p)
}

// KinematicFlowDiameter is Q*D_H/(nu*A).
func KinematicFlowDiameter(q, dh, nu, a float64) float64 {
	return (q * dh) / (nu * a)
}

// KinematicFlowPerimeter is Q*4/(nu*P).
func KinematicFlowPerimeter(q, nu, p float64) float64 {
	return (q * 4) / (nu * p)
}

// HydraulicDiameter is 4A/P.
func HydraulicDiameter(area, perimeter float64) float64 {
	return 4 * area / perimeter
}

type FlowRegime string

const (
	Laminar      FlowRegime = "laminar"
	Transitional FlowRegime = "transitional"
	Turbulent    FlowRegime = "turbulent"
)

const (
	LaminarLimit   = 2300.0
	TurbulentLimit = 4000.0
)

// Regime classifies pipe flow by Reynolds number.
func Regime(re float64) FlowRegime {
	switch {
	case re < LaminarLimit:
		return Laminar
	case re <= TurbulentLimit:
		return Transitional
	default:
		return Turbulent
	}
}

type Variant string

const (
	VariantVelocityDiameter          Variant = "rho_u_dh_mu"
	VariantVelocityArea              Variant = "rho_u_4a_mu_p"
	VariantFlowDiameter              Variant = "rho_q_dh_mu_a"
	VariantFlowPerimeter             Variant = "rho_q_4_mu_p"
	VariantKinematicVelocityDiameter Variant = "u_dh_nu"
	VariantKinematicVelocityArea     Variant = "u_4a_nu_p"
	VariantKinematicFlowDiameter     Variant = "q_dh_nu_a"
	VariantKinematicFlowPerimeter    Variant = "q_4_nu_p"
)

func Variants() []Variant {
	return []Variant{
		VariantVelocityDiameter,
		VariantVelocityArea,
		VariantFlowDiameter,
		VariantFlowPerimeter,
		VariantKinematicVelocityDiameter,
		VariantKinematicVelocityArea,
		VariantKinematicFlowDiameter,
		VariantKinematicFlowPerimeter,
	}
}

var ErrInvalidInput = errors.New("reynolds: invalid input")

type Input struct {
	Variant            Variant `json:"variant"`
	Density            float64 `json:"density"`
	Velocity           float64 `json:"velocity"`
	FlowRate           float64 `json:"flow_rate"`
	HydraulicDiameter  float64 `json:"hydraulic_diameter"`
	Area               float64 `json:"area"`
	Perimeter          float64 `json:"perimeter"`
	DynamicViscosity   float64 `json:"dynamic_viscosity"`
	KinematicViscosity float64 `json:"kinematic_viscosity"`
}

type Result struct {
	Reynolds float64    `json:"reynolds"`
	Regime   FlowRegime `json:"regime"`
	Variant  Variant    `json:"variant"`
	Notes    string     `json:"notes"`
}

// Calculate evaluates the formula selected by in.Variant. Quantities the
// variant divides by must be non-zero; other plausibility checks are left to
// the caller.
func Calculate(in Input) (Result, error) {
	var re float64
	switch in.Variant {
	case VariantVelocityDiameter:
		if in.DynamicViscosity == 0 {
			return Result{}, divisorError(in.Variant, "dynamic_viscosity")
		}
		re = VelocityDiameter(in.Density, in.Velocity, in.HydraulicDiameter, in.DynamicViscosity)
	case VariantVelocityArea:
		if in.DynamicViscosity == 0 || in.Perimeter == 0 {
			return Result{}, divisorError(in.Variant, "dynamic_viscosity, perimeter")
		}
		re = VelocityArea(in.Density, in.Velocity, in.Area, in.DynamicViscosity, in.Perimeter)
	case VariantFlowDiameter:
		if in.DynamicViscosity == 0 || in.Area == 0 {
			return Result{}, divisorError(in.Variant, "dynamic_viscosity, area")
		}
		re = FlowDiameter(in.Density, in.FlowRate, in.HydraulicDiameter, in.DynamicViscosity, in.Area)
	case VariantFlowPerimeter:
		if in.DynamicViscosity == 0 || in.Perimeter == 0 {
			return Result{}, divisorError(in.Variant, "dynamic_viscosity, perimeter")
		}
		re = FlowPerimeter(in.Density, in.FlowRate, in.DynamicViscosity, in.Perimeter)
	case VariantKinematicVelocityDiameter:
		if in.KinematicViscosity == 0 {
			return Result{}, divisorError(in.Variant, "kinematic_viscosity")
		}
		re = KinematicVelocityDiameter(in.Velocity, in.HydraulicDiameter, in.KinematicViscosity)
	case VariantKinematicVelocityArea:
		if in.KinematicViscosity == 0 || in.Perimeter == 0 {
			return Result{}, divisorError(in.Variant, "kinematic_viscosity, perimeter")
		}
		re = KinematicVelocityArea(in.Velocity, in.Area, in.KinematicViscosity, in.Perimeter)
	case VariantKinematicFlowDiameter:
		if in.KinematicViscosity == 0 || in.Area == 0 {
			return Result{}, divisorError(in.Variant, "kinematic_viscosity, area")
		}
		re = KinematicFlowDiameter(in.FlowRate, in.HydraulicDiameter, in.KinematicViscosity, in.Area)
	case VariantKinematicFlowPerimeter:
		if in.KinematicViscosity == 0 || in.Perimeter == 0 {
			return Result{}, divisorError(in.Variant, "kinematic_viscosity, perimeter")
		}
		re = KinematicFlowPerimeter(in.FlowRate, in.KinematicViscosity, in.Perimeter)
	default:
		return Result{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidInput, in.Variant)
	}
	if math.IsNaN(re) || math.IsInf(re, 0) {
		return Result{}, fmt.Errorf("%w: %s is not finite", ErrInvalidInput, in.Variant)
	}

	return Result{
		Reynolds: re,
		Regime:   Regime(math.Abs(re)),
		Variant:  in.Variant,
		Notes:    "Reynolds number for pipe flow; inputs are used in the units supplied.",
	}, nil
}

func divisorError(v Variant, fields string) error {
	return fmt.Errorf("%w: %s divides by %s, which must be non-zero", ErrInvalidInput, v, fields)
}
