package reynolds

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	rho  = 910.0 // kg/m3
	u    = 2.6   // m/s
	mu   = 0.38  // N s/m2
	nu   = mu / rho
	want = 1.556579
)

func round6(x float64) float64 { return math.Round(x*1e6) / 1e6 }

// halfRoundPipe is a circular pipe running half full.
func halfRoundPipe() (dh, a, p, q float64) {
	dh = 0.00025
	r := dh / 2
	a = math.Pi * r * r / 2
	p = math.Pi * r
	q = u * a
	return
}

func TestReynolds_RoundPipeVariantsAgree(t *testing.T) {
	dh, a, p, q := halfRoundPipe()
	got := map[string]float64{
		"rho_u_dh_mu":   VelocityDiameter(rho, u, dh, mu),
		"rho_u_4a_mu_p": VelocityArea(rho, u, a, mu, p),
		"rho_q_dh_mu_a": FlowDiameter(rho, q, dh, mu, a),
		"rho_q_4_mu_p":  FlowPerimeter(rho, q, mu, p),
		"u_dh_nu":       KinematicVelocityDiameter(u, dh, nu),
		"u_4a_nu_p":     KinematicVelocityArea(u, a, nu, p),
		"q_dh_nu_a":     KinematicFlowDiameter(q, dh, nu, a),
		"q_4_nu_p":      KinematicFlowPerimeter(q, nu, p),
	}
	for name, re := range got {
		if round6(re) != want {
			t.Errorf("%s = %.9f, want %.6f", name, re, want)
		}
	}
}

func TestReynolds_SquarePipeVariantsAgree(t *testing.T) {
	side := 0.00025
	a := side * side / 2
	p := side * 2
	q := u * a
	got := map[string]float64{
		"rho_u_4a_mu_p": VelocityArea(rho, u, a, mu, p),
		"rho_q_4_mu_p":  FlowPerimeter(rho, q, mu, p),
		"u_4a_nu_p":     KinematicVelocityArea(u, a, nu, p),
		"q_4_nu_p":      KinematicFlowPerimeter(q, nu, p),
	}
	for name, re := range got {
		if round6(re) != want {
			t.Errorf("%s = %.9f, want %.6f", name, re, want)
		}
	}
	if dh := HydraulicDiameter(a, p); math.Abs(dh-side) > 1e-18 {
		t.Errorf("hydraulic diameter = %g, want %g", dh, side)
	}
}

func TestCalculate_AllVariants(t *testing.T) {
	dh, a, p, q := halfRoundPipe()
	in := Input{
		Density:            rho,
		Velocity:           u,
		FlowRate:           q,
		HydraulicDiameter:  dh,
		Area:               a,
		Perimeter:          p,
		DynamicViscosity:   mu,
		KinematicViscosity: nu,
	}
	for _, v := range Variants() {
		in.Variant = v
		res, err := Calculate(in)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if round6(res.Reynolds) != want {
			t.Errorf("%s = %.9f, want %.6f", v, res.Reynolds, want)
		}
		if res.Regime != Laminar || res.Variant != v {
			t.Errorf("%s: unexpected result %+v", v, res)
		}
	}
}

func TestCalculate_Rejects(t *testing.T) {
	cases := []Input{
		{Variant: "nope", Density: 1, Velocity: 1, HydraulicDiameter: 1, DynamicViscosity: 1},
		{Variant: VariantVelocityDiameter, Density: 1, Velocity: 1, HydraulicDiameter: 1},
		{Variant: VariantVelocityArea, Density: 1, Velocity: 1, Area: 1, DynamicViscosity: 1},
		{Variant: VariantKinematicFlowDiameter, FlowRate: 1, HydraulicDiameter: 1, KinematicViscosity: 1},
		{Variant: VariantKinematicFlowPerimeter, FlowRate: 1, Perimeter: 1},
		{Variant: VariantVelocityDiameter, Density: math.Inf(1), Velocity: 1, HydraulicDiameter: 1, DynamicViscosity: 1},
	}
	for _, in := range cases {
		if _, err := Calculate(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestRegime(t *testing.T) {
	cases := []struct {
		re   float64
		want FlowRegime
	}{
		{1.5, Laminar},
		{2299, Laminar},
		{2300, Transitional},
		{4000, Transitional},
		{4001, Turbulent},
		{1.87e6, Turbulent},
	}
	for _, tc := range cases {
		if got := Regime(tc.re); got != tc.want {
			t.Errorf("Regime(%g) = %s, want %s", tc.re, got, tc.want)
		}
	}
}

func TestHandler_Calc(t *testing.T) {
	h := &Handler{}
	body, _ := json.Marshal(Input{
		Variant:            VariantKinematicVelocityDiameter,
		Velocity:           u,
		HydraulicDiameter:  0.00025,
		KinematicViscosity: nu,
	})
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/reynolds/calc", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if round6(res.Reynolds) != want {
		t.Errorf("reynolds = %g", res.Reynolds)
	}

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/reynolds/calc", bytes.NewReader([]byte(`{"variant":"u_dh_nu"}`))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero viscosity: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/reynolds/calc", bytes.NewReader([]byte(`{`))))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: status = %d, want 400", rec.Code)
	}
}
