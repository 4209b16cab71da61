package model

import (
	"errors"
	"math"
	"testing"
)

func TestRatesAt_Formulas(t *testing.T) {
	p := reference()

	tests := []struct {
		name string
		x, y int
	}{
		{"origin", 0, 0},
		{"interior", 3, 4},
		{"axis x", 5, 0},
		{"axis y", 0, 7},
		{"large", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := RatesAt(p, tt.x, tt.y)
			if err != nil {
				t.Fatalf("RatesAt(%d,%d): %v", tt.x, tt.y, err)
			}

			fx, fy := float64(tt.x), float64(tt.y)
			occ := fx + fy

			wantArrA := p.Alpha1 * (p.Beta1 + fx) / (p.Gamma + occ)
			wantArrB := p.Alpha2 * (p.Beta2 + fy) / (p.Gamma + occ)
			if math.Abs(r.ArrivalA-wantArrA) > 1e-12 {
				t.Errorf("ArrivalA = %f, want %f", r.ArrivalA, wantArrA)
			}
			if math.Abs(r.ArrivalB-wantArrB) > 1e-12 {
				t.Errorf("ArrivalB = %f, want %f", r.ArrivalB, wantArrB)
			}

			wantDepA := 0.0
			if tt.x > 0 {
				wantDepA = fx * p.Delta1 * (p.GammaHat + occ) / (p.BetaHat1 + fx)
			}
			wantDepB := 0.0
			if tt.y > 0 {
				wantDepB = fy * p.Delta2 * (p.GammaHat + occ) / (p.BetaHat2 + fy)
			}
			if math.Abs(r.DepartureA-wantDepA) > 1e-12 {
				t.Errorf("DepartureA = %f, want %f", r.DepartureA, wantDepA)
			}
			if math.Abs(r.DepartureB-wantDepB) > 1e-12 {
				t.Errorf("DepartureB = %f, want %f", r.DepartureB, wantDepB)
			}

			total := r.ArrivalA + r.ArrivalB + r.DepartureA + r.DepartureB
			if math.Abs(r.Total()-total) > 1e-12 {
				t.Errorf("Total = %f, want %f", r.Total(), total)
			}
		})
	}
}

func TestRatesAt_EmptyPopulationCannotDepart(t *testing.T) {
	p := reference()
	for y := 0; y <= 10; y++ {
		r, err := RatesAt(p, 0, y)
		if err != nil {
			t.Fatalf("RatesAt(0,%d): %v", y, err)
		}
		if r.DepartureA != 0 {
			t.Errorf("DepartureA at x=0, y=%d should be 0, got %f", y, r.DepartureA)
		}
	}
	for x := 0; x <= 10; x++ {
		r, err := RatesAt(p, x, 0)
		if err != nil {
			t.Fatalf("RatesAt(%d,0): %v", x, err)
		}
		if r.DepartureB != 0 {
			t.Errorf("DepartureB at x=%d, y=0 should be 0, got %f", x, r.DepartureB)
		}
	}
}

func TestRatesAt_NegativeCoordinates(t *testing.T) {
	p := reference()
	for _, s := range []State{{-1, 0}, {0, -1}, {-3, -2}} {
		if _, err := RatesAt(p, s.X, s.Y); !errors.Is(err, ErrDomain) {
			t.Errorf("RatesAt%s: want ErrDomain, got %v", s, err)
		}
	}
}

func TestRatesAt_NonNegative(t *testing.T) {
	p := reference()
	for x := 0; x <= 12; x++ {
		for y := 0; y <= 12; y++ {
			r, err := RatesAt(p, x, y)
			if err != nil {
				t.Fatalf("RatesAt(%d,%d): %v", x, y, err)
			}
			if r.ArrivalA < 0 || r.ArrivalB < 0 || r.DepartureA < 0 || r.DepartureB < 0 {
				t.Errorf("negative rate at (%d,%d): %+v", x, y, r)
			}
		}
	}
}

func TestStateValid(t *testing.T) {
	if !(State{X: 0, Y: 0}).Valid() {
		t.Error("(0,0) should be valid")
	}
	if (State{X: -1, Y: 2}).Valid() {
		t.Error("(-1,2) should be invalid")
	}
	if got := (State{X: 3, Y: 4}).String(); got != "(3,4)" {
		t.Errorf("String = %q, want %q", got, "(3,4)")
	}
}
