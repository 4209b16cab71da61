package model

import "fmt"

// Rates holds the four instantaneous transition rates out of a state.
type Rates struct {
	ArrivalA   float64 `json:"arrival_a"`
	ArrivalB   float64 `json:"arrival_b"`
	DepartureA float64 `json:"departure_a"`
	DepartureB float64 `json:"departure_b"`
}

// Total returns the sum of the four rates.
func (r Rates) Total() float64 {
	return r.ArrivalA + r.ArrivalB + r.DepartureA + r.DepartureB
}

// RatesAt computes the four transition rates at (x,y):
//
//	arrivalA   = α₁(β₁+x)/(γ+x+y)
//	arrivalB   = α₂(β₂+y)/(γ+x+y)
//	departureA = x·δ₁(γ̂+x+y)/(β̂₁+x), zero when x = 0
//	departureB = y·δ₂(γ̂+x+y)/(β̂₂+y), zero when y = 0
//
// Coordinates must be non-negative. Denominators are sums of positive
// parameters and non-negative coordinates, so they can only collapse for
// pathological near-zero parameters; that case is still checked and
// reported as a domain error rather than returning Inf.
func RatesAt(p Parameters, x, y int) (Rates, error) {
	if x < 0 || y < 0 {
		return Rates{}, fmt.Errorf("%w: state (%d,%d) has negative coordinate", ErrDomain, x, y)
	}

	occupancy := float64(x + y)

	arrDenom := p.Gamma + occupancy
	if arrDenom <= 0 {
		return Rates{}, fmt.Errorf("%w: arrival denominator %g at (%d,%d)", ErrDomain, arrDenom, x, y)
	}

	r := Rates{
		ArrivalA: p.Alpha1 * (p.Beta1 + float64(x)) / arrDenom,
		ArrivalB: p.Alpha2 * (p.Beta2 + float64(y)) / arrDenom,
	}

	if x > 0 {
		denom := p.BetaHat1 + float64(x)
		if denom <= 0 {
			return Rates{}, fmt.Errorf("%w: red departure denominator %g at (%d,%d)", ErrDomain, denom, x, y)
		}
		r.DepartureA = float64(x) * p.Delta1 * (p.GammaHat + occupancy) / denom
	}

	if y > 0 {
		denom := p.BetaHat2 + float64(y)
		if denom <= 0 {
			return Rates{}, fmt.Errorf("%w: blue departure denominator %g at (%d,%d)", ErrDomain, denom, x, y)
		}
		r.DepartureB = float64(y) * p.Delta2 * (p.GammaHat + occupancy) / denom
	}

	return r, nil
}
