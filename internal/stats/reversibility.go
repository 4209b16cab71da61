package stats

import (
	"math"

	"github.com/duopop/duopop/internal/model"
)

// reversibilityTol scales the allowed gap between the two cycle products
// to their magnitude, with a floor for near-zero products.
const reversibilityTol = 1e-10

// CheckReversibility verifies Kolmogorov's criterion on the four-state
// cycle with lower-left corner (x,y): at stationarity the product of
// rates around the cycle must be equal in both directions. Forward,
// (x,y)→(x+1,y)→(x+1,y+1)→(x,y+1)→(x,y):
// arrivalA(x,y)·arrivalB(x+1,y)·departureA(x+1,y+1)·departureB(x,y+1);
// reverse, (x,y)→(x,y+1)→(x+1,y+1)→(x+1,y)→(x,y):
// arrivalB(x,y)·arrivalA(x,y+1)·departureB(x+1,y+1)·departureA(x+1,y).
// The model satisfies this identity by construction, so a false return
// indicates a broken rate implementation.
func CheckReversibility(p model.Parameters, x, y int) (bool, error) {
	at, err := model.RatesAt(p, x, y)
	if err != nil {
		return false, err
	}
	right, err := model.RatesAt(p, x+1, y)
	if err != nil {
		return false, err
	}
	up, err := model.RatesAt(p, x, y+1)
	if err != nil {
		return false, err
	}
	diag, err := model.RatesAt(p, x+1, y+1)
	if err != nil {
		return false, err
	}

	fwd := at.ArrivalA * right.ArrivalB * diag.DepartureA * up.DepartureB
	rev := at.ArrivalB * up.ArrivalA * diag.DepartureB * right.DepartureA

	tol := reversibilityTol * math.Max(math.Max(fwd, rev), reversibilityTol)
	return math.Abs(fwd-rev) <= tol, nil
}
