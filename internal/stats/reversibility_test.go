package stats

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/duopop/duopop/internal/model"
)

func reference() model.Parameters {
	return model.Parameters{
		Alpha1:   1.5,
		Alpha2:   1.2,
		Beta1:    0.8,
		Beta2:    0.8,
		Gamma:    1.5,
		Delta1:   0.9,
		Delta2:   0.7,
		BetaHat1: 1.2,
		BetaHat2: 1.2,
		GammaHat: 0.8,
	}
}

func TestCheckReversibility_ReferenceGrid(t *testing.T) {
	p := reference()
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			ok, err := CheckReversibility(p, x, y)
			if err != nil {
				t.Fatalf("CheckReversibility(%d,%d): %v", x, y, err)
			}
			if !ok {
				t.Errorf("cycle at (%d,%d) violates reversibility", x, y)
			}
		}
	}
}

// The model is reversible by construction, so the identity must hold for
// arbitrary positive parameter choices, not just the defaults.
func TestCheckReversibility_RandomParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(314))

	for trial := 0; trial < 50; trial++ {
		p := model.Parameters{
			Alpha1:   0.1 + 5*rng.Float64(),
			Alpha2:   0.1 + 5*rng.Float64(),
			Beta1:    0.1 + 3*rng.Float64(),
			Beta2:    0.1 + 3*rng.Float64(),
			Gamma:    0.1 + 3*rng.Float64(),
			Delta1:   0.1 + 2*rng.Float64(),
			Delta2:   0.1 + 2*rng.Float64(),
			BetaHat1: 0.1 + 3*rng.Float64(),
			BetaHat2: 0.1 + 3*rng.Float64(),
			GammaHat: 0.1 + 3*rng.Float64(),
		}

		x, y := rng.Intn(20), rng.Intn(20)
		ok, err := CheckReversibility(p, x, y)
		if err != nil {
			t.Fatalf("trial %d: CheckReversibility(%d,%d): %v", trial, x, y, err)
		}
		if !ok {
			t.Errorf("trial %d: cycle at (%d,%d) violates reversibility for %+v", trial, x, y, p)
		}
	}
}

// The two directed products around the square cycle must agree exactly
// when each deserves the rate of the transition it traverses; pairing a
// departure with the wrong cycle direction leaves a gap of ~17% at this
// corner.
func TestCheckReversibility_CycleProductsAgree(t *testing.T) {
	p := reference()
	const x, y = 1, 2

	at, err := model.RatesAt(p, x, y)
	if err != nil {
		t.Fatal(err)
	}
	right, err := model.RatesAt(p, x+1, y)
	if err != nil {
		t.Fatal(err)
	}
	up, err := model.RatesAt(p, x, y+1)
	if err != nil {
		t.Fatal(err)
	}
	diag, err := model.RatesAt(p, x+1, y+1)
	if err != nil {
		t.Fatal(err)
	}

	fwd := at.ArrivalA * right.ArrivalB * diag.DepartureA * up.DepartureB
	rev := at.ArrivalB * up.ArrivalA * diag.DepartureB * right.DepartureA

	if gap := math.Abs(fwd-rev) / math.Max(fwd, rev); gap > 1e-12 {
		t.Errorf("cycle products differ: fwd=%.12f rev=%.12f relative gap %g", fwd, rev, gap)
	}

	ok, err := CheckReversibility(p, x, y)
	if err != nil {
		t.Fatalf("CheckReversibility(%d,%d): %v", x, y, err)
	}
	if !ok {
		t.Errorf("CheckReversibility(%d,%d) = false, want true", x, y)
	}
}

func TestCheckReversibility_InvalidCorner(t *testing.T) {
	if _, err := CheckReversibility(reference(), -1, 0); !errors.Is(err, model.ErrDomain) {
		t.Errorf("want ErrDomain for negative corner, got %v", err)
	}
}
