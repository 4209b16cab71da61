// Package stationary computes the closed-form stationary distribution of
// the two-population chain over a bounded grid. The distribution has a
// product form with a cross-population coupling: the blue-dimension
// denominators are shifted by the current red population, which is what
// keeps the two dimensions from being independent Poisson-like marginals.
package stationary

import (
	"fmt"
	"math"
	"sync"

	"github.com/duopop/duopop/internal/model"
)

// minNormalizer is the smallest normalization constant the solver will
// divide by. Below this the grid's total mass has underflowed and the
// normalized probabilities would be meaningless.
const minNormalizer = 1e-100

// Solver evaluates stationary probabilities for one parameter set. It
// owns a factorial memo guarded by a mutex, so a single Solver is safe
// for concurrent use; results carry no solver state.
type Solver struct {
	params model.Parameters

	mu        sync.Mutex
	factorial map[int]float64
}

// NewSolver creates a solver for p. The parameter set is assumed to have
// passed model validation.
func NewSolver(p model.Parameters) *Solver {
	return &Solver{
		params:    p,
		factorial: map[int]float64{0: 1},
	}
}

// Distribution computes the normalized stationary distribution over the
// grid {0..maxStates}². It returns a numerical error if any unnormalized
// weight is non-finite or negative, or if the total mass underflows.
func (s *Solver) Distribution(maxStates int) (model.Distribution, error) {
	if maxStates <= 0 {
		return nil, fmt.Errorf("%w: maxStates must be positive, got %d", model.ErrInvalidArgument, maxStates)
	}

	dist := make(model.Distribution, (maxStates+1)*(maxStates+1))
	var z float64

	for x := 0; x <= maxStates; x++ {
		for y := 0; y <= maxStates; y++ {
			w, err := s.weight(x, y)
			if err != nil {
				return nil, err
			}
			dist[model.State{X: x, Y: y}] = w
			z += w
		}
	}

	if math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, fmt.Errorf("%w: normalization constant is not finite", model.ErrNumerical)
	}
	if z < minNormalizer {
		return nil, fmt.Errorf("%w: normalization constant %g underflowed below %g", model.ErrNumerical, z, minNormalizer)
	}

	for k, w := range dist {
		dist[k] = w / z
	}
	return dist, nil
}

// weight evaluates the unnormalized stationary mass at (x,y):
//
//	w(x,y) = (α₁/δ₁)^x (α₂/δ₂)^y / (x! y!)
//	         · Π_{i=1..x} (β₁+i−1)(β̂₁+i) / Π_{i=1..x} (γ+i−1)(γ̂+i)
//	         · Π_{j=1..y} (β₂+j−1)(β̂₂+j) / Π_{j=1..y} (γ+x+j−1)(γ̂+x+j)
//
// The shift of the blue denominators by x is intentional model coupling;
// do not "simplify" it away.
func (s *Solver) weight(x, y int) (float64, error) {
	p := s.params

	w := math.Pow(p.Alpha1/p.Delta1, float64(x)) / s.fact(x)
	w *= math.Pow(p.Alpha2/p.Delta2, float64(y)) / s.fact(y)

	for i := 1; i <= x; i++ {
		fi := float64(i)
		w *= (p.Beta1 + fi - 1) * (p.BetaHat1 + fi)
		w /= (p.Gamma + fi - 1) * (p.GammaHat + fi)
	}

	fx := float64(x)
	for j := 1; j <= y; j++ {
		fj := float64(j)
		w *= (p.Beta2 + fj - 1) * (p.BetaHat2 + fj)
		w /= (p.Gamma + fx + fj - 1) * (p.GammaHat + fx + fj)
	}

	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%w: weight at (%d,%d) is not finite", model.ErrNumerical, x, y)
	}
	if w < 0 {
		return 0, fmt.Errorf("%w: weight at (%d,%d) is negative: %g", model.ErrNumerical, x, y, w)
	}
	return w, nil
}

// fact returns n! as a float64, memoized per solver. Accurate up to
// n = 170; beyond that float64 overflows to +Inf, which the weight check
// surfaces as a numerical error.
func (s *Solver) fact(n int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.factorial[n]; ok {
		return v
	}

	// Extend from the highest cached value up to n.
	high := 0
	for k := range s.factorial {
		if k > high && k <= n {
			high = k
		}
	}
	v := s.factorial[high]
	for k := high + 1; k <= n; k++ {
		v *= float64(k)
		s.factorial[k] = v
	}
	return v
}
