// Package model defines the parameter set, state space, and transition
// rates of a two-population continuous-time Markov chain. Two populations
// ("red" and "blue") arrive with self-enhancing, competition-normalized
// intensities and depart under environmental pressure; every rate is a
// pure function of the current state.
package model

import (
	"fmt"
	"math"
)

// Parameters holds the ten positive model coefficients. The zero value is
// invalid; construct through New or validate with Validate before use.
// Parameters are immutable by convention: all engine code takes them by
// value and never writes through them.
type Parameters struct {
	// Alpha1 and Alpha2 are the base arrival intensities.
	Alpha1 float64 `json:"alpha1" yaml:"alpha1"`
	Alpha2 float64 `json:"alpha2" yaml:"alpha2"`

	// Beta1 and Beta2 control arrival self-enhancement: the more members
	// a population has, the more attractive it becomes.
	Beta1 float64 `json:"beta1" yaml:"beta1"`
	Beta2 float64 `json:"beta2" yaml:"beta2"`

	// Gamma normalizes arrivals by total occupancy, modeling competition
	// for a shared resource.
	Gamma float64 `json:"gamma" yaml:"gamma"`

	// Delta1 and Delta2 are the base departure intensities.
	Delta1 float64 `json:"delta1" yaml:"delta1"`
	Delta2 float64 `json:"delta2" yaml:"delta2"`

	// BetaHat1 and BetaHat2 dampen departures in large populations
	// (stability in numbers).
	BetaHat1 float64 `json:"beta_hat1" yaml:"beta_hat1"`
	BetaHat2 float64 `json:"beta_hat2" yaml:"beta_hat2"`

	// GammaHat scales departure pressure with total occupancy.
	GammaHat float64 `json:"gamma_hat" yaml:"gamma_hat"`
}

// New validates p and returns it unchanged, or a domain error naming the
// first offending field.
func New(p Parameters) (Parameters, error) {
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate checks that every coefficient is strictly positive and finite.
func (p Parameters) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"alpha1", p.Alpha1},
		{"alpha2", p.Alpha2},
		{"beta1", p.Beta1},
		{"beta2", p.Beta2},
		{"gamma", p.Gamma},
		{"delta1", p.Delta1},
		{"delta2", p.Delta2},
		{"beta_hat1", p.BetaHat1},
		{"beta_hat2", p.BetaHat2},
		{"gamma_hat", p.GammaHat},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: parameter %s is not finite", ErrDomain, f.name)
		}
		if f.v <= 0 {
			return fmt.Errorf("%w: parameter %s must be positive, got %g", ErrDomain, f.name, f.v)
		}
	}
	return nil
}

// Summary reports the arrival/departure ratio of each population and how
// balanced the two are. Ratios near each other (balance below 0.2)
// indicate neither population dominates in the long run.
type Summary struct {
	Parameters   Parameters `json:"parameters"`
	RedRatio     float64    `json:"red_ratio"`
	BlueRatio    float64    `json:"blue_ratio"`
	RatioBalance float64    `json:"ratio_balance"`
	IsBalanced   bool       `json:"is_balanced"`
}

// Summarize computes the ratio summary for p. The balance is the relative
// gap |redRatio-blueRatio| / max(redRatio, blueRatio).
func (p Parameters) Summarize() Summary {
	red := p.Alpha1 / p.Delta1
	blue := p.Alpha2 / p.Delta2
	balance := math.Abs(red-blue) / math.Max(red, blue)
	return Summary{
		Parameters:   p,
		RedRatio:     red,
		BlueRatio:    blue,
		RatioBalance: balance,
		IsBalanced:   balance < 0.2,
	}
}
