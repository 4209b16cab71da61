package simulation

import (
	"github.com/duopop/duopop/internal/model"
	"github.com/duopop/duopop/internal/stats"
)

// Scenario defines a complete convergence experiment.
type Scenario struct {
	Name   string
	Params model.Parameters

	// Durations is the ladder of post-burn-in simulated durations to
	// compare, in increasing order.
	Durations []float64

	// BurnIn is the discarded initial duration per run. Defaults to a
	// quarter of the duration when zero.
	BurnIn float64

	// MaxStates is the grid ceiling. Defaults to 12 when zero.
	MaxStates int

	// Replicates is the number of independent runs averaged per duration.
	// Defaults to 5 when zero.
	Replicates int

	// BaseSeed seeds replicate i with BaseSeed+i.
	BaseSeed int64
}

func (s Scenario) withDefaults() Scenario {
	if s.MaxStates == 0 {
		s.MaxStates = 12
	}
	if s.Replicates == 0 {
		s.Replicates = 5
	}
	return s
}

// RunStats captures one replicate's outcome.
type RunStats struct {
	Seed      int64
	TVDist    float64
	Summary   stats.Summary
	Events    int
	Truncated bool
}

// DurationResult aggregates all replicates at one duration.
type DurationResult struct {
	Duration float64
	MeanTV   float64
	Runs     []RunStats
}
