package simulation

import (
	"testing"

	"github.com/duopop/duopop/internal/engine"
	"github.com/duopop/duopop/internal/model"
	"github.com/duopop/duopop/internal/stats"
)

// Runner executes convergence experiments against the real engine.
type Runner struct {
	t *testing.T
}

// NewRunner creates an experiment runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns one aggregated result per
// duration, in the scenario's duration order.
func (r *Runner) Run(scenario Scenario) []DurationResult {
	r.t.Helper()
	scenario = scenario.withDefaults()

	// The theoretical distribution is duration-independent; compute once.
	ref, err := engine.New(scenario.Params)
	if err != nil {
		r.t.Fatalf("Run(%s): engine: %v", scenario.Name, err)
	}
	theoretical, err := ref.StationaryDistribution(scenario.MaxStates)
	if err != nil {
		r.t.Fatalf("Run(%s): stationary distribution: %v", scenario.Name, err)
	}

	results := make([]DurationResult, 0, len(scenario.Durations))
	for _, duration := range scenario.Durations {
		burnIn := scenario.BurnIn
		if burnIn == 0 {
			burnIn = duration / 4
		}

		dr := DurationResult{Duration: duration}
		for i := 0; i < scenario.Replicates; i++ {
			seed := scenario.BaseSeed + int64(i)
			dr.Runs = append(dr.Runs, r.replicate(scenario, theoretical, duration, burnIn, seed))
		}

		var sum float64
		for _, run := range dr.Runs {
			sum += run.TVDist
		}
		dr.MeanTV = sum / float64(len(dr.Runs))
		results = append(results, dr)
	}
	return results
}

// replicate runs one seeded simulation and compares it to theoretical.
func (r *Runner) replicate(scenario Scenario, theoretical model.Distribution, duration, burnIn float64, seed int64) RunStats {
	r.t.Helper()

	eng, err := engine.New(scenario.Params, engine.WithSeed(seed))
	if err != nil {
		r.t.Fatalf("replicate(%s seed=%d): engine: %v", scenario.Name, seed, err)
	}

	res, err := eng.Simulate(duration, burnIn, scenario.MaxStates)
	if err != nil {
		r.t.Fatalf("replicate(%s seed=%d): simulate: %v", scenario.Name, seed, err)
	}
	if len(res.Samples) == 0 {
		r.t.Fatalf("replicate(%s seed=%d): no samples collected", scenario.Name, seed)
	}

	empirical := eng.EmpiricalDistribution(res.Samples, scenario.MaxStates)
	return RunStats{
		Seed:      seed,
		TVDist:    stats.TotalVariation(theoretical, empirical),
		Summary:   stats.Summarize(res.Samples),
		Events:    res.Events,
		Truncated: res.Truncated,
	}
}
