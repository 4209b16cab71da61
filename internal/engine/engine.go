// Package engine composes the rate calculator, stationary solver, exact
// simulator, and statistics into the single process engine consumers
// construct. The engine holds only the immutable parameter set, the
// solver's memo cache, and a randomness source; each call is an
// independent sequential computation.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/duopop/duopop/internal/model"
	"github.com/duopop/duopop/internal/simulate"
	"github.com/duopop/duopop/internal/stationary"
	"github.com/duopop/duopop/internal/stats"
)

// Engine is the process engine for one parameter set.
type Engine struct {
	params model.Parameters
	solver *stationary.Solver
	sim    *simulate.Simulator
}

// Option configures engine construction.
type Option func(*options)

type options struct {
	rng *rand.Rand
	log *slog.Logger
}

// WithSeed makes simulation runs reproducible by seeding the engine's
// randomness source.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies a randomness source directly (used by tests).
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger routes simulator warnings (truncation, empty sample sets)
// to log. Without it warnings are discarded.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New validates p and constructs an engine. It fails with a domain error
// when any parameter is non-positive or non-finite.
func New(p model.Parameters, opts ...Option) (*Engine, error) {
	params, err := model.New(p)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return &Engine{
		params: params,
		solver: stationary.NewSolver(params),
		sim:    simulate.NewSimulator(params, o.rng, o.log),
	}, nil
}

// Params returns the engine's parameter set.
func (e *Engine) Params() model.Parameters { return e.params }

// Rates computes the four transition rates at (x,y).
func (e *Engine) Rates(x, y int) (model.Rates, error) {
	return model.RatesAt(e.params, x, y)
}

// StationaryDistribution computes the theoretical distribution over the
// grid {0..maxStates}².
func (e *Engine) StationaryDistribution(maxStates int) (model.Distribution, error) {
	return e.solver.Distribution(maxStates)
}

// Simulate produces one exact sample path and its post-burn-in samples.
func (e *Engine) Simulate(totalTime, burnInTime float64, maxStates int) (*simulate.Result, error) {
	return e.sim.Run(simulate.Options{
		TotalTime:  totalTime,
		BurnInTime: burnInTime,
		MaxStates:  maxStates,
	})
}

// EmpiricalDistribution builds the sample-frequency distribution over
// the grid {0..maxStates}².
func (e *Engine) EmpiricalDistribution(samples []model.State, maxStates int) model.Distribution {
	return stats.Empirical(samples, maxStates)
}

// CheckReversibility verifies the Kolmogorov cycle identity at the four
// states cornered at (x,y).
func (e *Engine) CheckReversibility(x, y int) (bool, error) {
	return stats.CheckReversibility(e.params, x, y)
}

// ParameterSummary reports arrival/departure ratios and their balance.
func (e *Engine) ParameterSummary() model.Summary {
	return e.params.Summarize()
}
