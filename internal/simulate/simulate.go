// Package simulate produces exact sample paths of the two-population
// chain. Waiting times and event choices are drawn from the true
// continuous-time process (Gillespie's direct method); there is no time
// discretization.
package simulate

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/duopop/duopop/internal/model"
)

const (
	// MaxEvents is the event-count safety ceiling. Hitting it is not an
	// error; the run is flagged as truncated and returns what it has.
	MaxEvents = 1_000_000

	// SampleInterval is the simulated-time spacing between recorded
	// samples after burn-in.
	SampleInterval = 0.1

	// TrajectoryCap bounds the retained trajectory prefix. Once reached,
	// later points are dropped (oldest retained).
	TrajectoryCap = 10_000

	// minTotalRate is the threshold below which the total rate is treated
	// as zero. Instead of sampling an exponential with a degenerate rate,
	// the clock advances by fallbackStep and rates are re-evaluated.
	minTotalRate = 1e-12

	fallbackStep = 1.0
)

// Options controls a single simulation run.
type Options struct {
	// TotalTime is the simulated duration to cover after burn-in.
	TotalTime float64

	// BurnInTime is the initial duration discarded from samples and the
	// trajectory, letting transients decay toward stationarity.
	BurnInTime float64

	// MaxStates is the reflecting ceiling on each coordinate.
	MaxStates int
}

func (o Options) validate() error {
	switch {
	case o.TotalTime <= 0 || math.IsNaN(o.TotalTime) || math.IsInf(o.TotalTime, 0):
		return fmt.Errorf("%w: totalTime must be positive, got %g", model.ErrInvalidArgument, o.TotalTime)
	case o.BurnInTime < 0 || math.IsNaN(o.BurnInTime) || math.IsInf(o.BurnInTime, 0):
		return fmt.Errorf("%w: burnInTime must be non-negative, got %g", model.ErrInvalidArgument, o.BurnInTime)
	case o.MaxStates <= 0:
		return fmt.Errorf("%w: maxStates must be positive, got %d", model.ErrInvalidArgument, o.MaxStates)
	}
	return nil
}

// TrajectoryPoint is one time-stamped state on the sample path.
type TrajectoryPoint struct {
	T float64 `json:"t"`
	X int     `json:"x"`
	Y int     `json:"y"`
}

// Result groups everything one run produces. Results are independent:
// the simulator keeps no state between calls.
type Result struct {
	// Trajectory is the post-burn-in path prefix, capped at TrajectoryCap
	// points, in increasing time order.
	Trajectory []TrajectoryPoint `json:"trajectory"`

	// Samples are states recorded every SampleInterval time units after
	// burn-in. Order is chronological but irrelevant for statistics.
	Samples []model.State `json:"samples"`

	// Final is the state when the run ended.
	Final model.State `json:"final"`

	// Events counts applied transitions, including burn-in.
	Events int `json:"events"`

	// Elapsed is the simulated time covered after burn-in.
	Elapsed float64 `json:"elapsed"`

	// Truncated reports that the event ceiling ended the run before the
	// requested duration was reached.
	Truncated bool `json:"truncated"`
}

// Simulator runs exact event-driven simulations for one parameter set.
type Simulator struct {
	params model.Parameters
	rng    *rand.Rand
	log    *slog.Logger
}

// NewSimulator creates a simulator using rng as its randomness source.
// The rng also determines the initial state, so a seeded source makes
// whole runs reproducible. log may be nil to discard warnings.
func NewSimulator(p model.Parameters, rng *rand.Rand, log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{params: p, rng: rng, log: log}
}

// Run produces one sample path from t=0 to opts.TotalTime+opts.BurnInTime.
// It returns an invalid-argument error for bad options; truncation at the
// event ceiling and an empty sample set are reported, not raised.
func (s *Simulator) Run(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// A fixed non-zero start avoids degenerate zero-rate states at t=0.
	cur := model.State{X: 1 + s.rng.Intn(3), Y: 1 + s.rng.Intn(3)}

	var (
		res        Result
		now        float64
		horizon    = opts.TotalTime + opts.BurnInTime
		lastSample = opts.BurnInTime
	)

	for now < horizon {
		if res.Events >= MaxEvents {
			res.Truncated = true
			s.log.Warn("event ceiling reached before requested duration",
				"events", res.Events, "time", now, "horizon", horizon)
			break
		}

		rates, err := model.RatesAt(s.params, cur.X, cur.Y)
		if err != nil {
			return nil, err
		}

		total := rates.Total()
		if total < minTotalRate {
			// Degenerate regime: no transition can fire. Advance the
			// clock by a fixed step and re-evaluate at the same state.
			now += fallbackStep
			continue
		}

		now += s.rng.ExpFloat64() / total
		cur = s.applyEvent(cur, rates, total)
		cur = s.reflect(cur, opts.MaxStates)
		res.Events++

		if now >= opts.BurnInTime {
			// The watermark keeps samples evenly spaced instead of one
			// per event, and never reaches past the requested horizon.
			for limit := math.Min(now, horizon); lastSample+SampleInterval <= limit; {
				lastSample += SampleInterval
				res.Samples = append(res.Samples, cur)
			}
			if len(res.Trajectory) < TrajectoryCap {
				res.Trajectory = append(res.Trajectory, TrajectoryPoint{T: now, X: cur.X, Y: cur.Y})
			}
		}
	}

	res.Final = cur
	res.Elapsed = math.Max(0, math.Min(now, horizon)-opts.BurnInTime)

	if len(res.Samples) == 0 {
		s.log.Warn("run produced no samples",
			"totalTime", opts.TotalTime, "burnInTime", opts.BurnInTime, "events", res.Events)
	}
	return &res, nil
}

// applyEvent selects and applies one transition. The comparison order
// against the cumulative sums is fixed (arrivalA, arrivalB, departureA,
// departureB) so runs are reproducible for a given random sequence.
func (s *Simulator) applyEvent(cur model.State, r model.Rates, total float64) model.State {
	v := s.rng.Float64() * total
	switch {
	case v < r.ArrivalA:
		cur.X++
	case v < r.ArrivalA+r.ArrivalB:
		cur.Y++
	case v < r.ArrivalA+r.ArrivalB+r.DepartureA:
		cur.X = max(0, cur.X-1)
	default:
		cur.Y = max(0, cur.Y-1)
	}
	return cur
}

// reflect applies the reflecting boundary at maxStates: a coordinate past
// the ceiling is clamped, then pushed back one more step half the time.
// The extra stochastic decrement keeps the chain ergodic on the bounded
// grid rather than sticking at the ceiling.
func (s *Simulator) reflect(cur model.State, maxStates int) model.State {
	if cur.X > maxStates {
		cur.X = maxStates
		if s.rng.Float64() < 0.5 {
			cur.X--
		}
	}
	if cur.Y > maxStates {
		cur.Y = maxStates
		if s.rng.Float64() < 0.5 {
			cur.Y--
		}
	}
	return cur
}
