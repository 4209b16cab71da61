// Package simulation provides a repeated-run experiment harness for
// validating statistical properties of the process engine.
//
// The harness exercises the real engine — solver, exact simulator, and
// comparator, no mocks. Scenarios describe a parameter set and a ladder
// of simulated durations; the runner executes seeded replicates per
// duration and reports the average total variation distance between the
// empirical and theoretical distributions, for property-style assertions
// such as "longer runs converge".
//
// Replicate i of a scenario uses seed BaseSeed+i, so experiments are
// reproducible while still averaging over independent sample paths.
//
// Usage:
//
//	func TestConvergence(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    results := r.Run(simulation.Scenario{
//	        Name:       "convergence",
//	        Params:     params,
//	        Durations:  []float64{25, 400},
//	        Replicates: 8,
//	        BaseSeed:   1,
//	    })
//	    simulation.AssertConverging(t, results)
//	}
package simulation
