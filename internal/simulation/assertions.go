package simulation

import "testing"

// AssertConverging asserts that the mean total variation distance is
// strictly decreasing along the duration ladder: longer runs must, on
// average over the replicates, sit closer to the theoretical
// distribution.
func AssertConverging(t *testing.T, results []DurationResult) {
	t.Helper()
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if cur.MeanTV >= prev.MeanTV {
			t.Errorf("AssertConverging: mean TV %.4f at duration %g not below %.4f at duration %g",
				cur.MeanTV, cur.Duration, prev.MeanTV, prev.Duration)
		}
	}
}

// AssertAllWithinGrid asserts that every replicate's mean occupancy lies
// inside the grid, a basic sanity check on the reflecting boundary.
func AssertAllWithinGrid(t *testing.T, results []DurationResult, maxStates int) {
	t.Helper()
	for _, dr := range results {
		for _, run := range dr.Runs {
			if run.Summary.MeanX < 0 || run.Summary.MeanX > float64(maxStates) {
				t.Errorf("AssertAllWithinGrid: duration %g seed %d: meanX %.3f outside [0,%d]",
					dr.Duration, run.Seed, run.Summary.MeanX, maxStates)
			}
			if run.Summary.MeanY < 0 || run.Summary.MeanY > float64(maxStates) {
				t.Errorf("AssertAllWithinGrid: duration %g seed %d: meanY %.3f outside [0,%d]",
					dr.Duration, run.Seed, run.Summary.MeanY, maxStates)
			}
		}
	}
}
