// Package stats turns simulator output into decision-grade summaries:
// empirical distributions, descriptive statistics, and distances against
// the theoretical distribution.
package stats

import (
	"math"

	"github.com/duopop/duopop/internal/model"
)

// Empirical builds the sample-frequency distribution over the grid
// {0..maxStates}². Samples outside the grid are ignored. When no sample
// lands in the grid the returned distribution is zero everywhere.
func Empirical(samples []model.State, maxStates int) model.Distribution {
	dist := make(model.Distribution, (maxStates+1)*(maxStates+1))
	for x := 0; x <= maxStates; x++ {
		for y := 0; y <= maxStates; y++ {
			dist[model.State{X: x, Y: y}] = 0
		}
	}

	counted := 0
	for _, s := range samples {
		if s.X < 0 || s.X > maxStates || s.Y < 0 || s.Y > maxStates {
			continue
		}
		dist[s]++
		counted++
	}
	if counted == 0 {
		return dist
	}

	n := float64(counted)
	for k, c := range dist {
		dist[k] = c / n
	}
	return dist
}

// TotalVariation computes ½·Σ|P(k)−Q(k)| over the union of keys, treating
// a missing key as zero mass. The result is in [0,1] for normalized
// distributions.
func TotalVariation(p, q model.Distribution) float64 {
	var sum float64
	for k, pv := range p {
		sum += math.Abs(pv - q[k])
	}
	for k, qv := range q {
		if _, ok := p[k]; !ok {
			sum += math.Abs(qv)
		}
	}
	return sum / 2
}

// Summary holds descriptive statistics of a sample set.
type Summary struct {
	MeanX       float64 `json:"mean_x"`
	MeanY       float64 `json:"mean_y"`
	VarX        float64 `json:"var_x"`
	VarY        float64 `json:"var_y"`
	Covariance  float64 `json:"covariance"`
	Correlation float64 `json:"correlation"`
	Count       int     `json:"count"`
}

// Summarize computes sample means, variances (n−1 denominator), the
// covariance, and the Pearson correlation. With fewer than two samples
// the second moments are zero; a degenerate variance yields correlation
// zero rather than NaN. An empty sample set returns the zero Summary.
func Summarize(samples []model.State) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += float64(s.X)
		sumY += float64(s.Y)
	}
	out := Summary{
		MeanX: sumX / float64(n),
		MeanY: sumY / float64(n),
		Count: n,
	}
	if n <= 1 {
		return out
	}

	var ssX, ssY, ssXY float64
	for _, s := range samples {
		dx := float64(s.X) - out.MeanX
		dy := float64(s.Y) - out.MeanY
		ssX += dx * dx
		ssY += dy * dy
		ssXY += dx * dy
	}
	div := float64(n - 1)
	out.VarX = ssX / div
	out.VarY = ssY / div
	out.Covariance = ssXY / div

	if out.VarX > 0 && out.VarY > 0 {
		out.Correlation = out.Covariance / math.Sqrt(out.VarX*out.VarY)
	}
	if math.IsNaN(out.Correlation) {
		out.Correlation = 0
	}
	return out
}
