package ttest

import (
	"math"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
)

// studentEngine computes the pooled-variance t-statistic.
//
// Variances arrive with divisor N, so N*V is each sample's sum of squared
// deviations and the pooled variance is their total over df = N1+N2-2.
func studentEngine(s1, s2 stats.SampleStats) (float64, float64, error) {
	if s1.Variance == 0 && s2.Variance == 0 {
		return 0, 0, core.ErrDegenerateSamples
	}

	df := float64(s1.Count-1) + float64(s2.Count-1)
	if df <= 0 {
		return 0, 0, core.NewComputationError(
			"pooled degrees of freedom is %g (sample sizes %d and %d)", df, s1.Count, s2.Count)
	}

	pooledVariance := (s1.SumOfSquares() + s2.SumOfSquares()) / df
	stdErr := math.Sqrt(pooledVariance) * math.Sqrt(1/float64(s1.Count)+1/float64(s2.Count))

	t := (s1.Mean - s2.Mean) / stdErr
	return t, df, nil
}
