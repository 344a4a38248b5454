package ttest

import (
	"math"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
)

// welchEngine computes Welch's t-statistic and the Welch-Satterthwaite
// degrees of freedom.
func welchEngine(s1, s2 stats.SampleStats) (float64, float64, error) {
	v1 := meanVariance(s1)
	v2 := meanVariance(s2)

	se2 := v1 + v2
	if se2 == 0 {
		return 0, 0, core.ErrDegenerateSamples
	}

	t := (s1.Mean - s2.Mean) / math.Sqrt(se2)

	// Shares of the squared standard error keep the ratio clear of
	// overflow and underflow.
	r1, r2 := v1/se2, v2/se2
	df := 1 / (satterthwaiteTerm(r1, s1.Count) + satterthwaiteTerm(r2, s2.Count))
	if math.IsNaN(df) || math.IsInf(df, 0) || df <= 0 {
		return 0, 0, core.NewComputationError(
			"Welch degrees of freedom is %g (sample sizes %d and %d)", df, s1.Count, s2.Count)
	}
	return t, df, nil
}

// meanVariance is the estimated variance of the sample mean, s^2/N, which for
// a population variance V is V/(N-1). A single observation contributes 0.
func meanVariance(s stats.SampleStats) float64 {
	if s.Count <= 1 {
		return 0
	}
	return s.Variance / float64(s.Count-1)
}

// satterthwaiteTerm is r^2/(N-1); it vanishes with r instead of becoming 0/0.
func satterthwaiteTerm(r float64, n int) float64 {
	if r == 0 {
		return 0
	}
	return r * r / float64(n-1)
}
