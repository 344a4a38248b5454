// Package ttest implements the two-sample, two-tailed Student's (pooled
// variance) and Welch's (unequal variance) t-tests.
//
// Both tests share one pipeline: describe each sample, let the engine turn
// the two summaries into a t-statistic and degrees of freedom, then map
// (t, df) to a p-value through the regularized incomplete beta function.
// All functions are pure and safe for concurrent use.
package ttest

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jbclements/t-test/adapters/stats/descriptive"
	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/domain/stats"
)

// engine turns two sample summaries into (t, df).
type engine func(s1, s2 stats.SampleStats) (t, df float64, err error)

// engineFor resolves kind, case-insensitively, to its canonical name and engine.
func engineFor(kind stats.TestKind) (stats.TestKind, engine, error) {
	k, err := stats.ParseTestKind(string(kind))
	if err != nil {
		return "", nil, err
	}
	switch k {
	case stats.TestStudent:
		return k, studentEngine, nil
	case stats.TestWelch:
		return k, welchEngine, nil
	}
	return "", nil, fmt.Errorf("%w: no engine for test kind %q", core.ErrInvalidArgument, kind)
}

// StudentTTest returns the two-tailed p-value of Student's t-test, or the
// t-statistic when asStatistic is set.
func StudentTTest(sample1, sample2 []float64, asStatistic bool) (float64, error) {
	return result(stats.TestStudent, sample1, sample2, asStatistic)
}

// WelchTTest returns the two-tailed p-value of Welch's t-test, or the
// t-statistic when asStatistic is set.
func WelchTTest(sample1, sample2 []float64, asStatistic bool) (float64, error) {
	return result(stats.TestWelch, sample1, sample2, asStatistic)
}

// StudentTTestSeq is StudentTTest over arbitrary sequences.
func StudentTTestSeq(sample1, sample2 iter.Seq[float64], asStatistic bool) (float64, error) {
	return result(stats.TestStudent, collect(sample1), collect(sample2), asStatistic)
}

// WelchTTestSeq is WelchTTest over arbitrary sequences.
func WelchTTestSeq(sample1, sample2 iter.Seq[float64], asStatistic bool) (float64, error) {
	return result(stats.TestWelch, collect(sample1), collect(sample2), asStatistic)
}

// Run performs the full test and returns every intermediate.
func Run(kind stats.TestKind, sample1, sample2 []float64) (stats.Outcome, error) {
	kind, eng, err := engineFor(kind)
	if err != nil {
		return stats.Outcome{}, err
	}

	s1, s2, err := describeBoth(sample1, sample2)
	if err != nil {
		return stats.Outcome{}, err
	}

	t, df, err := eng(s1, s2)
	if err != nil {
		return stats.Outcome{}, err
	}

	p, err := PValue(t, df)
	if err != nil {
		return stats.Outcome{}, err
	}

	return stats.Outcome{
		Kind:             kind,
		Sample1:          s1,
		Sample2:          s2,
		Statistic:        t,
		DegreesOfFreedom: df,
		PValue:           p,
	}, nil
}

func result(kind stats.TestKind, sample1, sample2 []float64, asStatistic bool) (float64, error) {
	_, eng, err := engineFor(kind)
	if err != nil {
		return 0, err
	}

	s1, s2, err := describeBoth(sample1, sample2)
	if err != nil {
		return 0, err
	}

	t, df, err := eng(s1, s2)
	if err != nil {
		return 0, err
	}
	if asStatistic {
		return t, nil
	}
	return PValue(t, df)
}

// describeBoth validates both samples before computing anything from them.
func describeBoth(sample1, sample2 []float64) (stats.SampleStats, stats.SampleStats, error) {
	if len(sample1) == 0 {
		return stats.SampleStats{}, stats.SampleStats{}, core.NewEmptySampleError(core.FirstSample)
	}
	if len(sample2) == 0 {
		return stats.SampleStats{}, stats.SampleStats{}, core.NewEmptySampleError(core.SecondSample)
	}

	s1, err := descriptive.Describe(sample1)
	if err != nil {
		return stats.SampleStats{}, stats.SampleStats{}, err
	}
	s2, err := descriptive.Describe(sample2)
	if err != nil {
		return stats.SampleStats{}, stats.SampleStats{}, err
	}

	if s1.Variance == 0 && s2.Variance == 0 {
		return stats.SampleStats{}, stats.SampleStats{}, core.ErrDegenerateSamples
	}
	return s1, s2, nil
}

func collect(seq iter.Seq[float64]) []float64 {
	if seq == nil {
		return nil
	}
	return slices.Collect(seq)
}
