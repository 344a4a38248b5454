// Package descriptive extracts the per-sample summary that both t-test
// engines consume.
package descriptive

import (
	"errors"
	"iter"
	"math"
	"slices"

	"github.com/jbclements/t-test/domain/core"
	domainStats "github.com/jbclements/t-test/domain/stats"

	"github.com/montanaflynn/stats"
)

// Describe computes count, mean and population variance (divisor = count).
// The biased variance is intentional: the engines apply their own
// (count-1) corrections.
func Describe(xs []float64) (domainStats.SampleStats, error) {
	if len(xs) == 0 {
		return domainStats.SampleStats{}, core.ErrEmptySample
	}
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return domainStats.SampleStats{}, core.NewInvalidArgumentError("sample value", x)
		}
	}

	mean, err := stats.Mean(xs)
	if err != nil {
		return domainStats.SampleStats{}, translate(err)
	}

	variance, err := stats.PopulationVariance(xs)
	if err != nil {
		return domainStats.SampleStats{}, translate(err)
	}

	return domainStats.SampleStats{
		Count:    len(xs),
		Mean:     mean,
		Variance: variance,
	}, nil
}

// DescribeSeq drains seq once and describes the collected values.
func DescribeSeq(seq iter.Seq[float64]) (domainStats.SampleStats, error) {
	if seq == nil {
		return domainStats.SampleStats{}, core.ErrEmptySample
	}
	return Describe(slices.Collect(seq))
}

func translate(err error) error {
	if errors.Is(err, stats.ErrEmptyInput) {
		return core.ErrEmptySample
	}
	return core.NewComputationError("describe sample: %v", err)
}
