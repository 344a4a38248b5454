package senses

import (
	"context"
	"fmt"
	"math"

	"github.com/jbclements/t-test/adapters/stats/ttest"
	"github.com/jbclements/t-test/domain/stats"
)

const (
	// minGroupSize is the smallest group a sense will test
	minGroupSize = 2
	// DefaultAlpha is used when a sense is built without a valid significance level
	DefaultAlpha = 0.05
)

// TTestSense detects differences between group means with one of the
// two-sample t-tests.
type TTestSense struct {
	kind        stats.TestKind
	name        string
	description string
	alpha       float64
}

// NewWelchTTestSense creates a sense backed by Welch's t-test that calls a
// difference significant when p < alpha
func NewWelchTTestSense(alpha float64) *TTestSense {
	return &TTestSense{
		kind:        stats.TestWelch,
		name:        "welch_ttest",
		description: "Detects significant differences between group means with unequal variances",
		alpha:       validAlpha(alpha),
	}
}

// NewStudentTTestSense creates a sense backed by Student's pooled t-test
func NewStudentTTestSense(alpha float64) *TTestSense {
	return &TTestSense{
		kind:        stats.TestStudent,
		name:        "student_ttest",
		description: "Detects significant differences between group means assuming equal variances",
		alpha:       validAlpha(alpha),
	}
}

func validAlpha(alpha float64) float64 {
	if alpha > 0 && alpha < 1 {
		return alpha
	}
	return DefaultAlpha
}

func (s *TTestSense) Name() string { return s.name }
func (s *TTestSense) Description() string { return s.description }
func (s *TTestSense) RequiresGroups() bool { return true }

// Analyze splits the pair into two groups and tests their means
func (s *TTestSense) Analyze(ctx context.Context, x, y []float64, varX, varY string) SenseResult {
	if len(x) != len(y) || len(x) < 2*minGroupSize {
		return s.weak("Insufficient data for t-test analysis", nil)
	}
	if err := ctx.Err(); err != nil {
		return s.weak("Analysis cancelled", err)
	}

	group1, group2, strategy := identifyGroups(x, y)
	if len(group1) < minGroupSize || len(group2) < minGroupSize {
		return s.weak("Could not identify suitable groups for t-test comparison", nil)
	}

	outcome, err := ttest.Run(s.kind, group1, group2)
	if err != nil {
		return s.weak(fmt.Sprintf("%s could not be computed", s.kind.Title()), err)
	}

	effectSize := cohensD(outcome.Sample1, outcome.Sample2)

	return SenseResult{
		SenseName:   s.Name(),
		EffectSize:  effectSize,
		PValue:      outcome.PValue,
		Confidence:  calculateConfidence(outcome.PValue),
		Signal:      classifySignal(effectSize),
		Description: s.describe(outcome, effectSize),
		Metadata: map[string]interface{}{
			"t_statistic":        outcome.Statistic,
			"degrees_of_freedom": outcome.DegreesOfFreedom,
			"group1_size":        outcome.Sample1.Count,
			"group2_size":        outcome.Sample2.Count,
			"group1_mean":        outcome.Sample1.Mean,
			"group2_mean":        outcome.Sample2.Mean,
			"grouping":           strategy,
			"alpha":              s.alpha,
			"variable_x":         varX,
			"variable_y":         varY,
		},
	}
}

func (s *TTestSense) weak(description string, err error) SenseResult {
	result := SenseResult{
		SenseName:   s.Name(),
		PValue:      1.0,
		Signal:      "weak",
		Description: description,
	}
	if err != nil {
		result.Metadata = map[string]interface{}{"error": err.Error()}
	}
	return result
}

// cohensD is the mean difference over the pooled sample standard deviation
func cohensD(s1, s2 stats.SampleStats) float64 {
	df := float64(s1.Count + s2.Count - 2)
	if df <= 0 {
		return 0
	}
	pooledSD := math.Sqrt((s1.SumOfSquares() + s2.SumOfSquares()) / df)
	if pooledSD == 0 {
		return 0
	}
	return (s1.Mean - s2.Mean) / pooledSD
}

// describe creates a human-readable description of the t-test result
func (s *TTestSense) describe(o stats.Outcome, effectSize float64) string {
	n1, n2 := o.Sample1.Count, o.Sample2.Count
	if o.PValue >= s.alpha {
		return fmt.Sprintf("No significant difference between groups (t=%.3f, p=%.3f, d=%.3f, n1=%d, n2=%d)",
			o.Statistic, o.PValue, effectSize, n1, n2)
	}

	direction := "higher"
	if o.Statistic < 0 {
		direction = "lower"
	}

	var strength string
	switch absD := math.Abs(effectSize); {
	case absD < 0.2:
		strength = "small"
	case absD < 0.5:
		strength = "medium"
	case absD < 0.8:
		strength = "large"
	default:
		strength = "very large"
	}

	return fmt.Sprintf("Significant group difference: Group 1 has %s %s mean than Group 2 (t=%.3f, p=%.3f, d=%.3f, n1=%d, n2=%d)",
		strength, direction, o.Statistic, o.PValue, effectSize, n1, n2)
}
