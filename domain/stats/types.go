package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/jbclements/t-test/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// SampleStats summarises one sample.
// INVARIANTS:
// - Count >= 1
// - Variance >= 0 and is the population variance (divisor = Count)
type SampleStats struct {
	Count    int     `json:"count" db:"count"`
	Mean     float64 `json:"mean" db:"mean"`
	Variance float64 `json:"variance" db:"variance"`
}

// SumOfSquares returns the sum of squared deviations from the mean.
func (s SampleStats) SumOfSquares() float64 {
	return float64(s.Count) * s.Variance
}

// TestKind selects the two-sample test formula.
type TestKind string

const (
	TestStudent TestKind = "student" // Pooled-variance t-test
	TestWelch   TestKind = "welch"   // Unequal-variance t-test
)

// ParseTestKind accepts the canonical names, case-insensitively.
func ParseTestKind(s string) (TestKind, error) {
	switch TestKind(strings.ToLower(strings.TrimSpace(s))) {
	case TestStudent:
		return TestStudent, nil
	case TestWelch:
		return TestWelch, nil
	}
	return "", fmt.Errorf("%w: unknown test kind %q", core.ErrInvalidArgument, s)
}

// Title is the human-readable test name.
func (k TestKind) Title() string {
	switch k {
	case TestStudent:
		return "Student's t-test"
	case TestWelch:
		return "Welch's t-test"
	default:
		return string(k)
	}
}

// Outcome carries every intermediate of one two-sample test.
type Outcome struct {
	Kind             TestKind    `json:"kind"`
	Sample1          SampleStats `json:"sample1"`
	Sample2          SampleStats `json:"sample2"`
	Statistic        float64     `json:"statistic"`
	DegreesOfFreedom float64     `json:"degrees_of_freedom"`
	PValue           float64     `json:"p_value"`
}

// ============================================================================
// PERSISTED RECORDS
// ============================================================================

// TestRun is a computed test as stored by the run repository.
type TestRun struct {
	Outcome

	ID          core.RunID `json:"id"`
	Label       string     `json:"label,omitempty"`
	Alpha       float64    `json:"alpha"`
	Significant bool       `json:"significant"` // PValue < Alpha
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTestRun stamps an outcome with an identifier and a verdict at alpha.
func NewTestRun(label string, outcome Outcome, alpha float64) *TestRun {
	return &TestRun{
		ID:          core.NewRunID(),
		Label:       label,
		Outcome:     outcome,
		Alpha:       alpha,
		Significant: outcome.PValue < alpha,
		CreatedAt:   time.Now().UTC(),
	}
}
