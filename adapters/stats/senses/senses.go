// Package senses runs two-sample t-tests over a pair of variables, deriving
// the two groups from the data itself.
package senses

import (
	"context"
	"math"
)

// SenseResult represents the output of a single statistical sense
type SenseResult struct {
	SenseName   string                 `json:"sense_name"`
	EffectSize  float64                `json:"effect_size"`
	PValue      float64                `json:"p_value"`
	Confidence  float64                `json:"confidence"`  // 0-1 confidence score
	Signal      string                 `json:"signal"`      // "weak", "moderate", "strong", "very_strong"
	Description string                 `json:"description"` // Human-readable explanation
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// StatisticalSense defines the interface for each statistical sense
type StatisticalSense interface {
	Name() string
	Description() string
	Analyze(ctx context.Context, x, y []float64, varX, varY string) SenseResult
	RequiresGroups() bool
}

// SenseEngine runs a set of senses over the same variable pair
type SenseEngine struct {
	senses []StatisticalSense
}

// NewSenseEngine creates an engine with the Welch and Student senses, both
// judging significance at alpha
func NewSenseEngine(alpha float64) *SenseEngine {
	return &SenseEngine{
		senses: []StatisticalSense{
			NewWelchTTestSense(alpha),
			NewStudentTTestSense(alpha),
		},
	}
}

// AnalyzeAll runs all senses concurrently; results follow registration order
func (e *SenseEngine) AnalyzeAll(ctx context.Context, x, y []float64, varX, varY string) []SenseResult {
	results := make([]SenseResult, len(e.senses))

	type resultWithIndex struct {
		result SenseResult
		index  int
	}

	resultChan := make(chan resultWithIndex, len(e.senses))

	for i, sense := range e.senses {
		go func(sense StatisticalSense, idx int) {
			resultChan <- resultWithIndex{result: sense.Analyze(ctx, x, y, varX, varY), index: idx}
		}(sense, i)
	}

	for i := 0; i < len(e.senses); i++ {
		res := <-resultChan
		results[res.index] = res.result
	}

	return results
}

// AnalyzeSingle runs a specific sense by name
func (e *SenseEngine) AnalyzeSingle(ctx context.Context, senseName string, x, y []float64, varX, varY string) (SenseResult, bool) {
	for _, sense := range e.senses {
		if sense.Name() == senseName {
			return sense.Analyze(ctx, x, y, varX, varY), true
		}
	}
	return SenseResult{}, false
}

// ListSenses returns all available sense names
func (e *SenseEngine) ListSenses() []string {
	names := make([]string, len(e.senses))
	for i, sense := range e.senses {
		names[i] = sense.Name()
	}
	return names
}

// classifySignal converts Cohen's d to signal strength
func classifySignal(effectSize float64) string {
	absEffect := math.Abs(effectSize)

	switch {
	case absEffect < 0.2:
		return "weak"
	case absEffect < 0.5:
		return "moderate"
	case absEffect < 0.8:
		return "strong"
	}
	return "very_strong"
}

// calculateConfidence converts p-value to confidence score (0-1)
func calculateConfidence(pValue float64) float64 {
	if pValue >= 1.0 {
		return 0.0
	}
	if pValue <= 0.001 {
		return 0.99
	}
	// -log10 scaled so p=0.001 maps near 1 and p=1 to 0
	c := -math.Log10(pValue+0.001) / 3.0
	return math.Max(0, math.Min(0.99, c))
}
