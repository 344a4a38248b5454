package ttest

import (
	"math"

	"github.com/jbclements/t-test/adapters/stats/betainc"
	"github.com/jbclements/t-test/domain/core"
)

// PValue returns the two-tailed probability of a t-statistic at least as
// extreme as t under a t-distribution with df degrees of freedom.
//
// t^2 follows F(1, df), whose upper tail is I_{df/(t^2+df)}(df/2, 1/2).
func PValue(t, df float64) (float64, error) {
	if math.IsNaN(t) {
		return 0, core.NewInvalidArgumentError("t", t)
	}
	if !(df > 0) || math.IsInf(df, 1) {
		return 0, core.NewComputationError("degrees of freedom must be positive and finite, got %g", df)
	}
	if math.IsInf(t, 0) {
		return 0, nil
	}

	a, b := df/2, 0.5
	t2 := t * t
	x := df / (t2 + df)
	if x <= (a+1)/(a+b+2) {
		return betainc.RegularizedIncompleteBeta(a, b, x)
	}

	// Form the small complement directly; 1-x would lose digits when t^2 << df.
	q, err := betainc.RegularizedIncompleteBeta(b, a, t2/(t2+df))
	if err != nil {
		return 0, err
	}
	return min(max(1-q, 0), 1), nil
}
