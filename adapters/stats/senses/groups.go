package senses

import (
	"math"
	"slices"
)

// identifyGroups splits y by x when x has exactly two levels (or x by y),
// otherwise splits the lower-variance variable around the median of the
// higher-variance one.
func identifyGroups(x, y []float64) ([]float64, []float64, string) {
	if isBinaryVariable(x) {
		g1, g2 := splitByBinaryVariable(x, y)
		return g1, g2, "binary_x"
	}

	if isBinaryVariable(y) {
		g1, g2 := splitByBinaryVariable(y, x)
		return g1, g2, "binary_y"
	}

	if variance(x) > variance(y) {
		g1, g2 := medianSplit(x, y)
		return g1, g2, "median_x"
	}
	g1, g2 := medianSplit(y, x)
	return g1, g2, "median_y"
}

// isBinaryVariable checks for exactly two distinct non-NaN values
func isBinaryVariable(data []float64) bool {
	uniqueValues := make(map[float64]struct{})
	for _, val := range data {
		if !math.IsNaN(val) {
			uniqueValues[val] = struct{}{}
			if len(uniqueValues) > 2 {
				return false
			}
		}
	}
	return len(uniqueValues) == 2
}

// splitByBinaryVariable groups numericVar by the level of groupVar. The
// smaller level forms the first group.
func splitByBinaryVariable(groupVar, numericVar []float64) ([]float64, []float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, val := range groupVar {
		if math.IsNaN(val) {
			continue
		}
		low = math.Min(low, val)
		high = math.Max(high, val)
	}

	var group1, group2 []float64
	for i, g := range groupVar {
		if math.IsNaN(g) || math.IsNaN(numericVar[i]) {
			continue
		}
		if g == low {
			group1 = append(group1, numericVar[i])
		} else if g == high {
			group2 = append(group2, numericVar[i])
		}
	}

	return group1, group2
}

// medianSplit splits numericVar at the median of groupVar: values at or
// below it form the first group.
func medianSplit(groupVar, numericVar []float64) ([]float64, []float64) {
	sorted := make([]float64, 0, len(groupVar))
	for _, val := range groupVar {
		if !math.IsNaN(val) {
			sorted = append(sorted, val)
		}
	}

	if len(sorted) < 2 {
		return nil, nil
	}

	slices.Sort(sorted)
	median := sorted[len(sorted)/2]

	var group1, group2 []float64
	for i, g := range groupVar {
		if math.IsNaN(g) || math.IsNaN(numericVar[i]) {
			continue
		}
		if g <= median {
			group1 = append(group1, numericVar[i])
		} else {
			group2 = append(group2, numericVar[i])
		}
	}

	return group1, group2
}

// variance is the sample variance over non-NaN values
func variance(data []float64) float64 {
	var n, mean, m2 float64
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		n++
		delta := v - mean
		mean += delta / n
		m2 += delta * (v - mean)
	}
	if n < 2 {
		return 0
	}
	return m2 / (n - 1)
}
