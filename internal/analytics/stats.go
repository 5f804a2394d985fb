package analytics

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean, 0 for an empty sample.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// quantile computes the q-th quantile with linear interpolation between
// closest ranks. The input need not be sorted.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// median is the 0.5 quantile.
func median(values []float64) float64 {
	return quantile(values, 0.5)
}

// sampleStdDev returns the sample standard deviation (N-1 denominator),
// 0 when fewer than two values are present.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// modeInt returns the most frequent value; the smallest wins a frequency tie.
func modeInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

// ratio divides domestic by total, mapping division by zero to 0 rather
// than an error.
func ratio(domestic, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(domestic) / float64(total)
}
