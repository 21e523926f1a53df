// Package common holds small statistical helpers shared across the
// algorithm packages, backed by gonum.
package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// RMS calculates the root mean square of a slice
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return math.Sqrt(floats.Dot(data, data) / float64(len(data)))
}

// MaxAbs returns the largest absolute value in the slice, 0 for empty input.
func MaxAbs(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		if abs := math.Abs(v); abs > maxAbs {
			maxAbs = abs
		}
	}
	return maxAbs
}

// Max returns the largest value in the slice, 0 for empty input.
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// NormalizeByPeak scales the slice in place so its largest absolute value
// becomes 1. A silent slice is left untouched.
func NormalizeByPeak(data []float64) {
	peak := MaxAbs(data)
	if peak == 0 {
		return
	}
	floats.Scale(1/peak, data)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
