package utils

import (
	"math"
	"strconv"
)

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// If the norm is zero, the slice is unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}

// RoundTo rounds v to the given number of decimal places, using correctly
// rounded decimal conversion of the underlying binary value. Scaling through
// math.Round would misround values like 12.345 whose float64 representation
// sits just below the decimal midpoint.
func RoundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// ElapsedMs converts elapsed nanoseconds to milliseconds rounded to two
// decimal places (the processing_time_ms wire format).
func ElapsedMs(nanos int64) float64 {
	return RoundTo(float64(nanos)/1e6, 2)
}
