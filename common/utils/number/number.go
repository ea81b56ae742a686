package number

import (
	"strconv"
)

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// Clamp bounds f to [min, max]
func Clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}

	if f > max {
		return max
	}

	return f
}
