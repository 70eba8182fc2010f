package utils

import "math"

// Round2 rounds an amount to currency scale (2 decimals).
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
