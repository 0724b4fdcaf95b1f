package utils

import "math"

// Round2 rounds to two-decimal monetary precision. Every balance and price
// mutation goes through this before it is stored.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
