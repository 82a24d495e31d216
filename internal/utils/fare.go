package utils

import "math"

// TotalFare multiplies the per passenger fare.
func TotalFare(perPassenger int64, passengers int) int64 {
	if passengers <= 0 {
		return 0
	}
	return perPassenger * int64(passengers)
}

// AmountMatches compares a client supplied payment with the expected total.
// Payments arrive as JSON numbers, so a sub-cent tolerance is allowed.
func AmountMatches(paid float64, expected int64) bool {
	return math.Abs(paid-float64(expected)) < 0.005
}
