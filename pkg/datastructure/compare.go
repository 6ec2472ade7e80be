package datastructure

import "math"

const (
	EPS = 1e-6
)

// equal operator
func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

func Lt(a, b float64) bool {
	return a+EPS < b
}

func Ge(a, b float64) bool {
	return a >= b-EPS
}

func Le(a, b float64) bool {
	return a <= b+EPS
}
