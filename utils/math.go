// Package utils contains small numeric helpers shared by the locator packages.
package utils

import (
	"math"
)

// AbsInt returns |n|.
func AbsInt(n int) int {
	if n < 0 {
		return -1 * n
	}
	return n
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ClampInt limits n to [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// CubeRoot returns x^(1/3) for non negative x.
func CubeRoot(x float64) float64 {
	p := 1.0 / 3.0
	return math.Pow(x, p)
}

// Square returns n*n.
func Square(n float64) float64 {
	return n * n
}

// MulOverflows reports whether a*b overflows an int, for non negative a and b.
func MulOverflows(a, b int) bool {
	if a == 0 || b == 0 {
		return false
	}
	return a > math.MaxInt/b
}
