// math/core.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Degrees converts an angle expressed in radians to degrees.
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians.
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// NormalizeThreePoint maps v into [0,1] piecewise-linearly so that bottom
// maps to 0, midpoint to 0.5, and top to 1; the two halves have
// independent slopes. NaN is treated as the midpoint.
func NormalizeThreePoint(v, bottom, midpoint, top float64) float64 {
	if v != v {
		v = midpoint
	}

	var n float64
	if v > midpoint {
		n = 0.5 + (v-midpoint)/(2*(top-midpoint))
	} else if v == midpoint {
		// Exact, and avoids 0/0 when midpoint == bottom.
		n = 0.5
	} else {
		n = (v - bottom) / (2 * (midpoint - bottom))
	}

	return Clamp(n, 0, 1)
}
