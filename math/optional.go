// math/optional.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"strconv"
)

// Optional is a float64 that may be absent, e.g. a rate over a window that
// extends before the first sample or a ratio with an undefined
// denominator. An absent value is distinct from zero and is skipped by
// the aggregation functions below.
type Optional struct {
	Value float64 `msgpack:"v"`
	Valid bool    `msgpack:"ok"`
}

// Some returns a present value, unless v is NaN, in which case the result
// is absent.
func Some(v float64) Optional {
	if gomath.IsNaN(v) {
		return Optional{}
	}
	return Optional{Value: v, Valid: true}
}

func None() Optional {
	return Optional{}
}

func (o Optional) Get() (float64, bool) {
	return o.Value, o.Valid
}

// Or returns the value if present and d otherwise.
func (o Optional) Or(d float64) float64 {
	if o.Valid {
		return o.Value
	}
	return d
}

// Map applies f to a present value; absent values stay absent.
func (o Optional) Map(f func(float64) float64) Optional {
	if !o.Valid {
		return o
	}
	return Some(f(o.Value))
}

func (o Optional) String() string {
	if !o.Valid {
		return "-"
	}
	return strconv.FormatFloat(o.Value, 'f', -1, 64)
}

// Mean returns the mean of the present values; it is absent if there are
// none.
func Mean(vs []Optional) Optional {
	var sum float64
	n := 0
	for _, v := range vs {
		if v.Valid {
			sum += v.Value
			n++
		}
	}
	if n == 0 {
		return None()
	}
	return Some(sum / float64(n))
}

// MinMax returns the extrema of the present values; both are absent if
// there are no present values.
func MinMax(vs []Optional) (Optional, Optional) {
	var lo, hi Optional
	for _, v := range vs {
		if !v.Valid {
			continue
		}
		if !lo.Valid || v.Value < lo.Value {
			lo = v
		}
		if !hi.Valid || v.Value > hi.Value {
			hi = v
		}
	}
	return lo, hi
}
