// math/math_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestDistance(t *testing.T) {
	pts := []Point2LL{
		LL(0, 0),
		LL(34.679, -119.921),
		LL(-33.8688, 151.2093),
		LL(89.9, 10),
		LL(34.045, -118.955),
	}

	for _, p := range pts {
		if d := Distance(p, p); d != 0 {
			t.Errorf("%s: distance to self %f, expected 0", p.DDString(), d)
		}
		for _, q := range pts {
			if Distance(p, q) != Distance(q, p) {
				t.Errorf("%s -> %s: distance not symmetric: %f vs %f", p.DDString(), q.DDString(),
					Distance(p, q), Distance(q, p))
			}
		}
	}

	// One degree of latitude is ~111.2km on a sphere of radius 6371km.
	if d := Distance(LL(0, 0), LL(1, 0)); Abs(d-111195) > 10 {
		t.Errorf("one degree latitude gave %f m, expected ~111195", d)
	}

	// Antipodes: half the circumference.
	if d := Distance(LL(0, 0), LL(0, 180)); Abs(d-gomath.Pi*EarthRadius) > 1 {
		t.Errorf("antipodal distance %f, expected %f", d, gomath.Pi*EarthRadius)
	}
}

func TestBearing(t *testing.T) {
	cases := []struct {
		a, b Point2LL
		hdg  float64
	}{
		{a: LL(0, 0), b: LL(1, 0), hdg: 0},
		{a: LL(0, 0), b: LL(0, 1), hdg: 90},
		{a: LL(1, 0), b: LL(0, 0), hdg: 180},
		{a: LL(0, 1), b: LL(0, 0), hdg: 270},
	}
	for _, c := range cases {
		if h := Bearing(c.a, c.b); Abs(h-c.hdg) > 1e-6 {
			t.Errorf("%s -> %s: got bearing %f, expected %f", c.a.DDString(), c.b.DDString(), h, c.hdg)
		}
	}
}

func TestNormalizeThreePoint(t *testing.T) {
	cases := []struct {
		name                string
		v, bottom, mid, top float64
		expected            float64
	}{
		{name: "midpoint", v: 5, bottom: 0, mid: 5, top: 10, expected: 0.5},
		{name: "below", v: 2.5, bottom: 0, mid: 5, top: 10, expected: 0.25},
		{name: "above", v: 7.5, bottom: 0, mid: 5, top: 10, expected: 0.75},
		{name: "NaN", v: gomath.NaN(), bottom: 0, mid: 5, top: 10, expected: 0.5},
		{name: "clamp high", v: 100, bottom: 0, mid: 5, top: 10, expected: 1},
		{name: "clamp low", v: -100, bottom: 0, mid: 5, top: 10, expected: 0},
		{name: "asymmetric", v: 1, bottom: -5, mid: 0, top: 2, expected: 0.75},
		{name: "degenerate low half", v: 3, bottom: 3, mid: 3, top: 4, expected: 0.5},
		{name: "negative midpoint", v: -2, bottom: -4, mid: -2, top: 6, expected: 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := NormalizeThreePoint(c.v, c.bottom, c.mid, c.top)
			if n != c.expected {
				t.Errorf("got %v, expected %v", n, c.expected)
			}
		})
	}

	for v := -20.0; v <= 20; v += 0.37 {
		if n := NormalizeThreePoint(v, -3, 1, 4); n < 0 || n > 1 {
			t.Errorf("%f: normalized value %f outside [0,1]", v, n)
		}
	}
}

func TestOptional(t *testing.T) {
	if Some(gomath.NaN()).Valid {
		t.Errorf("NaN should give an absent value")
	}
	if v, ok := Some(0).Get(); !ok || v != 0 {
		t.Errorf("zero should be a present value")
	}
	if None().Or(-1) != -1 {
		t.Errorf("Or did not return default for absent value")
	}
	if None().Map(func(v float64) float64 { return v * 2 }).Valid {
		t.Errorf("Map of absent value should stay absent")
	}

	vs := []Optional{None(), Some(1), None(), Some(3), Some(-4)}
	if m := Mean(vs); !m.Valid || m.Value != 0 {
		t.Errorf("Mean gave %s, expected 0", m)
	}
	if m := Mean([]Optional{None(), None()}); m.Valid {
		t.Errorf("Mean of absent values should be absent, got %s", m)
	}
	lo, hi := MinMax(vs)
	if lo.Value != -4 || hi.Value != 3 {
		t.Errorf("MinMax gave %s, %s; expected -4, 3", lo, hi)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 || Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 {
		t.Errorf("Clamp returned unexpected results")
	}
}
