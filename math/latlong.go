// math/latlong.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

// EarthRadius is the spherical mean radius used for all great-circle
// computations, in meters. Using the WGS84 semimajor axis (6378137 m)
// instead would scale every distance by about +0.11%.
const EarthRadius = 6371000

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float64

func (p Point2LL) Longitude() float64 {
	return p[0]
}

func (p Point2LL) Latitude() float64 {
	return p[1]
}

// LL makes a Point2LL from a latitude and longitude, given in that
// (conventional) order.
func LL(lat, lon float64) Point2LL {
	return Point2LL{lon, lat}
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// Distance returns the great-circle distance in meters between two
// lat-long coordinates, using the haversine formula.
func Distance(a Point2LL, b Point2LL) float64 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	lat1, lon1 := Radians(a[1]), Radians(a[0])
	lat2, lon2 := Radians(b[1]), Radians(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Asin(gomath.Sqrt(Clamp(x, 0, 1)))
	return EarthRadius * c
}

// Bearing returns the initial great-circle bearing from a to b in
// degrees, in [0,360).
func Bearing(a Point2LL, b Point2LL) float64 {
	lat1, lat2 := Radians(a[1]), Radians(b[1])
	dlon := Radians(b[0] - a[0])

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	hdg := Degrees(gomath.Atan2(y, x))
	if hdg < 0 {
		hdg += 360
	}
	return hdg
}
