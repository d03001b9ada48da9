// metrics/sample.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"github.com/xcscore/xcscore/igc"
	"github.com/xcscore/xcscore/math"
)

// MSToKMH converts meters per second to kilometers per hour.
const MSToKMH = 3.6

// WindowMetrics holds the quantities computed between a sample and the
// sample a window's length before it. All are absent for the first
// samples of a flight, where there is no earlier sample to compare with.
type WindowMetrics struct {
	Distance      math.Optional `msgpack:"d"` // m
	Elapsed       math.Optional `msgpack:"e"` // s
	Speed         math.Optional `msgpack:"s"` // m/s
	SpeedKmh      math.Optional `msgpack:"k"`
	VerticalSpeed math.Optional `msgpack:"vs"` // m/s, positive up
	// Heading is the bearing across the window in degrees, absent if the
	// pilot did not move.
	Heading math.Optional `msgpack:"h"`
}

// Category is the flight mode of a sample.
type Category int

const (
	CategoryNone Category = iota
	StoppedAndNotClimbing
	StoppedAndClimbing
	ClimbingOnGlide
	SinkingOnGlide
	NumCategories
)

var categoryLabels = [NumCategories]string{
	CategoryNone:          "",
	StoppedAndNotClimbing: "stopped_and_not_climbing",
	StoppedAndClimbing:    "stopped_and_climbing",
	ClimbingOnGlide:       "climbing_on_glide",
	SinkingOnGlide:        "sinking_on_glide",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryLabels[c]
}

// Categories returns the four flight-mode categories, excluding
// CategoryNone.
func Categories() []Category {
	return []Category{StoppedAndNotClimbing, StoppedAndClimbing, ClimbingOnGlide, SinkingOnGlide}
}

func categorize(stopped, climbing bool) Category {
	switch {
	case stopped && !climbing:
		return StoppedAndNotClimbing
	case stopped && climbing:
		return StoppedAndClimbing
	case climbing:
		return ClimbingOnGlide
	default:
		return SinkingOnGlide
	}
}

// Sample is a fix together with everything derived from it and the
// fixes before it.
type Sample struct {
	igc.Fix `msgpack:",inline"`

	Windows [NumWindows]WindowMetrics `msgpack:"w"`

	Stopped  bool     `msgpack:"st"`
	Climbing bool     `msgpack:"cl"`
	Category Category `msgpack:"c"`

	// Running totals from the start of the flight.
	AltitudeGained  float64                `msgpack:"ag"` // m
	AltitudeLost    float64                `msgpack:"al"` // m, <= 0
	Distance        float64                `msgpack:"dist"`
	CategorySeconds [NumCategories]float64 `msgpack:"cs"`

	// Glide is absent while stopped or when the glide ratio is undefined.
	Glide math.Optional `msgpack:"g"`
	// ClimbRate is the smoothed climb rate, present only on climbing
	// samples once enough climbing samples have been seen.
	ClimbRate math.Optional `msgpack:"cr"`
}

func (s *Sample) OnGlide() bool { return !s.Stopped }

func (s *Sample) Sinking() bool { return !s.Climbing }

// Window returns the metrics for the given window.
func (s *Sample) Window(w WindowIndex) WindowMetrics {
	return s.Windows[w]
}
