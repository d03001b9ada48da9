// metrics/config.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"fmt"
)

// NumWindows is the number of analysis windows computed for each sample.
const NumWindows = 4

// WindowIndex identifies one of the analysis windows in Config.Windows.
type WindowIndex int

const (
	Window1s WindowIndex = iota
	Window5s
	Window20s
	Window30s
)

// Config holds the window sizes and thresholds used by the Engine.
// Windows are measured in samples; for a recorder logging once a second
// they correspond to seconds.
type Config struct {
	Windows [NumWindows]int

	// A sample is stopped if it covered less than StoppedDistance meters
	// over StoppedWindow.
	StoppedWindow   WindowIndex
	StoppedDistance float64

	// A sample is climbing if its vertical speed over ClimbWindow is at
	// least ClimbThreshold m/s. The default threshold is negative so that
	// weak sink still counts as climbing.
	ClimbWindow    WindowIndex
	ClimbThreshold float64

	// Altitude gained and lost are accumulated from the per-sample
	// altitude change over AltitudeWindow; cumulative distance from the
	// per-sample distance over DistanceWindow.
	AltitudeWindow WindowIndex
	DistanceWindow WindowIndex

	// Glide ratio uses the speeds over GlideWindow and is clipped to
	// [-GlideClip, GlideClip].
	GlideWindow WindowIndex
	GlideClip   float64

	// ClimbSmoothing is the number of climbing samples averaged for the
	// smoothed climb rate.
	ClimbSmoothing int
}

func DefaultConfig() Config {
	return Config{
		Windows:         [NumWindows]int{1, 5, 20, 30},
		StoppedWindow:   Window30s,
		StoppedDistance: 200,
		ClimbWindow:     Window5s,
		ClimbThreshold:  -0.5,
		AltitudeWindow:  Window5s,
		DistanceWindow:  Window20s,
		GlideWindow:     Window20s,
		GlideClip:       50,
		ClimbSmoothing:  10,
	}
}

func (c Config) Validate() error {
	for i, w := range c.Windows {
		if w <= 0 {
			return fmt.Errorf("%w: window %d has non-positive length %d", ErrInvalidConfig, i, w)
		}
		if i > 0 && w <= c.Windows[i-1] {
			return fmt.Errorf("%w: windows %v are not strictly increasing", ErrInvalidConfig, c.Windows)
		}
	}

	for _, idx := range []struct {
		name string
		w    WindowIndex
	}{
		{"stopped", c.StoppedWindow},
		{"climb", c.ClimbWindow},
		{"altitude", c.AltitudeWindow},
		{"distance", c.DistanceWindow},
		{"glide", c.GlideWindow},
	} {
		if idx.w < 0 || int(idx.w) >= NumWindows {
			return fmt.Errorf("%w: %s window index %d out of range", ErrInvalidConfig, idx.name, idx.w)
		}
	}

	if c.StoppedDistance < 0 {
		return fmt.Errorf("%w: negative stopped distance %f", ErrInvalidConfig, c.StoppedDistance)
	}
	if c.GlideClip <= 0 {
		return fmt.Errorf("%w: glide clip %f must be positive", ErrInvalidConfig, c.GlideClip)
	}
	if c.ClimbSmoothing <= 0 {
		return fmt.Errorf("%w: climb smoothing %d must be positive", ErrInvalidConfig, c.ClimbSmoothing)
	}
	return nil
}
