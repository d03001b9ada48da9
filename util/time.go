// util/time.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"time"
)

// TimeInterval represents a closed time interval [start, end].
type TimeInterval [2]time.Time

func (ti TimeInterval) Start() time.Time {
	return ti[0]
}

func (ti TimeInterval) End() time.Time {
	return ti[1]
}

func (ti TimeInterval) Duration() time.Duration {
	return ti[1].Sub(ti[0])
}

// Contains checks if the interval contains the given time; both
// endpoints are included.
func (ti TimeInterval) Contains(t time.Time) bool {
	return !t.Before(ti[0]) && !t.After(ti[1])
}

func (ti TimeInterval) IsZero() bool {
	return ti[0].IsZero() && ti[1].IsZero()
}

// FindTimeIntervals splits a series of sorted times into intervals: if
// the gap between two successive times is greater than d, the current
// interval ends at the first time and a new one starts at the second.
func FindTimeIntervals(times []time.Time, d time.Duration) []TimeInterval {
	if len(times) == 0 {
		return nil
	}

	var intervals []TimeInterval
	start := times[0]

	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) > d {
			intervals = append(intervals, TimeInterval{start, times[i-1]})
			start = times[i]
		}
	}

	return append(intervals, TimeInterval{start, times[len(times)-1]})
}
