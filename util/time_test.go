// util/time_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"testing"
	"time"
)

func TestTimeInterval(t *testing.T) {
	start := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	interval := TimeInterval{start, end}

	if interval.Duration() != 2*time.Hour {
		t.Errorf("expected duration 2h, got %v", interval.Duration())
	}

	for _, c := range []struct {
		t        time.Time
		contains bool
	}{
		{start, true},
		{end, true},
		{start.Add(time.Hour), true},
		{start.Add(-time.Second), false},
		{end.Add(time.Second), false},
	} {
		if interval.Contains(c.t) != c.contains {
			t.Errorf("Contains(%v) = %v, expected %v", c.t, !c.contains, c.contains)
		}
	}

	if !(TimeInterval{}).IsZero() || interval.IsZero() {
		t.Errorf("IsZero gave unexpected results")
	}
}

func TestFindTimeIntervals(t *testing.T) {
	base := time.Date(2024, 7, 15, 11, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(1 * time.Second),
		base.Add(2 * time.Second),
		base.Add(62 * time.Second), // recorder dropout
		base.Add(63 * time.Second),
	}

	intervals := FindTimeIntervals(times, 10*time.Second)
	expected := []TimeInterval{
		{base, base.Add(2 * time.Second)},
		{base.Add(62 * time.Second), base.Add(63 * time.Second)},
	}

	if len(intervals) != len(expected) {
		t.Fatalf("expected %d intervals, got %d", len(expected), len(intervals))
	}
	for i := range expected {
		if intervals[i] != expected[i] {
			t.Errorf("interval %d: expected %v, got %v", i, expected[i], intervals[i])
		}
	}

	if FindTimeIntervals(nil, time.Second) != nil {
		t.Errorf("expected nil for no times")
	}
}
