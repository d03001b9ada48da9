// task/timeofday.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a UTC time of day, stored as the offset from midnight.
type TimeOfDay time.Duration

// ParseTimeOfDay parses "HH:MM:SSZ"; the trailing Z is optional.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(time.TimeOnly, strings.TrimSuffix(s, "Z"))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadTimeGate)
	}
	d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return TimeOfDay(d), nil
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

// On returns the instant at this time of day on the given date's day
// (in UTC).
func (t TimeOfDay) On(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Add(time.Duration(t))
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02dZ", h, m, s)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%s: %w", string(b), ErrBadTimeGate)
	}
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = tod
	return nil
}

// CheckJSON accepts strings; their format is checked when unmarshaling.
func (t TimeOfDay) CheckJSON(json any) bool {
	_, ok := json.(string)
	return ok
}
