// comp/summary.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package comp

import (
	"time"

	"github.com/iancoleman/orderedmap"

	"github.com/xcscore/xcscore/metrics"
)

// Summary describes a pilot's performance on a task.
type Summary struct {
	Path  string
	Pilot string

	// Start is the opening of the first start gate, or the first scored
	// sample if the task has no gates. It is zero if nothing was scored.
	Start time.Time
	// Goal is when the goal was reached; zero unless ReachedGoal.
	Goal        time.Time
	ReachedGoal bool

	TurnpointsAchieved int
	// TaskDuration is Goal-Start; zero unless ReachedGoal.
	TaskDuration time.Duration
	Legs         []Leg

	// Flight summarizes the scored samples; it is unset if there were
	// none.
	Flight    metrics.Summary
	HasFlight bool
}

func summarize(r Result, gate time.Time, gated bool, legs []Leg) Summary {
	s := Summary{
		Path:  r.Table.Path,
		Pilot: r.Table.Pilot,
		Legs:  legs,
	}
	if len(r.Annotations) == 0 {
		return s
	}

	s.Start = r.Table.Samples[0].Time
	if gated {
		s.Start = gate
	}

	last := r.Annotations[len(r.Annotations)-1]
	s.TurnpointsAchieved = last.Next
	if last.Completed() {
		s.ReachedGoal = true
		s.Goal = r.Table.Samples[len(r.Table.Samples)-1].Time
		s.TaskDuration = s.Goal.Sub(s.Start)
	}

	if fs, err := metrics.Summarize(r.Table); err == nil {
		s.Flight, s.HasFlight = fs, true
	}
	return s
}

// LastAchieved returns the time the most recent turnpoint was achieved.
func (s Summary) LastAchieved() (time.Time, bool) {
	if len(s.Legs) == 0 {
		return time.Time{}, false
	}
	return s.Legs[len(s.Legs)-1].Time, true
}

// Ordered returns the summary as an ordered map with a fixed key order;
// times that do not apply are nil.
func (s Summary) Ordered() *orderedmap.OrderedMap {
	tm := func(t time.Time) any {
		if t.IsZero() {
			return nil
		}
		return t.Format(time.TimeOnly)
	}

	m := orderedmap.New()
	m.Set("pilot", s.Pilot)
	m.Set("start", tm(s.Start))
	m.Set("goal", tm(s.Goal))
	m.Set("reached_goal", s.ReachedGoal)
	m.Set("turnpoints", s.TurnpointsAchieved)
	if s.ReachedGoal {
		m.Set("task_duration_s", s.TaskDuration.Seconds())
	} else {
		m.Set("task_duration_s", nil)
	}

	var legs []*orderedmap.OrderedMap
	for _, l := range s.Legs {
		lm := orderedmap.New()
		lm.Set("turnpoint", l.Name)
		lm.Set("time", l.Time.Format(time.TimeOnly))
		legs = append(legs, lm)
	}
	m.Set("legs", legs)

	if s.HasFlight {
		m.Set("flight", s.Flight.Ordered())
	}
	return m
}
