// comp/tracker.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package comp

import (
	"time"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/metrics"
	"github.com/xcscore/xcscore/task"
	"github.com/xcscore/xcscore/util"
)

// Completed is the NextName of every sample from the one where the goal
// was reached onward.
const Completed = "COMPLETED"

// Annotation records the task progress at a single sample.
type Annotation struct {
	Next       int    // index of the turnpoint being sought; len(Turnpoints) once completed
	NextName   string // its display name, or Completed
	InCylinder bool
	SinceEntry float64 // seconds since entering the current cylinder; 0 if not inside
}

func (a Annotation) Completed() bool {
	return a.NextName == Completed
}

type trackerState int

const (
	stateSeeking   trackerState = iota // outside the target cylinder
	stateInside                        // inside a turnpoint or goal cylinder
	stateArmed                         // inside a START cylinder, waiting for the exit
	stateCompleted                     // goal reached
)

func (s trackerState) String() string {
	return [...]string{"seeking", "inside", "armed", "completed"}[s]
}

// Leg records when a turnpoint was achieved.
type Leg struct {
	Order int
	Name  string
	Time  time.Time
}

// Tracker follows a pilot's progress through the task's turnpoints, one
// sample at a time. Turnpoints other than START are achieved at the last
// sample inside their cylinder, which requires looking at the following
// sample; START is achieved when the pilot leaves it after having been
// inside. The final turnpoint completes the task as soon as it is
// entered, unless that happens after the goal deadline.
type Tracker struct {
	task  *task.Task
	next  int
	state trackerState
	entry time.Time
	legs  []Leg
	lg    *log.Logger
}

func NewTracker(tk *task.Task, lg *log.Logger) *Tracker {
	t := &Tracker{task: tk, lg: lg}
	// A leading START is taken to be satisfied by the gate filter.
	if tk.StartsWithSSS() && len(tk.Turnpoints) > 1 {
		t.next = 1
	}
	return t
}

func (t *Tracker) Done() bool {
	return t.state == stateCompleted
}

// Next returns the index of the turnpoint being sought.
func (t *Tracker) Next() int {
	return t.next
}

// Legs returns the turnpoints achieved so far, in order.
func (t *Tracker) Legs() []Leg {
	return t.legs
}

// Update processes s and returns its annotation. next is the following
// sample, or nil if s is the last one.
func (t *Tracker) Update(s *metrics.Sample, next *metrics.Sample) Annotation {
	if t.state == stateCompleted {
		return Annotation{Next: len(t.task.Turnpoints), NextName: Completed}
	}

	tp := t.task.Turnpoints[t.next]
	in := tp.Contains(s.Position)

	if in && t.state == stateSeeking {
		t.entry = s.Time
		t.state = util.Select(tp.Type == task.TypeStart, stateArmed, stateInside)
	}

	ann := Annotation{
		Next:       t.next,
		NextName:   tp.DisplayName(),
		InCylinder: in,
	}
	if t.state != stateSeeking {
		ann.SinceEntry = s.Time.Sub(t.entry).Seconds()
	}

	switch {
	case t.next == len(t.task.Turnpoints)-1 && in && !t.late(s.Time):
		t.achieve(tp, s.Time)
		t.state = stateCompleted
		t.lg.Debugf("%s: goal reached at %s", tp.Name, s.Time.Format(time.TimeOnly))
		ann.Next, ann.NextName = len(t.task.Turnpoints), Completed

	case t.state == stateArmed && !in:
		t.advance(tp, s.Time)

	case t.state == stateInside && next != nil && !tp.Contains(next.Position):
		t.advance(tp, s.Time)
	}

	return ann
}

func (t *Tracker) late(when time.Time) bool {
	dl, ok := t.task.Deadline(when)
	return ok && when.After(dl)
}

func (t *Tracker) achieve(tp task.Turnpoint, when time.Time) {
	t.legs = append(t.legs, Leg{Order: tp.Order, Name: tp.DisplayName(), Time: when})
}

func (t *Tracker) advance(tp task.Turnpoint, when time.Time) {
	t.achieve(tp, when)
	t.lg.Debugf("%s: achieved at %s (%s)", tp.DisplayName(), when.Format(time.TimeOnly), t.state)
	t.next++
	t.state = stateSeeking
	t.entry = time.Time{}
}

// Track runs a new tracker over all of the samples.
func Track(samples []metrics.Sample, tk *task.Task, lg *log.Logger) ([]Annotation, []Leg) {
	tr := NewTracker(tk, lg)
	ann := make([]Annotation, len(samples))
	for i := range samples {
		var next *metrics.Sample
		if i+1 < len(samples) {
			next = &samples[i+1]
		}
		ann[i] = tr.Update(&samples[i], next)
	}
	return ann, tr.Legs()
}
