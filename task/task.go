// task/task.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/xcscore/xcscore/math"
)

// TurnpointType gives the scoring role of a turnpoint.
type TurnpointType int

const (
	TypeNone TurnpointType = iota
	TypeTakeoff
	TypeStart
	TypeEndOfSpeedSection
	TypeGoal
)

func (t TurnpointType) String() string {
	switch t {
	case TypeNone:
		return ""
	case TypeTakeoff:
		return "TAKEOFF"
	case TypeStart:
		return "START"
	case TypeEndOfSpeedSection:
		return "END_OF_SPEED_SECTION"
	case TypeGoal:
		return "GOAL"
	default:
		return fmt.Sprintf("TurnpointType(%d)", int(t))
	}
}

// ParseTurnpointType parses a turnpoint type; the xctsk abbreviations SSS
// and ESS are accepted for START and END_OF_SPEED_SECTION.
func ParseTurnpointType(s string) (TurnpointType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return TypeNone, true
	case "TAKEOFF":
		return TypeTakeoff, true
	case "START", "SSS":
		return TypeStart, true
	case "END_OF_SPEED_SECTION", "ESS":
		return TypeEndOfSpeedSection, true
	case "GOAL":
		return TypeGoal, true
	default:
		return TypeNone, false
	}
}

// Turnpoint is a cylinder the pilot must reach.
type Turnpoint struct {
	Order       int
	Center      math.Point2LL
	Radius      float64 // meters
	Type        TurnpointType
	Name        string
	Description string
	Altitude    int // meters
}

// DisplayName returns e.g. "START, Launch" for typed turnpoints and
// "TP2, Ridge" for untyped ones.
func (tp Turnpoint) DisplayName() string {
	if tp.Type != TypeNone {
		return tp.Type.String() + ", " + tp.Name
	}
	return fmt.Sprintf("TP%d, %s", tp.Order, tp.Name)
}

// Contains reports whether p is inside the turnpoint's cylinder; the
// boundary counts as inside.
func (tp Turnpoint) Contains(p math.Point2LL) bool {
	return math.Distance(tp.Center, p) <= tp.Radius
}

// StartSection describes the start of the speed section.
type StartSection struct {
	Type      string // e.g. RACE, ELAPSED-TIME
	Direction string // ENTER or EXIT
	TimeGates []TimeOfDay
}

// GoalRule describes how the goal is scored.
type GoalRule struct {
	Type     string // CYLINDER or LINE
	Deadline *TimeOfDay
}

// TakeoffWindow is the interval in which takeoff is open; either end may
// be unset.
type TakeoffWindow struct {
	Open  *TimeOfDay
	Close *TimeOfDay
}

// Task is a competition task. It is not modified after it is decoded and
// may be shared between goroutines.
type Task struct {
	Path              string
	Version           int
	EarthModel        string
	TaskType          string
	Turnpoints        []Turnpoint
	SSS               StartSection
	Goal              GoalRule
	Takeoff           TakeoffWindow
	CylinderTolerance float64
}

// StartTime returns the opening of the first start gate on the given
// date. It returns false if the task has no time gates.
func (t *Task) StartTime(date time.Time) (time.Time, bool) {
	if len(t.SSS.TimeGates) == 0 {
		return time.Time{}, false
	}
	return t.SSS.TimeGates[0].On(date), true
}

// Deadline returns the goal deadline on the given date, if there is one.
func (t *Task) Deadline(date time.Time) (time.Time, bool) {
	if t.Goal.Deadline == nil {
		return time.Time{}, false
	}
	return t.Goal.Deadline.On(date), true
}

// GoalTurnpoint returns the last turnpoint, which completes the task.
func (t *Task) GoalTurnpoint() Turnpoint {
	return t.Turnpoints[len(t.Turnpoints)-1]
}

// StartsWithSSS reports whether the first turnpoint is the start.
func (t *Task) StartsWithSSS() bool {
	return len(t.Turnpoints) > 0 && t.Turnpoints[0].Type == TypeStart
}

// CenterDistance returns the length in meters of the path through the
// turnpoint centers.
func (t *Task) CenterDistance() float64 {
	var d float64
	for i := 1; i < len(t.Turnpoints); i++ {
		d += math.Distance(t.Turnpoints[i-1].Center, t.Turnpoints[i].Center)
	}
	return d
}
