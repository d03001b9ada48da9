// task/xctsk.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/math"
	"github.com/xcscore/xcscore/util"
)

// JSON layout of an XContest .xctsk task file.
type xctskFile struct {
	Version           int              `json:"version,omitempty"`
	TaskType          string           `json:"taskType,omitempty"`
	EarthModel        string           `json:"earthModel,omitempty"`
	Turnpoints        []xctskTurnpoint `json:"turnpoints"`
	Takeoff           *xctskTakeoff    `json:"takeoff,omitempty"`
	SSS               *xctskSSS        `json:"sss,omitempty"`
	Goal              *xctskGoal       `json:"goal,omitempty"`
	CylinderTolerance float64          `json:"cylinderTolerance,omitempty"`
}

type xctskTurnpoint struct {
	Type     string         `json:"type,omitempty"`
	Radius   *float64       `json:"radius"`
	Waypoint *xctskWaypoint `json:"waypoint"`
}

type xctskWaypoint struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	AltSmoothed int      `json:"altSmoothed,omitempty"`
	Altitude    int      `json:"altitude,omitempty"`
}

type xctskTakeoff struct {
	TimeOpen  *TimeOfDay `json:"timeOpen,omitempty"`
	TimeClose *TimeOfDay `json:"timeClose,omitempty"`
}

type xctskSSS struct {
	Type      string      `json:"type,omitempty"`
	Direction string      `json:"direction,omitempty"`
	TimeGates []TimeOfDay `json:"timeGates,omitempty"`
}

type xctskGoal struct {
	Type     string     `json:"type,omitempty"`
	Deadline *TimeOfDay `json:"deadline,omitempty"`
}

// Load reads and decodes the task file at path; paths ending in ".zst"
// are decompressed.
func Load(path string, lg *log.Logger) (*Task, error) {
	b, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Decode(b, lg.Task(path))
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Path = path
		}
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Decode decodes an xctsk task. All problems found are reported together
// in a *FormatError. Members that are not part of the format are logged
// and otherwise ignored.
func Decode(b []byte, lg *log.Logger) (*Task, error) {
	var e util.ErrorLogger
	util.CheckJSON[xctskFile](b, &e)
	for _, w := range e.Warnings() {
		lg.Warn(w)
	}
	if e.HaveErrors() {
		return nil, &FormatError{Problems: e.Errors(), Err: ErrInvalidTask}
	}

	var xf xctskFile
	if err := util.UnmarshalJSONBytes(b, &xf); err != nil {
		ferr := &FormatError{Problems: []string{err.Error()}, Err: ErrInvalidTask}
		if errors.Is(err, ErrBadTimeGate) {
			ferr.Err = ErrBadTimeGate
		}
		return nil, ferr
	}

	t := &Task{
		Version:           xf.Version,
		EarthModel:        xf.EarthModel,
		TaskType:          xf.TaskType,
		CylinderTolerance: xf.CylinderTolerance,
	}
	if xf.SSS != nil {
		t.SSS = StartSection{Type: xf.SSS.Type, Direction: xf.SSS.Direction, TimeGates: xf.SSS.TimeGates}
	}
	if xf.Goal != nil {
		t.Goal = GoalRule{Type: xf.Goal.Type, Deadline: xf.Goal.Deadline}
	}
	if xf.Takeoff != nil {
		t.Takeoff = TakeoffWindow{Open: xf.Takeoff.TimeOpen, Close: xf.Takeoff.TimeClose}
	}

	if len(xf.Turnpoints) == 0 {
		return nil, &FormatError{Problems: []string{"no turnpoints"}, Err: ErrNoTurnpoints}
	}

	nstart := 0
	for i, xtp := range xf.Turnpoints {
		e.Push(fmt.Sprintf("turnpoint %d", i))
		tp, ok := decodeTurnpoint(i, xtp, &e)
		e.Pop()
		if !ok {
			continue
		}

		if tp.Type == TypeStart {
			nstart++
		}
		if tp.Type == TypeGoal && i != len(xf.Turnpoints)-1 {
			e.ErrorString("turnpoint %d: GOAL must be the last turnpoint", i)
		}
		t.Turnpoints = append(t.Turnpoints, tp)
	}
	if nstart > 1 {
		e.ErrorString("%d START turnpoints; at most one is allowed", nstart)
	}

	if e.HaveErrors() {
		return nil, &FormatError{Problems: e.Errors(), Err: ErrInvalidTask}
	}
	return t, nil
}

func decodeTurnpoint(order int, xtp xctskTurnpoint, e *util.ErrorLogger) (Turnpoint, bool) {
	n := len(e.Errors())

	tp := Turnpoint{Order: order}
	var ok bool
	if tp.Type, ok = ParseTurnpointType(xtp.Type); !ok {
		e.ErrorString("unknown type %q", xtp.Type)
	}

	if xtp.Radius == nil {
		e.ErrorString("missing radius")
	} else if *xtp.Radius <= 0 {
		e.ErrorString("radius %g must be positive", *xtp.Radius)
	} else {
		tp.Radius = *xtp.Radius
	}

	wp := xtp.Waypoint
	if wp == nil {
		e.ErrorString("missing waypoint")
		return Turnpoint{}, false
	}
	tp.Name, tp.Description = wp.Name, wp.Description
	tp.Altitude = util.Select(wp.AltSmoothed != 0, wp.AltSmoothed, wp.Altitude)

	if wp.Lat == nil || wp.Lon == nil {
		e.ErrorString("waypoint %q is missing its coordinates", wp.Name)
	} else if *wp.Lat < -90 || *wp.Lat > 90 || *wp.Lon < -180 || *wp.Lon > 180 {
		e.ErrorString("waypoint %q coordinates (%g, %g) out of range", wp.Name, *wp.Lat, *wp.Lon)
	} else {
		tp.Center = math.LL(*wp.Lat, *wp.Lon)
	}

	return tp, len(e.Errors()) == n
}

// Encode returns the task as xctsk JSON.
func (t *Task) Encode() ([]byte, error) {
	xf := xctskFile{
		Version:           t.Version,
		TaskType:          t.TaskType,
		EarthModel:        t.EarthModel,
		CylinderTolerance: t.CylinderTolerance,
	}
	if t.SSS.Type != "" || t.SSS.Direction != "" || len(t.SSS.TimeGates) > 0 {
		xf.SSS = &xctskSSS{Type: t.SSS.Type, Direction: t.SSS.Direction, TimeGates: t.SSS.TimeGates}
	}
	if t.Goal.Type != "" || t.Goal.Deadline != nil {
		xf.Goal = &xctskGoal{Type: t.Goal.Type, Deadline: t.Goal.Deadline}
	}
	if t.Takeoff.Open != nil || t.Takeoff.Close != nil {
		xf.Takeoff = &xctskTakeoff{TimeOpen: t.Takeoff.Open, TimeClose: t.Takeoff.Close}
	}

	for _, tp := range t.Turnpoints {
		radius, lat, lon := tp.Radius, tp.Center.Latitude(), tp.Center.Longitude()
		xf.Turnpoints = append(xf.Turnpoints, xctskTurnpoint{
			Type:   tp.Type.String(),
			Radius: &radius,
			Waypoint: &xctskWaypoint{
				Name:        tp.Name,
				Description: tp.Description,
				Lat:         &lat,
				Lon:         &lon,
				AltSmoothed: tp.Altitude,
			},
		})
	}

	return json.MarshalIndent(xf, "", "  ")
}
