// comp/score.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package comp

import (
	"time"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/metrics"
	"github.com/xcscore/xcscore/task"
)

// Result is a flight scored against a task. Table is owned by the Result
// and shares nothing with the table that was scored; Annotations[i]
// describes Table.Samples[i].
type Result struct {
	Table       metrics.Table
	Annotations []Annotation
	Summary     Summary
}

// Score scores a flight against a task: samples before the first start
// gate opens (on the flight's date) are discarded, the remaining samples
// are tracked, and the result ends at the sample where the goal was
// reached, if it was.
func Score(t metrics.Table, tk *task.Task, lg *log.Logger) (Result, error) {
	if tk == nil || len(tk.Turnpoints) == 0 {
		return Result{}, ErrNoTask
	}
	lg = lg.Flight(t.Path)

	var ct metrics.Table
	start, gated := tk.StartTime(t.Date)
	if gated {
		ct = t.Filter(func(s *metrics.Sample) bool { return !s.Time.Before(start) })
		lg.Debugf("start gate %s: kept %d of %d samples", start.Format(time.TimeOnly), ct.Len(), t.Len())
	} else {
		ct = t
	}

	if ct.Len() > 0 {
		// Totals count from the first scored sample; this also copies an
		// ungated table.
		ct = ct.RebaseTotals(ct.Samples[0])
	}

	ann, legs := Track(ct.Samples, tk, lg)

	if n := firstCompleted(ann); n != -1 {
		ct.Samples = ct.Samples[:n+1]
		ann = ann[:n+1]
	} else if len(ann) > 0 {
		lg.Warnf("%s: goal %q not reached", t.Pilot, tk.GoalTurnpoint().Name)
	}

	r := Result{Table: ct, Annotations: ann}
	r.Summary = summarize(r, start, gated, legs)
	return r, nil
}

func firstCompleted(ann []Annotation) int {
	for i, a := range ann {
		if a.Completed() {
			return i
		}
	}
	return -1
}
