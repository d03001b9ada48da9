// comp/ranking.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package comp

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/metrics"
	"github.com/xcscore/xcscore/task"
)

type Standing struct {
	Place int
	Summary
}

// Ranking orders pilots: those who reached goal first, fastest first;
// then by turnpoints achieved, earliest first.
type Ranking []Standing

// compareStanding orders summaries by result alone; pilots for which it
// returns 0 share a place.
func compareStanding(a, b Summary) int {
	if a.ReachedGoal != b.ReachedGoal {
		if a.ReachedGoal {
			return -1
		}
		return 1
	}
	if a.ReachedGoal {
		if c := cmp.Compare(a.TaskDuration, b.TaskDuration); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(b.TurnpointsAchieved, a.TurnpointsAchieved); c != 0 {
		return c
	}
	ta, oka := a.LastAchieved()
	tb, okb := b.LastAchieved()
	if oka && okb {
		if c := ta.Compare(tb); c != 0 {
			return c
		}
	}
	return 0
}

func compareSummaries(a, b Summary) int {
	if c := compareStanding(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.Pilot, b.Pilot)
}

// Rank sorts the summaries and assigns places; pilots with equal results
// share a place and are listed by name.
func Rank(summaries []Summary) Ranking {
	sorted := slices.Clone(summaries)
	slices.SortStableFunc(sorted, compareSummaries)

	r := make(Ranking, len(sorted))
	for i, s := range sorted {
		r[i] = Standing{Place: i + 1, Summary: s}
		if i > 0 && compareStanding(sorted[i-1], s) == 0 {
			r[i].Place = r[i-1].Place
		}
	}
	return r
}

// ScoreAll scores each table against the task, running up to limit
// scorings concurrently (no limit if limit <= 0), and ranks the results.
func ScoreAll(ctx context.Context, tables []metrics.Table, tk *task.Task, limit int, lg *log.Logger) (Ranking, error) {
	summaries := make([]Summary, len(tables))

	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, t := range tables {
		i, t := i, t
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Score(t, tk, lg)
			if err != nil {
				return err
			}
			summaries[i] = r.Summary
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lg.Infof("scored %d flights", len(tables))
	return Rank(summaries), nil
}
