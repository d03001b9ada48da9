// cmd/xcscore/main.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// xcscore computes flight metrics for IGC flight logs and, given a task,
// scores and ranks the flights.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
	"github.com/iancoleman/orderedmap"
	"golang.org/x/sync/errgroup"

	"github.com/xcscore/xcscore/comp"
	"github.com/xcscore/xcscore/igc"
	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/metrics"
	"github.com/xcscore/xcscore/task"
	"github.com/xcscore/xcscore/util"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	taskFile   = flag.String("task", "", "xctsk task file to score the flights against")
	baro       = flag.Bool("baro", false, "use pressure altitude in place of GNSS altitude")
	outDir     = flag.String("out", "", "directory to write the derived tables to (.msgpack.zst)")
	useCache   = flag.Bool("cache", false, "cache derived tables in the user cache directory")
	dump       = flag.Bool("dump", false, "dump the decoded task and summaries")
	report     = flag.String("report", "", "write the summaries and ranking as JSON to this file (zstd-compressed if it ends in .zst)")
	nWorkers   = flag.Int("j", 8, "number of flights to process concurrently")
)

// Upper bound on the size of the derived table cache.
const maxCacheBytes = 512 * 1024 * 1024

func usage() {
	fmt.Fprintf(os.Stderr, "usage: xcscore [flags] flight.igc...\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	engine, err := metrics.NewEngine(metrics.DefaultConfig(), lg)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}

	var tk *task.Task
	if *taskFile != "" {
		tasks := task.NewCache(8, time.Hour, lg)
		if tk, err = tasks.Load(*taskFile); err != nil {
			reportError(err)
			os.Exit(1)
		}
		if *dump {
			godump.Dump(tk)
		}
	}

	tables, err := loadTables(flag.Args(), engine, lg)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	var flights []*orderedmap.OrderedMap
	for _, t := range tables {
		s, err := metrics.Summarize(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", t.Path, err)
			continue
		}
		if *dump {
			godump.Dump(s)
		}
		m := s.Ordered()
		flights = append(flights, m)
		b, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			lg.Errorf("%s: %v", t.Path, err)
			continue
		}
		fmt.Printf("%s\n%s\n", t.Path, b)
	}

	if *outDir != "" {
		if err := saveTables(tables, *outDir); err != nil {
			reportError(err)
			os.Exit(1)
		}
	}

	var ranking comp.Ranking
	if tk != nil {
		if ranking, err = comp.ScoreAll(context.Background(), tables, tk, *nWorkers, lg); err != nil {
			reportError(err)
			os.Exit(1)
		}
		printRanking(ranking, tk)
	}

	if *report != "" {
		if err := writeReport(*report, flights, ranking); err != nil {
			reportError(err)
			os.Exit(1)
		}
		lg.Infof("%s: wrote report", *report)
	}

	if *useCache {
		if n, err := util.CacheCullObjects(maxCacheBytes); err != nil {
			lg.Warnf("culling cache: %v", err)
		} else if n > 0 {
			lg.Infof("removed %d cached tables", n)
		}
	}
}

func reportError(err error) {
	var terr *task.FormatError
	if errors.As(err, &terr) && len(terr.Problems) > 1 {
		fmt.Fprintf(os.Stderr, "%s: %v:\n", terr.Path, terr.Err)
		for _, p := range terr.Problems {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func loadTables(paths []string, engine *metrics.Engine, lg *log.Logger) ([]metrics.Table, error) {
	tables := make([]metrics.Table, len(paths))

	var eg errgroup.Group
	eg.SetLimit(max(1, *nWorkers))
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			t, err := loadTable(path, engine, lg)
			tables[i] = t
			return err
		})
	}
	return tables, eg.Wait()
}

// loadTable computes the metrics table for the flight log at path, using
// the derived table cache if enabled.
func loadTable(path string, engine *metrics.Engine, lg *log.Logger) (metrics.Table, error) {
	b, err := util.ReadFile(path)
	if err != nil {
		return metrics.Table{}, err
	}

	var cachePath string
	if *useCache {
		kind := util.Select(*baro, "tables-baro", "tables")
		if cachePath, err = util.ContentCachePath(kind, metrics.TableVersion, b); err != nil {
			return metrics.Table{}, err
		}

		var t metrics.Table
		if _, err := util.CacheRetrieveObject(cachePath, &t); err == nil {
			lg.Debugf("%s: using cached table %s", path, cachePath)
			t.ToUTC()
			t.Path = path
			return t, nil
		}
	}

	fl, err := igc.Parse(bytes.NewReader(b), path, igc.Options{PressureAsGNSS: *baro}, lg)
	if err != nil {
		return metrics.Table{}, err
	}
	t := engine.Compute(fl)
	if cachePath != "" {
		if err := util.CacheStoreObject(cachePath, t); err != nil {
			lg.Warnf("%s: %v", cachePath, err)
		}
	}
	return t, nil
}

func saveTables(tables []metrics.Table, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, t := range tables {
		base := filepath.Base(util.TrimCompressedExt(t.Path))
		base = strings.TrimSuffix(base, filepath.Ext(base))
		path := filepath.Join(dir, base+".msgpack.zst")

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := t.Save(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(path string, flights []*orderedmap.OrderedMap, r comp.Ranking) error {
	rep := orderedmap.New()
	rep.Set("flights", flights)
	if r != nil {
		var standings []*orderedmap.OrderedMap
		for _, s := range r {
			sm := orderedmap.New()
			sm.Set("place", s.Place)
			sm.Set("summary", s.Summary.Ordered())
			standings = append(standings, sm)
		}
		rep.Set("ranking", standings)
	}

	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if util.IsCompressed(path) {
		return util.WriteCompressed(path, b)
	}
	return os.WriteFile(path, b, 0o644)
}

func printRanking(r comp.Ranking, tk *task.Task) {
	fmt.Printf("\nTask %s: %d turnpoints, %.1f km\n", tk.Path, len(tk.Turnpoints), tk.CenterDistance()/1000)
	for _, s := range r {
		pilot := util.Select(s.Pilot != "", s.Pilot, filepath.Base(s.Path))
		if s.ReachedGoal {
			fmt.Printf("%3d  %-30s goal  %s\n", s.Place, pilot, s.TaskDuration)
		} else {
			fmt.Printf("%3d  %-30s %d/%d turnpoints\n", s.Place, pilot, s.TurnpointsAchieved, len(tk.Turnpoints))
		}
	}
}
