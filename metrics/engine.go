// metrics/engine.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"log/slog"
	"slices"
	"time"

	"github.com/xcscore/xcscore/igc"
	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/math"
	"github.com/xcscore/xcscore/util"
)

// Engine derives per-sample flight metrics from a flight log.
type Engine struct {
	cfg Config
	lg  *log.Logger
}

func NewEngine(cfg Config, lg *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, lg: lg}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// stage is one step of the derivation. Stages run in order; each returns
// a new slice and leaves its input untouched.
type stage struct {
	name string
	run  func(e *Engine, in []Sample) []Sample
}

var stages = []stage{
	{"windows", (*Engine).windowStage},
	{"vertical speed", (*Engine).verticalSpeedStage},
	{"classify", (*Engine).classifyStage},
	{"accumulate", (*Engine).accumulateStage},
	{"glide", (*Engine).glideStage},
	{"climb rate", (*Engine).climbRateStage},
}

// Recording gaps longer than this are logged.
const recordingGap = 30 * time.Second

// Compute derives the metrics table for fl in a single forward pass per
// stage.
func (e *Engine) Compute(fl *igc.FlightLog) Table {
	lg := e.lg.Flight(fl.Path)

	t := Table{
		Path:  fl.Path,
		Pilot: fl.Header.Pilot,
		Date:  fl.Header.Date,
	}
	if len(fl.Fixes) == 0 {
		return t
	}
	t.TakeOff = fl.TakeOff().Time

	if seg := fl.Segments(recordingGap); len(seg) > 1 {
		lg.Info("flight log has recording gaps", slog.Int("segments", len(seg)))
	}
	lg.Debug("computing metrics", slog.Time("takeoff", t.TakeOff), slog.Time("landing", fl.Landing().Time),
		slog.Duration("span", fl.Span().Duration()))

	samples := e.initialStage(fl.Fixes)
	for _, st := range stages {
		start := time.Now()
		samples = st.run(e, samples)
		lg.Debug("metrics stage", slog.String("stage", st.name), slog.Duration("elapsed", time.Since(start)))
	}
	t.Samples = samples

	return t
}

// initialStage wraps the fixes in samples, dropping any whose timestamp
// does not advance past that of the previous retained fix.
func (e *Engine) initialStage(fixes []igc.Fix) []Sample {
	out := make([]Sample, 0, len(fixes))
	dropped := 0
	for _, f := range fixes {
		if n := len(out); n > 0 && !f.Time.After(out[n-1].Time) {
			dropped++
			continue
		}
		out = append(out, Sample{Fix: f})
	}
	if dropped > 0 {
		e.lg.Warnf("%d fixes with non-increasing timestamps dropped", dropped)
	}
	return out
}

// back returns the index of the sample the given window before i, or -1
// if the window extends before the first sample.
func (e *Engine) back(i int, w WindowIndex) int {
	if j := i - e.cfg.Windows[w]; j >= 0 {
		return j
	}
	return -1
}

func (e *Engine) windowStage(in []Sample) []Sample {
	out := slices.Clone(in)
	for i := range out {
		for w := WindowIndex(0); w < WindowIndex(NumWindows); w++ {
			j := e.back(i, w)
			if j < 0 {
				out[i].Windows[w] = WindowMetrics{}
				continue
			}

			d := math.Distance(out[j].Position, out[i].Position)
			el := out[i].Time.Sub(out[j].Time).Seconds()
			speed := math.Some(d / el)
			out[i].Windows[w] = WindowMetrics{
				Distance: math.Some(d),
				Elapsed:  math.Some(el),
				Speed:    speed,
				SpeedKmh: speed.Map(func(v float64) float64 { return v * MSToKMH }),
			}
			if d > 0 {
				out[i].Windows[w].Heading = math.Some(math.Bearing(out[j].Position, out[i].Position))
			}
		}
	}
	return out
}

func (e *Engine) verticalSpeedStage(in []Sample) []Sample {
	out := slices.Clone(in)
	for i := range out {
		for w := WindowIndex(0); w < WindowIndex(NumWindows); w++ {
			j := e.back(i, w)
			el, ok := out[i].Windows[w].Elapsed.Get()
			if j < 0 || !ok {
				out[i].Windows[w].VerticalSpeed = math.None()
				continue
			}
			dalt := float64(out[i].GNSSAltitude - out[j].GNSSAltitude)
			out[i].Windows[w].VerticalSpeed = math.Some(dalt / el)
		}
	}
	return out
}

func (e *Engine) classifyStage(in []Sample) []Sample {
	out := slices.Clone(in)
	for i := range out {
		s := &out[i]
		d, dok := s.Windows[e.cfg.StoppedWindow].Distance.Get()
		vs, vok := s.Windows[e.cfg.ClimbWindow].VerticalSpeed.Get()

		s.Stopped = dok && d < e.cfg.StoppedDistance
		s.Climbing = vok && vs >= e.cfg.ClimbThreshold
		s.Category = categorize(s.Stopped, s.Climbing)
	}
	return out
}

func (e *Engine) accumulateStage(in []Sample) []Sample {
	out := slices.Clone(in)
	altN := float64(e.cfg.Windows[e.cfg.AltitudeWindow])
	distN := float64(e.cfg.Windows[e.cfg.DistanceWindow])

	var gained, lost, dist float64
	var catSeconds [NumCategories]float64
	for i := range out {
		s := &out[i]

		if j := e.back(i, e.cfg.AltitudeWindow); j >= 0 {
			delta := float64(s.GNSSAltitude-out[j].GNSSAltitude) / altN
			gained += max(delta, 0)
			lost += min(delta, 0)
		}
		if d, ok := s.Windows[e.cfg.DistanceWindow].Distance.Get(); ok {
			dist += d / distN
		}
		catSeconds[s.Category]++

		s.AltitudeGained, s.AltitudeLost, s.Distance = gained, lost, dist
		s.CategorySeconds = catSeconds
	}
	return out
}

func (e *Engine) glideStage(in []Sample) []Sample {
	out := slices.Clone(in)
	for i := range out {
		s := &out[i]
		s.Glide = math.None()
		if s.Stopped {
			continue
		}

		speed, sok := s.Windows[e.cfg.GlideWindow].Speed.Get()
		vs, vok := s.Windows[e.cfg.GlideWindow].VerticalSpeed.Get()
		if !sok || !vok {
			continue
		}
		// 0/0 gives NaN, which Some reports as absent; x/0 gives an
		// infinity, which clips to the limit.
		g := math.Some(speed / -vs)
		s.Glide = g.Map(func(v float64) float64 { return math.Clamp(v, -e.cfg.GlideClip, e.cfg.GlideClip) })
	}
	return out
}

func (e *Engine) climbRateStage(in []Sample) []Sample {
	out := slices.Clone(in)
	rb := util.NewRingBuffer[float64](e.cfg.ClimbSmoothing)
	for i := range out {
		s := &out[i]
		s.ClimbRate = math.None()
		if !s.Climbing {
			continue
		}

		vs, ok := s.Windows[e.cfg.ClimbWindow].VerticalSpeed.Get()
		if !ok {
			continue
		}
		rb.Add(vs)
		if rb.Full() {
			var sum float64
			for k := 0; k < rb.Size(); k++ {
				sum += rb.Get(k)
			}
			s.ClimbRate = math.Some(sum / float64(rb.Size()))
		}
	}
	return out
}
