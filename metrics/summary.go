// metrics/summary.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"fmt"
	"time"

	"github.com/iancoleman/orderedmap"

	"github.com/xcscore/xcscore/math"
	"github.com/xcscore/xcscore/util"
)

// Summary holds per-flight statistics. Absent values (e.g. no glide was
// ever defined) are excluded from the averages and reported as absent.
type Summary struct {
	Pilot    string
	Date     time.Time
	Samples  int
	Duration time.Duration
	TakeOff  time.Time
	Landing  time.Time

	MaxAltitude    int
	MinAltitude    int
	AltitudeGained float64
	AltitudeLost   float64
	Distance       float64

	CategorySeconds [NumCategories]float64

	MaxClimbRate  math.Optional
	MeanClimbRate math.Optional
	MeanGlide     math.Optional
	MaxSpeedKmh   math.Optional

	Thermals ThermalHistogram
}

// Summarize computes the summary statistics for a table.
func Summarize(t Table) (Summary, error) {
	last, err := t.Last()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Pilot:           t.Pilot,
		Date:            t.Date,
		Samples:         t.Len(),
		Duration:        t.Span().Duration(),
		TakeOff:         t.TakeOff,
		Landing:         last.Time,
		MaxAltitude:     t.Samples[0].GNSSAltitude,
		MinAltitude:     t.Samples[0].GNSSAltitude,
		AltitudeGained:  last.AltitudeGained,
		AltitudeLost:    last.AltitudeLost,
		Distance:        last.Distance,
		CategorySeconds: last.CategorySeconds,
	}

	if s.TakeOff.IsZero() {
		s.TakeOff = t.Samples[0].Time
	}

	for _, smp := range t.Samples {
		s.MaxAltitude = max(s.MaxAltitude, smp.GNSSAltitude)
		s.MinAltitude = min(s.MinAltitude, smp.GNSSAltitude)
	}

	climb := util.MapSlice(t.Samples, func(s Sample) math.Optional { return s.ClimbRate })
	_, s.MaxClimbRate = math.MinMax(climb)
	s.MeanClimbRate = math.Mean(climb)
	s.MeanGlide = math.Mean(util.MapSlice(t.Samples, func(s Sample) math.Optional { return s.Glide }))
	_, s.MaxSpeedKmh = math.MinMax(util.MapSlice(t.Samples,
		func(s Sample) math.Optional { return s.Windows[Window20s].SpeedKmh }))

	var rates []float64
	for _, c := range climb {
		if v, ok := c.Get(); ok {
			rates = append(rates, v)
		}
	}
	s.Thermals = NewThermalHistogram(rates)

	return s, nil
}

// Ordered returns the summary as an ordered map with a fixed key order,
// for reports and JSON output.
func (s Summary) Ordered() *orderedmap.OrderedMap {
	opt := func(o math.Optional) any {
		if v, ok := o.Get(); ok {
			return v
		}
		return nil
	}

	m := orderedmap.New()
	m.Set("pilot", s.Pilot)
	m.Set("date", s.Date.Format(time.DateOnly))
	m.Set("samples", s.Samples)
	m.Set("takeoff", s.TakeOff.Format(time.TimeOnly))
	m.Set("landing", s.Landing.Format(time.TimeOnly))
	m.Set("duration_s", s.Duration.Seconds())
	m.Set("max_altitude_m", s.MaxAltitude)
	m.Set("min_altitude_m", s.MinAltitude)
	m.Set("altitude_gained_m", s.AltitudeGained)
	m.Set("altitude_lost_m", s.AltitudeLost)
	m.Set("distance_km", s.Distance/1000)
	for _, c := range Categories() {
		m.Set(c.String()+"_s", s.CategorySeconds[c])
	}
	m.Set("max_climb_ms", opt(s.MaxClimbRate))
	m.Set("mean_climb_ms", opt(s.MeanClimbRate))
	m.Set("mean_glide", opt(s.MeanGlide))
	m.Set("max_speed_kmh", opt(s.MaxSpeedKmh))

	labels := s.Thermals.Labels()
	th := orderedmap.New()
	for i, n := range s.Thermals.Seconds {
		th.Set(labels[i], n)
	}
	m.Set("thermal_seconds", th)
	if s.Thermals.AltitudeFraction != nil {
		af := orderedmap.New()
		for i, f := range s.Thermals.AltitudeFraction {
			af.Set(labels[i+1], f)
		}
		m.Set("thermal_altitude_fraction", af)
	} else {
		m.Set("thermal_altitude_fraction", nil)
	}
	return m
}

///////////////////////////////////////////////////////////////////////////
// ThermalHistogram

// ThermalBinEdges are the climb-rate bin edges in m/s. Bins are closed on
// the right: (edge[i], edge[i+1]].
var ThermalBinEdges = []float64{-100, 0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5, 6, 100}

// ThermalHistogram summarizes time spent climbing by thermal strength.
type ThermalHistogram struct {
	// Seconds[i] counts the samples in the bin (edge[i], edge[i+1]].
	Seconds []int
	// AltitudeFraction[i] estimates the share of the total climb gained
	// in the bin whose lower edge is edge[i+1] (i.e. 0, 0.5, ..., 6 m/s),
	// taking the lower edge as the climb rate. It is nil if nothing was
	// gained.
	AltitudeFraction []float64
}

func NewThermalHistogram(rates []float64) ThermalHistogram {
	nbins := len(ThermalBinEdges) - 1
	h := ThermalHistogram{Seconds: make([]int, nbins)}

	for _, r := range rates {
		for b := 0; b < nbins; b++ {
			if r > ThermalBinEdges[b] && r <= ThermalBinEdges[b+1] {
				h.Seconds[b]++
				break
			}
		}
	}

	alt := make([]float64, nbins-1)
	var total float64
	for i := range alt {
		alt[i] = ThermalBinEdges[i+1] * float64(h.Seconds[i+1])
		total += alt[i]
	}
	if total > 0 {
		for i := range alt {
			alt[i] /= total
		}
		h.AltitudeFraction = alt
	}
	return h
}

// Labels returns a label for each bin, e.g. "<0.5" for (0, 0.5].
func (h ThermalHistogram) Labels() []string {
	n := len(ThermalBinEdges) - 1
	labels := make([]string, n)
	for i := 0; i < n-1; i++ {
		labels[i] = fmt.Sprintf("<%g", ThermalBinEdges[i+1])
	}
	labels[n-1] = fmt.Sprintf(">%g", ThermalBinEdges[n-1])
	return labels
}
