// igc/flightlog.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/util"
)

// Options controls how a flight log is loaded.
type Options struct {
	// PressureAsGNSS replaces each fix's GNSS altitude with its pressure
	// altitude, for recorders with poor GNSS altitude.
	PressureAsGNSS bool
}

// FlightLog is a decoded flight log. It is not modified after Parse or
// Load returns.
type FlightLog struct {
	Path        string
	Header      Header
	HeaderLines []string
	Fixes       []Fix
	FooterLines []string
	// Dropped counts the fixes discarded because their timestamp did
	// not advance past that of the preceding fix.
	Dropped int
}

// Load reads and decodes the flight log at path; paths ending in ".zst"
// are decompressed.
func Load(path string, opts Options, lg *log.Logger) (*FlightLog, error) {
	b, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(b), path, opts, lg)
}

// Parse decodes a complete flight log from r; name is used in error
// messages and as the FlightLog's Path. Any malformed B record aborts the
// parse.
func Parse(r io.Reader, name string, opts Options, lg *log.Logger) (*FlightLog, error) {
	lg = lg.Flight(name)

	sec, err := Split(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	hdr, err := ParseHeader(sec.Header, lg)
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Path = name
		}
		return nil, err
	}

	if len(sec.Body) == 0 {
		return nil, &FormatError{Path: name, Err: ErrNoFixes}
	}

	fl := &FlightLog{
		Path:        name,
		Header:      hdr,
		HeaderLines: sec.Header,
		Fixes:       make([]Fix, 0, len(sec.Body)),
		FooterLines: sec.Footer,
	}

	date := hdr.Date
	prevHour := -1
	for i, line := range sec.Body {
		if opts.PressureAsGNSS {
			line = SubstitutePressureAltitude(line)
		}

		fix, err := DecodeFix(line, date)
		if err != nil {
			ferr := err.(*FormatError)
			ferr.Path, ferr.Line = name, sec.BodyLines[i]
			return nil, ferr
		}

		if hour := fix.Time.Hour(); prevHour == 23 && hour == 0 {
			date = date.AddDate(0, 0, 1)
			fix.Time = fix.Time.AddDate(0, 0, 1)
			lg.Debugf("day rollover at line %d, now %s", sec.BodyLines[i], date.Format(time.DateOnly))
		}
		prevHour = fix.Time.Hour()

		if n := len(fl.Fixes); n > 0 && !fix.Time.After(fl.Fixes[n-1].Time) {
			fl.Dropped++
			continue
		}
		fl.Fixes = append(fl.Fixes, fix)
	}

	if fl.Dropped > 0 {
		lg.Info("dropped fixes with non-increasing timestamps", slog.Int("count", fl.Dropped))
	}
	lg.Debug("parsed flight log", slog.Int("fixes", len(fl.Fixes)),
		slog.String("pilot", hdr.Pilot), slog.Time("date", hdr.Date))

	return fl, nil
}

// TakeOff returns the first fix with a valid 3D position and positive
// GNSS altitude, or the first estimated fix if that comes sooner. If
// there is no such fix, the first fix is returned.
func (fl *FlightLog) TakeOff() Fix {
	for _, f := range fl.Fixes {
		if (f.Validity == Valid3D && f.GNSSAltitude > 0) || f.Validity == Estimated {
			return f
		}
	}
	return fl.Fixes[0]
}

// Landing returns the last fix.
func (fl *FlightLog) Landing() Fix {
	return fl.Fixes[len(fl.Fixes)-1]
}

// Span returns the interval from the first to the last fix.
func (fl *FlightLog) Span() util.TimeInterval {
	return util.TimeInterval{fl.Fixes[0].Time, fl.Landing().Time}
}

// Segments returns the intervals of continuous recording, splitting
// wherever successive fixes are more than maxGap apart.
func (fl *FlightLog) Segments(maxGap time.Duration) []util.TimeInterval {
	return util.FindTimeIntervals(util.MapSlice(fl.Fixes, func(f Fix) time.Time { return f.Time }), maxGap)
}
