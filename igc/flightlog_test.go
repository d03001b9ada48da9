// igc/flightlog_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xcscore/xcscore/util"
)

const testLog = `AXCT7a2c6
HFDTEDATE:150724,01
HFPLTPILOTINCHARGE:Jane Doe
HFGTYGLIDERTYPE:Enzo 3
B1100003400000N11900000WA0060000650
B1100013400030N11859970WA0060500655
E110001PEV
B1100023400060N11859940WA0061000660
B1100023400090N11859910WA0061500665
B1100013400120N11859880WA0062000670
B1100053400150N11859850WV0062500000
LXCTsomething
B1100063400180N11859820WA0063000680
G3045022100ABCDEF
`

func TestParse(t *testing.T) {
	fl, err := Parse(strings.NewReader(testLog), "test.igc", Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if fl.Path != "test.igc" || fl.Header.Pilot != "Jane Doe" || fl.Header.GliderType != "Enzo 3" {
		t.Errorf("unexpected metadata: %s %+v", fl.Path, fl.Header)
	}
	if len(fl.HeaderLines) != 4 || len(fl.FooterLines) != 1 {
		t.Errorf("got %d header and %d footer lines", len(fl.HeaderLines), len(fl.FooterLines))
	}

	// The duplicate 11:00:02 and the backwards 11:00:01 fixes are dropped.
	if fl.Dropped != 2 {
		t.Errorf("dropped %d fixes, expected 2", fl.Dropped)
	}
	expected := []int{0, 1, 2, 5, 6}
	if len(fl.Fixes) != len(expected) {
		t.Fatalf("got %d fixes, expected %d", len(fl.Fixes), len(expected))
	}
	base := time.Date(2024, 7, 15, 11, 0, 0, 0, time.UTC)
	for i, s := range expected {
		if want := base.Add(time.Duration(s) * time.Second); !fl.Fixes[i].Time.Equal(want) {
			t.Errorf("fix %d: time %v, expected %v", i, fl.Fixes[i].Time, want)
		}
		if i > 0 && !fl.Fixes[i].Time.After(fl.Fixes[i-1].Time) {
			t.Errorf("fix %d: timestamps not strictly increasing", i)
		}
	}

	if to := fl.TakeOff(); !to.Time.Equal(base) {
		t.Errorf("takeoff at %v, expected %v", to.Time, base)
	}
	if l := fl.Landing(); !l.Time.Equal(base.Add(6 * time.Second)) {
		t.Errorf("landing at %v", l.Time)
	}
	if fl.Span().Duration() != 6*time.Second {
		t.Errorf("span %v, expected 6s", fl.Span().Duration())
	}
	if seg := fl.Segments(2 * time.Second); len(seg) != 2 {
		t.Errorf("expected 2 segments with a 2s gap limit, got %v", seg)
	}
}

func TestParseDayRollover(t *testing.T) {
	log := "HFDTE311224\n" +
		"B2359583400000N11900000WA0060000650\n" +
		"B2359593400030N11859970WA0060500655\n" +
		"B0000003400060N11859940WA0061000660\n" +
		"B0000013400090N11859910WA0061500665\n" +
		"B0100003400120N11859880WA0062000670\n"

	fl, err := Parse(strings.NewReader(log), "rollover.igc", Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(fl.Fixes) != 5 || fl.Dropped != 0 {
		t.Fatalf("got %d fixes, %d dropped", len(fl.Fixes), fl.Dropped)
	}

	for i, f := range fl.Fixes {
		day := 31
		if i >= 2 {
			day = 1
		}
		if f.Time.Day() != day {
			t.Errorf("fix %d: day %d, expected %d", i, f.Time.Day(), day)
		}
	}
	if y := fl.Fixes[4].Time.Year(); y != 2025 {
		t.Errorf("year after rollover %d, expected 2025", y)
	}
	if d := fl.Fixes[2].Time.Sub(fl.Fixes[1].Time); d != time.Second {
		t.Errorf("rollover gap %v, expected 1s", d)
	}
	// The header date is unchanged.
	if fl.Header.Date.Day() != 31 {
		t.Errorf("header date changed to %v", fl.Header.Date)
	}
}

func TestParsePressureAsGNSS(t *testing.T) {
	fl, err := Parse(strings.NewReader(testLog), "test.igc", Options{PressureAsGNSS: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fl.Fixes {
		if f.GNSSAltitude != f.PressureAltitude {
			t.Errorf("%v: GNSS altitude %d, expected pressure altitude %d", f.Time, f.GNSSAltitude, f.PressureAltitude)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		log  string
		err  error
		line int
	}{
		{
			name: "no date",
			log:  "HFPLTPILOT:Jane\nB1100003400000N11900000WA0060000650\n",
			err:  ErrNoDate,
		},
		{
			name: "no fixes",
			log:  "HFDTE150724\nG1234\n",
			err:  ErrNoFixes,
		},
		{
			name: "malformed fix",
			log:  "HFDTE150724\nB1100003400000N11900000WA0060000650\nLXCT\nB11000134000\n",
			err:  ErrShortRecord,
			line: 4,
		},
		{
			name: "bad hemisphere",
			log:  "HFDTE150724\nB1100003400000Q11900000WA0060000650\n",
			err:  ErrBadHemisphere,
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl, err := Parse(strings.NewReader(tt.log), "bad.igc", Options{}, nil)
			if fl != nil {
				t.Errorf("expected no flight log on error")
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %v, expected %v", err, tt.err)
			}
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if ferr.Path != "bad.igc" || ferr.Line != tt.line {
				t.Errorf("error location %s:%d, expected bad.igc:%d", ferr.Path, ferr.Line, tt.line)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "flight.igc")
	if err := os.WriteFile(plain, []byte(testLog), 0644); err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "flight.igc.zst")
	if err := util.WriteCompressed(compressed, []byte(testLog)); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, compressed} {
		fl, err := Load(path, Options{}, nil)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if fl.Path != path || len(fl.Fixes) != 5 {
			t.Errorf("%s: got path %s with %d fixes", path, fl.Path, len(fl.Fixes))
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.igc"), Options{}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
