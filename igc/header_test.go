// igc/header_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"errors"
	"testing"
	"time"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		date  time.Time
		pilot string
		err   error
	}{
		{
			name:  "compact date",
			lines: []string{"AXCT123", "HFDTE150724", "HFPLTPILOTINCHARGE: Jane Doe"},
			date:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			pilot: "Jane Doe",
		},
		{
			name:  "DATE: variant with flight number",
			lines: []string{"HFDTEDATE:010825,01", "HFPLTPILOT:John Smith  "},
			date:  time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			pilot: "John Smith",
		},
		{
			name:  "DATE: variant without flight number",
			lines: []string{"HFDTEDATE:311299"},
			date:  time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "capitalized pilot",
			lines: []string{"HFDTE150724", "HFPLTPILOTINCHARGE:JANE DOE-SMITH"},
			date:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			pilot: "Jane Doe-Smith",
		},
		{
			name:  "mixed case pilot kept",
			lines: []string{"HFDTE150724", "HFPLTPILOT:Jane McDONALD"},
			date:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			pilot: "Jane McDONALD",
		},
		{
			name:  "no pilot",
			lines: []string{"HFDTE150724", "HFGTYGLIDERTYPE:Enzo 3"},
			date:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "placeholder pilot",
			lines: []string{"HFDTE150724", "HFPLTPILOTINCHARGE:NKN"},
			date:  time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "missing date",
			lines: []string{"AXCT123", "HFPLTPILOT:Jane Doe"},
			err:   ErrNoDate,
		},
		{
			name:  "invalid date",
			lines: []string{"HFDTE310224"},
			err:   ErrNoDate,
		},
		{
			name:  "garbage date",
			lines: []string{"HFDTEDATE:ab0724"},
			err:   ErrNoDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.lines, nil)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got error %v, expected %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !h.Date.Equal(tt.date) {
				t.Errorf("date %v, expected %v", h.Date, tt.date)
			}
			if h.Pilot != tt.pilot || h.HasPilot() != (tt.pilot != "") {
				t.Errorf("pilot %q, expected %q", h.Pilot, tt.pilot)
			}
		})
	}
}

func TestParseHeaderGlider(t *testing.T) {
	h, err := ParseHeader([]string{
		"HFDTE150724",
		"HFGTYGLIDERTYPE: Enzo 3",
		"HFGIDGLIDERID:D-1234",
		"HFCIDCOMPETITIONID:JD",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if h.GliderType != "Enzo 3" || h.GliderID != "D-1234" || h.CompetitionID != "JD" {
		t.Errorf("unexpected header %+v", h)
	}
}
