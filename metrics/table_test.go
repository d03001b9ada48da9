// metrics/table_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestTableClone(t *testing.T) {
	tbl := compute(t, makeFlight(60, time.Second, northbound(1)))
	clone := tbl.Clone()

	clone.Samples[10].GNSSAltitude = -1
	clone.Samples[10].Windows[Window5s].Speed.Value = 1e6
	clone.Samples = clone.Samples[:5]
	clone.Pilot = "someone else"

	if tbl.Len() != 60 || tbl.Pilot != "Jane Doe" {
		t.Errorf("original table modified: %d samples, pilot %q", tbl.Len(), tbl.Pilot)
	}
	if tbl.Samples[10].GNSSAltitude == -1 || tbl.Samples[10].Windows[Window5s].Speed.Value == 1e6 {
		t.Errorf("clone shares sample storage with the original")
	}
}

func TestTableFilter(t *testing.T) {
	tbl := compute(t, makeFlight(60, time.Second, northbound(1)))
	cutoff := flightStart.Add(30 * time.Second)

	f := tbl.Filter(func(s *Sample) bool { return !s.Time.Before(cutoff) })
	if f.Len() != 30 || !f.Samples[0].Time.Equal(cutoff) {
		t.Fatalf("filter kept %d samples starting at %v", f.Len(), f.Samples[0].Time)
	}
	if f.Pilot != tbl.Pilot || !f.Date.Equal(tbl.Date) {
		t.Errorf("filter lost table metadata")
	}

	f.Samples[0].GNSSAltitude = -1
	if tbl.Samples[30].GNSSAltitude == -1 {
		t.Errorf("filtered table aliases the original")
	}

	if tbl.Filter(func(*Sample) bool { return false }).Len() != 0 {
		t.Errorf("expected an empty table")
	}
	if _, err := (Table{}).Last(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestTableSaveLoad(t *testing.T) {
	tbl := compute(t, makeFlight(400, time.Second, wavy))

	var buf bytes.Buffer
	if err := tbl.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTable(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Path != tbl.Path || loaded.Pilot != tbl.Pilot || !loaded.Date.Equal(tbl.Date) ||
		!loaded.TakeOff.Equal(tbl.TakeOff) {
		t.Errorf("metadata mismatch: %s %q %v %v", loaded.Path, loaded.Pilot, loaded.Date, loaded.TakeOff)
	}
	if loaded.Len() != tbl.Len() {
		t.Fatalf("loaded %d samples, expected %d", loaded.Len(), tbl.Len())
	}
	for i := range tbl.Samples {
		a, b := tbl.Samples[i], loaded.Samples[i]
		if !a.Time.Equal(b.Time) || b.Time.Location() != time.UTC {
			t.Errorf("sample %d: time %v, expected %v", i, b.Time, a.Time)
		}
		b.Time = a.Time
		if a != b {
			t.Errorf("sample %d: loaded %+v, expected %+v", i, b, a)
		}
	}

	if _, err := LoadTable(bytes.NewReader([]byte("not a table"))); err == nil {
		t.Errorf("expected error loading garbage")
	}
}
