// metrics/table.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/brunoga/deep"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xcscore/xcscore/util"
)

// TableVersion is stored with saved tables; LoadTable rejects tables
// written with a different version. It must change whenever Sample's
// encoding does.
const TableVersion = 2

// Table is the sequence of derived samples for one flight. A Table is
// not modified after it is computed; Clone and Filter return new tables
// that share no storage with the original.
type Table struct {
	Path  string
	Pilot string
	Date  time.Time
	// TakeOff is the time of the flight log's take-off fix; it may
	// precede the first sample of a filtered table.
	TakeOff time.Time
	Samples []Sample
}

func (t Table) Len() int {
	return len(t.Samples)
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	return deep.MustCopy(t)
}

// Filter returns a new table holding copies of the samples for which
// pred returns true.
func (t Table) Filter(pred func(*Sample) bool) Table {
	out := Table{Path: t.Path, Pilot: t.Pilot, Date: t.Date, TakeOff: t.TakeOff}
	for i := range t.Samples {
		if pred(&t.Samples[i]) {
			out.Samples = append(out.Samples, t.Samples[i])
		}
	}
	return out
}

// RebaseTotals returns a copy of t whose running totals are measured
// from base rather than from the start of the flight.
func (t Table) RebaseTotals(base Sample) Table {
	out := t.Clone()
	for i := range out.Samples {
		s := &out.Samples[i]
		s.AltitudeGained -= base.AltitudeGained
		s.AltitudeLost -= base.AltitudeLost
		s.Distance -= base.Distance
		for c := range s.CategorySeconds {
			s.CategorySeconds[c] -= base.CategorySeconds[c]
		}
	}
	return out
}

// Span returns the interval covered by the samples.
func (t Table) Span() util.TimeInterval {
	if len(t.Samples) == 0 {
		return util.TimeInterval{}
	}
	return util.TimeInterval{t.Samples[0].Time, t.Samples[len(t.Samples)-1].Time}
}

// Last returns the final sample, with all running totals.
func (t Table) Last() (Sample, error) {
	if len(t.Samples) == 0 {
		return Sample{}, ErrEmptyTable
	}
	return t.Samples[len(t.Samples)-1], nil
}

type savedTable struct {
	Version int
	Table   Table
}

// Save writes t to w as zstd-compressed msgpack.
func (t Table) Save(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	if err := msgpack.NewEncoder(zw).Encode(savedTable{Version: TableVersion, Table: t}); err != nil {
		zw.Close()
		return fmt.Errorf("%s: %w", t.Path, err)
	}
	return zw.Close()
}

// LoadTable reads a table written by Save.
func LoadTable(r io.Reader) (Table, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return Table{}, err
	}
	defer zr.Close()

	var st savedTable
	if err := msgpack.NewDecoder(zr).Decode(&st); err != nil {
		return Table{}, fmt.Errorf("decoding table: %w", err)
	}
	if st.Version != TableVersion {
		return Table{}, fmt.Errorf("table version %d, expected %d", st.Version, TableVersion)
	}

	st.Table.ToUTC()
	return st.Table, nil
}

// ToUTC converts t's times to UTC in place; msgpack decodes times in the
// local time zone.
func (t *Table) ToUTC() {
	t.Date = t.Date.UTC()
	t.TakeOff = t.TakeOff.UTC()
	for i := range t.Samples {
		t.Samples[i].Time = t.Samples[i].Time.UTC()
	}
}
