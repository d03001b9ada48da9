// igc/record.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"fmt"
	gomath "math"
	"strconv"
	"time"

	"github.com/xcscore/xcscore/math"
	"github.com/xcscore/xcscore/util"
)

// Validity is the fix validity flag of a B record.
type Validity byte

const (
	Valid3D   Validity = 'A'
	Estimated Validity = 'V' // 2D fix or no GNSS data
)

func (v Validity) String() string {
	switch v {
	case Valid3D:
		return "A"
	case Estimated:
		return "V"
	default:
		return fmt.Sprintf("Validity(%d)", byte(v))
	}
}

// Fix is one decoded B record.
type Fix struct {
	Time             time.Time     `msgpack:"t"`
	Position         math.Point2LL `msgpack:"p"`
	Validity         Validity      `msgpack:"v"`
	PressureAltitude int           `msgpack:"pa"` // meters
	GNSSAltitude     int           `msgpack:"ga"` // meters
}

// Field offsets of a B record:
//
//	B HHMMSS DDMMmmmN DDDMMmmmE V PPPPP GGGGG
//	0 1      7        15        24 25   30    35
const (
	bTimeStart     = 1
	bLatStart      = 7
	bLonStart      = 15
	bValidity      = 24
	bPressureStart = 25
	bGNSSStart     = 30
	bRecordLength  = 35
)

// DecodeFix decodes a B record. The time of day in the record is combined
// with date, which should be UTC midnight of the day the fix belongs to.
// Any trailing extension fields are ignored.
func DecodeFix(line string, date time.Time) (Fix, error) {
	ferr := func(err error) (Fix, error) {
		return Fix{}, &FormatError{Text: line, Err: err}
	}

	if len(line) < bRecordLength {
		if len(line) > 0 && line[0] != 'B' {
			return ferr(ErrNotBRecord)
		}
		return ferr(ErrShortRecord)
	}
	if line[0] != 'B' {
		return ferr(ErrNotBRecord)
	}

	hour, err1 := atou(line[1:3])
	minute, err2 := atou(line[3:5])
	second, err3 := atou(line[5:7])
	if err1 != nil || err2 != nil || err3 != nil {
		return ferr(ErrBadNumber)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return ferr(ErrBadTime)
	}

	lat, err := decodeAngle(line[bLatStart:bLonStart], 2, 'N', 'S')
	if err != nil {
		return ferr(err)
	}
	lon, err := decodeAngle(line[bLonStart:bValidity], 3, 'E', 'W')
	if err != nil {
		return ferr(err)
	}

	pressure, err := atoi(line[bPressureStart:bGNSSStart])
	if err != nil {
		return ferr(ErrBadNumber)
	}
	gnss, err := atoi(line[bGNSSStart:bRecordLength])
	if err != nil {
		return ferr(ErrBadNumber)
	}

	d := date.UTC()
	return Fix{
		Time:             time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.UTC),
		Position:         math.LL(lat, lon),
		Validity:         Validity(line[bValidity]),
		PressureAltitude: pressure,
		GNSSAltitude:     gnss,
	}, nil
}

// decodeAngle decodes a DDMMmmmH / DDDMMmmmH angle with the given number
// of degree digits into signed decimal degrees.
func decodeAngle(s string, degDigits int, pos, neg byte) (float64, error) {
	deg, err := atou(s[:degDigits])
	if err != nil {
		return 0, ErrBadNumber
	}
	thousandths, err := atou(s[degDigits : degDigits+5])
	if err != nil {
		return 0, ErrBadNumber
	}

	v := float64(deg) + float64(thousandths)/1000/60
	switch s[degDigits+5] {
	case pos:
		return v, nil
	case neg:
		return -v, nil
	default:
		return 0, ErrBadHemisphere
	}
}

// atou parses a fixed-width unsigned field.
func atou(s string) (int, error) {
	if s == "" {
		return 0, ErrBadNumber
	}
	for _, ch := range []byte(s) {
		if ch < '0' || ch > '9' {
			return 0, ErrBadNumber
		}
	}
	return strconv.Atoi(s)
}

// atoi parses a fixed-width altitude field; a leading '-' is allowed, as
// recorders use it for altitudes below the reference datum.
func atoi(s string) (int, error) {
	for i, ch := range []byte(s) {
		if (ch < '0' || ch > '9') && !(i == 0 && ch == '-' && len(s) > 1) {
			return 0, ErrBadNumber
		}
	}
	return strconv.Atoi(s)
}

// EncodeFix returns the B record for f. Coordinates are rounded to the
// nearest thousandth of a minute, the resolution of the format.
func EncodeFix(f Fix) string {
	t := f.Time.UTC()
	return fmt.Sprintf("B%02d%02d%02d%s%s%c%s%s", t.Hour(), t.Minute(), t.Second(),
		encodeAngle(f.Position.Latitude(), 2, 'N', 'S'),
		encodeAngle(f.Position.Longitude(), 3, 'E', 'W'),
		byte(f.Validity), encodeAltitude(f.PressureAltitude), encodeAltitude(f.GNSSAltitude))
}

func encodeAngle(v float64, degDigits int, pos, neg byte) string {
	h := util.Select(v < 0, neg, pos)
	total := int(gomath.Round(math.Abs(v) * 60 * 1000)) // thousandths of a minute
	deg, thousandths := total/60000, total%60000
	return fmt.Sprintf("%0*d%05d%c", degDigits, deg, thousandths, h)
}

func encodeAltitude(a int) string {
	if a < 0 {
		return fmt.Sprintf("-%04d", math.Abs(a))
	}
	return fmt.Sprintf("%05d", a)
}

// SubstitutePressureAltitude returns the B record with its GNSS altitude
// field replaced by its pressure altitude field. Other lines, including
// too-short B records, are returned unchanged.
func SubstitutePressureAltitude(line string) string {
	if len(line) < bRecordLength || line[0] != 'B' {
		return line
	}
	return line[:bGNSSStart] + line[bPressureStart:bGNSSStart] + line[bRecordLength:]
}
