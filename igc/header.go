// igc/header.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"strings"
	"time"

	"github.com/xcscore/xcscore/log"
	"github.com/xcscore/xcscore/util"
)

// Header holds the metadata parsed from the H records of a flight log.
type Header struct {
	Date          time.Time // UTC midnight of the first fix's day
	Pilot         string    // empty if the log does not name the pilot
	GliderType    string
	GliderID      string
	CompetitionID string
}

func (h Header) HasPilot() bool {
	return h.Pilot != ""
}

// ParseHeader extracts the header fields from the given lines. The date
// is required since fix timestamps cannot be built without it; a missing
// pilot name is logged and left empty.
func ParseHeader(lines []string, lg *log.Logger) (Header, error) {
	var h Header
	haveDate := false

	for i, line := range lines {
		if len(line) < 5 || (line[0] != 'H' && line[0] != 'h') {
			continue
		}
		// HFDTE, HFPLTPILOTINCHARGE, etc.; the second character is the
		// data source (F, O, or P) and doesn't matter here.
		code := strings.ToUpper(line[2:5])

		switch code {
		case "DTE":
			if haveDate {
				continue
			}
			d, ok := parseDate(line[5:])
			if !ok {
				return Header{}, &FormatError{Line: i + 1, Text: line, Err: ErrNoDate}
			}
			h.Date = d
			haveDate = true

		case "PLT":
			if !h.HasPilot() {
				h.Pilot = pilotName(headerValue(line))
			}
		case "GTY":
			h.GliderType = headerValue(line)
		case "GID":
			h.GliderID = headerValue(line)
		case "CID":
			h.CompetitionID = headerValue(line)
		}
	}

	if !haveDate {
		return Header{}, &FormatError{Err: ErrNoDate}
	}
	if !h.HasPilot() {
		lg.Warn("flight log has no pilot name")
	}
	return h, nil
}

// parseDate handles both "DDMMYY" and "DATE:DDMMYY[,NN]", where NN is a
// flight number for the day. Two-digit years are taken to be 20YY.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "DATE:"); ok {
		s = strings.TrimSpace(rest)
	}
	if len(s) < 6 || !util.IsAllNumbers(s[:6]) {
		return time.Time{}, false
	}

	dd, mm, yy := atoiDigits(s[0:2]), atoiDigits(s[2:4]), atoiDigits(s[4:6])
	if dd < 1 || dd > 31 || mm < 1 || mm > 12 {
		return time.Time{}, false
	}
	d := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if d.Day() != dd {
		// e.g. 310224; time.Date normalizes it to March 2.
		return time.Time{}, false
	}
	return d, true
}

func atoiDigits(s string) int {
	v := 0
	for _, ch := range []byte(s) {
		v = 10*v + int(ch-'0')
	}
	return v
}

// pilotName converts names that recorders store in capitals, e.g.
// "JANE DOE", to "Jane Doe"; mixed-case names are returned unchanged.
func pilotName(s string) string {
	if strings.ToUpper(s) != s || strings.ToLower(s) == s {
		return s
	}
	return util.StopShouting(s)
}

// headerValue returns the trimmed free text after the first colon, or an
// empty string if there is none.
func headerValue(line string) string {
	_, v, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "NKN") || strings.EqualFold(v, "NIL") {
		// IGC placeholders for "not known".
		return ""
	}
	return v
}
