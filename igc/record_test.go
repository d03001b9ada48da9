// igc/record_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"errors"
	"testing"
	"time"

	"github.com/xcscore/xcscore/math"
)

var testDate = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

func TestDecodeFix(t *testing.T) {
	fix, err := DecodeFix("B1012003440751N11955269WA0069000732", testDate)
	if err != nil {
		t.Fatal(err)
	}

	if expected := time.Date(2024, 7, 15, 10, 12, 0, 0, time.UTC); !fix.Time.Equal(expected) {
		t.Errorf("time %v, expected %v", fix.Time, expected)
	}
	if lat := 34 + 40.751/60; math.Abs(fix.Position.Latitude()-lat) > 1e-9 {
		t.Errorf("latitude %f, expected %f", fix.Position.Latitude(), lat)
	}
	if lon := -(119 + 55.269/60); math.Abs(fix.Position.Longitude()-lon) > 1e-9 {
		t.Errorf("longitude %f, expected %f", fix.Position.Longitude(), lon)
	}
	if fix.Validity != Valid3D || fix.PressureAltitude != 690 || fix.GNSSAltitude != 732 {
		t.Errorf("unexpected fields %+v", fix)
	}

	// Southern and eastern hemispheres, estimated fix, extension fields.
	fix, err = DecodeFix("B2359593352123S15112345EV-001200015123456", testDate)
	if err != nil {
		t.Fatal(err)
	}
	if fix.Position.Latitude() >= 0 || fix.Position.Longitude() <= 0 {
		t.Errorf("hemisphere signs wrong: %s", fix.Position.DDString())
	}
	if fix.Validity != Estimated || fix.PressureAltitude != -12 || fix.GNSSAltitude != 15 {
		t.Errorf("unexpected fields %+v", fix)
	}
}

func TestDecodeFixErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		err  error
	}{
		{name: "short", line: "B1012003440751N11955269WA00690", err: ErrShortRecord},
		{name: "empty", line: "", err: ErrShortRecord},
		{name: "not B", line: "L1012003440751N11955269WA0069000732", err: ErrNotBRecord},
		{name: "short not B", line: "HFDTE150724", err: ErrNotBRecord},
		{name: "bad time", line: "B10X2003440751N11955269WA0069000732", err: ErrBadNumber},
		{name: "signed hour", line: "B-100003440751N11955269WA0069000732", err: ErrBadNumber},
		{name: "signed minute", line: "B10-1003440751N11955269WA0069000732", err: ErrBadNumber},
		{name: "signed second", line: "B1012-13440751N11955269WA0069000732", err: ErrBadNumber},
		{name: "signed latitude degrees", line: "B101200-440751N11955269WA0069000732", err: ErrBadNumber},
		{name: "signed longitude minutes", line: "B1012003440751N119-5269WA0069000732", err: ErrBadNumber},
		{name: "hour range", line: "B2412003440751N11955269WA0069000732", err: ErrBadTime},
		{name: "bad latitude", line: "B1012003440 51N11955269WA0069000732", err: ErrBadNumber},
		{name: "bad hemisphere", line: "B1012003440751X11955269WA0069000732", err: ErrBadHemisphere},
		{name: "bad lon hemisphere", line: "B1012003440751N11955269NA0069000732", err: ErrBadHemisphere},
		{name: "bad altitude", line: "B1012003440751N11955269WA00690007a2", err: ErrBadNumber},
		{name: "lone minus", line: "B1012003440751N11955269WA0069000732"[:30] + "-    ", err: ErrBadNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFix(tt.line, testDate)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %v, expected %v", err, tt.err)
			}
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if ferr.Text != tt.line {
				t.Errorf("FormatError text %q, expected %q", ferr.Text, tt.line)
			}
		})
	}
}

func TestFixRoundTrip(t *testing.T) {
	lines := []string{
		"B1012003440751N11955269WA0069000732",
		"B0000000000000N00000000EA0000000000",
		"B2359594559999S17959999EV0999909999",
		"B1200004700001N00800001WA-0050-0010",
		"B0605303352123S15112345EA0123401301",
	}

	for _, line := range lines {
		fix, err := DecodeFix(line, testDate)
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		if enc := EncodeFix(fix); enc != line {
			t.Errorf("round trip of %q gave %q", line, enc)
		}
	}
}

func TestSubstitutePressureAltitude(t *testing.T) {
	for _, c := range []struct{ in, out string }{
		{"B1012003440751N11955269WA0069000732", "B1012003440751N11955269WA0069000690"},
		{"B1012003440751N11955269WA0069000732123", "B1012003440751N11955269WA0069000690123"},
		{"B10120034", "B10120034"},
		{"HFDTE150724", "HFDTE150724"},
	} {
		if s := SubstitutePressureAltitude(c.in); s != c.out {
			t.Errorf("SubstitutePressureAltitude(%q) = %q, expected %q", c.in, s, c.out)
		}
	}
}
