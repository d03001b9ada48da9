// igc/errors.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"errors"
	"fmt"
)

var (
	ErrBadHemisphere = errors.New("Invalid hemisphere")
	ErrBadNumber     = errors.New("Non-numeric field")
	ErrBadTime       = errors.New("Time of day out of range")
	ErrNoDate        = errors.New("No HFDTE date record in header")
	ErrNoFixes       = errors.New("No B records")
	ErrNotBRecord    = errors.New("Not a B record")
	ErrShortRecord   = errors.New("B record too short")
)

// FormatError reports a malformed record. Line is 1-based and is 0 when
// the record was decoded on its own rather than as part of a file.
type FormatError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	var loc string
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d: ", e.Path, e.Line)
	case e.Path != "":
		loc = e.Path + ": "
	case e.Line > 0:
		loc = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Text == "" {
		return loc + e.Err.Error()
	}
	return fmt.Sprintf("%s%v: %q", loc, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
