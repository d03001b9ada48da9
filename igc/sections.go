// igc/sections.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package igc

import (
	"bufio"
	"io"
	"strings"
)

// Sections holds the lines of an IGC file split into the header (all
// lines before the first B record), the body (the run of B records
// starting there), and the footer (everything after the body).
type Sections struct {
	Header []string
	Body   []string
	// BodyLines holds the 1-based file line number of each Body entry.
	BodyLines []int
	Footer    []string
}

// Record types that may be interleaved with B records without ending the
// body.
var interleavedRecords = map[byte]bool{
	'E': true, // event
	'L': true, // comment
	'K': true, // extension data
}

// Split reads r and partitions its lines into Sections. Trailing
// carriage returns are removed. Blank lines in the body end it, as does
// any record other than B, E, L, or K. E, L, and K records between two B
// records are dropped; those after the last B record lead the footer.
func Split(r io.Reader) (Sections, error) {
	var s Sections
	const (
		inHeader = iota
		inBody
		inFooter
	)
	state := inHeader
	var pending []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimRight(sc.Text(), "\r")

		switch state {
		case inHeader:
			if strings.HasPrefix(line, "B") {
				state = inBody
				s.Body = append(s.Body, line)
				s.BodyLines = append(s.BodyLines, lineno)
			} else {
				s.Header = append(s.Header, line)
			}

		case inBody:
			if strings.HasPrefix(line, "B") {
				s.Body = append(s.Body, line)
				s.BodyLines = append(s.BodyLines, lineno)
				pending = pending[:0]
			} else if line != "" && interleavedRecords[line[0]] {
				pending = append(pending, line)
			} else {
				state = inFooter
				s.Footer = append(s.Footer, pending...)
				s.Footer = append(s.Footer, line)
				pending = nil
			}

		case inFooter:
			s.Footer = append(s.Footer, line)
		}
	}

	if state == inBody {
		s.Footer = append(s.Footer, pending...)
	}

	return s, sc.Err()
}
