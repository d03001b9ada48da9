// util/text.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"crypto/sha256"
	"io"
	"strings"
	"unicode"
)

// Hash returns the SHA-256 digest of everything read from r.
func Hash(r io.Reader) ([]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// StopShouting turns text of the form "JANE DOE" to "Jane Doe"; flight
// recorders commonly store the pilot name in capitals.
func StopShouting(orig string) string {
	var s strings.Builder
	wsLast := true
	for _, ch := range orig {
		if unicode.IsSpace(ch) || ch == '-' {
			wsLast = true
		} else if unicode.IsLetter(ch) {
			if wsLast {
				wsLast = false
			} else {
				ch = unicode.ToLower(ch)
			}
		}
		s.WriteRune(ch)
	}
	return s.String()
}

// IsAllNumbers reports whether s is non-empty and consists only of the
// ASCII digits 0-9.
func IsAllNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
