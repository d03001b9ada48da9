// util/text_test.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestStopShouting(t *testing.T) {
	for _, c := range []struct{ in, out string }{
		{"JANE DOE", "Jane Doe"},
		{"jean-PIERRE MARTIN", "jean-Pierre Martin"},
		{"", ""},
		{"X", "X"},
	} {
		if s := StopShouting(c.in); s != c.out {
			t.Errorf("StopShouting(%q) = %q, expected %q", c.in, s, c.out)
		}
	}
}

func TestHash(t *testing.T) {
	h, err := Hash(strings.NewReader("abc"))
	if err != nil {
		t.Fatal(err)
	}
	const expected = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hex.EncodeToString(h) != expected {
		t.Errorf("got %x, expected %s", h, expected)
	}

	h2, _ := Hash(bytes.NewReader([]byte("abd")))
	if bytes.Equal(h, h2) {
		t.Errorf("different inputs hashed to the same value")
	}
}

func TestIsAllNumbers(t *testing.T) {
	if !IsAllNumbers("0123") || IsAllNumbers("12a") || IsAllNumbers("") {
		t.Errorf("IsAllNumbers gave unexpected results")
	}
}
