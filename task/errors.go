// task/errors.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import (
	"errors"
	"strings"
)

var (
	ErrBadTimeGate  = errors.New("Invalid time of day")
	ErrInvalidTask  = errors.New("Invalid task")
	ErrNoTurnpoints = errors.New("Task has no turnpoints")
)

// FormatError lists every problem found in a task definition. Err is the
// most specific sentinel that applies, for use with errors.Is.
type FormatError struct {
	Path     string
	Problems []string
	Err      error
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path + ": ")
	}
	sb.WriteString(e.Err.Error())
	if len(e.Problems) > 0 {
		sb.WriteString(": " + strings.Join(e.Problems, "; "))
	}
	return sb.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
