// log/stack.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func makeFrame(f runtime.Frame) StackFrame {
	fn := strings.TrimPrefix(f.Function, "github.com/xcscore/xcscore/")
	return StackFrame{
		File:     filepath.Base(f.File),
		Line:     f.Line,
		Function: strings.TrimPrefix(fn, "main."),
	}
}

// Caller returns the frame skip levels above the caller of the function
// that called Caller; Caller(0) from a logging method gives the code that
// is logging.
func Caller(skip int) StackFrame {
	var pc [1]uintptr
	if runtime.Callers(3+skip, pc[:]) == 0 {
		return StackFrame{}
	}
	f, _ := runtime.CallersFrames(pc[:]).Next()
	return makeFrame(f)
}

// Callstack returns the frames above the logging function, up to
// main.main, reusing fr's storage if it is large enough.
func Callstack(fr []StackFrame) []StackFrame {
	var callers [16]uintptr
	n := runtime.Callers(3, callers[:])
	frames := runtime.CallersFrames(callers[:n])

	fr = fr[:0]
	for {
		f, more := frames.Next()
		fr = append(fr, makeFrame(f))
		if !more || f.Function == "main.main" {
			return fr
		}
	}
}

func (f StackFrame) String() string {
	return f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Function
}
