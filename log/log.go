// log/log.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes structured records for a run of xcscore. Debug and info
// records carry the calling function; warnings and errors carry the full
// call stack.
type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes JSON records to a rotating file in the
// given directory. If dir is empty, the user's cache directory is used.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserCacheDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user cache dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "xcscore")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "xcscore.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		// Per-stage metrics timings for every flight add up quickly.
		w.MaxSize = 256
	}

	return newLogger(w, level, w.Filename, dir)
}

// ParseLevel accepts the names slog uses ("debug", "INFO", "warn+2", ...).
func ParseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%q: invalid log level", level)
	}
	return lvl, nil
}

func newLogger(w io.Writer, level string, filename string, dir string) *Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: filename,
		LogDir:  dir,
		Start:   time.Now(),
	}
	l.logStartup()
	return l
}

// logStartup records the command line, the resources available for
// processing flights concurrently, and the build.
func (l *Logger) logStartup() {
	l.Info("xcscore starting", slog.Time("start", l.Start), slog.Any("args", os.Args[1:]))

	sysinfo := []any{
		slog.String("os", runtime.GOOS+"/"+runtime.GOARCH),
		slog.Int("cpus", runtime.NumCPU()),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sysinfo = append(sysinfo,
			slog.Uint64("total_mb", vm.Total/(1024*1024)),
			slog.Uint64("available_mb", vm.Available/(1024*1024)))
	}
	l.Info("system", sysinfo...)

	if bi, ok := debug.ReadBuildInfo(); ok {
		build := []any{slog.String("go", bi.GoVersion), slog.String("module", bi.Main.Version)}
		for _, s := range bi.Settings {
			if strings.HasPrefix(s.Key, "vcs.") {
				build = append(build, slog.String(s.Key, s.Value))
			}
		}
		var deps []any
		for _, dep := range bi.Deps {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		l.Info("build", append(build, slog.Group("deps", deps...))...)
	}
}

// The logging methods accept a nil *Logger: debug and info records are
// then discarded, while warnings and errors go to the default slog
// logger. Only these methods add caller information; WarnContext, Log
// and the like are passed through unchanged.

func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(msg, append([]any{slog.Any("caller", Caller(0))}, args...)...)
	}
}

// Debugf logs just a message with printf-style formatting.
func (l *Logger) Debugf(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...), slog.Any("caller", Caller(0)))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(msg, append([]any{slog.Any("caller", Caller(0))}, args...)...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(msg, args...), slog.Any("caller", Caller(0)))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	l.warn(msg, Callstack(nil), args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.warn(fmt.Sprintf(msg, args...), Callstack(nil))
}

func (l *Logger) warn(msg string, stack []StackFrame, args ...any) {
	args = append([]any{slog.Any("callstack", stack)}, args...)
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

// Error also reports to the default slog logger, so that errors reach
// stderr even though the Logger writes to a file.
func (l *Logger) Error(msg string, args ...any) {
	l.error(msg, Callstack(nil), args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.error(fmt.Sprintf(msg, args...), Callstack(nil))
}

func (l *Logger) error(msg string, stack []StackFrame, args ...any) {
	args = append([]any{slog.Any("callstack", stack)}, args...)
	slog.Error(msg, args...)
	if l != nil {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) enabled(lvl slog.Level) bool {
	return l != nil && l.Logger.Enabled(nil, lvl)
}

// With returns a Logger that includes the given attributes in each
// record. Calling it on a nil Logger returns nil.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
	}
}

// Flight returns a Logger whose records name the flight log at path.
func (l *Logger) Flight(path string) *Logger {
	return l.With(slog.String("flight", path))
}

// Task returns a Logger whose records name the task file at path.
func (l *Logger) Task(path string) *Logger {
	return l.With(slog.String("task", path))
}
