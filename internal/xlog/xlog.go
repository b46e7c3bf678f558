// Package xlog is the process-wide logging backend. The sink is an
// io.Writer so a message-box/debug-string backend can be layered on
// later without touching call sites.
package xlog

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Severity is a log line's severity, ordered least to most verbose.
type Severity int

const (
	ForcedError Severity = iota
	ForcedWarning
	ForcedInfo
	Error
	Warning
	Info
	Debug
	SuperDebug
)

func (s Severity) zerologLevel() zerolog.Level {
	switch s {
	case ForcedError, Error:
		return zerolog.ErrorLevel
	case ForcedWarning, Warning:
		return zerolog.WarnLevel
	case ForcedInfo, Info:
		return zerolog.InfoLevel
	case Debug:
		return zerolog.DebugLevel
	case SuperDebug:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// forced reports whether a severity is one of the three "forced
// interactive" levels, which additionally raise a dialog when no log
// file or debugger is attached.
func (s Severity) forced() bool {
	return s == ForcedError || s == ForcedWarning || s == ForcedInfo
}

// Logger is the process-wide log sink. The zero value is not usable;
// construct one with New.
type Logger struct {
	zl      zerolog.Logger
	dialog  func(Severity, string)
	enabled bool
}

// New creates a logger writing one zerolog JSON object per line to w,
// with "level", "sev" (the severity name), "time" and "message" fields;
// it does not write a bracketed "[date time] [severity] message" text
// layout. If enabled
// is false, logging is a no-op except for forced-interactive severities,
// which still invoke dialogFn (if non-nil) so configuration mistakes are
// never silent.
func New(w io.Writer, enabled bool, dialogFn func(Severity, string)) *Logger {
	if w == nil {
		w = io.Discard
	}

	return &Logger{
		zl: zerolog.New(w).With().
			Timestamp().
			Logger(),
		dialog:  dialogFn,
		enabled: enabled,
	}
}

// NewFile opens (creating if necessary) the log file at path.
func NewFile(path string) (*Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	return New(f, true, nil), f, nil
}

var severityName = map[Severity]string{
	ForcedError:   "forced-error",
	ForcedWarning: "forced-warning",
	ForcedInfo:    "forced-info",
	Error:         "error",
	Warning:       "warning",
	Info:          "info",
	Debug:         "debug",
	SuperDebug:    "super-debug",
}

// Log writes one timestamped line at the given severity, and raises the
// interactive dialog for forced severities.
func (l *Logger) Log(sev Severity, msg string) {
	if l.enabled {
		l.zl.WithLevel(sev.zerologLevel()).
			Str("sev", severityName[sev]).
			Msg(msg)
	}

	if sev.forced() && l.dialog != nil {
		l.dialog(sev, msg)
	}
}

func (l *Logger) Errorf(format string, args ...any) { l.Log(Error, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.Log(Warning, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.Log(Info, fmt.Sprintf(format, args...)) }
func (l *Logger) Debugf(format string, args ...any) { l.Log(Debug, fmt.Sprintf(format, args...)) }
