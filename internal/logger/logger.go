// Package logger provides the diagnostic channel used by the emulator core.
//
// The core never prints on its own. Components that want to report
// something (an undecoded opcode, a write into cartridge ROM) take a Logger
// and the driving program decides where the output goes.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrUnknownLevel indicates a level name ParseLevel does not recognise.
var ErrUnknownLevel = errors.New("unknown log level")

// Logger is the diagnostic sink used throughout the emulator.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level filters which messages a writer logger emits.
type Level int

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// String returns the tag printed in front of each message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a level name such as "info" to a Level.
func ParseLevel(name string) (Level, error) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelError} {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return LevelError, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

type writerLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New returns a Logger writing to out. Messages below level are dropped.
func New(out io.Writer, level Level) Logger {
	return &writerLogger{out: out, level: level}
}

// NewStderr returns a Logger writing to standard error.
func NewStderr(level Level) Logger {
	return New(os.Stderr, level)
}

func (l *writerLogger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s]\t"+format+"\n", append([]any{level}, args...)...)
}

func (l *writerLogger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

func (l *writerLogger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

func (l *writerLogger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}
