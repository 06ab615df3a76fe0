package utils

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Logger provides leveled logging throughout the application. Info, Warn and
// Debug go to out, Error goes to errOut.
type Logger struct {
	out    *log.Logger
	errOut *log.Logger
	prefix string
	debug  bool
}

// New creates a Logger on the given writers.
func New(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:    log.New(out, "", 0),
		errOut: log.New(errOut, "", 0),
		debug:  debug,
	}
}

// With returns a Logger that tags every line with prefix, e.g. a request ID.
func (l *Logger) With(prefix string) *Logger {
	c := *l
	if c.prefix != "" {
		prefix = c.prefix + " " + prefix
	}
	c.prefix = prefix
	return &c
}

func (l *Logger) line(level, format string) string {
	ts := time.Now().Format("2006-01-02 15:04:05")
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s [%s] %s\n", ts, level, l.prefix, format)
	}
	return fmt.Sprintf("[%s] %s %s\n", ts, level, format)
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Printf(l.line("\033[32mINFO\033[0m ", format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Printf(l.line("\033[33mWARN\033[0m ", format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.errOut.Printf(l.line("\033[31mERROR\033[0m", format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.out.Printf(l.line("\033[36mDEBUG\033[0m", format), args...)
}
