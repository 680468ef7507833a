package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger is the leveled logging capability handed to each component.
// Components receive it explicitly instead of reaching for package-level
// state.
type Logger struct {
	info *log.Logger
	warn *log.Logger
	err  *log.Logger
}

// New creates a Logger writing to stdout/stderr.
func New() *Logger {
	return &Logger{
		info: log.New(os.Stdout, "", 0),
		warn: log.New(os.Stdout, "", 0),
		err:  log.New(os.Stderr, "", 0),
	}
}

// Discard creates a Logger that drops everything. Used in tests.
func Discard() *Logger {
	silent := log.New(io.Discard, "", 0)
	return &Logger{info: silent, warn: silent, err: silent}
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Printf(fmt.Sprintf("[%s] INFO  %s", timestamp(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Printf(fmt.Sprintf("[%s] WARN  %s", timestamp(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] ERROR %s", timestamp(), format), args...)
}
