// Package logio implements the command's diagnostic logging: leveled lines
// on stderr, and an io.Writer that turns written lines into log calls.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes "level: message" lines to an output stream, remembering
// whether any error was logged so that the process can exit accordingly.
// It is safe to use from multiple goroutines.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets where log lines are written.
func (log *Logger) SetOutput(out io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.out = out
}

// ExitCode returns 0 if nothing was logged through Errorf or ErrorIf, 1 if
// something was, and 2 if writing a log line itself failed.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return log.exitCode
}

// Leveledf returns a printf-style function that logs at the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like Printf("ERROR", ...) but also makes ExitCode non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.exitCode == 0 {
		log.exitCode = 1
	}
	log.printf("ERROR", mess, args...)
}

// Printf logs one line, prefixed by level if it is not empty.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf(level, mess, args...)
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	if log.out == nil {
		return
	}
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if _, err := log.buf.WriteTo(log.out); err != nil {
		log.buf.Reset()
		log.exitCode = 2
	}
}
