// Package panicerr converts panics and runtime.Goexit calls into errors, so
// that a misbehaving evaluation fails its caller instead of the process.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, returning its error. A panic within f
// is returned as an error that IsPanic recognizes and that unwraps to the
// panic value when that value is itself an error; a runtime.Goexit call is
// returned as an error that IsExit recognizes.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			// a normal return or a recovered panic has already sent
			select {
			case errch <- exitError(name):
			default:
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- panicError{name, e, debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// Stack returns the goroutine stack captured when err's panic was
// recovered, or "" if err did not come from a panic.
func Stack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	value interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

// Format adds the captured stack under the %+v verb.
func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name != "" {
		fmt.Fprintf(f, "%v ", pe.name)
	}
	fmt.Fprintf(f, "paniced: %v", pe.value)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.value.(error)
	return err
}
