// Package flushio provides buffered program output that is flushed once an
// evaluation finishes, optionally copied to several destinations.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"strings"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// NewWriteFlusher returns w itself if it already flushes, a writer with a
// no-op Flush if w is discard or an in-memory buffer, and a bufio.Writer
// otherwise.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case nil:
		return nil
	case WriteFlusher:
		return impl
	case *bytes.Buffer, *strings.Builder:
		return nopFlusher{w}
	}
	if w == ioutil.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlusher-s into one that writes
// to and flushes each in turn; nils are skipped and nested combinations
// flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all teeFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case teeFlusher:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type teeFlusher []WriteFlusher

func (tf teeFlusher) Write(p []byte) (int, error) {
	for _, wf := range tf {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, returning the first error.
func (tf teeFlusher) Flush() (err error) {
	for _, wf := range tf {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
