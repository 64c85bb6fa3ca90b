package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.Writer that passes each complete line written to it
// through Logf, without its line feed. Any partial final line is held until
// Flush. Writer is safe to use from multiple goroutines.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.Logf("%s", lw.buf.Next(i))
		lw.buf.Next(1)
	}
	return len(p), nil
}

// Flush logs any partial line still buffered.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.buf.Len() > 0 {
		lw.Logf("%s", lw.buf.Next(lw.buf.Len()))
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }
