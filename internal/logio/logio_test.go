package logio

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	var log Logger
	log.SetOutput(&out)

	log.Printf("", "plain")
	log.Printf("TRACE", "step %v", 1)
	log.Leveledf("DEBUG")("already ended\n")
	assert.Equal(t, 0, log.ExitCode(), "expected no error yet")

	log.ErrorIf(nil)
	assert.Equal(t, 0, log.ExitCode(), "expected nil errors to be ignored")

	log.ErrorIf(errors.New("bad"))
	log.Errorf("worse %q", "x")
	assert.Equal(t, 1, log.ExitCode())
	assert.Equal(t, strings.Join([]string{
		"plain",
		"TRACE: step 1",
		"DEBUG: already ended",
		"ERROR: bad",
		`ERROR: worse "x"`,
		"",
	}, "\n"), out.String())
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errors.New("broken") }

func TestLogger_outputError(t *testing.T) {
	var log Logger
	log.Printf("", "nothing to write to")
	assert.Equal(t, 0, log.ExitCode())

	log.SetOutput(brokenWriter{})
	log.Printf("INFO", "lost")
	assert.Equal(t, 2, log.ExitCode())
	log.Errorf("also lost")
	assert.Equal(t, 2, log.ExitCode(), "expected write failures to dominate")
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}
	fmt.Fprint(&lw, "a\nb")
	fmt.Fprint(&lw, "c\n\nd")
	assert.Equal(t, []string{"a", "bc", ""}, lines)
	assert.NoError(t, lw.Flush())
	assert.Equal(t, []string{"a", "bc", "", "d"}, lines)
	assert.NoError(t, lw.Close())
	assert.Len(t, lines, 4, "expected nothing more to flush")
}
