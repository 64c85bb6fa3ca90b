package panicerr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	for _, tc := range []struct {
		name    string
		err     string
		wraps   string
		fun     func() error
		isPanic bool
		isExit  bool
	}{
		{
			name: "normal",
			fun:  func() error { return nil },
		},
		{
			name: "normal err",
			err:  "bang",
			fun:  func() error { return errors.New("bang") },
		},
		{
			name:    "panic err",
			err:     "panic err paniced: bang",
			wraps:   "bang",
			isPanic: true,
			fun:     func() error { panic(errors.New("bang")) },
		},
		{
			name:    "",
			err:     "paniced: shrug",
			wraps:   "shrug",
			isPanic: true,
			fun:     func() error { panic(errors.New("shrug")) },
		},
		{
			name:    "panic value",
			err:     "panic value paniced: hello",
			isPanic: true,
			fun:     func() error { panic("hello") },
		},
		{
			name:    "index panic",
			err:     "index panic paniced: runtime error: index out of range [1] with length 0",
			isPanic: true,
			fun:     func() error { _ = ([]int)(nil)[1]; return nil },
		},
		{
			name:   "exit",
			err:    "exit called runtime.Goexit",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
		{
			name:   "",
			err:    "runtime.Goexit called",
			isExit: true,
			fun:    func() error { runtime.Goexit(); return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.fun)
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.err)
			if tc.wraps != "" {
				assert.EqualError(t, errors.Unwrap(err), tc.wraps, "expected panic(error) value")
			}
			assert.Equal(t, tc.isPanic, IsPanic(err), "IsPanic")
			assert.Equal(t, tc.isExit, IsExit(err), "IsExit")
			if stack := Stack(err); tc.isPanic {
				assert.NotEqual(t, "", stack, "expected a stack trace")
			} else {
				assert.Equal(t, "", stack, "expected no stack trace")
			}
		})
	}
}

func TestRecover_stacktrace(t *testing.T) {
	err := Recover("", func() error {
		panic("nope")
	})
	require.Error(t, err, "must have a recovered error")
	assert.True(t,
		strings.HasSuffix(fmt.Sprintf("%+v", err), Stack(err)),
		"expected verbose format to end with a stack trace")
}

func TestRecover_wrapped(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := Recover("wrapped", func() error {
		panic(fmt.Errorf("context: %w", sentinel))
	})
	assert.True(t, errors.Is(err, sentinel), "expected panic values to stay inspectable")
}
