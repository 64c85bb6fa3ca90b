package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// showCode renders instructions compactly for comparison, nesting block
// bodies in braces.
func showCode(code []Instruction) string {
	var sb strings.Builder
	for i, in := range code {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(in.Code.String())
		sb.WriteByte('(')
		switch in.Code {
		case codePushBlock:
			body, err := in.Value.(*Block).Code()
			if err != nil {
				sb.WriteString(err.Error())
			} else {
				sb.WriteString(showCode(body))
			}
		case codePushInt, codePushString:
			sb.WriteString(inspectString(in.Value))
		default:
			sb.WriteString(in.Text)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		code string
		err  error
	}{
		{name: "empty", src: "", code: ""},
		{name: "literals", src: `1 'a' "b\n"`,
			code: `pushint(1) pushstr("a") pushstr("b\n")`},
		{name: "big int", src: `123456789012345678901234567890`,
			code: `pushint(123456789012345678901234567890)`},
		{name: "words", src: `+ foo`, code: `call(+) call(foo)`},
		{name: "arrays are markers", src: `[1]`, code: `mark([) pushint(1) wrap(])`},
		{name: "block", src: `{1 +}`, code: `pushblk(pushint(1) call(+))`},
		{name: "nested blocks", src: `{{}{x}}`, code: `pushblk(pushblk() pushblk(call(x)))`},
		{name: "assign", src: `1:x`, code: `pushint(1) assign(x)`},
		{name: "assign any token", src: `:+:1:"s"`, code: `assign(+) assign(1) assign("s")`},
		{name: "assign to bracket", src: `:[`, code: `assign([)`},
		{name: "unclosed block", src: `{1`, err: ErrUnclosedBlock},
		{name: "unclosed nested block", src: `{{}`, err: ErrUnbalancedBlock},
		{name: "stray block close", src: `1}`, err: ErrUnbalancedBlock},
		{name: "dangling assign", src: `1:`, err: ErrDanglingAssign},
		{name: "assign before block close", src: `{:}`, err: ErrDanglingAssign},
		{name: "assign before block open", src: `:{}`, err: ErrDanglingAssign},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Parse([]byte(tc.src))
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "expected %v, got %v", tc.err, err)
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr), "expected a *ParseError")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.code, showCode(code))
		})
	}
}

func TestParse_blockSource(t *testing.T) {
	code, err := Parse([]byte(`{ 1  {2}+ # c
}`))
	require.NoError(t, err)
	require.Len(t, code, 1)
	blk := code[0].Value.(*Block)
	assert.Equal(t, " 1  {2}+ # c\n", string(blk.Source()), "expected verbatim block source")
	assert.Equal(t, "{ 1  {2}+ # c\n}", code[0].Text)
}

func TestParse_errorPosition(t *testing.T) {
	_, err := Parse([]byte("1\n 2 {3"))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, Pos{Offset: 5, Line: 2, Col: 4}, parseErr.Pos)
	assert.EqualError(t, err, "parse error at 2:4: unbalanced block: missing }")
}

func TestBlock_lazyCode(t *testing.T) {
	blk := NewBlock([]byte("1 2+"))
	code, err := blk.Code()
	require.NoError(t, err)
	assert.Equal(t, "pushint(1) pushint(2) call(+)", showCode(code))

	bad := NewBlock([]byte("}"))
	_, err = bad.Code()
	assert.True(t, errors.Is(err, ErrUnbalancedBlock))
}
