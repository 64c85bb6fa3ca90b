package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnbalancedBlock is wrapped by a ParseError for a stray "}" or an
	// unclosed "{".
	ErrUnbalancedBlock = errors.New("unbalanced block")

	// ErrDanglingAssign is wrapped by a ParseError when ":" has no name
	// token after it.
	ErrDanglingAssign = errors.New("assignment without a name")

	// ErrUnclosedBlock is the ErrUnbalancedBlock case of input ending inside
	// a block.
	ErrUnclosedBlock = fmt.Errorf("%w: missing }", ErrUnbalancedBlock)

	// ErrUnfinishedAssign is the ErrDanglingAssign case of input ending
	// right after ":".
	ErrUnfinishedAssign = fmt.Errorf("%w at end of input", ErrDanglingAssign)

	ErrStackUnderflow      = errors.New("stack underflow")
	ErrUnknownIdentifier   = errors.New("unknown identifier")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrDivideByZero        = errors.New("divide by zero")
	ErrEmptyReduce         = errors.New("reduce of empty sequence")
	ErrEmptySequence       = errors.New("empty sequence")
	ErrUnmatchedArrayClose = errors.New("unmatched array close")
	ErrIndexRange          = errors.New("index out of range")
	ErrNegativeExponent    = errors.New("negative exponent")
	ErrInvalidBase         = errors.New("base must be at least 2")
	ErrDepthExceeded       = errors.New("block nesting too deep")
)

// Pos locates a token within its source text; Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (pos Pos) String() string {
	if pos.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%v:%v", pos.Line, pos.Col)
}

// LexError reports source text that cannot be tokenized.
type LexError struct {
	Pos Pos
	Msg string
}

func (err *LexError) Error() string {
	return fmt.Sprintf("lex error at %v: %v", err.Pos, err.Msg)
}

// ParseError reports a malformed token structure.
type ParseError struct {
	Pos Pos
	Err error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse error at %v: %v", err.Pos, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

// EvalError reports a failure while evaluating a program: which operator or
// identifier failed, the operand kinds it observed, and where.
type EvalError struct {
	Op   string
	Tags []Kind
	Pos  Pos
	Err  error
}

func (err *EvalError) Error() string {
	var sb strings.Builder
	sb.WriteString("eval error")
	if err.Pos.Line != 0 {
		fmt.Fprintf(&sb, " at %v", err.Pos)
	}
	if err.Op != "" {
		fmt.Fprintf(&sb, " in %q", err.Op)
	}
	sb.WriteString(": ")
	sb.WriteString(err.Err.Error())
	if len(err.Tags) > 0 {
		sb.WriteString(" (")
		for i, tag := range err.Tags {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(tag.String())
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func (err *EvalError) Unwrap() error { return err.Err }

type haltError struct{ error }

func (err haltError) Error() string { return fmt.Sprintf("halted: %v", err.error) }

func (err haltError) Unwrap() error { return err.error }
