package main

import (
	"fmt"
	"io"
	"math/big"
)

// Code identifies what an Instruction does.
type Code uint8

// Instruction codes.
const (
	codePushInt Code = iota
	codePushString
	codePushBlock
	codeArrayOpen
	codeArrayClose
	codeInvoke
	codeAssign
)

var codeNames = [...]string{
	codePushInt:    "pushint",
	codePushString: "pushstr",
	codePushBlock:  "pushblk",
	codeArrayOpen:  "mark",
	codeArrayClose: "wrap",
	codeInvoke:     "call",
	codeAssign:     "assign",
}

func (code Code) String() string {
	if int(code) < len(codeNames) {
		return codeNames[code]
	}
	return fmt.Sprintf("Code(%d)", int(code))
}

// Instruction is one parsed program step. Text holds the source token; for
// invoke and assign it is the identifier's name. Literal instructions carry
// their decoded Value.
type Instruction struct {
	Code  Code
	Text  string
	Value Value
	Pos   Pos
}

func (in Instruction) String() string {
	switch in.Code {
	case codeInvoke:
		return in.Text
	case codeAssign:
		return ":" + in.Text
	case codePushBlock:
		return "{" + string(in.Value.(*Block).src) + "}"
	}
	return in.Text
}

// Parse lexes and parses src into a sequence of instructions; block literals
// become nested instruction sequences.
func Parse(src []byte) ([]Instruction, error) {
	p := parser{src: src, lex: NewLexer(src)}
	code, _, err := p.parseSeq(false)
	return code, err
}

type parser struct {
	src []byte
	lex *Lexer
}

// parseSeq parses until end of input or a block close token, which it
// returns so that callers can check balance.
func (p *parser) parseSeq(inBlock bool) (code []Instruction, end Token, err error) {
	code = []Instruction{}
	for {
		tok, err := p.lex.Next()
		if err == io.EOF {
			return code, tok, nil
		} else if err != nil {
			return nil, tok, err
		}

		switch tok.Kind {
		case TokenBlockClose:
			if !inBlock {
				return nil, tok, &ParseError{tok.Pos, ErrUnbalancedBlock}
			}
			return code, tok, nil

		case TokenBlockOpen:
			body, blockEnd, err := p.parseSeq(true)
			if err != nil {
				return nil, blockEnd, err
			}
			if blockEnd.Kind != TokenBlockClose {
				return nil, blockEnd, &ParseError{tok.Pos, ErrUnclosedBlock}
			}
			src := p.src[tok.Pos.Offset+1 : blockEnd.Pos.Offset]
			code = append(code, Instruction{
				Code:  codePushBlock,
				Text:  string(p.src[tok.Pos.Offset : blockEnd.Pos.Offset+1]),
				Value: parsedBlock(src, body),
				Pos:   tok.Pos,
			})

		case TokenArrayOpen:
			code = append(code, Instruction{Code: codeArrayOpen, Text: tok.Text, Pos: tok.Pos})

		case TokenArrayClose:
			code = append(code, Instruction{Code: codeArrayClose, Text: tok.Text, Pos: tok.Pos})

		case TokenInt:
			n, ok := new(big.Int).SetString(tok.Text, 10)
			if !ok {
				return nil, tok, &LexError{tok.Pos, fmt.Sprintf("invalid integer %q", tok.Text)}
			}
			code = append(code, Instruction{Code: codePushInt, Text: tok.Text, Value: bigInt(n), Pos: tok.Pos})

		case TokenString:
			code = append(code, Instruction{Code: codePushString, Text: tok.Text, Value: String(unquote(tok.Text)), Pos: tok.Pos})

		case TokenWord:
			if tok.Text != ":" {
				code = append(code, Instruction{Code: codeInvoke, Text: tok.Text, Pos: tok.Pos})
				continue
			}
			name, err := p.lex.Next()
			if err == io.EOF {
				return nil, name, &ParseError{tok.Pos, ErrUnfinishedAssign}
			} else if err == nil && (name.Kind == TokenBlockOpen || name.Kind == TokenBlockClose) {
				return nil, name, &ParseError{tok.Pos, ErrDanglingAssign}
			} else if err != nil {
				return nil, name, err
			}
			code = append(code, Instruction{Code: codeAssign, Text: name.Text, Pos: tok.Pos})
		}
	}
}
