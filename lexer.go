package main

import (
	"fmt"
	"io"
)

// TokenKind classifies lexical tokens.
type TokenKind uint8

// Token kinds.
const (
	TokenInt TokenKind = iota + 1
	TokenString
	TokenWord
	TokenBlockOpen
	TokenBlockClose
	TokenArrayOpen
	TokenArrayClose
)

var tokenKindNames = [...]string{
	TokenInt:        "int",
	TokenString:     "string",
	TokenWord:       "word",
	TokenBlockOpen:  "{",
	TokenBlockClose: "}",
	TokenArrayOpen:  "[",
	TokenArrayClose: "]",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme; Text is the exact source text, quotes included.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

func (tok Token) String() string { return fmt.Sprintf("%v %v %q", tok.Pos, tok.Kind, tok.Text) }

// Lexer is a restartable cursor over source text. Whitespace and "#"
// comments are skipped; identifiers are [a-zA-Z_][a-zA-Z0-9_]*, and any
// other byte that does not begin a literal is a one character word.
type Lexer struct {
	src []byte
	pos Pos
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	lx := &Lexer{src: src}
	lx.Reset()
	return lx
}

// Reset rewinds the lexer to the start of its source.
func (lx *Lexer) Reset() { lx.pos = Pos{Offset: 0, Line: 1, Col: 1} }

// Next returns the next token, or io.EOF once the source is exhausted.
func (lx *Lexer) Next() (Token, error) {
	for {
		if lx.pos.Offset >= len(lx.src) {
			return Token{Pos: lx.pos}, io.EOF
		}
		c := lx.src[lx.pos.Offset]
		if isSpace(c) {
			lx.advance(1)
			continue
		}
		if c == '#' {
			n := 1
			for rest := lx.src[lx.pos.Offset:]; n < len(rest) && rest[n] != '\n' && rest[n] != '\r'; n++ {
			}
			lx.advance(n)
			continue
		}
		break
	}

	start := lx.pos
	rest := lx.src[start.Offset:]
	kind, n := TokenWord, 1
	switch c := rest[0]; {
	case isIdentStart(c):
		for n < len(rest) && isIdentPart(rest[n]) {
			n++
		}
	case isDigit(c), c == '-' && len(rest) > 1 && isDigit(rest[1]):
		kind = TokenInt
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
	case c == '\'' || c == '"':
		kind = TokenString
		for {
			if n >= len(rest) {
				lx.advance(n)
				return Token{}, &LexError{start, "unterminated string literal"}
			}
			if rest[n] == '\\' && n+1 < len(rest) {
				n += 2
				continue
			}
			n++
			if rest[n-1] == c {
				break
			}
		}
	case c == '{':
		kind = TokenBlockOpen
	case c == '}':
		kind = TokenBlockClose
	case c == '[':
		kind = TokenArrayOpen
	case c == ']':
		kind = TokenArrayClose
	}
	lx.advance(n)
	return Token{Kind: kind, Text: string(rest[:n]), Pos: start}, nil
}

func (lx *Lexer) advance(n int) {
	for _, c := range lx.src[lx.pos.Offset : lx.pos.Offset+n] {
		if c == '\n' {
			lx.pos.Line++
			lx.pos.Col = 1
		} else {
			lx.pos.Col++
		}
	}
	lx.pos.Offset += n
}

// Tokenize lexes all of src.
func Tokenize(src []byte) ([]Token, error) {
	var toks []Token
	lx := NewLexer(src)
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool      { return '0' <= c && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }

// unquote decodes a string token. Single quoted strings only unescape \\ and
// \'; double quoted strings support the usual C escapes plus \e, \s, \xHH
// and octal \NNN.
func unquote(text string) []byte {
	quote, body := text[0], text[1:len(text)-1]
	buf := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			buf = append(buf, c)
			continue
		}
		i++
		c = body[i]
		if quote == '\'' {
			if c != '\\' && c != '\'' {
				buf = append(buf, '\\')
			}
			buf = append(buf, c)
			continue
		}
		switch c {
		case 'a':
			buf = append(buf, '\a')
		case 'b':
			buf = append(buf, '\b')
		case 't':
			buf = append(buf, '\t')
		case 'n':
			buf = append(buf, '\n')
		case 'v':
			buf = append(buf, '\v')
		case 'f':
			buf = append(buf, '\f')
		case 'r':
			buf = append(buf, '\r')
		case 'e':
			buf = append(buf, 0x1b)
		case 's':
			buf = append(buf, ' ')
		case 'x':
			var x, n int
			for n < 2 && i+1 < len(body) && isHexDigit(body[i+1]) {
				i++
				x = x<<4 | hexValue(body[i])
				n++
			}
			if n == 0 {
				buf = append(buf, 'x')
			} else {
				buf = append(buf, byte(x))
			}
		default:
			if '0' <= c && c <= '7' {
				x := int(c - '0')
				for n := 1; n < 3 && i+1 < len(body) && '0' <= body[i+1] && body[i+1] <= '7'; n++ {
					i++
					x = x<<3 | int(body[i]-'0')
				}
				buf = append(buf, byte(x))
			} else {
				buf = append(buf, c)
			}
		}
	}
	return buf
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexValue(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	}
	return int(c-'A') + 10
}
