package main

import "fmt"

// prelude defines the builtins that are written in GolfScript itself. Each
// source is evaluated once at startup; the single resulting value becomes
// the builtin. Like every builtin, these may be rebound by a program:
// assigning n changes the line terminator used by puts, and therefore by the
// final output.
var prelude = map[string]string{
	"n":    `"\n"`,
	"puts": `{print n print}`,
	"p":    "{`puts}",
	"and":  `{1$if}`,
	"or":   `{1$\if}`,
	"xor":  `{\!!{!}*}`,
}

func mustPrelude(name, src string) Value {
	code, err := Parse([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("prelude %q: %v", name, err))
	}
	if len(code) != 1 {
		panic(fmt.Sprintf("prelude %q: expected a single literal, got %v instructions", name, len(code)))
	}
	switch code[0].Code {
	case codePushInt, codePushString, codePushBlock:
		return code[0].Value
	}
	panic(fmt.Sprintf("prelude %q: expected a literal, got %v", name, code[0].Code))
}
