/* Package main: gogolf -- a GolfScript interpreter

GolfScript is a stack oriented language built for code golf: programs are as
short as possible, so nearly every printable character is an operator, and
most operators mean something different depending on what they find on the
stack.

A program is a sequence of tokens. Literals push themselves:

	1 -42          integers, of any size
	"a\n" 'b'      strings; double quotes process escapes, single quotes
	               only \' and \\
	{1+}           a block: code carried as data, pushed without running
	[1 2 3]        "[" marks the stack, "]" gathers everything above the
	               mark into an array

Every other token is an operator or a variable name. ":name" binds the top of
the stack to name without popping it; afterwards the name pushes that value,
or runs it if it is a block. Any token may be bound, even a literal or an
operator, so "1:0" makes every later 0 push 1.

Values come in four kinds, ordered int < array < string < block. When a
binary operator meets two different kinds, the lower one is converted into
the higher one first: an int becomes a one element array or its decimal
text, an array becomes a string by flattening its elements into bytes, and
anything becomes a block by taking its source text. Dispatch then depends on
the kinds: "*" multiplies ints, repeats a sequence, runs a block n times,
folds a sequence with a block, or joins a list with a separator.

The stack starts out holding the program's entire input as a string. When the
program ends, the whole stack is wrapped into an array and printed with puts,
which prints its argument followed by n. Both puts and n are ordinary
bindings written in GolfScript itself, so a program may change them:

	[1 2 3]""n:n;    # prints "123" with no trailing newline

Section 1: lexing and parsing, see lexer.go and parser.go

Section 2: values, coercion and rendering, see value.go, coerce.go and
display.go

Section 3: evaluation, see vm.go; every builtin is declared in builtins.go and
implemented in the ops files

Section 4: the command, see main.go; "gogolf -check testdata" runs the
conformance fixtures

*/
package main
