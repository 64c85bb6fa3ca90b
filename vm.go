package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/jcorbin/gogolf/internal/flushio"
)

// VM evaluates GolfScript programs. A VM holds one data stack, one marker
// stack and one set of user bindings; these persist across calls to Run, so
// that a REPL may feed a program in pieces.
type VM struct {
	logging

	in  io.Reader
	out flushio.WriteFlusher

	// The stack is the single ordered sequence that every operator reads and
	// writes. Its bottom holds the program's input as a string.
	stack []Value

	// Each pending "[" records the stack depth at which it was opened.
	marks []int

	// User bindings shadow the builtin table.
	vars map[string]Value

	inited   bool
	depth    int
	maxDepth int
	seed     int64
	rand     *rand.Rand

	ctx context.Context
	at  Instruction
	op  string
}

const defaultMaxDepth = 100000

// Stack returns the current stack, bottom first.
func (vm *VM) Stack() []Value { return append([]Value(nil), vm.stack...) }

// Close flushes any buffered output.
func (vm *VM) Close() error {
	if vm.out != nil {
		return vm.out.Flush()
	}
	return nil
}

func (vm *VM) init() {
	if vm.inited {
		return
	}
	vm.inited = true
	if vm.rand == nil {
		vm.rand = rand.New(rand.NewSource(vm.seed))
	}
	var input []byte
	if vm.in != nil {
		var err error
		input, err = io.ReadAll(vm.in)
		vm.haltif(err)
	}
	vm.stack = append(vm.stack, String(input))
}

// halt unwinds evaluation with a non-nil err, flushing output first.
func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if vm.out != nil {
			vm.out.Flush()
		}
	}()
	vm.logf("#", "halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// fail halts with an EvalError attributed to the running operator.
func (vm *VM) fail(err error, tags ...Kind) {
	name := vm.op
	if name == "" {
		name = vm.at.Text
	}
	vm.halt(&EvalError{Op: name, Tags: tags, Pos: vm.at.Pos, Err: err})
}

func (vm *VM) push(vals ...Value) {
	vm.stack = append(vm.stack, vals...)
}

// pop removes the top of the stack. Markers recorded at or above the
// current depth are lowered, so that a following "]" captures only what
// remains above them.
func (vm *VM) pop() Value {
	n := len(vm.stack)
	if n == 0 {
		vm.fail(ErrStackUnderflow)
	}
	for i := len(vm.marks) - 1; i >= 0 && vm.marks[i] >= n; i-- {
		vm.marks[i]--
	}
	v := vm.stack[n-1]
	vm.stack[n-1] = nil
	vm.stack = vm.stack[:n-1]
	return v
}

// popN pops n values, returning them in stack order with the former top
// last.
func (vm *VM) popN(n int) []Value {
	if n > len(vm.stack) {
		vm.fail(ErrStackUnderflow)
	}
	vals := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		vals[i] = vm.pop()
	}
	return vals
}

func (vm *VM) top() Value {
	if len(vm.stack) == 0 {
		vm.fail(ErrStackUnderflow)
	}
	return vm.stack[len(vm.stack)-1]
}

func (vm *VM) mark() { vm.marks = append(vm.marks, len(vm.stack)) }

// wrap collects everything pushed since the last mark into an array.
func (vm *VM) wrap() Array {
	i := len(vm.marks) - 1
	if i < 0 {
		vm.fail(ErrUnmatchedArrayClose)
	}
	depth := vm.marks[i]
	vm.marks = vm.marks[:i]
	if depth > len(vm.stack) {
		depth = len(vm.stack)
	}
	arr := make(Array, len(vm.stack)-depth)
	copy(arr, vm.stack[depth:])
	for j := depth; j < len(vm.stack); j++ {
		vm.stack[j] = nil
	}
	vm.stack = vm.stack[:depth]
	return arr
}

func (vm *VM) popBool() bool { return Truthy(vm.pop()) }

// run executes a value: blocks are run, anything else is pushed.
func (vm *VM) run(v Value) {
	if blk, ok := v.(*Block); ok {
		vm.execBlock(blk)
	} else {
		vm.push(v)
	}
}

func (vm *VM) execBlock(blk *Block) {
	code, err := blk.Code()
	vm.haltif(err)
	vm.exec(code)
}

// evalSource parses and runs src against the current stack.
func (vm *VM) evalSource(src []byte) {
	code, err := Parse(src)
	vm.haltif(err)
	vm.exec(code)
}

func (vm *VM) exec(code []Instruction) {
	if vm.ctx != nil {
		vm.haltif(vm.ctx.Err())
	}
	if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
		vm.fail(ErrDepthExceeded)
	}
	vm.depth++
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}
	op, at := vm.op, vm.at
	for _, in := range code {
		vm.step(in)
	}
	vm.op, vm.at = op, at
	vm.depth--
}

func (vm *VM) step(in Instruction) {
	if vm.ctx != nil {
		vm.haltif(vm.ctx.Err())
	}
	vm.at, vm.op = in, ""
	if vm.logfn != nil {
		vm.logf("@", "%v %v -- s:%v", in.Pos, in, inspectStack(vm.stack))
	}

	if in.Code != codeAssign {
		if v, defined := vm.vars[in.Text]; defined {
			vm.run(v)
			return
		}
	}

	switch in.Code {
	case codePushInt, codePushString, codePushBlock:
		vm.push(in.Value)
	case codeArrayOpen:
		vm.mark()
	case codeArrayClose:
		vm.push(vm.wrap())
	case codeAssign:
		if vm.vars == nil {
			vm.vars = make(map[string]Value)
		}
		vm.vars[in.Text] = vm.top()
	case codeInvoke:
		vm.invoke(in.Text)
	default:
		vm.halt(fmt.Errorf("invalid instruction code %v", in.Code))
	}
}

// invoke resolves a name against user bindings, then the builtin table.
func (vm *VM) invoke(name string) {
	if v, defined := vm.vars[name]; defined {
		vm.run(v)
		return
	}
	if b, defined := builtins[name]; defined {
		b.invoke(vm)
		return
	}
	vm.fail(ErrUnknownIdentifier)
}

func (vm *VM) write(p []byte) {
	if vm.out == nil {
		return
	}
	_, err := vm.out.Write(p)
	vm.haltif(err)
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark = strings.Repeat(mark[:1], n) + mark
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
