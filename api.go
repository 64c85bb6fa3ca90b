package main

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/jcorbin/gogolf/internal/panicerr"
)

// Run evaluates source against an initial stack holding stdin as a string,
// returning the final stack. Output written by print is discarded; use a VM
// to capture it.
func Run(source, stdin []byte) ([]Value, error) {
	vm := New(WithInput(bytes.NewReader(stdin)))
	defer vm.Close()
	if err := vm.Run(context.Background(), source); err != nil {
		return nil, err
	}
	return vm.Stack(), nil
}

// New creates a VM; options are applied over the defaults.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run parses and evaluates source. The first call reads all input and seeds
// the stack with it; later calls continue with whatever stack and bindings
// earlier ones left.
func (vm *VM) Run(ctx context.Context, source []byte) error {
	return vm.guard(ctx, "VM", func() {
		vm.evalSource(source)
	})
}

// Puts writes the final output of a program: the whole stack is wrapped into
// one array and handed to puts. A program may rebind puts, or the n it
// prints after the stack, to change this.
func (vm *VM) Puts(ctx context.Context) error {
	return vm.guard(ctx, "puts", func() {
		all := make(Array, len(vm.stack))
		copy(all, vm.stack)
		vm.stack = vm.stack[:0]
		vm.marks = vm.marks[:0]
		vm.push(all)
		vm.invoke("puts")
	})
}

func (vm *VM) guard(ctx context.Context, name string, f func()) error {
	err := panicerr.Recover(name, func() error {
		vm.ctx = ctx
		vm.init()
		f()
		return vm.out.Flush()
	})
	vm.ctx = nil
	if err == nil {
		return nil
	}

	// unwind whatever the failed evaluation left in flight
	vm.depth = 0
	vm.marks = vm.marks[:0]
	vm.op, vm.at = "", Instruction{}

	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// WithInput sets the program's input, which is read in full before the
// program starts.
func WithInput(r io.Reader) VMOption { return withInput(r) }

// WithOutput sets where print writes.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies output to w as well.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithMaxDepth limits how deeply blocks may nest while running; 0 disables
// the limit.
func WithMaxDepth(depth int) VMOption { return withMaxDepth(depth) }

// WithRandSeed seeds the generator behind rand.
func WithRandSeed(seed int64) VMOption { return withRandSeed(seed) }

// WithLogf enables trace logging of every evaluated instruction.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
