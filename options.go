package main

import (
	"bytes"
	"io"
	"io/ioutil"
	"math/rand"

	"github.com/jcorbin/gogolf/internal/flushio"
)

// VMOption configures a VM under construction.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
	withMaxDepth(defaultMaxDepth),
)

// VMOptions combines any number of options into one; nils are ignored.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type maxDepthOption int
type seedOption int64

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }
func withMaxDepth(depth int) maxDepthOption { return maxDepthOption(depth) }
func withRandSeed(seed int64) seedOption    { return seedOption(seed) }

func (i inputOption) apply(vm *VM) {
	vm.in = i.Reader
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (depth maxDepthOption) apply(vm *VM) {
	vm.maxDepth = int(depth)
}

func (seed seedOption) apply(vm *VM) {
	vm.seed = int64(seed)
	vm.rand = rand.New(rand.NewSource(vm.seed))
}
