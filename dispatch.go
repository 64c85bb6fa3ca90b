package main

// builtin is an entry in the static builtin table.
type builtin interface {
	invoke(vm *VM)
}

// preludeValue is a builtin defined as a value, usually a block written in
// GolfScript itself; invoking it runs it like a user binding.
type preludeValue struct{ Value }

func (pv preludeValue) invoke(vm *VM) { vm.run(pv.Value) }

// operator is a natively implemented builtin. Its rules are tried in order;
// the first whose signature matches the top of the stack is applied.
type operator struct {
	name  string
	rules []rule
}

// rule binds an operand signature to an implementation. The signature has
// one character per operand, deepest first:
//
//	i  int
//	a  array
//	s  string
//	b  block
//	q  array or string
//	v  anything but a block
//	x  anything
//
// The implementation receives exactly len(sig) popped operands in stack
// order.
type rule struct {
	sig string
	fn  func(vm *VM, args []Value)
}

func on(sig string, fn func(vm *VM, args []Value)) rule { return rule{sig, fn} }

// flip adapts a rule written for (a, b) operands to match (b, a) as well.
func flip(fn func(vm *VM, args []Value)) func(vm *VM, args []Value) {
	return func(vm *VM, args []Value) { fn(vm, []Value{args[1], args[0]}) }
}

func (op *operator) arity() (n int) {
	for _, r := range op.rules {
		if len(r.sig) > n {
			n = len(r.sig)
		}
	}
	return n
}

func (op *operator) invoke(vm *VM) {
	vm.op = op.name
	n := len(vm.stack)
	short := false
	for _, r := range op.rules {
		if len(r.sig) > n {
			short = true
			continue
		}
		if !r.matches(vm.stack[n-len(r.sig):]) {
			continue
		}
		r.fn(vm, vm.popN(len(r.sig)))
		return
	}
	if short {
		vm.fail(ErrStackUnderflow, stackTags(vm.stack, op.arity())...)
	}
	vm.fail(ErrTypeMismatch, stackTags(vm.stack, op.arity())...)
}

func (r rule) matches(vals []Value) bool {
	for i, v := range vals {
		if !sigMatches(r.sig[i], v.Kind()) {
			return false
		}
	}
	return true
}

func sigMatches(c byte, k Kind) bool {
	switch c {
	case 'i':
		return k == KindInt
	case 'a':
		return k == KindArray
	case 's':
		return k == KindString
	case 'b':
		return k == KindBlock
	case 'q':
		return k == KindArray || k == KindString
	case 'v':
		return k != KindBlock
	case 'x':
		return true
	}
	return false
}

// stackTags returns the kinds of the top n stack values, deepest first.
func stackTags(stack []Value, n int) []Kind {
	if n > len(stack) {
		n = len(stack)
	}
	tags := make([]Kind, n)
	for i, v := range stack[len(stack)-n:] {
		tags[i] = v.Kind()
	}
	return tags
}
