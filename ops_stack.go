package main

func dup(vm *VM, args []Value)  { vm.push(args[0], args[0]) }
func drop(vm *VM, args []Value) {}
func swap(vm *VM, args []Value) { vm.push(args[1], args[0]) }

// rot brings the third value to the top: a b c -- b c a
func rot(vm *VM, args []Value) { vm.push(args[1], args[2], args[0]) }

// pick copies the n-th value from the top, 0 being the top itself. Below
// -1, n counts from the bottom, -2 being the bottom. An index outside the
// stack, or -1, copies nothing.
func pick(vm *VM, args []Value) {
	n := args[0].(Int).Big()
	if !n.IsInt64() {
		return
	}
	i := n.Int64()
	switch {
	case i >= 0:
		i = int64(len(vm.stack)) - 1 - i
	case i < -1:
		i = -i - 2
	default:
		return
	}
	if 0 <= i && i < int64(len(vm.stack)) {
		vm.push(vm.stack[i])
	}
}

func not(vm *VM, args []Value) { vm.push(boolInt(!Truthy(args[0]))) }

func inspectOp(vm *VM, args []Value) { vm.push(String(Inspect(args[0]))) }

func evalString(vm *VM, args []Value)  { vm.evalSource(args[0].(String)) }
func evalBlock(vm *VM, args []Value)   { vm.execBlock(args[0].(*Block)) }
func spreadArray(vm *VM, args []Value) { vm.push(args[0].(Array)...) }

func printValue(vm *VM, args []Value) { vm.write(Display(args[0])) }

//// Control flow

// ifElse runs or pushes one of its branches: cond then else if
func ifElse(vm *VM, args []Value) {
	if Truthy(args[0]) {
		vm.run(args[1])
	} else {
		vm.run(args[2])
	}
}

// doLoop runs its body, then pops a condition, until that is false.
func doLoop(vm *VM, args []Value) {
	body := args[0].(*Block)
	for {
		vm.execBlock(body)
		if !vm.popBool() {
			return
		}
	}
}

func whileLoop(vm *VM, args []Value) { loopWhile(vm, args[0].(*Block), args[1].(*Block), true) }
func untilLoop(vm *VM, args []Value) { loopWhile(vm, args[0].(*Block), args[1].(*Block), false) }

func loopWhile(vm *VM, cond, body *Block, want bool) {
	for {
		vm.execBlock(cond)
		if vm.popBool() != want {
			return
		}
		vm.execBlock(body)
	}
}
