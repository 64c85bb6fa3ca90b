package main

import "sort"

// Block combinators. Each runs its block against the shared stack; the
// block may leave any number of values behind.

func times(vm *VM, args []Value) {
	blk, n := args[0].(*Block), args[1].(Int).Big()
	if n.Sign() <= 0 {
		return
	}
	if !n.IsInt64() {
		vm.fail(ErrIndexRange, KindBlock, KindInt)
	}
	for i := n.Int64(); i > 0; i-- {
		vm.execBlock(blk)
	}
}

// fold pushes the first element, then pushes each remaining one and runs
// the block.
func fold(vm *VM, args []Value) {
	items, blk := elements(args[0]), args[1].(*Block)
	if len(items) == 0 {
		vm.fail(ErrEmptyReduce, args[0].Kind(), KindBlock)
	}
	vm.push(items[0])
	for _, v := range items[1:] {
		vm.push(v)
		vm.execBlock(blk)
	}
}

func each(vm *VM, args []Value) {
	blk := args[1].(*Block)
	for _, v := range elements(args[0]) {
		vm.push(v)
		vm.execBlock(blk)
	}
}

// mapSeq collects everything the block leaves for each element. A string
// stays a string as long as the results allow it.
func mapSeq(vm *VM, args []Value) {
	blk := args[1].(*Block)
	vm.mark()
	for _, v := range elements(args[0]) {
		vm.push(v)
		vm.execBlock(blk)
	}
	r := vm.wrap()
	if args[0].Kind() == KindString {
		if s, ok := collectString(r); ok {
			vm.push(s)
			return
		}
	}
	vm.push(r)
}

func selectSeq(vm *VM, args []Value) {
	blk := args[1].(*Block)
	r := Array{}
	for _, v := range elements(args[0]) {
		vm.push(v)
		vm.execBlock(blk)
		if vm.popBool() {
			r = append(r, v)
		}
	}
	vm.push(rebuild(args[0].Kind(), r))
}

// find pushes the first element for which the block is true, if any.
func find(vm *VM, args []Value) {
	blk := args[1].(*Block)
	for _, v := range elements(args[0]) {
		vm.push(v)
		vm.execBlock(blk)
		if vm.popBool() {
			vm.push(v)
			return
		}
	}
}

// sortBy orders elements by the keys the block computes for them; equal
// keys keep their original order.
func sortBy(vm *VM, args []Value) {
	items, blk := elements(args[0]), args[1].(*Block)
	type keyed struct{ key, val Value }
	ks := make([]keyed, len(items))
	for i, v := range items {
		vm.push(v)
		vm.execBlock(blk)
		ks[i] = keyed{vm.pop(), v}
	}
	sort.SliceStable(ks, func(i, j int) bool { return Compare(ks[i].key, ks[j].key) < 0 })
	r := make(Array, len(ks))
	for i, k := range ks {
		r[i] = k.val
	}
	vm.push(rebuild(args[0].Kind(), r))
}

// unfold runs body while cond holds for a copy of the top value,
// collecting each value cond accepted: seed {cond} {body} /
func unfold(vm *VM, args []Value) {
	cond, body := args[0].(*Block), args[1].(*Block)
	r := Array{}
	for {
		vm.push(vm.top())
		vm.execBlock(cond)
		if !vm.popBool() {
			break
		}
		r = append(r, vm.top())
		vm.execBlock(body)
	}
	vm.pop()
	vm.push(r)
}
