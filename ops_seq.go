package main

import (
	"bytes"
	"math/big"
	"sort"
)

//// Coercing arithmetic

func add(vm *VM, args []Value) { vm.push(concat(args[0], args[1])) }

// concat implements "+" after coercion: integers add, sequences
// concatenate, and blocks join their sources with a space.
func concat(a, b Value) Value {
	a, b = coerce(a, b)
	switch av := a.(type) {
	case Int:
		return bigInt(new(big.Int).Add(av.Big(), b.(Int).Big()))
	case Array:
		bv := b.(Array)
		r := make(Array, 0, len(av)+len(bv))
		return append(append(r, av...), bv...)
	case String:
		bv := b.(String)
		r := make(String, 0, len(av)+len(bv))
		return append(append(r, av...), bv...)
	case *Block:
		bv := b.(*Block)
		src := make([]byte, 0, len(av.src)+1+len(bv.src))
		src = append(src, av.src...)
		src = append(src, ' ')
		return NewBlock(append(src, bv.src...))
	}
	panic("invalid value kind " + a.Kind().String())
}

// sub subtracts integers, or removes from a every element that occurs in b.
func sub(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	if ai, ok := a.(Int); ok {
		vm.push(bigInt(new(big.Int).Sub(ai.Big(), b.(Int).Big())))
		return
	}
	remove := keySet(elements(b))
	var r Array
	for _, v := range elements(a) {
		if _, found := remove[valueKey(v)]; !found {
			r = append(r, v)
		}
	}
	vm.push(rebuild(a.Kind(), nonNil(r)))
}

func keySet(items Array) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, v := range items {
		set[valueKey(v)] = struct{}{}
	}
	return set
}

func nonNil(arr Array) Array {
	if arr == nil {
		return Array{}
	}
	return arr
}

//// Set operations, after coercion; results keep first-seen order.

func setUnion(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	vm.push(rebuild(a.Kind(), uniq(append(append(Array(nil), elements(a)...), elements(b)...))))
}

func setIntersect(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	in := keySet(elements(b))
	var r Array
	for _, v := range uniq(elements(a)) {
		if _, found := in[valueKey(v)]; found {
			r = append(r, v)
		}
	}
	vm.push(rebuild(a.Kind(), nonNil(r)))
}

func setSymDiff(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	ae, be := elements(a), elements(b)
	ak, bk := keySet(ae), keySet(be)
	var r Array
	for _, v := range uniq(append(append(Array(nil), ae...), be...)) {
		key := valueKey(v)
		_, inA := ak[key]
		_, inB := bk[key]
		if inA != inB {
			r = append(r, v)
		}
	}
	vm.push(rebuild(a.Kind(), nonNil(r)))
}

// uniq drops repeated elements, keeping the first occurrence of each.
func uniq(items Array) Array {
	seen := make(map[string]struct{}, len(items))
	r := Array{}
	for _, v := range items {
		key := valueKey(v)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			r = append(r, v)
		}
	}
	return r
}

//// Comparison and indexing

func less(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	vm.push(boolInt(Compare(a, b) < 0))
}

func greater(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	vm.push(boolInt(Compare(a, b) > 0))
}

func equal(vm *VM, args []Value) {
	a, b := coerce(args[0], args[1])
	vm.push(boolInt(Equal(a, b)))
}

// sliceIndex resolves a possibly negative slice bound against length n,
// clamping it into [0, n].
func sliceIndex(i *big.Int, n int) int {
	if !i.IsInt64() {
		if i.Sign() < 0 {
			return 0
		}
		return n
	}
	x := i.Int64()
	if x < 0 {
		x += int64(n)
	}
	switch {
	case x < 0:
		return 0
	case x > int64(n):
		return n
	}
	return int(x)
}

// sliceHead keeps the elements before index b: seq n <
func sliceHead(vm *VM, args []Value) {
	items := elements(args[0])
	i := sliceIndex(args[1].(Int).Big(), len(items))
	vm.push(rebuild(args[0].Kind(), items[:i:i]))
}

// sliceTail keeps the elements from index b on: seq n >
func sliceTail(vm *VM, args []Value) {
	items := elements(args[0])
	i := sliceIndex(args[1].(Int).Big(), len(items))
	vm.push(rebuild(args[0].Kind(), append(Array{}, items[i:]...)))
}

// index pushes the element at b, counting from the end when negative;
// nothing is pushed when b is out of range.
func index(vm *VM, args []Value) {
	items := elements(args[0])
	i := args[1].(Int).Big()
	if !i.IsInt64() {
		return
	}
	x := i.Int64()
	if x < 0 {
		x += int64(len(items))
	}
	if x >= 0 && x < int64(len(items)) {
		vm.push(items[x])
	}
}

func length(vm *VM, args []Value) { vm.push(NewInt(int64(seqLen(args[0])))) }

// count pushes [0 1 ... n-1].
func count(vm *VM, args []Value) {
	n := args[0].(Int).Big()
	r := Array{}
	if n.Sign() <= 0 {
		vm.push(r)
		return
	}
	if !n.IsInt64() || n.Int64() > maxSeqLen {
		vm.fail(ErrIndexRange, KindInt)
	}
	for i := int64(0); i < n.Int64(); i++ {
		r = append(r, NewInt(i))
	}
	vm.push(r)
}

func indexOf(vm *VM, args []Value) {
	for i, v := range elements(args[0]) {
		if Equal(v, args[1]) {
			vm.push(NewInt(int64(i)))
			return
		}
	}
	vm.push(NewInt(-1))
}

func substringIndex(vm *VM, args []Value) {
	vm.push(NewInt(int64(bytes.Index(args[0].(String), args[1].(String)))))
}

// uncons splits off the first element: [1 2 3]( -- [2 3] 1
func uncons(vm *VM, args []Value) {
	items := elements(args[0])
	if len(items) == 0 {
		vm.fail(ErrEmptySequence, args[0].Kind())
	}
	vm.push(rebuild(args[0].Kind(), append(Array{}, items[1:]...)), items[0])
}

// unsnoc splits off the last element: [1 2 3]) -- [1 2] 3
func unsnoc(vm *VM, args []Value) {
	items := elements(args[0])
	n := len(items)
	if n == 0 {
		vm.fail(ErrEmptySequence, args[0].Kind())
	}
	vm.push(rebuild(args[0].Kind(), append(Array{}, items[:n-1]...)), items[n-1])
}

//// Repetition, joining and splitting

// maxSeqLen bounds the sequences that repeat and count build.
const maxSeqLen = 1 << 28

// repeat concatenates n copies of a sequence.
func repeat(vm *VM, args []Value) {
	seq := args[0]
	n := args[1].(Int).Big()
	if n.Sign() < 0 || !n.IsInt64() {
		vm.fail(ErrTypeMismatch, seq.Kind(), KindInt)
	}
	items := elements(seq)
	if len(items) == 0 {
		vm.push(rebuild(seq.Kind(), Array{}))
		return
	}
	if n.Int64() > int64(maxSeqLen/len(items)) {
		vm.fail(ErrIndexRange, seq.Kind(), KindInt)
	}
	times := int(n.Int64())
	r := make(Array, 0, len(items)*times)
	for i := 0; i < times; i++ {
		r = append(r, items...)
	}
	vm.push(rebuild(seq.Kind(), r))
}

// join interposes a separator between list elements. The deeper operand is
// the list, except that an array is always the list against a string; a
// string list joins its bytes.
func join(vm *VM, args []Value) {
	list, sep := args[0], args[1]
	if list.Kind() == KindString && sep.Kind() == KindArray {
		list, sep = sep, list
	}
	var items Array
	if s, ok := list.(String); ok {
		items = make(Array, len(s))
		for i := range s {
			items[i] = String(s[i : i+1])
		}
	} else {
		items = list.(Array)
	}
	vm.push(joinItems(items, sep))
}

func joinItems(items Array, sep Value) Value {
	if len(items) == 0 {
		return rebuild(sep.Kind(), Array{})
	}
	r, _ := coerce(items[0], sep)
	for _, item := range items[1:] {
		r = concat(concat(r, sep), item)
	}
	return r
}

// splitSeq cuts a around each occurrence of b, after coercing both to the
// same kind. An empty separator cuts between every element.
func splitSeq(a, b Value, keepEmpty bool) Array {
	a, b = coerce(a, b)
	k := a.Kind()
	items, sep := elements(a), elements(b)
	r := Array{}
	emit := func(piece Array) {
		if keepEmpty || len(piece) > 0 {
			r = append(r, rebuild(k, append(Array{}, piece...)))
		}
	}
	if len(sep) == 0 {
		for i := range items {
			emit(items[i : i+1])
		}
		return r
	}
	start := 0
	for i := 0; i+len(sep) <= len(items); {
		if seqHasPrefix(items[i:], sep) {
			emit(items[start:i])
			i += len(sep)
			start = i
		} else {
			i++
		}
	}
	emit(items[start:])
	return r
}

func seqHasPrefix(items, prefix Array) bool {
	if len(prefix) > len(items) {
		return false
	}
	for i, v := range prefix {
		if !Equal(items[i], v) {
			return false
		}
	}
	return true
}

func split(vm *VM, args []Value)      { vm.push(splitSeq(args[0], args[1], true)) }
func splitClean(vm *VM, args []Value) { vm.push(splitSeq(args[0], args[1], false)) }

func seqCount(vm *VM, args []Value) (int, bool) {
	n := args[1].(Int).Big()
	if n.Sign() == 0 {
		vm.fail(ErrDivideByZero, args[0].Kind(), KindInt)
	}
	var abs big.Int
	abs.Abs(n)
	if l := seqLen(args[0]); abs.Cmp(big.NewInt(int64(l))) > 0 {
		return l + 1, n.Sign() < 0
	}
	return int(abs.Int64()), n.Sign() < 0
}

// chunk groups a sequence into pieces of n elements; a negative n groups
// the reversed sequence.
func chunk(vm *VM, args []Value) {
	n, rev := seqCount(vm, args)
	items := elements(args[0])
	if rev {
		items = reversed(items)
	}
	r := Array{}
	for i := 0; i < len(items); i += n {
		j := i + n
		if j > len(items) {
			j = len(items)
		}
		r = append(r, rebuild(args[0].Kind(), append(Array{}, items[i:j]...)))
	}
	vm.push(r)
}

// everyNth keeps every n-th element starting with the first; a negative n
// walks backwards from the last.
func everyNth(vm *VM, args []Value) {
	n, rev := seqCount(vm, args)
	items := elements(args[0])
	if rev {
		items = reversed(items)
	}
	r := Array{}
	for i := 0; i < len(items); i += n {
		r = append(r, items[i])
	}
	vm.push(rebuild(args[0].Kind(), r))
}

func reversed(items Array) Array {
	r := make(Array, len(items))
	for i, v := range items {
		r[len(items)-1-i] = v
	}
	return r
}

//// Ordering

func sortSeq(vm *VM, args []Value) {
	items := append(Array{}, elements(args[0])...)
	sort.SliceStable(items, func(i, j int) bool { return Compare(items[i], items[j]) < 0 })
	vm.push(rebuild(args[0].Kind(), items))
}

// zip transposes an array of rows; ragged rows leave shorter columns. Each
// column takes the kind of the first row.
func zip(vm *VM, args []Value) {
	rows := args[0].(Array)
	r := Array{}
	if len(rows) == 0 {
		vm.push(r)
		return
	}
	var cols []Array
	for _, row := range rows {
		switch row.Kind() {
		case KindArray, KindString, KindBlock:
		default:
			vm.fail(ErrTypeMismatch, KindArray, row.Kind())
		}
		for i, v := range elements(row) {
			if i == len(cols) {
				cols = append(cols, Array{})
			}
			cols[i] = append(cols[i], v)
		}
	}
	k := rows[0].Kind()
	for _, col := range cols {
		r = append(r, rebuild(k, col))
	}
	vm.push(r)
}
