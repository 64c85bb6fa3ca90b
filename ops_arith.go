package main

import "math/big"

func ints(args []Value) (a, b *big.Int) {
	return args[0].(Int).Big(), args[1].(Int).Big()
}

func mul(vm *VM, args []Value) {
	a, b := ints(args)
	vm.push(bigInt(new(big.Int).Mul(a, b)))
}

// floorDivMod divides rounding toward negative infinity, so that the
// remainder takes the sign of the divisor.
func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, oneInt.n)
		r.Add(r, b)
	}
	return q, r
}

func div(vm *VM, args []Value) {
	a, b := ints(args)
	if b.Sign() == 0 {
		vm.fail(ErrDivideByZero, KindInt, KindInt)
	}
	q, _ := floorDivMod(a, b)
	vm.push(bigInt(q))
}

func mod(vm *VM, args []Value) {
	a, b := ints(args)
	if b.Sign() == 0 {
		vm.fail(ErrDivideByZero, KindInt, KindInt)
	}
	_, r := floorDivMod(a, b)
	vm.push(bigInt(r))
}

func power(vm *VM, args []Value) {
	a, b := ints(args)
	if b.Sign() < 0 {
		vm.fail(ErrNegativeExponent, KindInt, KindInt)
	}
	vm.push(bigInt(new(big.Int).Exp(a, b, nil)))
}

func bitOr(vm *VM, args []Value) {
	a, b := ints(args)
	vm.push(bigInt(new(big.Int).Or(a, b)))
}

func bitAnd(vm *VM, args []Value) {
	a, b := ints(args)
	vm.push(bigInt(new(big.Int).And(a, b)))
}

func bitXor(vm *VM, args []Value) {
	a, b := ints(args)
	vm.push(bigInt(new(big.Int).Xor(a, b)))
}

func bitNot(vm *VM, args []Value) {
	vm.push(bigInt(new(big.Int).Not(args[0].(Int).Big())))
}

func inc(vm *VM, args []Value) {
	vm.push(bigInt(new(big.Int).Add(args[0].(Int).Big(), oneInt.n)))
}

func dec(vm *VM, args []Value) {
	vm.push(bigInt(new(big.Int).Sub(args[0].(Int).Big(), oneInt.n)))
}

func abs(vm *VM, args []Value) {
	vm.push(bigInt(new(big.Int).Abs(args[0].(Int).Big())))
}

// toBase pushes the digits of a in base b, most significant first; zero and
// negative numbers have no digits.
func toBase(vm *VM, args []Value) {
	a, b := ints(args)
	if b.Cmp(oneInt.n) <= 0 {
		vm.fail(ErrInvalidBase, KindInt, KindInt)
	}
	var digits Array
	n := new(big.Int).Set(a)
	for n.Sign() > 0 {
		q, r := floorDivMod(n, b)
		digits = append(digits, bigInt(r))
		n = q
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	if digits == nil {
		digits = Array{}
	}
	vm.push(digits)
}

// fromBase evaluates a sequence of digits in base b; a string's digits are
// its byte values.
func fromBase(vm *VM, args []Value) {
	b := args[1].(Int).Big()
	n := new(big.Int)
	for _, d := range elements(args[0]) {
		di, ok := d.(Int)
		if !ok {
			vm.fail(ErrTypeMismatch, args[0].Kind(), KindInt)
		}
		n.Mul(n, b)
		n.Add(n, di.Big())
	}
	vm.push(bigInt(n))
}

// random pushes a pseudo random integer in [0, n), or 0 when n is not
// positive.
func random(vm *VM, args []Value) {
	n := args[0].(Int).Big()
	if n.Sign() <= 0 {
		vm.push(zeroInt)
		return
	}
	vm.push(bigInt(new(big.Int).Rand(vm.rand, n)))
}
