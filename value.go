package main

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"
	"sync"
)

// Kind tags the variant of a Value. The declaration order is significant:
// when two operands of different kinds meet in a coercing operator, the
// lower kind is converted into the higher one.
type Kind uint8

// Value kinds, in coercion priority order.
const (
	KindInt Kind = iota
	KindArray
	KindString
	KindBlock
)

var kindNames = [...]string{"int", "array", "string", "block"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the single runtime datum type; it is one of Int, String, Array or
// *Block. Values are never mutated once constructed, so they may be shared
// freely between stack slots and containers.
type Value interface {
	Kind() Kind
}

// Int is an arbitrary precision integer.
type Int struct{ n *big.Int }

// String is a sequence of bytes.
type String []byte

// Array is a heterogeneous sequence of values.
type Array []Value

// Block is a piece of code carried as data. Its source text is kept
// verbatim for rendering; the instructions are parsed on first use.
type Block struct {
	src []byte

	once sync.Once
	code []Instruction
	err  error
}

func (Int) Kind() Kind    { return KindInt }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (*Block) Kind() Kind { return KindBlock }

var (
	zeroInt = Int{big.NewInt(0)}
	oneInt  = Int{big.NewInt(1)}
)

// NewInt returns an Int holding n.
func NewInt(n int64) Int { return Int{big.NewInt(n)} }

// bigInt wraps n, which the caller must not modify afterwards.
func bigInt(n *big.Int) Int { return Int{n} }

func boolInt(b bool) Int {
	if b {
		return oneInt
	}
	return zeroInt
}

// Big returns the integer's value; callers must treat it as read only.
func (i Int) Big() *big.Int {
	if i.n == nil {
		return zeroInt.n
	}
	return i.n
}

func (i Int) String() string { return i.Big().String() }

// NewBlock returns a block for the given source text, which is parsed
// lazily the first time the block runs.
func NewBlock(src []byte) *Block { return &Block{src: src} }

func parsedBlock(src []byte, code []Instruction) *Block {
	blk := &Block{src: src, code: code}
	blk.once.Do(func() {})
	return blk
}

// Source returns the block's source text, without the enclosing braces.
func (blk *Block) Source() []byte { return blk.src }

// Code returns the block's parsed instructions.
func (blk *Block) Code() ([]Instruction, error) {
	blk.once.Do(func() {
		blk.code, blk.err = Parse(blk.src)
	})
	return blk.code, blk.err
}

// Truthy implements the reference language's notion of truth: zero and
// empty sequences are false, everything else is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Int:
		return val.Big().Sign() != 0
	case String:
		return len(val) > 0
	case Array:
		return len(val) > 0
	case *Block:
		return len(val.src) > 0
	}
	return false
}

// Compare orders values: values of different kinds order by kind, integers
// numerically, and sequences lexicographically by element.
func Compare(a, b Value) int {
	if ak, bk := a.Kind(), b.Kind(); ak != bk {
		if ak < bk {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case Int:
		return av.Big().Cmp(b.(Int).Big())
	case String:
		return bytes.Compare(av, b.(String))
	case *Block:
		return bytes.Compare(av.src, b.(*Block).src)
	case Array:
		bv := b.(Array)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := Compare(av[i], bv[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(av) < len(bv):
			return -1
		case len(av) > len(bv):
			return 1
		}
	}
	return 0
}

// Equal reports structural equality.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// valueKey returns a string that is equal for two values exactly when the
// values are Equal; it is used to index values in set operations.
func valueKey(v Value) string {
	var sb strings.Builder
	writeValueKey(&sb, v)
	return sb.String()
}

func writeValueKey(sb *strings.Builder, v Value) {
	sb.WriteByte(byte('0' + v.Kind()))
	switch val := v.(type) {
	case Int:
		sb.WriteString(val.Big().String())
		sb.WriteByte(';')
	case String:
		sb.WriteString(strconv.Itoa(len(val)))
		sb.WriteByte(':')
		sb.Write(val)
	case *Block:
		sb.WriteString(strconv.Itoa(len(val.src)))
		sb.WriteByte(':')
		sb.Write(val.src)
	case Array:
		sb.WriteString(strconv.Itoa(len(val)))
		sb.WriteByte('[')
		for _, el := range val {
			writeValueKey(sb, el)
		}
	}
}
