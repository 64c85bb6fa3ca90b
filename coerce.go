package main

import "math/big"

var big256 = big.NewInt(256)

// coerce lifts the lower-kinded of two operands into the kind of the other,
// returning both in their original order.
func coerce(a, b Value) (Value, Value) {
	ak, bk := a.Kind(), b.Kind()
	switch {
	case ak < bk:
		return toKind(a, bk), b
	case ak > bk:
		return a, toKind(b, ak)
	}
	return a, b
}

// toKind converts v into kind k, which must not be lower than v's kind.
func toKind(v Value, k Kind) Value {
	if v.Kind() == k {
		return v
	}
	switch val := v.(type) {
	case Int:
		switch k {
		case KindArray:
			return Array{val}
		case KindString:
			return String(val.String())
		case KindBlock:
			return NewBlock([]byte(val.String()))
		}
	case Array:
		switch k {
		case KindString:
			return String(flattenBytes(nil, val))
		case KindBlock:
			return NewBlock(showWords(val))
		}
	case String:
		if k == KindBlock {
			return NewBlock(val)
		}
	}
	panic("invalid coercion from " + v.Kind().String() + " to " + k.String())
}

// byteOf reduces an integer modulo 256.
func byteOf(n Int) byte {
	var m big.Int
	m.Mod(n.Big(), big256)
	return byte(m.Uint64())
}

// flattenBytes appends the byte form of every element of arr to buf:
// integers contribute one byte each (mod 256), strings and blocks their raw
// bytes, and nested arrays are flattened recursively.
func flattenBytes(buf []byte, arr Array) []byte {
	for _, v := range arr {
		switch val := v.(type) {
		case Int:
			buf = append(buf, byteOf(val))
		case String:
			buf = append(buf, val...)
		case *Block:
			buf = append(buf, val.src...)
		case Array:
			buf = flattenBytes(buf, val)
		}
	}
	return buf
}

// showWords renders each element and joins them with a space; this is how
// an array becomes block source.
func showWords(arr Array) []byte {
	var buf []byte
	for i, v := range arr {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendDisplay(buf, v)
	}
	return buf
}

// stringToArray converts a string into an array of its byte values.
func stringToArray(s []byte) Array {
	arr := make(Array, len(s))
	for i, b := range s {
		arr[i] = NewInt(int64(b))
	}
	return arr
}

// arrayToString converts an array of integers in 0..255 back into a string.
// It reports false, leaving the array untouched, if any element is not such
// an integer.
func arrayToString(arr Array) (String, bool) {
	buf := make([]byte, len(arr))
	for i, v := range arr {
		n, ok := v.(Int)
		if !ok || !n.Big().IsInt64() {
			return nil, false
		}
		x := n.Big().Int64()
		if x < 0 || x > 255 {
			return nil, false
		}
		buf[i] = byte(x)
	}
	return String(buf), true
}

// collectString is the re-coercion used when mapping over a string: the
// results form a string when each is a byte-ranged integer or a string.
func collectString(vals Array) (String, bool) {
	var buf []byte
	for _, v := range vals {
		switch val := v.(type) {
		case Int:
			s, ok := arrayToString(Array{val})
			if !ok {
				return nil, false
			}
			buf = append(buf, s...)
		case String:
			buf = append(buf, val...)
		default:
			return nil, false
		}
	}
	return String(buf), true
}

// elements returns the items of a sequence; strings and blocks yield their
// bytes as integers.
func elements(v Value) Array {
	switch val := v.(type) {
	case Array:
		return val
	case String:
		return stringToArray(val)
	case *Block:
		return stringToArray(val.src)
	}
	return Array{v}
}

// rebuild constructs a sequence of kind k from items, the inverse of
// elements.
func rebuild(k Kind, items Array) Value {
	switch k {
	case KindString:
		return String(flattenBytes(nil, items))
	case KindBlock:
		return NewBlock(flattenBytes(nil, items))
	}
	return items
}

// seqLen returns the number of elements in a sequence value.
func seqLen(v Value) int {
	switch val := v.(type) {
	case Array:
		return len(val)
	case String:
		return len(val)
	case *Block:
		return len(val.src)
	}
	return 0
}
