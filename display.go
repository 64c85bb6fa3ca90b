package main

// Display renders a value as program output: integers in decimal, strings
// as raw bytes, blocks as their braced source, and arrays as the
// concatenation of their elements' renderings.
func Display(v Value) []byte { return appendDisplay(nil, v) }

func appendDisplay(buf []byte, v Value) []byte {
	switch val := v.(type) {
	case Int:
		buf = val.Big().Append(buf, 10)
	case String:
		buf = append(buf, val...)
	case *Block:
		buf = append(buf, '{')
		buf = append(buf, val.src...)
		buf = append(buf, '}')
	case Array:
		for _, el := range val {
			buf = appendDisplay(buf, el)
		}
	}
	return buf
}

// Inspect renders a value in a form that evaluates back to an equal value.
func Inspect(v Value) []byte { return appendInspect(nil, v) }

func appendInspect(buf []byte, v Value) []byte {
	switch val := v.(type) {
	case String:
		return appendQuoted(buf, val)
	case Array:
		buf = append(buf, '[')
		for i, el := range val {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = appendInspect(buf, el)
		}
		return append(buf, ']')
	}
	return appendDisplay(buf, v)
}

const hexDigits = "0123456789ABCDEF"

func appendQuoted(buf []byte, s []byte) []byte {
	buf = append(buf, '"')
	for i, c := range s {
		switch c {
		case '"', '\\':
			buf = append(buf, '\\', c)
		case '\a':
			buf = append(buf, '\\', 'a')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\v':
			buf = append(buf, '\\', 'v')
		case '\f':
			buf = append(buf, '\\', 'f')
		case '\r':
			buf = append(buf, '\\', 'r')
		case 0x1b:
			buf = append(buf, '\\', 'e')
		case '#':
			// "#{", "#$" and "#@" are escaped as the reference does
			if i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '$' || s[i+1] == '@') {
				buf = append(buf, '\\')
			}
			buf = append(buf, c)
		default:
			if c < 0x20 || c >= 0x7f {
				buf = append(buf, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				buf = append(buf, c)
			}
		}
	}
	return append(buf, '"')
}

func inspectString(v Value) string { return string(Inspect(v)) }

func inspectStack(stack []Value) string {
	buf := []byte{'['}
	for i, v := range stack {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendInspect(buf, v)
	}
	buf = append(buf, ']')
	return string(buf)
}
