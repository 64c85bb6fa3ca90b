package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	for _, tc := range []struct {
		v    Value
		want bool
	}{
		{NewInt(0), false},
		{NewInt(-1), true},
		{Int{}, false},
		{String(""), false},
		{String("0"), true},
		{Array{}, false},
		{Array{NewInt(0)}, true},
		{NewBlock(nil), false},
		{NewBlock([]byte(" ")), true},
	} {
		assert.Equal(t, tc.want, Truthy(tc.v), "Truthy(%s)", Inspect(tc.v))
	}
}

func TestCompare(t *testing.T) {
	ordered := []Value{
		NewInt(-5),
		NewInt(0),
		NewInt(7),
		Array{},
		Array{NewInt(1)},
		Array{NewInt(1), NewInt(0)},
		Array{NewInt(2)},
		String(""),
		String("a"),
		String("ab"),
		String("b"),
		NewBlock([]byte("a")),
	}
	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assert.Equal(t, want, Compare(a, b), "Compare(%s, %s)", Inspect(a), Inspect(b))
		}
	}
}

func TestValueKey(t *testing.T) {
	distinct := []Value{
		NewInt(1),
		NewInt(11),
		String("1"),
		String("11"),
		Array{NewInt(1)},
		Array{NewInt(1), NewInt(1)},
		Array{NewInt(11)},
		Array{String("1")},
		Array{Array{NewInt(1)}},
		NewBlock([]byte("1")),
	}
	seen := make(map[string]int)
	for i, v := range distinct {
		key := valueKey(v)
		if j, dup := seen[key]; dup {
			t.Errorf("%s and %s share key %q", Inspect(distinct[j]), Inspect(v), key)
		}
		seen[key] = i
	}
	assert.Equal(t, valueKey(Array{NewInt(1), String("x")}), valueKey(Array{NewInt(1), String("x")}))
}

func TestCoerce(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b Value
		want string
	}{
		{"int int", NewInt(1), NewInt(2), `1 2`},
		{"int array", NewInt(1), Array{NewInt(2)}, `[1] [2]`},
		{"array int", Array{NewInt(2)}, NewInt(1), `[2] [1]`},
		{"int string", NewInt(10), String("x"), `"10" "x"`},
		{"array string", Array{NewInt(104), String("i"), Array{NewInt(33)}}, String(""), `"hi!" ""`},
		{"array string wraps bytes", Array{NewInt(-1), NewInt(256)}, String(""), `"\xFF\x00" ""`},
		{"int block", NewInt(3), NewBlock([]byte("x")), `{3} {x}`},
		{"array block", Array{NewInt(1), String("a"), NewBlock([]byte("b"))}, NewBlock(nil), `{1 a {b}} {}`},
		{"string block", String("s"), NewBlock(nil), `{s} {}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, b := coerce(tc.a, tc.b)
			assert.Equal(t, a.Kind(), b.Kind(), "expected same kinds")
			assert.Equal(t, tc.want, inspectString(a)+" "+inspectString(b))
		})
	}
}

func TestDisplay(t *testing.T) {
	for _, tc := range []struct {
		v       Value
		display string
		inspect string
	}{
		{NewInt(-12), `-12`, `-12`},
		{String("a\"b"), `a"b`, `"a\"b"`},
		{String("#{x}"), `#{x}`, `"\#{x}"`},
		{String("\x00\x7f\xff"), "\x00\x7f\xff", `"\x00\x7F\xFF"`},
		{Array{}, ``, `[]`},
		{Array{NewInt(1), Array{NewInt(2), String("c")}}, `12c`, `[1 [2 "c"]]`},
		{NewBlock([]byte(" 1+ ")), `{ 1+ }`, `{ 1+ }`},
	} {
		assert.Equal(t, tc.display, string(Display(tc.v)), "Display(%#v)", tc.v)
		assert.Equal(t, tc.inspect, string(Inspect(tc.v)), "Inspect(%#v)", tc.v)
	}
}

func TestInspect_roundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		s := make(String, rng.Intn(16))
		rng.Read(s)
		stack, err := Run(Inspect(s), nil)
		if assert.NoError(t, err) && assert.Len(t, stack, 2) {
			assert.Equal(t, s, stack[1], "expected %s to evaluate back", Inspect(s))
		}
	}
}

func TestStringArrayRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		s := make([]byte, rng.Intn(32))
		rng.Read(s)
		arr := stringToArray(s)
		assert.Len(t, arr, len(s))
		back, ok := arrayToString(arr)
		if assert.True(t, ok) {
			assert.Equal(t, String(s), back)
		}
	}
	_, ok := arrayToString(Array{NewInt(256)})
	assert.False(t, ok, "256 is not a byte")
	_, ok = arrayToString(Array{String("a")})
	assert.False(t, ok, "strings are not bytes")
}
