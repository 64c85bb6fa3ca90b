package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVM_dump(t *testing.T) {
	vmTestCases{
		vmTest("input only").
			withSource("").
			expectDump(lines(
				"# VM Dump",
				"  stack: 1",
				`   0: ""`,
			)),

		vmTest("stack is top first").
			withInput("in").
			withSource(`1 2[3:x;`).
			expectDump(lines(
				"# VM Dump",
				"  stack: 3",
				"   0: 2",
				"   1: 1",
				`   2: "in"`,
				"  marks: [3]",
				"  vars:",
				"    x = 3",
			)),

		vmTest("vars are sorted").
			withSource(`[]:b;'s':a;{.}:c;`).
			expectDump(lines(
				"# VM Dump",
				"  stack: 1",
				`   0: ""`,
				"  vars:",
				`    a = "s"`,
				"    b = []",
				"    c = {.}",
			)),
	}.run(t)
}

func TestVM_dumpCode(t *testing.T) {
	vm := New()
	defer vm.Close()
	require.NoError(t, vm.Run(context.Background(), []byte(`{1 'a' {f}:g [+]}:f;`)))

	var out strings.Builder
	vmDumper{vm: vm, out: &out, rawCode: true}.dump()
	assert.Equal(t, lines(
		"# VM Dump",
		"  stack: 1",
		`   0: ""`,
		"  vars:",
		"    f = {1 'a' {f}:g [+]}",
		"      pushint(1)",
		`      pushstr("a")`,
		"      pushblk",
		"        call(f)",
		"      assign(g)",
		"      mark",
		"      call(+°)",
		"      wrap",
	), out.String())
}
