package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

type fmtBuf interface {
	Len() int
	Write(p []byte) (n int, err error)
	WriteByte(c byte) error
	WriteRune(r rune) (n int, err error)
	WriteString(s string) (n int, err error)
}

type vmDumper struct {
	vm  *VM
	out io.Writer

	indexWidth int

	// also list the parsed instructions of bound blocks
	rawCode bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	if dump.vm.at.Text != "" {
		fmt.Fprintf(dump.out, "  at: %v %v\n", dump.vm.at.Pos, dump.vm.at)
	}
	dump.dumpStack()
	dump.dumpMarks()
	dump.dumpVars()
}

func (dump *vmDumper) dumpStack() {
	if dump.indexWidth == 0 {
		dump.indexWidth = len(strconv.Itoa(len(dump.vm.stack))) + 1
	}
	fmt.Fprintf(dump.out, "  stack: %v\n", len(dump.vm.stack))
	var buf strings.Builder
	for i := len(dump.vm.stack) - 1; i >= 0; i-- {
		buf.Reset()
		// depth from the top, as "$" counts
		fmt.Fprintf(&buf, "  % *v: ", dump.indexWidth, len(dump.vm.stack)-1-i)
		buf.Write(Inspect(dump.vm.stack[i]))
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
}

func (dump *vmDumper) dumpMarks() {
	if len(dump.vm.marks) > 0 {
		fmt.Fprintf(dump.out, "  marks: %v\n", dump.vm.marks)
	}
}

func (dump *vmDumper) dumpVars() {
	if len(dump.vm.vars) == 0 {
		return
	}
	names := make([]string, 0, len(dump.vm.vars))
	for name := range dump.vm.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(dump.out, "  vars:\n")
	var buf strings.Builder
	for _, name := range names {
		val := dump.vm.vars[name]
		buf.Reset()
		fmt.Fprintf(&buf, "    %v = ", name)
		buf.Write(Inspect(val))
		if blk, ok := val.(*Block); ok && dump.rawCode {
			dump.formatBlock(&buf, blk, 3)
		}
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
}

func (dump *vmDumper) formatBlock(buf fmtBuf, blk *Block, indent int) {
	code, err := blk.Code()
	if err != nil {
		fmt.Fprintf(buf, "\n%v! %v", strings.Repeat("  ", indent), err)
		return
	}
	for _, in := range code {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", indent))
		dump.formatCode(buf, in)
		if in.Code == codePushBlock {
			dump.formatBlock(buf, in.Value.(*Block), indent+1)
		}
	}
}

func (dump *vmDumper) formatCode(buf fmtBuf, in Instruction) {
	buf.WriteString(in.Code.String())
	switch in.Code {
	case codePushInt, codePushString:
		buf.WriteByte('(')
		buf.WriteString(inspectString(in.Value))
		buf.WriteByte(')')
	case codeInvoke, codeAssign:
		buf.WriteByte('(')
		buf.WriteString(in.Text)
		if _, isBuiltin := builtins[in.Text]; isBuiltin {
			buf.WriteRune('°')
		}
		buf.WriteByte(')')
	}
}
