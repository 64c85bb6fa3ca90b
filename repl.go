package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	replPrompt   = "gs> "
	replContinue = "... "
	replHistory  = ".gogolf_history"
	replHelpText = `Enter GolfScript; the stack is shown after each line.
Commands, which take precedence over assigning to the same names:
  :stack       dump the stack, markers and bindings
  :load FILE   run a program file
  :reset       start over with an empty stack and no bindings
  :quit        leave (as does ctrl-d)
`
)

// runREPL runs an interactive session against vm. Every entry runs on the
// same stack with the same bindings; entries that end inside a block or a
// string are continued on the next line.
func runREPL(ctx context.Context, vm *VM, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, replHistory)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if isReplCommand(src) {
			done, err := replCommand(ctx, vm, src, out)
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
			}
			if done {
				break
			}
			continue
		}

		if err := vm.Run(ctx, []byte(src)); err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
		fmt.Fprintf(out, "%s\n", Inspect(Array(vm.Stack())))
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

var replCommands = map[string]bool{
	":quit": true, ":exit": true, ":help": true,
	":stack": true, ":reset": true, ":load": true,
}

func isReplCommand(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && replCommands[fields[0]]
}

func replCommand(ctx context.Context, vm *VM, line string, out io.Writer) (done bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit":
		return true, nil
	case ":help":
		io.WriteString(out, replHelpText)
	case ":stack":
		vmDumper{vm: vm, out: out}.dump()
	case ":reset":
		vm.stack, vm.marks, vm.vars = nil, nil, nil
	case ":load":
		if len(fields) != 2 {
			return false, errors.New("usage: :load FILE")
		}
		src, err := ioutil.ReadFile(fields[1])
		if err != nil {
			return false, err
		}
		err = vm.Run(ctx, src)
		fmt.Fprintf(out, "%s\n", Inspect(Array(vm.Stack())))
		return false, err
	default:
		return false, fmt.Errorf("unknown command %v, try :help", fields[0])
	}
	return false, nil
}

// readEntry reads lines until they form a complete program, or until the
// parse fails for some reason other than running out of input.
func readEntry(ln *liner.State) (string, bool) {
	var sb strings.Builder
	for {
		prompt := replPrompt
		if sb.Len() > 0 {
			prompt = replContinue
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if err != nil {
			// ctrl-c abandons the entry
			return "", true
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		src := sb.String()
		if _, err := Parse([]byte(src)); err == nil || !incompleteInput(err) {
			return src, true
		}
	}
}

// incompleteInput reports whether a parse error is one that more input
// could fix.
func incompleteInput(err error) bool {
	var lexErr *LexError
	return errors.As(err, &lexErr) ||
		errors.Is(err, ErrUnclosedBlock) ||
		errors.Is(err, ErrUnfinishedAssign)
}
