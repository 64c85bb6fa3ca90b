package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/jcorbin/gogolf/internal/logio"
	"github.com/jcorbin/gogolf/internal/panicerr"
)

func main() {
	ctx := context.Background()

	var (
		expr        string
		timeout     time.Duration
		trace       bool
		maxDepth    int
		seed        int64
		interactive bool
		check       string
		jobs        int
		dump        bool
	)
	flag.StringVar(&expr, "e", "", "run the given program text rather than a file")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&maxDepth, "max-depth", defaultMaxDepth, "limit block nesting while running; 0 for no limit")
	flag.Int64Var(&seed, "seed", 0, "seed for rand")
	flag.BoolVar(&interactive, "i", false, "run an interactive session")
	flag.StringVar(&check, "check", "", "run the conformance fixtures in the given directory")
	flag.IntVar(&jobs, "j", 4, "how many fixtures to -check in parallel")
	flag.BoolVar(&dump, "dump", false, "dump VM state to stderr after running")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] [program.gs]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if check != "" {
		fixtures, err := loadFixtures(check)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		failed, err := checkFixtures(ctx, fixtures, jobs, func(fx fixture, err error) {
			if err != nil {
				log.Errorf("%v: %v", fx, err)
			} else if trace {
				log.Printf("PASS", "%v", fx)
			}
		})
		log.ErrorIf(err)
		log.Printf("", "%v of %v fixtures passed", len(fixtures)-failed, len(fixtures))
		return
	}

	var opts = []VMOption{
		WithMaxDepth(maxDepth),
		WithRandSeed(seed),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	if interactive {
		vm := New(opts...)
		defer vm.Close()
		log.ErrorIf(runREPL(ctx, vm, os.Stdout))
		return
	}

	var src []byte
	switch {
	case expr != "" && flag.NArg() == 0:
		src = []byte(expr)
	case expr == "" && flag.NArg() == 1:
		var err error
		if src, err = ioutil.ReadFile(flag.Arg(0)); err != nil {
			log.Errorf("%v", err)
			return
		}
	default:
		flag.Usage()
		log.Errorf("expected either -e or a single program file")
		return
	}

	vm := New(append(opts, WithInput(os.Stdin))...)
	err := vm.Run(ctx, src)
	if err == nil {
		err = vm.Puts(ctx)
	}
	if dump {
		vmDumper{vm: vm, out: os.Stderr, rawCode: trace}.dump()
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if trace && panicerr.IsPanic(err) {
			log.Printf("PANIC", "%s", panicerr.Stack(err))
		}
		log.Errorf("%v", err)
	}
}
