package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// fixture is one conformance case: a program, its input, and either the
// exact output it must print or an error it must fail with.
type fixture struct {
	Name   string  `yaml:"name"`
	Source string  `yaml:"source"`
	Input  string  `yaml:"input,omitempty"`
	Output *string `yaml:"output,omitempty"`
	Error  string  `yaml:"error,omitempty"`
	Seed   int64   `yaml:"seed,omitempty"`

	// Timeout bounds the run, defaulting to fixtureTimeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	file string
	line int
}

const fixtureTimeout = 5 * time.Second

func (fx fixture) String() string {
	return fmt.Sprintf("%v:%v %v", fx.file, fx.line, fx.Name)
}

// loadFixtures reads every *.yaml file in dir; each holds a list of
// fixtures.
func loadFixtures(dir string) ([]fixture, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	var all []fixture
	for _, name := range names {
		fixtures, err := readFixtures(name)
		if err != nil {
			return nil, err
		}
		all = append(all, fixtures...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no fixtures found in %v", dir)
	}
	return all, nil
}

func readFixtures(name string) ([]fixture, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc yaml.Node
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	list := doc.Content[0]
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%v:%v: expected a list of fixtures", name, list.Line)
	}
	fixtures := make([]fixture, 0, len(list.Content))
	for _, node := range list.Content {
		var fx fixture
		if err := node.Decode(&fx); err != nil {
			return nil, fmt.Errorf("%v:%v: %w", name, node.Line, err)
		}
		fx.file, fx.line = name, node.Line
		if fx.Output == nil && fx.Error == "" {
			return nil, fmt.Errorf("%v: must expect either output or error", fx)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

// run evaluates the fixture's program the way the command does, returning
// what it printed.
func (fx fixture) run(ctx context.Context, opts ...VMOption) (string, error) {
	timeout := fx.Timeout
	if timeout == 0 {
		timeout = fixtureTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out bytes.Buffer
	vm := New(VMOptions(opts...),
		WithInput(strings.NewReader(fx.Input)),
		WithOutput(&out),
		WithRandSeed(fx.Seed))
	err := vm.Run(ctx, []byte(fx.Source))
	if err == nil {
		err = vm.Puts(ctx)
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	return out.String(), err
}

var errFixtureMismatch = errors.New("fixture mismatch")

// check runs the fixture, returning a non-nil error describing any
// mismatch.
func (fx fixture) check(ctx context.Context, opts ...VMOption) error {
	out, err := fx.run(ctx, opts...)
	if fx.Error != "" {
		if err == nil {
			return fmt.Errorf("%w: expected error %q, got output %q", errFixtureMismatch, fx.Error, out)
		}
		if !strings.Contains(err.Error(), fx.Error) {
			return fmt.Errorf("%w: expected error %q, got %v", errFixtureMismatch, fx.Error, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: unexpected error: %v", errFixtureMismatch, err)
	}
	if out != *fx.Output {
		return fmt.Errorf("%w: expected output %q, got %q", errFixtureMismatch, *fx.Output, out)
	}
	return nil
}

// checkFixtures runs fixtures with at most jobs in parallel, reporting each
// result. It returns how many failed; the error is only non-nil if ctx ended
// before every fixture ran.
func checkFixtures(ctx context.Context, fixtures []fixture, jobs int, report func(fixture, error)) (failed int, err error) {
	results := make([]error, len(fixtures))
	eg, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		eg.SetLimit(jobs)
	}
	for i := range fixtures {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = err
				return err
			}
			results[i] = fixtures[i].check(ctx)
			return nil
		})
	}
	err = eg.Wait()
	for i, fx := range fixtures {
		if results[i] != nil {
			failed++
		}
		report(fx, results[i])
	}
	return failed, err
}
