package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tinylox/vm"
)

// runCmd implements `tinylox run <file>`: compile and execute a source
// file once, then exit with a status reflecting the embedding API's
// Result.
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and run a tinylox source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute the expression in <file>, printing its value.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each VM instruction before executing it")
}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "tinylox run: file not provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinylox run: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	machine := vm.New()
	defer machine.Close()
	if r.trace {
		machine.Trace = true
		machine.Logger = newLogger()
	}

	switch machine.Interpret(string(data)) {
	case vm.ResultOK:
		return subcommands.ExitSuccess
	case vm.ResultCompileError:
		return subcommands.ExitFailure
	default: // vm.ResultRuntimeError
		return subcommands.ExitStatus(70) // EX_SOFTWARE, matching clox's interpreter.c exit code
	}
}
