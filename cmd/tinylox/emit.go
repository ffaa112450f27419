package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tinylox/compiler"
	"tinylox/debug"
	"tinylox/value"
)

// emitCmd implements `tinylox emit <file>`: compile only, then print the
// disassembly. It never runs the VM — useful for inspecting what the
// compiler produced without executing it, per spec.md's framing of the
// disassembler as an observational aid rather than part of the semantic
// contract.
type emitCmd struct{}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Compile a file and print its disassembly" }
func (*emitCmd) Usage() string {
	return `emit <file>:
  Compile <file> and print the resulting bytecode disassembly to stdout.
`
}

func (*emitCmd) SetFlags(*flag.FlagSet) {}

func (*emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "tinylox emit: file not provided")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinylox emit: failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	var objects value.Objects
	c, err := compiler.Compile(string(data), &objects)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	fmt.Print(debug.Disassemble(c, args[0]))
	return subcommands.ExitSuccess
}
