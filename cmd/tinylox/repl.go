package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"tinylox/vm"
)

// replCmd implements `tinylox repl`: an interactive loop that keeps a
// single vm.VM alive across lines, so heap strings and the object
// list persist across statements the way spec.md §5 describes (bulk-free
// once, at process shutdown, not per line). Line editing and history come
// from readline — the teacher repo declares this dependency but never
// exercises it in the snippets the retrieval pack kept; this is the home
// it was always missing.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive tinylox session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL. Each line is compiled and run against a
  persistent VM. Type exit or press Ctrl-D to quit.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each VM instruction before executing it")
}

func (r *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.tinylox_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinylox repl: failed to start line editor: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	machine := vm.New()
	defer machine.Close()
	if r.trace {
		machine.Trace = true
		machine.Logger = newLogger()
	}

	fmt.Fprintln(rl.Stdout(), "tinylox — Ctrl-D or \"exit\" to quit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinylox repl: %v\n", err)
			return subcommands.ExitFailure
		}

		if line == "exit" {
			return subcommands.ExitSuccess
		}
		if line == "" {
			continue
		}

		machine.Interpret(line)
	}
}
