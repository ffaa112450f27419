// Command tinylox is the driver that feeds source into the tinylox core.
// It is deliberately outside the compiler/vm packages: spec.md names "the
// REPL / file loader" as an external collaborator, not part of the
// language's semantic contract.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&emitCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// newLogger returns the shared logrus logger the driver and, when -trace is
// set, the VM itself log through. The core vm/compiler packages never
// reach for this on their own — only a driver-owned *logrus.Logger handed
// to vm.VM.Logger does.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}
