package vm

import "fmt"

// RuntimeError is a fail-fast runtime diagnostic: a type mismatch or
// resource exhaustion (stack overflow) discovered while executing a
// chunk. Exactly one is ever produced per Interpret call — runtime errors do not
// accumulate the way compile diagnostics do.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script\n", e.Message, e.Line)
}

// InternalError wraps a recovered panic raised by a type-model invariant
// violation inside the VM (reading a Value's payload against its own
// Kind, an unreachable switch arm). These are "a program bug" per the
// value model's contract, not an end user's mistake, so they're kept
// distinct from RuntimeError. run recovers the panic, logs it at Error
// level through the VM's Logger when one is set, writes it to Stderr, and
// reports ResultRuntimeError.
type InternalError struct {
	Cause any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}
