// Package vm implements tinylox's stack-based bytecode interpreter: it
// fetches and dispatches opcodes from a chunk.Chunk against a fixed-size
// value stack, performing the runtime type checks the compiler couldn't.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"tinylox/chunk"
	"tinylox/compiler"
	"tinylox/value"
)

// Result is the outcome of an Interpret call, mirroring the embedding API
// spec.md §6 describes.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "SUCCESS"
	case ResultCompileError:
		return "COMPILE_ERROR"
	case ResultRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// VM is tinylox's runtime environment. It is a plain struct — not a
// process-wide singleton — so an embedder may run more than one VM, and a
// CLI driver can hold one open across an entire REPL session so heap
// objects persist the way spec.md §5 describes (bulk-freed once, at
// shutdown, not per statement).
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack   stack
	objects value.Objects

	// Stdout/Stderr are where OP_RETURN's printed value and runtime/
	// compile diagnostics go. Defaulted to os.Stdout/os.Stderr by New,
	// overridable so a REPL or a test can capture them.
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives structured trace/panic diagnostics when non-nil.
	// The core never requires a logger — it's purely an observability
	// hook for an embedder, grounded in the teacher corpus's use of
	// logrus for exactly this kind of side-channel diagnostic.
	Logger *logrus.Logger

	// Trace, when true, logs a Debug-level "dispatch" entry carrying the
	// instruction's ip and source line through Logger before executing it.
	// Nothing is logged when Logger is nil, and neither the opcode nor the
	// stack contents are included. It is an observational aid, not part of
	// the semantic contract.
	Trace bool
}

// New returns a VM with stdout/stderr wired to the process's own streams.
func New() *VM {
	return &VM{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Close bulk-frees every heap object the VM has allocated across its
// lifetime, the "freeVM" bookend from spec.md §6.
func (vm *VM) Close() {
	vm.objects.Free()
}

// Interpret compiles source into a fresh chunk and runs it. The chunk does
// not outlive the call; only the Values and Objects it produced (the
// final value already printed, and any heap strings) remain.
func (vm *VM) Interpret(source string) Result {
	c, err := compiler.Compile(source, &vm.objects)
	if err != nil {
		fmt.Fprintln(vm.Stderr, err.Error())
		return ResultCompileError
	}

	vm.chunk = c
	vm.ip = 0
	return vm.run()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

// currentLine returns the source line of the instruction just executed,
// for runtime diagnostics — chunk.Lines[ip-1] at the point a handler
// raises an error, since ip has already been advanced past the opcode
// (and, for OP_CONSTANT, its operand) by the time the handler runs.
func (vm *VM) currentLine() int {
	if vm.ip == 0 {
		return vm.chunk.Lines[0]
	}
	return vm.chunk.Lines[vm.ip-1]
}

func (vm *VM) runtimeError(format string, args ...any) *RuntimeError {
	err := &RuntimeError{Message: fmt.Sprintf(format, args...), Line: vm.currentLine()}
	fmt.Fprint(vm.Stderr, err.Error())
	vm.stack.reset()
	return err
}

func (vm *VM) run() (result Result) {
	defer func() {
		if r := recover(); r != nil {
			internal := &InternalError{Cause: r}
			if vm.Logger != nil {
				vm.Logger.WithField("component", "vm").Error(internal.Error())
			}
			fmt.Fprintln(vm.Stderr, internal.Error())
			vm.stack.reset()
			result = ResultRuntimeError
		}
	}()

	for {
		if vm.Trace {
			vm.traceInstruction()
		}

		op := chunk.Opcode(vm.readByte())
		switch op {
		case chunk.OpConstant:
			if !vm.stack.push(vm.readConstant()) {
				vm.runtimeError("Stack overflow.")
				return ResultRuntimeError
			}

		case chunk.OpNil:
			if !vm.stack.push(value.NewNil()) {
				vm.runtimeError("Stack overflow.")
				return ResultRuntimeError
			}
		case chunk.OpTrue:
			if !vm.stack.push(value.NewBool(true)) {
				vm.runtimeError("Stack overflow.")
				return ResultRuntimeError
			}
		case chunk.OpFalse:
			if !vm.stack.push(value.NewBool(false)) {
				vm.runtimeError("Stack overflow.")
				return ResultRuntimeError
			}

		case chunk.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(value.NewBool(value.Equal(a, b)))

		case chunk.OpGreater:
			if !vm.binaryNumberPredicate(func(a, b float64) bool { return a > b }, "Operands must be numbers.") {
				return ResultRuntimeError
			}
		case chunk.OpLess:
			if !vm.binaryNumberPredicate(func(a, b float64) bool { return a < b }, "Operands must be numbers.") {
				return ResultRuntimeError
			}

		case chunk.OpAdd:
			if ok := vm.add(); !ok {
				return ResultRuntimeError
			}
		case chunk.OpSubtract:
			if !vm.binaryNumberOp(func(a, b float64) float64 { return a - b }, "Operands must be number.") {
				return ResultRuntimeError
			}
		case chunk.OpMultiply:
			if !vm.binaryNumberOp(func(a, b float64) float64 { return a * b }, "Operands must be number.") {
				return ResultRuntimeError
			}
		case chunk.OpDivide:
			if !vm.binaryNumberOp(func(a, b float64) float64 { return a / b }, "Operands must be number.") {
				return ResultRuntimeError
			}

		case chunk.OpNot:
			v := vm.stack.pop()
			vm.stack.push(value.NewBool(v.IsFalsey()))

		case chunk.OpNegate:
			if vm.stack.peek(0).Kind != value.Number {
				vm.runtimeError("Operand must be a number.")
				return ResultRuntimeError
			}
			v := vm.stack.pop()
			vm.stack.push(value.NewNumber(-v.AsNumber()))

		case chunk.OpAnd:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(value.NewBool(!a.IsFalsey() && !b.IsFalsey()))
		case chunk.OpOr:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(value.NewBool(!a.IsFalsey() || !b.IsFalsey()))

		case chunk.OpReturn:
			v := vm.stack.pop()
			fmt.Fprintln(vm.Stdout, v.String())
			return ResultOK

		default:
			vm.runtimeError("Unknown opcode %d.", op)
			return ResultRuntimeError
		}
	}
}

func (vm *VM) add() bool {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)

	switch {
	case a.IsString() && b.IsString():
		vm.stack.pop()
		vm.stack.pop()
		concatenated := a.AsString() + b.AsString()
		vm.stack.push(vm.objects.NewString(concatenated))
		return true
	case a.Kind == value.Number && b.Kind == value.Number:
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(value.NewNumber(a.AsNumber() + b.AsNumber()))
		return true
	default:
		vm.runtimeError("Operands of '+' must be number or string.")
		return false
	}
}

func (vm *VM) binaryNumberOp(op func(a, b float64) float64, errMessage string) bool {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)
	if a.Kind != value.Number || b.Kind != value.Number {
		vm.runtimeError(errMessage)
		return false
	}
	vm.stack.pop()
	vm.stack.pop()
	vm.stack.push(value.NewNumber(op(a.AsNumber(), b.AsNumber())))
	return true
}

func (vm *VM) binaryNumberPredicate(op func(a, b float64) bool, errMessage string) bool {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)
	if a.Kind != value.Number || b.Kind != value.Number {
		vm.runtimeError(errMessage)
		return false
	}
	vm.stack.pop()
	vm.stack.pop()
	vm.stack.push(value.NewBool(op(a.AsNumber(), b.AsNumber())))
	return true
}

func (vm *VM) traceInstruction() {
	if vm.Logger == nil {
		return
	}
	vm.Logger.WithFields(logrus.Fields{
		"component": "vm",
		"ip":        vm.ip,
		"line":      vm.chunk.Lines[vm.ip],
	}).Debug("dispatch")
}
