// Package debug provides an observational aid — a bytecode disassembler —
// that sits outside tinylox's semantic contract. Nothing in
// compiler or vm depends on this package; it exists purely so a driver (or
// a test) can inspect what the compiler produced.
package debug

import (
	"fmt"
	"strings"

	"tinylox/chunk"
)

// Disassemble renders every instruction in c as a multi-line human-readable
// listing, prefixed with name.
func Disassemble(c *chunk.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = disassembleInstruction(&b, c, offset)
	}
	return b.String()
}

// disassembleInstruction writes one instruction's listing and returns the
// offset of the next instruction.
func disassembleInstruction(b *strings.Builder, c *chunk.Chunk, offset int) int {
	fmt.Fprintf(b, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(b, "   | ")
	} else {
		fmt.Fprintf(b, "%4d ", c.Lines[offset])
	}

	op := chunk.Opcode(c.Code[offset])
	switch op {
	case chunk.OpConstant:
		return constantInstruction(b, c, offset)
	case chunk.OpNil, chunk.OpTrue, chunk.OpFalse,
		chunk.OpEqual, chunk.OpGreater, chunk.OpLess,
		chunk.OpAdd, chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide,
		chunk.OpNot, chunk.OpNegate, chunk.OpAnd, chunk.OpOr, chunk.OpReturn:
		return simpleInstruction(b, op, offset)
	default:
		fmt.Fprintf(b, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(b *strings.Builder, op chunk.Opcode, offset int) int {
	fmt.Fprintf(b, "%s\n", op)
	return offset + 1
}

func constantInstruction(b *strings.Builder, c *chunk.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'\n", chunk.OpConstant, idx, c.Constants[idx])
	return offset + 2
}
