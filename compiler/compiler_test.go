package compiler

import (
	"strings"
	"testing"

	"tinylox/chunk"
	"tinylox/value"
)

func mustCompile(t *testing.T, source string) *chunk.Chunk {
	t.Helper()
	var objs value.Objects
	c, err := Compile(source, &objs)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", source, err)
	}
	return c
}

func TestCompileNumberEmitsConstantAndReturn(t *testing.T) {
	c := mustCompile(t, "42")
	if len(c.Constants) != 1 {
		t.Fatalf("len(Constants) = %d, want 1", len(c.Constants))
	}
	if c.Constants[0].AsNumber() != 42 {
		t.Errorf("Constants[0] = %v, want 42", c.Constants[0])
	}
	if chunk.Opcode(c.Code[0]) != chunk.OpConstant {
		t.Errorf("first opcode = %v, want OP_CONSTANT", chunk.Opcode(c.Code[0]))
	}
	last := chunk.Opcode(c.Code[len(c.Code)-1])
	if last != chunk.OpReturn {
		t.Errorf("last opcode = %v, want OP_RETURN", last)
	}
}

func TestCompileBinaryPrecedence(t *testing.T) {
	c := mustCompile(t, "1 + 2 * 3")
	ops := opcodes(c)
	// 1, 2, 3, MULTIPLY, ADD, RETURN (constants interleaved).
	wantTail := []chunk.Opcode{chunk.OpMultiply, chunk.OpAdd, chunk.OpReturn}
	if len(ops) < len(wantTail) {
		t.Fatalf("too few opcodes: %v", ops)
	}
	got := ops[len(ops)-len(wantTail):]
	for i, op := range wantTail {
		if got[i] != op {
			t.Errorf("opcode %d = %v, want %v (full: %v)", i, got[i], op, ops)
		}
	}
}

func TestCompileComparisonDesugaring(t *testing.T) {
	cases := map[string][]chunk.Opcode{
		"1 <= 2": {chunk.OpGreater, chunk.OpNot},
		"1 >= 2": {chunk.OpLess, chunk.OpNot},
		"1 != 2": {chunk.OpEqual, chunk.OpNot},
		"1 == 2": {chunk.OpEqual},
	}
	for source, want := range cases {
		c := mustCompile(t, source)
		ops := opcodes(c)
		// last opcode is always OP_RETURN.
		tail := ops[len(ops)-1-len(want) : len(ops)-1]
		for i, op := range want {
			if tail[i] != op {
				t.Errorf("%s: opcode %d = %v, want %v (full %v)", source, i, tail[i], op, ops)
			}
		}
	}
}

func TestCompileUnary(t *testing.T) {
	c := mustCompile(t, "-5")
	ops := opcodes(c)
	if ops[len(ops)-2] != chunk.OpNegate {
		t.Errorf("opcodes = %v, want OP_NEGATE before OP_RETURN", ops)
	}
}

func TestCompileStringLiteralStripsQuotes(t *testing.T) {
	c := mustCompile(t, `"hi"`)
	if c.Constants[0].AsString() != "hi" {
		t.Errorf("string constant = %q, want %q", c.Constants[0].AsString(), "hi")
	}
}

func TestCompileEmptySourceIsError(t *testing.T) {
	var objs value.Objects
	_, err := Compile("", &objs)
	if err == nil {
		t.Fatal("expected a compile error for empty source")
	}
	if !strings.Contains(err.Error(), "Expect expression.") {
		t.Errorf("error = %q, want it to mention Expect expression.", err.Error())
	}
}

func TestCompileMissingParenIsError(t *testing.T) {
	var objs value.Objects
	_, err := Compile("(1 + 2", &objs)
	if err == nil {
		t.Fatal("expected a compile error for unmatched '('")
	}
	if !strings.Contains(err.Error(), "Expect ')' after expression.") {
		t.Errorf("error = %q, want it to mention the missing paren", err.Error())
	}
}

func TestCompileTrailingGarbageIsError(t *testing.T) {
	var objs value.Objects
	_, err := Compile("1 1", &objs)
	if err == nil {
		t.Fatal("expected a compile error for trailing tokens after the expression")
	}
}

func TestCompileErrorAtEndLocus(t *testing.T) {
	var objs value.Objects
	_, err := Compile("1 +", &objs)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "[line 1] Error at end: Expect expression.") {
		t.Errorf("error = %q, want the 'at end' locus", err.Error())
	}
}

func TestTooManyConstantsError(t *testing.T) {
	var objs value.Objects
	var b strings.Builder
	for i := 0; i < 257; i++ {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("1")
	}
	_, err := Compile(b.String(), &objs)
	if err == nil {
		t.Fatal("expected a compile error past 256 constants")
	}
	if !strings.Contains(err.Error(), "Too many constants in one chunk.") {
		t.Errorf("error = %q, want the constants-pool message", err.Error())
	}
}

func opcodes(c *chunk.Chunk) []chunk.Opcode {
	var ops []chunk.Opcode
	for i := 0; i < len(c.Code); {
		op := chunk.Opcode(c.Code[i])
		ops = append(ops, op)
		if op == chunk.OpConstant {
			i += 2
		} else {
			i++
		}
	}
	return ops
}
