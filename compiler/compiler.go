// Package compiler implements tinylox's single-pass Pratt parser: it
// consumes tokens from a scanner.Scanner and emits opcodes and constants
// directly into a chunk.Chunk, with no intermediate AST.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"tinylox/chunk"
	"tinylox/scanner"
	"tinylox/token"
	"tinylox/value"
)

// Precedence orders the grammar's binding strength from loosest to
// tightest. parsePrecedence consumes everything that binds at least as
// tightly as the level it's given.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

type parseFn func(p *Parser)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// Parser holds the two-token lookahead and error-recovery state for a
// single compilation. It is created fresh per call to Compile rather than
// living as a package-level global, so nothing prevents compiling two
// chunks concurrently.
type Parser struct {
	sc *scanner.Scanner

	previous token.Token
	current  token.Token

	chunk   *chunk.Chunk
	objects *value.Objects

	hadError   bool
	panicMode  bool
	diagnostics []error
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {(*Parser).grouping, nil, PrecNone},
		token.Minus:        {(*Parser).unary, (*Parser).binary, PrecTerm},
		token.Plus:         {nil, (*Parser).binary, PrecTerm},
		token.Slash:        {nil, (*Parser).binary, PrecFactor},
		token.Star:         {nil, (*Parser).binary, PrecFactor},
		token.Bang:         {(*Parser).unary, nil, PrecNone},
		token.BangEqual:    {nil, (*Parser).binary, PrecEquality},
		token.EqualEqual:   {nil, (*Parser).binary, PrecEquality},
		token.Greater:      {nil, (*Parser).binary, PrecComparison},
		token.GreaterEqual: {nil, (*Parser).binary, PrecComparison},
		token.Less:         {nil, (*Parser).binary, PrecComparison},
		token.LessEqual:    {nil, (*Parser).binary, PrecComparison},
		token.Number:       {(*Parser).numberLiteral, nil, PrecNone},
		token.String:       {(*Parser).stringLiteral, nil, PrecNone},
		token.And:          {nil, (*Parser).binary, PrecAnd},
		token.Or:           {nil, (*Parser).binary, PrecOr},
		token.True:         {(*Parser).literal, nil, PrecNone},
		token.False:        {(*Parser).literal, nil, PrecNone},
		token.Nil:          {(*Parser).literal, nil, PrecNone},
	}
}

func getRule(kind token.Kind) parseRule {
	if rule, ok := rules[kind]; ok {
		return rule
	}
	return parseRule{nil, nil, PrecNone}
}

// Compile compiles source into a fresh chunk.Chunk. Heap objects allocated
// for string literals are tracked on objects, which the caller (normally a
// VM) owns for the lifetime of the process. On failure it returns a
// *CompileError and the partially-emitted chunk should be discarded.
func Compile(source string, objects *value.Objects) (*chunk.Chunk, error) {
	p := &Parser{
		sc:      scanner.New(source),
		chunk:   chunk.New(),
		objects: objects,
	}

	p.advance()
	p.expression()
	p.consume(token.EOF, "Expect end of expression.")
	p.emitReturn()

	if p.hadError {
		return nil, &CompileError{errs: &multierror.Error{Errors: p.diagnostics}}
	}
	return p.chunk, nil
}

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.sc.Scan()
		if p.current.Kind != token.Error {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(kind token.Kind, message string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

// expression parses a single expression at the loosest precedence that
// still excludes bare assignment (this core has no assignment targets, so
// PrecAssignment is simply the entry point spec.md names).
func (p *Parser) expression() {
	p.parsePrecedence(PrecAssignment)
}

func (p *Parser) parsePrecedence(prec Precedence) {
	p.advance()
	prefixRule := getRule(p.previous.Kind).prefix
	if prefixRule == nil {
		p.errorAtPrevious("Expect expression.")
		return
	}
	prefixRule(p)

	for prec <= getRule(p.current.Kind).precedence {
		p.advance()
		infixRule := getRule(p.previous.Kind).infix
		infixRule(p)
	}
}

func (p *Parser) emitByte(b byte) {
	p.chunk.Write(b, p.previous.Line)
}

func (p *Parser) emitOp(op chunk.Opcode) {
	p.chunk.WriteOp(op, p.previous.Line)
}

func (p *Parser) emitOps(ops ...chunk.Opcode) {
	for _, op := range ops {
		p.emitOp(op)
	}
}

func (p *Parser) emitReturn() {
	p.emitOp(chunk.OpReturn)
}

func (p *Parser) emitConstant(v value.Value) {
	idx := p.makeConstant(v)
	p.emitOp(chunk.OpConstant)
	p.emitByte(idx)
}

func (p *Parser) makeConstant(v value.Value) byte {
	idx := p.chunk.AddConstant(v)
	if idx >= chunk.MaxConstants {
		p.errorAtPrevious("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (p *Parser) numberLiteral() {
	v, err := strconv.ParseFloat(p.previous.Lexeme, 64)
	if err != nil {
		p.errorAtPrevious(fmt.Sprintf("Invalid number literal %q.", p.previous.Lexeme))
		return
	}
	p.emitConstant(value.NewNumber(v))
}

func (p *Parser) grouping() {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func (p *Parser) unary() {
	operator := p.previous.Kind
	p.parsePrecedence(PrecUnary)
	switch operator {
	case token.Bang:
		p.emitOp(chunk.OpNot)
	case token.Minus:
		p.emitOp(chunk.OpNegate)
	}
}

func (p *Parser) binary() {
	operator := p.previous.Kind
	rule := getRule(operator)
	p.parsePrecedence(rule.precedence + 1) // left-associative: bind tighter than ourselves

	switch operator {
	case token.Plus:
		p.emitOp(chunk.OpAdd)
	case token.Minus:
		p.emitOp(chunk.OpSubtract)
	case token.Star:
		p.emitOp(chunk.OpMultiply)
	case token.Slash:
		p.emitOp(chunk.OpDivide)
	case token.And:
		p.emitOp(chunk.OpAnd)
	case token.Or:
		p.emitOp(chunk.OpOr)
	case token.EqualEqual:
		p.emitOp(chunk.OpEqual)
	case token.BangEqual:
		p.emitOps(chunk.OpEqual, chunk.OpNot)
	case token.Less:
		p.emitOp(chunk.OpLess)
	case token.Greater:
		p.emitOp(chunk.OpGreater)
	case token.LessEqual:
		p.emitOps(chunk.OpGreater, chunk.OpNot)
	case token.GreaterEqual:
		p.emitOps(chunk.OpLess, chunk.OpNot)
	}
}

func (p *Parser) literal() {
	switch p.previous.Kind {
	case token.False:
		p.emitOp(chunk.OpFalse)
	case token.Nil:
		p.emitOp(chunk.OpNil)
	case token.True:
		p.emitOp(chunk.OpTrue)
	}
}

func (p *Parser) stringLiteral() {
	// Lexeme is the quoted source slice ("...") — strip the delimiters
	// before allocating it as the runtime payload.
	lexeme := p.previous.Lexeme
	unquoted := lexeme[1 : len(lexeme)-1]
	p.emitConstant(p.objects.NewString(unquoted))
}

// errorAt records a diagnostic at tok's position. Once the parser is in
// panic mode, later diagnostics are suppressed (not rendered as the
// primary error) to avoid cascades, matching spec.md's collect-and-
// suppress policy; this expression grammar has no synchronization point to
// recover at, so panic mode never clears once set.
func (p *Parser) errorAt(tok token.Token, message string) {
	p.hadError = true
	p.panicMode = true

	var locus string
	switch {
	case tok.Kind == token.EOF:
		locus = " at end"
	case tok.Kind == token.Error:
		locus = ""
	default:
		locus = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	formatted := fmt.Errorf("[line %d] Error%s: %s", tok.Line, locus, message)

	// panicMode never clears (this grammar has no synchronization point),
	// so every call after the first is a suppressed cascade; they're still
	// appended here in chronological order so CompileError can report a
	// suppressed count without ever surfacing them as the primary error.
	p.diagnostics = append(p.diagnostics, formatted)
}

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *Parser) errorAtPrevious(message string) {
	p.errorAt(p.previous, message)
}
