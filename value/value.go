// Package value implements tinylox's tagged runtime value and the heap
// object model that backs strings.
//
// A Value is a small sum type (Number, Bool, Nil, Obj) rather than a C-style
// struct-with-union: the tag lives in the Kind field, and exactly one of the
// payload fields is meaningful for a given Kind. Reading the wrong payload
// for a Kind is a caller bug, not a recoverable error — the same contract
// the original tagged union carried.
package value

import "strconv"

// Kind discriminates which payload field of a Value is live.
type Kind int

const (
	Number Kind = iota
	Bool
	Nil
	Obj
)

// Value is tinylox's runtime datum. The zero Value is Number(0), which is
// harmless since every constructor sets Kind explicitly.
type Value struct {
	Kind   Kind
	number float64
	boolean bool
	obj    Object
}

// NewNumber wraps a float64 as a Value.
func NewNumber(n float64) Value { return Value{Kind: Number, number: n} }

// NewBool wraps a bool as a Value.
func NewBool(b bool) Value { return Value{Kind: Bool, boolean: b} }

// NewNil returns the unit value.
func NewNil() Value { return Value{Kind: Nil} }

// NewObj wraps a heap Object as a Value.
func NewObj(o Object) Value { return Value{Kind: Obj, obj: o} }

// AsNumber returns the Number payload. Only valid when Kind == Number.
func (v Value) AsNumber() float64 { return v.number }

// AsBool returns the Bool payload. Only valid when Kind == Bool.
func (v Value) AsBool() bool { return v.boolean }

// AsObj returns the Obj payload. Only valid when Kind == Obj.
func (v Value) AsObj() Object { return v.obj }

// IsString reports whether v holds a *ObjString.
func (v Value) IsString() bool {
	if v.Kind != Obj {
		return false
	}
	_, ok := v.obj.(*ObjString)
	return ok
}

// AsString returns the Go string payload of a string Value. Only valid
// when IsString() is true.
func (v Value) AsString() string {
	return v.obj.(*ObjString).Chars
}

// IsFalsey reports tinylox's falsiness rule: nil and false are falsey,
// everything else — including 0 and the empty string — is truthy.
func (v Value) IsFalsey() bool {
	switch v.Kind {
	case Nil:
		return true
	case Bool:
		return !v.boolean
	default:
		return false
	}
}

// Equal implements tinylox's value equality: different kinds are never
// equal; numbers compare with IEEE == (so NaN != NaN); bools and nil
// compare trivially; strings compare by content. Equal is symmetric.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Number:
		return a.number == b.number
	case Bool:
		return a.boolean == b.boolean
	case Nil:
		return true
	case Obj:
		as, aok := a.obj.(*ObjString)
		bs, bok := b.obj.(*ObjString)
		if aok && bok {
			return as.Chars == bs.Chars
		}
		return a.obj == b.obj
	default:
		return false
	}
}

// String renders v the way OP_RETURN prints it: numbers in shortest
// round-trippable form, bools as true/false, nil as "nil", strings as their
// raw payload with no quoting.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case Bool:
		if v.boolean {
			return "true"
		}
		return "false"
	case Nil:
		return "nil"
	case Obj:
		return v.obj.String()
	default:
		return "<invalid value>"
	}
}
