package ast

import (
	"math/big"
	"strconv"
)

// ConstantValue is the literal held by a Constant or MatchSingleton.
// The interpreter tags every literal with its own kind; the variants below are
// the closed set of kinds Python's ast module produces.
type ConstantValue interface {
	// Kind returns the interpreter's name of the literal kind.
	Kind() string
	// Repr renders the literal the way Python's repr does.
	Repr() string
	constantValue()
}

// Constant kinds as tagged by the interpreter.
const (
	KindInt      = "int"
	KindFloat    = "float"
	KindComplex  = "complex"
	KindStr      = "str"
	KindBytes    = "bytes"
	KindBool     = "bool"
	KindNone     = "None"
	KindEllipsis = "Ellipsis"
)

type (
	// Int is an arbitrary precision integer in canonical decimal form.
	Int string
	// Float is a floating point literal.
	Float float64
	// Complex is a complex literal; source literals are always imaginary.
	Complex complex128
	// Str is a string literal. Lone surrogates are kept WTF-8 encoded.
	Str string
	// Bytes is a bytes literal.
	Bytes []byte
	// Bool is True or False.
	Bool bool
	// None is the None singleton.
	None struct{}
	// Ellipsis is the ... singleton.
	Ellipsis struct{}
)

// IntOf returns the Int for v.
func IntOf(v int64) Int { return Int(strconv.FormatInt(v, 10)) }

// Int64 returns the value when it fits in an int64.
func (i Int) Int64() (int64, bool) {
	v, err := strconv.ParseInt(string(i), 10, 64)
	return v, err == nil
}

// Big returns the value as a big.Int, nil when the text is not a decimal integer.
func (i Int) Big() *big.Int {
	v, ok := new(big.Int).SetString(string(i), 10)
	if !ok {
		return nil
	}
	return v
}

func (Int) Kind() string      { return KindInt }
func (Float) Kind() string    { return KindFloat }
func (Complex) Kind() string  { return KindComplex }
func (Str) Kind() string      { return KindStr }
func (Bytes) Kind() string    { return KindBytes }
func (Bool) Kind() string     { return KindBool }
func (None) Kind() string     { return KindNone }
func (Ellipsis) Kind() string { return KindEllipsis }

func (i Int) Repr() string     { return string(i) }
func (f Float) Repr() string   { return floatRepr(float64(f), true) }
func (c Complex) Repr() string { return complexRepr(complex128(c)) }
func (s Str) Repr() string     { return strRepr(string(s)) }
func (b Bytes) Repr() string   { return bytesRepr(b) }
func (None) Repr() string      { return "None" }
func (Ellipsis) Repr() string  { return "Ellipsis" }

func (b Bool) Repr() string {
	if b {
		return "True"
	}
	return "False"
}

func (Int) constantValue()      {}
func (Float) constantValue()    {}
func (Complex) constantValue()  {}
func (Str) constantValue()      {}
func (Bytes) constantValue()    {}
func (Bool) constantValue()     {}
func (None) constantValue()     {}
func (Ellipsis) constantValue() {}
