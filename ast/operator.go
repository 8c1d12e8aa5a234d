package ast

// ExprContext tells whether a name, attribute, subscript, starred, list or
// tuple expression is read, assigned or deleted.
type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

var exprContextNames = [...]string{Load: "Load", Store: "Store", Del: "Del"}

func (c ExprContext) String() string { return enumName(exprContextNames[:], int(c)) }

// BoolOperator is the operator of a BoolOp.
type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

var boolOperatorNames = [...]string{And: "And", Or: "Or"}

func (o BoolOperator) String() string { return enumName(boolOperatorNames[:], int(o)) }

// Operator is the operator of a BinOp or AugAssign.
type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Modulo // Python's Mod (%)
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var operatorNames = [...]string{
	Add: "Add", Sub: "Sub", Mult: "Mult", MatMult: "MatMult", Div: "Div", Modulo: "Mod", Pow: "Pow",
	LShift: "LShift", RShift: "RShift", BitOr: "BitOr", BitXor: "BitXor", BitAnd: "BitAnd", FloorDiv: "FloorDiv",
}

func (o Operator) String() string { return enumName(operatorNames[:], int(o)) }

// Symbol returns the source token of the operator.
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case MatMult:
		return "@"
	case Div:
		return "/"
	case Modulo:
		return "%"
	case Pow:
		return "**"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case BitAnd:
		return "&"
	case FloorDiv:
		return "//"
	}
	return "?"
}

// UnaryOperator is the operator of a UnaryOp.
type UnaryOperator int

const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

var unaryOperatorNames = [...]string{Invert: "Invert", Not: "Not", UAdd: "UAdd", USub: "USub"}

func (o UnaryOperator) String() string { return enumName(unaryOperatorNames[:], int(o)) }

// CmpOperator is one comparison operator of a Compare.
type CmpOperator int

const (
	Eq CmpOperator = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpOperatorNames = [...]string{
	Eq: "Eq", NotEq: "NotEq", Lt: "Lt", LtE: "LtE", Gt: "Gt", GtE: "GtE",
	Is: "Is", IsNot: "IsNot", In: "In", NotIn: "NotIn",
}

func (o CmpOperator) String() string { return enumName(cmpOperatorNames[:], int(o)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "?"
	}
	return names[i]
}
