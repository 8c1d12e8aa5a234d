package ast

type (
	BoolOp struct {
		Loc
		Op     BoolOperator `py:"op"`
		Values []Expr       `py:"values"`
	}

	// NamedExpr is an assignment expression (x := value).
	NamedExpr struct {
		Loc
		Target Expr `py:"target"`
		Value  Expr `py:"value"`
	}

	BinOp struct {
		Loc
		Left  Expr     `py:"left"`
		Op    Operator `py:"op"`
		Right Expr     `py:"right"`
	}

	UnaryOp struct {
		Loc
		Op      UnaryOperator `py:"op"`
		Operand Expr          `py:"operand"`
	}

	Lambda struct {
		Loc
		Args *Arguments `py:"args"`
		Body Expr       `py:"body"`
	}

	IfExp struct {
		Loc
		Test   Expr `py:"test"`
		Body   Expr `py:"body"`
		Orelse Expr `py:"orelse"`
	}

	// Dict is a dict display; a nil key marks a **mapping unpacking whose value is in Values.
	Dict struct {
		Loc
		Keys   []Expr `py:"keys,nullable"`
		Values []Expr `py:"values"`
	}

	Set struct {
		Loc
		Elts []Expr `py:"elts"`
	}

	ListComp struct {
		Loc
		Elt        Expr             `py:"elt"`
		Generators []*Comprehension `py:"generators"`
	}

	SetComp struct {
		Loc
		Elt        Expr             `py:"elt"`
		Generators []*Comprehension `py:"generators"`
	}

	DictComp struct {
		Loc
		Key        Expr             `py:"key"`
		Value      Expr             `py:"value"`
		Generators []*Comprehension `py:"generators"`
	}

	GeneratorExp struct {
		Loc
		Elt        Expr             `py:"elt"`
		Generators []*Comprehension `py:"generators"`
	}

	Await struct {
		Loc
		Value Expr `py:"value"`
	}

	Yield struct {
		Loc
		Value Expr `py:"value,optional"`
	}

	YieldFrom struct {
		Loc
		Value Expr `py:"value"`
	}

	// Compare is a comparison chain; Ops and Comparators have equal length.
	Compare struct {
		Loc
		Left        Expr          `py:"left"`
		Ops         []CmpOperator `py:"ops"`
		Comparators []Expr        `py:"comparators"`
	}

	Call struct {
		Loc
		Func     Expr       `py:"func"`
		Args     []Expr     `py:"args"`
		Keywords []*Keyword `py:"keywords"`
	}

	// FormattedValue is a replacement field of an f-string. Conversion is -1
	// (none) or the code point of 's', 'r' or 'a'.
	FormattedValue struct {
		Loc
		Value      Expr `py:"value"`
		Conversion int  `py:"conversion"`
		FormatSpec Expr `py:"format_spec,optional"`
	}

	// JoinedStr is an f-string.
	JoinedStr struct {
		Loc
		Values []Expr `py:"values"`
	}

	// Constant is a literal; Kind is "u" for u-prefixed strings.
	Constant struct {
		Loc
		Value ConstantValue `py:"value"`
		Kind  *string       `py:"kind"`
	}

	Attribute struct {
		Loc
		Value Expr        `py:"value"`
		Attr  string      `py:"attr"`
		Ctx   ExprContext `py:"ctx"`
	}

	Subscript struct {
		Loc
		Value Expr        `py:"value"`
		Slice Expr        `py:"slice"`
		Ctx   ExprContext `py:"ctx"`
	}

	Starred struct {
		Loc
		Value Expr        `py:"value"`
		Ctx   ExprContext `py:"ctx"`
	}

	Name struct {
		Loc
		Id  string      `py:"id"`
		Ctx ExprContext `py:"ctx"`
	}

	List struct {
		Loc
		Elts []Expr      `py:"elts"`
		Ctx  ExprContext `py:"ctx"`
	}

	Tuple struct {
		Loc
		Elts []Expr      `py:"elts"`
		Ctx  ExprContext `py:"ctx"`
	}

	Slice struct {
		Loc
		Lower Expr `py:"lower,optional"`
		Upper Expr `py:"upper,optional"`
		Step  Expr `py:"step,optional"`
	}
)
