package ast

type (
	// Arguments is the parameter list of a function or lambda. Defaults align
	// with the tail of Posonlyargs+Args; KwDefaults aligns with Kwonlyargs and
	// holds nil for keyword-only parameters without a default.
	Arguments struct {
		Posonlyargs []*Arg `py:"posonlyargs"`
		Args        []*Arg `py:"args"`
		Vararg      *Arg   `py:"vararg,optional"`
		Kwonlyargs  []*Arg `py:"kwonlyargs"`
		KwDefaults  []Expr `py:"kw_defaults,nullable"`
		Kwarg       *Arg   `py:"kwarg,optional"`
		Defaults    []Expr `py:"defaults"`
	}

	// Arg is a single parameter.
	Arg struct {
		Loc
		Arg         string  `py:"arg"`
		Annotation  Expr    `py:"annotation,optional"`
		TypeComment *string `py:"type_comment"`
	}

	// Keyword is a keyword argument of a call or class definition; a nil Arg
	// marks **kwargs unpacking.
	Keyword struct {
		Loc
		Arg   *string `py:"arg"`
		Value Expr    `py:"value"`
	}

	// Alias is one imported name.
	Alias struct {
		Loc
		Name   string  `py:"name"`
		Asname *string `py:"asname"`
	}

	WithItem struct {
		ContextExpr  Expr `py:"context_expr"`
		OptionalVars Expr `py:"optional_vars,optional"`
	}

	// Comprehension is one for clause of a comprehension; IsAsync is 1 for "async for".
	Comprehension struct {
		Target  Expr   `py:"target"`
		Iter    Expr   `py:"iter"`
		Ifs     []Expr `py:"ifs"`
		IsAsync int    `py:"is_async"`
	}

	ExceptHandler struct {
		Loc
		Type Expr    `py:"type,optional"`
		Name *string `py:"name"`
		Body []Stmt  `py:"body"`
	}

	TypeVar struct {
		Loc
		Name         string `py:"name"`
		Bound        Expr   `py:"bound,optional"`
		DefaultValue Expr   `py:"default_value,optional,since=3.13"`
	}

	ParamSpec struct {
		Loc
		Name         string `py:"name"`
		DefaultValue Expr   `py:"default_value,optional,since=3.13"`
	}

	TypeVarTuple struct {
		Loc
		Name         string `py:"name"`
		DefaultValue Expr   `py:"default_value,optional,since=3.13"`
	}
)
