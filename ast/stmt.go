package ast

type (
	FunctionDef struct {
		Loc
		Name          string      `py:"name"`
		Args          *Arguments  `py:"args"`
		Body          []Stmt      `py:"body"`
		DecoratorList []Expr      `py:"decorator_list"`
		Returns       Expr        `py:"returns,optional"`
		TypeComment   *string     `py:"type_comment"`
		TypeParams    []TypeParam `py:"type_params,since=3.12"`
	}

	AsyncFunctionDef struct {
		Loc
		Name          string      `py:"name"`
		Args          *Arguments  `py:"args"`
		Body          []Stmt      `py:"body"`
		DecoratorList []Expr      `py:"decorator_list"`
		Returns       Expr        `py:"returns,optional"`
		TypeComment   *string     `py:"type_comment"`
		TypeParams    []TypeParam `py:"type_params,since=3.12"`
	}

	ClassDef struct {
		Loc
		Name          string      `py:"name"`
		Bases         []Expr      `py:"bases"`
		Keywords      []*Keyword  `py:"keywords"`
		Body          []Stmt      `py:"body"`
		DecoratorList []Expr      `py:"decorator_list"`
		TypeParams    []TypeParam `py:"type_params,since=3.12"`
	}

	Return struct {
		Loc
		Value Expr `py:"value,optional"`
	}

	Delete struct {
		Loc
		Targets []Expr `py:"targets"`
	}

	Assign struct {
		Loc
		Targets     []Expr  `py:"targets"`
		Value       Expr    `py:"value"`
		TypeComment *string `py:"type_comment"`
	}

	// TypeAlias is a PEP 695 "type X = ..." statement.
	TypeAlias struct {
		Loc
		Name       Expr        `py:"name"`
		TypeParams []TypeParam `py:"type_params"`
		Value      Expr        `py:"value"`
	}

	AugAssign struct {
		Loc
		Target Expr     `py:"target"`
		Op     Operator `py:"op"`
		Value  Expr     `py:"value"`
	}

	// AnnAssign is an annotated assignment; Simple is 1 when the target is a plain name.
	AnnAssign struct {
		Loc
		Target     Expr `py:"target"`
		Annotation Expr `py:"annotation"`
		Value      Expr `py:"value,optional"`
		Simple     int  `py:"simple"`
	}

	For struct {
		Loc
		Target      Expr    `py:"target"`
		Iter        Expr    `py:"iter"`
		Body        []Stmt  `py:"body"`
		Orelse      []Stmt  `py:"orelse"`
		TypeComment *string `py:"type_comment"`
	}

	AsyncFor struct {
		Loc
		Target      Expr    `py:"target"`
		Iter        Expr    `py:"iter"`
		Body        []Stmt  `py:"body"`
		Orelse      []Stmt  `py:"orelse"`
		TypeComment *string `py:"type_comment"`
	}

	While struct {
		Loc
		Test   Expr   `py:"test"`
		Body   []Stmt `py:"body"`
		Orelse []Stmt `py:"orelse"`
	}

	If struct {
		Loc
		Test   Expr   `py:"test"`
		Body   []Stmt `py:"body"`
		Orelse []Stmt `py:"orelse"`
	}

	With struct {
		Loc
		Items       []*WithItem `py:"items"`
		Body        []Stmt      `py:"body"`
		TypeComment *string     `py:"type_comment"`
	}

	AsyncWith struct {
		Loc
		Items       []*WithItem `py:"items"`
		Body        []Stmt      `py:"body"`
		TypeComment *string     `py:"type_comment"`
	}

	Match struct {
		Loc
		Subject Expr         `py:"subject"`
		Cases   []*MatchCase `py:"cases"`
	}

	Raise struct {
		Loc
		Exc   Expr `py:"exc,optional"`
		Cause Expr `py:"cause,optional"`
	}

	Try struct {
		Loc
		Body      []Stmt           `py:"body"`
		Handlers  []*ExceptHandler `py:"handlers"`
		Orelse    []Stmt           `py:"orelse"`
		Finalbody []Stmt           `py:"finalbody"`
	}

	// TryStar is a try statement with except* clauses.
	TryStar struct {
		Loc
		Body      []Stmt           `py:"body"`
		Handlers  []*ExceptHandler `py:"handlers"`
		Orelse    []Stmt           `py:"orelse"`
		Finalbody []Stmt           `py:"finalbody"`
	}

	Assert struct {
		Loc
		Test Expr `py:"test"`
		Msg  Expr `py:"msg,optional"`
	}

	Import struct {
		Loc
		Names []*Alias `py:"names"`
	}

	// ImportFrom is "from module import names"; Level counts leading dots.
	ImportFrom struct {
		Loc
		Module *string  `py:"module"`
		Names  []*Alias `py:"names"`
		Level  *int     `py:"level"`
	}

	Global struct {
		Loc
		Names []string `py:"names"`
	}

	Nonlocal struct {
		Loc
		Names []string `py:"names"`
	}

	// ExprStmt is Python's Expr statement: an expression evaluated for its effect.
	ExprStmt struct {
		Loc
		Value Expr `py:"value"`
	}

	Pass struct {
		Loc
	}

	Break struct {
		Loc
	}

	Continue struct {
		Loc
	}
)
