package ast

// Module is the root of a parsed source file.
type Module struct {
	Body        []Stmt        `py:"body"`
	TypeIgnores []*TypeIgnore `py:"type_ignores"`

	// Name is the logical module name supplied by the caller, never parsed from source.
	Name string
	// Docstring is the raw module docstring, nil when the module has none.
	Docstring *string
}

// Interactive is the root produced by the "single" parse mode.
type Interactive struct {
	Body []Stmt `py:"body"`
}

// Expression is the root produced by the "eval" parse mode.
type Expression struct {
	Body Expr `py:"body"`
}

// FunctionType is the root produced by the "func_type" parse mode.
type FunctionType struct {
	Argtypes []Expr `py:"argtypes"`
	Returns  Expr   `py:"returns"`
}

// TypeIgnore records a "# type: ignore" comment.
type TypeIgnore struct {
	Lineno int    `py:"lineno"`
	Tag    string `py:"tag"`
}
