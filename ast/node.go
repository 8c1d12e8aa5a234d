// Package ast declares the typed Python syntax tree.
//
// The tree mirrors the node classes of CPython's ast module. Every variant is a
// Go struct whose py struct tags form the declarative schema consumed by the
// convert package (see Lookup). Statements, expressions, patterns and type
// parameters are closed sums: only the types declared here implement Stmt,
// Expr, Pattern and TypeParam.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	// Span returns the node location, nil for nodes without one.
	Span() *Span
}

// Mod is a root node: Module, Interactive, Expression or FunctionType.
type Mod interface {
	Node
	modNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a match statement pattern node.
type Pattern interface {
	Node
	patternNode()
}

// TypeParam is a PEP 695 type parameter node.
type TypeParam interface {
	Node
	typeParamNode()
}

// Loc carries the optional location of a node that has source attributes.
type Loc struct {
	Location *Span
}

// Span returns the node location or nil when the node was synthesized without one.
func (l *Loc) Span() *Span {
	if l == nil {
		return nil
	}
	return l.Location
}

// At returns a Loc for the given span coordinates.
func At(lineno, colOffset, endLineno, endColOffset int) Loc {
	return Loc{Location: &Span{Lineno: lineno, ColOffset: colOffset, EndLineno: endLineno, EndColOffset: endColOffset}}
}

func (*Module) modNode()       {}
func (*Interactive) modNode()  {}
func (*Expression) modNode()   {}
func (*FunctionType) modNode() {}

func (*FunctionDef) stmtNode()      {}
func (*AsyncFunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()         {}
func (*Return) stmtNode()           {}
func (*Delete) stmtNode()           {}
func (*Assign) stmtNode()           {}
func (*TypeAlias) stmtNode()        {}
func (*AugAssign) stmtNode()        {}
func (*AnnAssign) stmtNode()        {}
func (*For) stmtNode()              {}
func (*AsyncFor) stmtNode()         {}
func (*While) stmtNode()            {}
func (*If) stmtNode()               {}
func (*With) stmtNode()             {}
func (*AsyncWith) stmtNode()        {}
func (*Match) stmtNode()            {}
func (*Raise) stmtNode()            {}
func (*Try) stmtNode()              {}
func (*TryStar) stmtNode()          {}
func (*Assert) stmtNode()           {}
func (*Import) stmtNode()           {}
func (*ImportFrom) stmtNode()       {}
func (*Global) stmtNode()           {}
func (*Nonlocal) stmtNode()         {}
func (*ExprStmt) stmtNode()         {}
func (*Pass) stmtNode()             {}
func (*Break) stmtNode()            {}
func (*Continue) stmtNode()         {}

func (*BoolOp) exprNode()         {}
func (*NamedExpr) exprNode()      {}
func (*BinOp) exprNode()          {}
func (*UnaryOp) exprNode()        {}
func (*Lambda) exprNode()         {}
func (*IfExp) exprNode()          {}
func (*Dict) exprNode()           {}
func (*Set) exprNode()            {}
func (*ListComp) exprNode()       {}
func (*SetComp) exprNode()        {}
func (*DictComp) exprNode()       {}
func (*GeneratorExp) exprNode()   {}
func (*Await) exprNode()          {}
func (*Yield) exprNode()          {}
func (*YieldFrom) exprNode()      {}
func (*Compare) exprNode()        {}
func (*Call) exprNode()           {}
func (*FormattedValue) exprNode() {}
func (*JoinedStr) exprNode()      {}
func (*Constant) exprNode()       {}
func (*Attribute) exprNode()      {}
func (*Subscript) exprNode()      {}
func (*Starred) exprNode()        {}
func (*Name) exprNode()           {}
func (*List) exprNode()           {}
func (*Tuple) exprNode()          {}
func (*Slice) exprNode()          {}

func (*MatchValue) patternNode()     {}
func (*MatchSingleton) patternNode() {}
func (*MatchSequence) patternNode()  {}
func (*MatchMapping) patternNode()   {}
func (*MatchClass) patternNode()     {}
func (*MatchStar) patternNode()      {}
func (*MatchAs) patternNode()        {}
func (*MatchOr) patternNode()        {}

func (*TypeVar) typeParamNode()      {}
func (*ParamSpec) typeParamNode()    {}
func (*TypeVarTuple) typeParamNode() {}

// Nodes without source attributes.

func (*Module) Span() *Span        { return nil }
func (*Interactive) Span() *Span   { return nil }
func (*Expression) Span() *Span    { return nil }
func (*FunctionType) Span() *Span  { return nil }
func (*TypeIgnore) Span() *Span    { return nil }
func (*Arguments) Span() *Span     { return nil }
func (*Comprehension) Span() *Span { return nil }
func (*WithItem) Span() *Span      { return nil }
func (*MatchCase) Span() *Span     { return nil }
