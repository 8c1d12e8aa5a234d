package python

import (
	"strings"
	"unicode"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/inspector/graph"
)

// builder collects the declarations of one module.
type builder struct {
	config *graph.Config
	src    *source
	notes  comments
	file   *graph.File
}

func (b *builder) module(module *ast.Module) {
	if module.Docstring != nil {
		b.file.Docstring = ast.CleanDoc(*module.Docstring)
	}
	b.statements(module.Body)
}

// statements walks module level statements, descending into if and try
// blocks since their bindings are module level too.
func (b *builder) statements(body []ast.Stmt) {
	for _, stmt := range body {
		switch actual := stmt.(type) {
		case *ast.Import:
			for _, alias := range actual.Names {
				imp := graph.Import{Name: alias.Name, Path: alias.Name}
				if alias.Asname != nil {
					imp.Name = *alias.Asname
				}
				b.file.Imports = append(b.file.Imports, imp)
			}
		case *ast.ImportFrom:
			module := ""
			if actual.Level != nil {
				module = strings.Repeat(".", *actual.Level)
			}
			if actual.Module != nil {
				module += *actual.Module
			}
			for _, alias := range actual.Names {
				imp := graph.Import{Name: alias.Name, Path: module, Symbol: alias.Name}
				if alias.Asname != nil {
					imp.Name = *alias.Asname
				}
				b.file.Imports = append(b.file.Imports, imp)
			}
		case *ast.FunctionDef:
			if b.include(actual.Name) {
				b.file.Functions = append(b.file.Functions, b.function(actual, ""))
			}
		case *ast.AsyncFunctionDef:
			if b.include(actual.Name) {
				b.file.Functions = append(b.file.Functions, b.function(actual, ""))
			}
		case *ast.ClassDef:
			if b.include(actual.Name) {
				b.file.Types = append(b.file.Types, b.class(actual))
			}
		case *ast.TypeAlias:
			if t := b.alias(actual); t != nil && b.include(t.Name) {
				b.file.Types = append(b.file.Types, t)
			}
		case *ast.Assign:
			for _, target := range actual.Targets {
				for _, name := range boundNames(target) {
					b.binding(name, nil, actual.Value, actual)
				}
			}
		case *ast.AnnAssign:
			if name, ok := actual.Target.(*ast.Name); ok {
				b.binding(name.Id, actual.Annotation, actual.Value, actual)
			}
		case *ast.If:
			b.statements(actual.Body)
			b.statements(actual.Orelse)
		case *ast.Try:
			b.try(actual.Body, actual.Handlers, actual.Orelse, actual.Finalbody)
		case *ast.TryStar:
			b.try(actual.Body, actual.Handlers, actual.Orelse, actual.Finalbody)
		}
	}
}

func (b *builder) try(body []ast.Stmt, handlers []*ast.ExceptHandler, orelse, finalbody []ast.Stmt) {
	b.statements(body)
	for _, handler := range handlers {
		b.statements(handler.Body)
	}
	b.statements(orelse)
	b.statements(finalbody)
}

// binding records a module level name as a constant or a variable; a later
// binding of the same name replaces the earlier one.
func (b *builder) binding(name string, annotation, value ast.Expr, stmt ast.Stmt) {
	if !b.include(name) {
		return
	}
	location := b.src.location(stmt)
	comment := b.comment(stmt)
	typeName := b.src.expr(annotation)
	if isConstant(name, typeName) {
		constant := &graph.Constant{Name: name, Comment: comment, Type: typeName, Value: b.src.expr(value), IsExported: isExported(name), Location: location}
		for i, existing := range b.file.Constants {
			if existing.Name == name {
				b.file.Constants[i] = constant
				return
			}
		}
		b.file.Constants = append(b.file.Constants, constant)
		return
	}
	variable := &graph.Variable{Name: name, Comment: comment, Type: typeName, Value: b.src.expr(value), IsExported: isExported(name), Location: location}
	for i, existing := range b.file.Variables {
		if existing.Name == name {
			b.file.Variables[i] = variable
			return
		}
	}
	b.file.Variables = append(b.file.Variables, variable)
}

// comment returns the trailing comment of a statement, or the leading block above it.
func (b *builder) comment(stmt ast.Stmt) string {
	span := stmt.Span()
	if span == nil {
		return ""
	}
	if text := b.notes.trailing(span.EndLineno); text != "" {
		return text
	}
	if leading := b.notes.leading(b.src, span.Lineno); leading != nil {
		return leading.Text
	}
	return ""
}

// isConstant reports whether a binding is a constant: an upper case name or a Final annotation.
func isConstant(name, annotation string) bool {
	if annotation == "Final" || strings.HasPrefix(annotation, "Final[") ||
		strings.HasPrefix(annotation, "typing.Final") {
		return true
	}
	hasLetter := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
		case r == '_' || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return hasLetter
}

// boundNames returns the names bound by an assignment target.
func boundNames(target ast.Expr) []string {
	switch actual := target.(type) {
	case *ast.Name:
		return []string{actual.Id}
	case *ast.Tuple:
		return elementNames(actual.Elts)
	case *ast.List:
		return elementNames(actual.Elts)
	case *ast.Starred:
		return boundNames(actual.Value)
	}
	return nil
}

func elementNames(elts []ast.Expr) []string {
	var ret []string
	for _, elt := range elts {
		ret = append(ret, boundNames(elt)...)
	}
	return ret
}

func (b *builder) alias(stmt *ast.TypeAlias) *graph.Type {
	name, ok := stmt.Name.(*ast.Name)
	if !ok {
		return nil
	}
	ret := &graph.Type{
		Name:        name.Id,
		Kind:        graph.KindAlias,
		Package:     b.file.Package,
		PackagePath: b.file.ImportPath,
		IsExported:  isExported(name.Id),
		TypeParams:  b.typeParams(stmt.TypeParams),
		Value:       b.src.expr(stmt.Value),
		Location:    b.src.location(stmt),
	}
	if span := stmt.Span(); span != nil {
		ret.Comment = b.notes.leading(b.src, span.Lineno)
	}
	return ret
}

func (b *builder) typeParams(params []ast.TypeParam) []*graph.TypeParam {
	var ret []*graph.TypeParam
	for _, param := range params {
		switch actual := param.(type) {
		case *ast.TypeVar:
			ret = append(ret, &graph.TypeParam{Name: actual.Name, Kind: graph.TypeVar, Constraint: b.src.expr(actual.Bound), Default: b.src.expr(actual.DefaultValue)})
		case *ast.ParamSpec:
			ret = append(ret, &graph.TypeParam{Name: actual.Name, Kind: graph.ParamSpec, Default: b.src.expr(actual.DefaultValue)})
		case *ast.TypeVarTuple:
			ret = append(ret, &graph.TypeParam{Name: actual.Name, Kind: graph.TypeVarTuple, Default: b.src.expr(actual.DefaultValue)})
		}
	}
	return ret
}
