package python

import (
	"strings"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/inspector/graph"
)

// function extracts a FunctionDef or AsyncFunctionDef; receiver is the owning class.
func (b *builder) function(def ast.Stmt, receiver string) *graph.Function {
	var (
		name       string
		args       *ast.Arguments
		body       []ast.Stmt
		decorators []ast.Expr
		returns    ast.Expr
		typeParams []ast.TypeParam
		ret        = &graph.Function{Receiver: receiver}
	)
	switch actual := def.(type) {
	case *ast.FunctionDef:
		name, args, body, decorators, returns, typeParams = actual.Name, actual.Args, actual.Body, actual.DecoratorList, actual.Returns, actual.TypeParams
	case *ast.AsyncFunctionDef:
		name, args, body, decorators, returns, typeParams = actual.Name, actual.Args, actual.Body, actual.DecoratorList, actual.Returns, actual.TypeParams
		ret.IsAsync = true
	}
	ret.Name = name
	ret.IsExported = isExported(name)
	ret.IsConstructor = receiver != "" && (name == "__init__" || name == "__new__")
	ret.Location = b.src.decorated(def, decorators)
	if ret.Location != nil {
		ret.Comment = b.notes.leading(b.src, ret.Location.Line)
	}
	ret.Decorators, ret.Annotation = b.decorators(decorators)
	for _, decorator := range ret.Decorators {
		switch decorator {
		case "staticmethod":
			ret.IsStatic = true
		case "classmethod":
			ret.IsClassMethod = true
		case "property", "functools.cached_property", "cached_property":
			ret.IsProperty = true
		}
		if strings.HasSuffix(decorator, ".setter") || strings.HasSuffix(decorator, ".deleter") {
			ret.IsProperty = true
		}
	}
	if doc, ok := ast.GetDocstring(body, true); ok {
		ret.Docstring = doc
	}
	ret.TypeParams = b.typeParams(typeParams)
	ret.Parameters = b.parameters(args)
	if returns != nil {
		ret.Results = []*graph.Parameter{{Type: b.src.expr(returns), Kind: graph.Result}}
	}
	ret.Body = b.src.block(body)
	if ret.Body != nil {
		ret.Hash, _ = graph.Hash([]byte(ret.Body.Text))
	}
	ret.Signature = ret.BuildSignature()
	return ret
}

// decorators returns decorator expressions and their source block.
func (b *builder) decorators(list []ast.Expr) ([]string, *graph.LocationNode) {
	if len(list) == 0 {
		return nil, nil
	}
	var ret []string
	for _, decorator := range list {
		ret = append(ret, b.src.expr(decorator))
	}
	first, last := list[0].Span(), list[len(list)-1].Span()
	if first == nil || last == nil {
		return ret, nil
	}
	start := b.src.at(first.Lineno, b.src.offset(first.Lineno, first.ColOffset))
	location := b.src.between(first.Lineno, start, last.EndLineno, b.src.offset(last.EndLineno, last.EndColOffset))
	return ret, &graph.LocationNode{Text: location.Raw, Location: *location}
}

// parameters flattens Arguments in declaration order. Defaults align with
// the tail of the positional parameters.
func (b *builder) parameters(args *ast.Arguments) []*graph.Parameter {
	if args == nil {
		return nil
	}
	var ret []*graph.Parameter
	add := func(arg *ast.Arg, kind graph.ParameterKind, value ast.Expr) {
		ret = append(ret, &graph.Parameter{Name: arg.Arg, Type: b.src.expr(arg.Annotation), Default: b.src.expr(value), Kind: kind})
	}
	positional := append(append([]*ast.Arg{}, args.Posonlyargs...), args.Args...)
	firstDefault := len(positional) - len(args.Defaults)
	for i, arg := range positional {
		kind := graph.Positional
		if i < len(args.Posonlyargs) {
			kind = graph.PositionalOnly
		}
		var value ast.Expr
		if i >= firstDefault && i-firstDefault < len(args.Defaults) {
			value = args.Defaults[i-firstDefault]
		}
		add(arg, kind, value)
	}
	if args.Vararg != nil {
		add(args.Vararg, graph.VarPositional, nil)
	}
	for i, arg := range args.Kwonlyargs {
		var value ast.Expr
		if i < len(args.KwDefaults) {
			value = args.KwDefaults[i]
		}
		add(arg, graph.KeywordOnly, value)
	}
	if args.Kwarg != nil {
		add(args.Kwarg, graph.VarKeyword, nil)
	}
	return ret
}
