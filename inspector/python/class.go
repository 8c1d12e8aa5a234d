package python

import (
	"strings"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/inspector/graph"
)

var baseKinds = map[string]graph.Kind{
	"Enum":          graph.KindEnum,
	"IntEnum":       graph.KindEnum,
	"StrEnum":       graph.KindEnum,
	"Flag":          graph.KindEnum,
	"IntFlag":       graph.KindEnum,
	"Protocol":      graph.KindProtocol,
	"TypedDict":     graph.KindTypedDict,
	"NamedTuple":    graph.KindNamedTuple,
	"Exception":     graph.KindException,
	"BaseException": graph.KindException,
}

func (b *builder) class(def *ast.ClassDef) *graph.Type {
	ret := &graph.Type{
		Name:        def.Name,
		Kind:        graph.KindClass,
		Package:     b.file.Package,
		PackagePath: b.file.ImportPath,
		IsExported:  isExported(def.Name),
		TypeParams:  b.typeParams(def.TypeParams),
		Location:    b.src.decorated(def, def.DecoratorList),
	}
	if ret.Location != nil {
		ret.Comment = b.notes.leading(b.src, ret.Location.Line)
	}
	if doc, ok := def.Docstring(); ok {
		ret.Docstring = doc
	}
	ret.Decorators, ret.Annotation = b.decorators(def.DecoratorList)
	for _, base := range def.Bases {
		ret.Extends = append(ret.Extends, b.src.expr(base))
	}
	for _, keyword := range def.Keywords {
		if keyword.Arg != nil && *keyword.Arg == "metaclass" {
			ret.Metaclass = b.src.expr(keyword.Value)
		}
	}
	ret.Kind = classKind(ret)
	for _, stmt := range def.Body {
		switch actual := stmt.(type) {
		case *ast.FunctionDef:
			b.method(ret, actual, actual.Name, actual.Body)
		case *ast.AsyncFunctionDef:
			b.method(ret, actual, actual.Name, actual.Body)
		case *ast.ClassDef:
			if b.include(actual.Name) {
				ret.Nested = append(ret.Nested, b.class(actual))
			}
		case *ast.AnnAssign:
			if name, ok := actual.Target.(*ast.Name); ok {
				b.field(ret, name.Id, actual.Annotation, actual.Value, actual, true)
			}
		case *ast.Assign:
			for _, target := range actual.Targets {
				for _, name := range boundNames(target) {
					b.field(ret, name, nil, actual.Value, actual, true)
				}
			}
		}
	}
	return ret
}

// classKind classifies a class by its decorators first, then by its bases.
func classKind(t *graph.Type) graph.Kind {
	for _, decorator := range t.Decorators {
		name := decorator
		if idx := strings.IndexByte(name, '('); idx != -1 {
			name = name[:idx]
		}
		if name == "dataclass" || strings.HasSuffix(name, ".dataclass") {
			return graph.KindDataclass
		}
	}
	for _, base := range t.Extends {
		name := base
		if idx := strings.IndexByte(name, '['); idx != -1 {
			name = name[:idx]
		}
		if idx := strings.LastIndexByte(name, '.'); idx != -1 {
			name = name[idx+1:]
		}
		if kind, ok := baseKinds[name]; ok {
			return kind
		}
		if strings.HasSuffix(name, "Error") || strings.HasSuffix(name, "Exception") {
			return graph.KindException
		}
	}
	return graph.KindClass
}

func (b *builder) method(owner *graph.Type, def ast.Stmt, name string, body []ast.Stmt) {
	if !b.include(name) {
		return
	}
	method := b.function(def, owner.Name)
	owner.AddMethod(method)
	if method.IsConstructor && name == "__init__" && len(method.Parameters) > 0 {
		b.instanceFields(owner, method.Parameters[0].Name, body)
	}
}

// instanceFields adds attributes assigned on self in a constructor body.
func (b *builder) instanceFields(owner *graph.Type, self string, body []ast.Stmt) {
	for _, stmt := range body {
		ast.Inspect(stmt, func(node ast.Node) bool {
			switch actual := node.(type) {
			case *ast.FunctionDef, *ast.AsyncFunctionDef, *ast.ClassDef, *ast.Lambda:
				return false
			case *ast.Assign:
				for _, target := range actual.Targets {
					if name, ok := selfAttribute(target, self); ok {
						b.field(owner, name, nil, actual.Value, actual, false)
					}
				}
			case *ast.AnnAssign:
				if name, ok := selfAttribute(actual.Target, self); ok {
					b.field(owner, name, actual.Annotation, actual.Value, actual, false)
				}
			}
			return true
		})
	}
}

func selfAttribute(target ast.Expr, self string) (string, bool) {
	attribute, ok := target.(*ast.Attribute)
	if !ok {
		return "", false
	}
	if name, ok := attribute.Value.(*ast.Name); ok && name.Id == self {
		return attribute.Attr, true
	}
	return "", false
}

// field adds a class attribute; the first declaration wins so a class body
// annotation is kept over a later constructor assignment.
func (b *builder) field(owner *graph.Type, name string, annotation, value ast.Expr, stmt ast.Stmt, classVar bool) {
	if !b.include(name) || owner.LookupField(name) != nil {
		return
	}
	typeName := b.src.expr(annotation)
	owner.AddField(&graph.Field{
		Name:       name,
		Type:       typeName,
		Value:      b.src.expr(value),
		Location:   b.src.location(stmt),
		Comment:    b.comment(stmt),
		IsExported: isExported(name),
		IsClassVar: classVar,
		IsConstant: isConstant(name, typeName) || (owner.Kind == graph.KindEnum && classVar && annotation == nil),
	})
}
