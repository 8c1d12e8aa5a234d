package graph

import (
	"strings"
)

// Kind classifies a Python type declaration.
type Kind string

const (
	KindClass      Kind = "class"
	KindDataclass  Kind = "dataclass"
	KindEnum       Kind = "enum"
	KindProtocol   Kind = "protocol"
	KindTypedDict  Kind = "typeddict"
	KindNamedTuple Kind = "namedtuple"
	KindException  Kind = "exception"
	// KindAlias is a "type X = ..." statement.
	KindAlias Kind = "alias"
)

// Type represents a class or type alias with rich metadata
type Type struct {
	Name        string        // Type name
	Kind        Kind          // Declaration kind
	Package     string        // Dotted package name
	PackagePath string        // Dotted module name
	Comment     *LocationNode // Comments directly above the declaration
	Docstring   string        // Cleaned docstring
	Annotation  *LocationNode // Decorators
	Decorators  []string      // Decorator expressions
	IsExported  bool          // Whether the name is public
	Fields      []*Field      // Class attributes
	Methods     []*Function   // Methods
	TypeParams  []*TypeParam  // PEP 695 type parameters
	Extends     []string      // Base class expressions
	Metaclass   string        // metaclass keyword
	Value       string        // Aliased type expression
	Location    *Location     // Location of the declaration in the source code
	Nested      []*Type       // Classes declared in the class body

	fieldMap  map[string]int
	methodMap map[string]int
}

// LookupField retrieves a field by name
func (t *Type) LookupField(name string) *Field {
	if t.fieldMap == nil {
		t.fieldMap = indexNames(len(t.Fields), func(i int) string { return t.Fields[i].Name })
	}
	if idx, ok := t.fieldMap[name]; ok && idx < len(t.Fields) {
		return t.Fields[idx]
	}
	return nil
}

// LookupMethod retrieves a method by name; a redefinition shadows earlier ones.
func (t *Type) LookupMethod(name string) *Function {
	if t.methodMap == nil {
		t.methodMap = indexNames(len(t.Methods), func(i int) string { return t.Methods[i].Name })
	}
	if idx, ok := t.methodMap[name]; ok && idx < len(t.Methods) {
		return t.Methods[idx]
	}
	return nil
}

// Content returns the declaration source preceded by its comment
func (t *Type) Content() string {
	if t.Location == nil {
		return ""
	}
	builder := &strings.Builder{}
	if t.Comment != nil && t.Comment.Text != "" {
		builder.WriteString(t.Comment.Raw)
		builder.WriteString("\n")
	}
	builder.WriteString(t.Location.Raw)
	return builder.String()
}

// AddField adds a field to the type
func (t *Type) AddField(field *Field) {
	t.Fields = append(t.Fields, field)
	t.fieldMap = nil
}

// AddMethod adds a method to the type
func (t *Type) AddMethod(method *Function) {
	t.Methods = append(t.Methods, method)
	t.methodMap = nil
}

// RemoveField removes a field from the type by name
func (t *Type) RemoveField(fieldName string) bool {
	for i, field := range t.Fields {
		if field.Name == fieldName {
			t.Fields = append(t.Fields[:i], t.Fields[i+1:]...)
			t.fieldMap = nil
			return true
		}
	}
	return false
}

// RemoveMethod removes a method from the type by name
func (t *Type) RemoveMethod(methodName string) bool {
	idx := -1
	for i, method := range t.Methods {
		if method.Name == methodName {
			idx = i
		}
	}
	if idx == -1 {
		return false
	}
	t.Methods = append(t.Methods[:idx], t.Methods[idx+1:]...)
	t.methodMap = nil
	return true
}

// Field represents a class attribute, declared in the class body or assigned
// on self in __init__
type Field struct {
	Name       string
	Type       string // Annotation
	Value      string // Assigned expression
	Location   *Location
	Comment    string
	IsExported bool
	IsClassVar bool // Declared in the class body
	IsConstant bool
}

func (f *Field) Content() string {
	if f.Location == nil {
		return ""
	}
	return f.Location.Raw
}

// Function represents a function or method
type Function struct {
	Name          string
	Comment       *LocationNode
	Docstring     string
	Annotation    *LocationNode // Decorators
	Decorators    []string
	Receiver      string // Owning class, empty for module functions
	TypeParams    []*TypeParam
	Parameters    []*Parameter
	Results       []*Parameter
	Body          *LocationNode
	IsExported    bool
	IsAsync       bool
	Location      *Location
	IsStatic      bool // @staticmethod
	IsClassMethod bool // @classmethod
	IsProperty    bool // @property
	IsConstructor bool // __init__ or __new__
	Signature     string
	Hash          uint64 // Hash of the body source
}

// Content returns the function source
func (m *Function) Content() string {
	if m.Location == nil {
		return ""
	}
	return m.Location.Raw
}

// TypeParamKind is the PEP 695 type parameter flavor.
type TypeParamKind string

const (
	TypeVar      TypeParamKind = "TypeVar"
	ParamSpec    TypeParamKind = "ParamSpec"
	TypeVarTuple TypeParamKind = "TypeVarTuple"
)

// TypeParam represents a PEP 695 type parameter
type TypeParam struct {
	Name       string
	Kind       TypeParamKind
	Constraint string // Bound expression
	Default    string
}

// ParameterKind tells how an argument binds to a parameter.
type ParameterKind string

const (
	PositionalOnly ParameterKind = "positional_only"
	Positional     ParameterKind = "positional"
	VarPositional  ParameterKind = "var_positional"
	KeywordOnly    ParameterKind = "keyword_only"
	VarKeyword     ParameterKind = "var_keyword"
	Result         ParameterKind = "result"
)

// Parameter represents a function parameter or result
type Parameter struct {
	Name    string
	Type    string // Annotation
	Default string
	Kind    ParameterKind
}

// Variable is a module level binding
type Variable struct {
	Name       string
	Comment    string
	Type       string // Annotation
	Value      string
	IsExported bool
	Location   *Location
}

// Constant is a module level binding with an upper case name
type Constant struct {
	Name       string
	Comment    string
	Type       string
	Value      string
	IsExported bool
	Location   *Location
}
