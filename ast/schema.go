package ast

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Shape is the expected form of a field value in the raw tree.
type Shape int

const (
	ShapeIdentifier Shape = iota
	ShapeOptIdentifier
	ShapeInt
	ShapeOptInt
	ShapeConstant
	ShapeEnum
	ShapeNode
	ShapeOptNode
	ShapeSeq
	ShapeSeqOpt
	ShapeSeqIdentifier
	ShapeSeqEnum
)

var shapeNames = [...]string{
	ShapeIdentifier:    "identifier",
	ShapeOptIdentifier: "optional identifier",
	ShapeInt:           "int",
	ShapeOptInt:        "optional int",
	ShapeConstant:      "constant",
	ShapeEnum:          "enum",
	ShapeNode:          "node",
	ShapeOptNode:       "optional node",
	ShapeSeq:           "sequence",
	ShapeSeqOpt:        "sequence of optional nodes",
	ShapeSeqIdentifier: "sequence of identifiers",
	ShapeSeqEnum:       "sequence of enums",
}

func (s Shape) String() string { return enumName(shapeNames[:], int(s)) }

// Optional reports whether a field of this shape may be null or absent.
func (s Shape) Optional() bool {
	return s == ShapeOptIdentifier || s == ShapeOptInt || s == ShapeOptNode
}

// Sequence reports whether a field of this shape holds a list.
func (s Shape) Sequence() bool {
	return s == ShapeSeq || s == ShapeSeqOpt || s == ShapeSeqIdentifier || s == ShapeSeqEnum
}

// FieldSchema describes one field of a node variant.
type FieldSchema struct {
	// Name is the Python field name.
	Name  string
	Shape Shape
	// Base is the ASDL type of node and enum fields (expr, stmt, arguments, operator, ...).
	Base string
	// Since is the grammar version that introduced the field, empty when it always existed.
	Since string
	// Index is the Go struct field index.
	Index []int
	// Type is the Go type of the field.
	Type reflect.Type
}

// String renders the field in ASDL notation, for example "expr? returns".
func (f *FieldSchema) String() string {
	return f.Expected() + " " + f.Name
}

// Expected describes the accepted value in ASDL notation.
func (f *FieldSchema) Expected() string {
	switch f.Shape {
	case ShapeIdentifier:
		return "identifier"
	case ShapeOptIdentifier:
		return "identifier?"
	case ShapeInt:
		return "int"
	case ShapeOptInt:
		return "int?"
	case ShapeConstant:
		return "constant"
	case ShapeEnum, ShapeNode:
		return f.Base
	case ShapeOptNode:
		return f.Base + "?"
	case ShapeSeq, ShapeSeqEnum:
		return f.Base + "*"
	case ShapeSeqOpt:
		return f.Base + "?*"
	case ShapeSeqIdentifier:
		return "identifier*"
	}
	return "?"
}

// Schema describes one variant: a node class or an enumeration tag of Python's ast module.
type Schema struct {
	// Tag is the Python class name.
	Tag string
	// Base is the ASDL type the variant belongs to (stmt, expr, operator, ...).
	Base string
	// Type is the Go type: a struct pointer for nodes, the enum type for enumerations.
	Type reflect.Type
	// Fields lists the node fields in Python's _fields order.
	Fields []FieldSchema
	// Located reports whether the variant carries lineno/col_offset/end_lineno/end_col_offset.
	Located bool
	// Value is the enumeration value when IsEnum.
	Value int
}

// IsEnum reports whether the variant is a payload free enumeration tag.
func (s *Schema) IsEnum() bool { return s.Type.Kind() == reflect.Int }

// Field returns the field schema by Python name.
func (s *Schema) Field(name string) (*FieldSchema, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// New allocates a zero node of the variant; it returns nil for enumerations.
func (s *Schema) New() reflect.Value {
	if s.IsEnum() {
		return reflect.Value{}
	}
	return reflect.New(s.Type.Elem())
}

// String renders the variant in ASDL notation.
func (s *Schema) String() string {
	if len(s.Fields) == 0 {
		return s.Tag
	}
	fields := make([]string, len(s.Fields))
	for i := range s.Fields {
		fields[i] = s.Fields[i].String()
	}
	return s.Tag + "(" + strings.Join(fields, ", ") + ")"
}

type variant struct {
	tag  string
	base string
	typ  any
}

var variants = []variant{
	{"Module", "mod", (*Module)(nil)},
	{"Interactive", "mod", (*Interactive)(nil)},
	{"Expression", "mod", (*Expression)(nil)},
	{"FunctionType", "mod", (*FunctionType)(nil)},

	{"FunctionDef", "stmt", (*FunctionDef)(nil)},
	{"AsyncFunctionDef", "stmt", (*AsyncFunctionDef)(nil)},
	{"ClassDef", "stmt", (*ClassDef)(nil)},
	{"Return", "stmt", (*Return)(nil)},
	{"Delete", "stmt", (*Delete)(nil)},
	{"Assign", "stmt", (*Assign)(nil)},
	{"TypeAlias", "stmt", (*TypeAlias)(nil)},
	{"AugAssign", "stmt", (*AugAssign)(nil)},
	{"AnnAssign", "stmt", (*AnnAssign)(nil)},
	{"For", "stmt", (*For)(nil)},
	{"AsyncFor", "stmt", (*AsyncFor)(nil)},
	{"While", "stmt", (*While)(nil)},
	{"If", "stmt", (*If)(nil)},
	{"With", "stmt", (*With)(nil)},
	{"AsyncWith", "stmt", (*AsyncWith)(nil)},
	{"Match", "stmt", (*Match)(nil)},
	{"Raise", "stmt", (*Raise)(nil)},
	{"Try", "stmt", (*Try)(nil)},
	{"TryStar", "stmt", (*TryStar)(nil)},
	{"Assert", "stmt", (*Assert)(nil)},
	{"Import", "stmt", (*Import)(nil)},
	{"ImportFrom", "stmt", (*ImportFrom)(nil)},
	{"Global", "stmt", (*Global)(nil)},
	{"Nonlocal", "stmt", (*Nonlocal)(nil)},
	{"Expr", "stmt", (*ExprStmt)(nil)},
	{"Pass", "stmt", (*Pass)(nil)},
	{"Break", "stmt", (*Break)(nil)},
	{"Continue", "stmt", (*Continue)(nil)},

	{"BoolOp", "expr", (*BoolOp)(nil)},
	{"NamedExpr", "expr", (*NamedExpr)(nil)},
	{"BinOp", "expr", (*BinOp)(nil)},
	{"UnaryOp", "expr", (*UnaryOp)(nil)},
	{"Lambda", "expr", (*Lambda)(nil)},
	{"IfExp", "expr", (*IfExp)(nil)},
	{"Dict", "expr", (*Dict)(nil)},
	{"Set", "expr", (*Set)(nil)},
	{"ListComp", "expr", (*ListComp)(nil)},
	{"SetComp", "expr", (*SetComp)(nil)},
	{"DictComp", "expr", (*DictComp)(nil)},
	{"GeneratorExp", "expr", (*GeneratorExp)(nil)},
	{"Await", "expr", (*Await)(nil)},
	{"Yield", "expr", (*Yield)(nil)},
	{"YieldFrom", "expr", (*YieldFrom)(nil)},
	{"Compare", "expr", (*Compare)(nil)},
	{"Call", "expr", (*Call)(nil)},
	{"FormattedValue", "expr", (*FormattedValue)(nil)},
	{"JoinedStr", "expr", (*JoinedStr)(nil)},
	{"Constant", "expr", (*Constant)(nil)},
	{"Attribute", "expr", (*Attribute)(nil)},
	{"Subscript", "expr", (*Subscript)(nil)},
	{"Starred", "expr", (*Starred)(nil)},
	{"Name", "expr", (*Name)(nil)},
	{"List", "expr", (*List)(nil)},
	{"Tuple", "expr", (*Tuple)(nil)},
	{"Slice", "expr", (*Slice)(nil)},

	{"Load", "expr_context", Load},
	{"Store", "expr_context", Store},
	{"Del", "expr_context", Del},

	{"And", "boolop", And},
	{"Or", "boolop", Or},

	{"Add", "operator", Add},
	{"Sub", "operator", Sub},
	{"Mult", "operator", Mult},
	{"MatMult", "operator", MatMult},
	{"Div", "operator", Div},
	{"Mod", "operator", Modulo},
	{"Pow", "operator", Pow},
	{"LShift", "operator", LShift},
	{"RShift", "operator", RShift},
	{"BitOr", "operator", BitOr},
	{"BitXor", "operator", BitXor},
	{"BitAnd", "operator", BitAnd},
	{"FloorDiv", "operator", FloorDiv},

	{"Invert", "unaryop", Invert},
	{"Not", "unaryop", Not},
	{"UAdd", "unaryop", UAdd},
	{"USub", "unaryop", USub},

	{"Eq", "cmpop", Eq},
	{"NotEq", "cmpop", NotEq},
	{"Lt", "cmpop", Lt},
	{"LtE", "cmpop", LtE},
	{"Gt", "cmpop", Gt},
	{"GtE", "cmpop", GtE},
	{"Is", "cmpop", Is},
	{"IsNot", "cmpop", IsNot},
	{"In", "cmpop", In},
	{"NotIn", "cmpop", NotIn},

	{"comprehension", "comprehension", (*Comprehension)(nil)},
	{"ExceptHandler", "excepthandler", (*ExceptHandler)(nil)},
	{"arguments", "arguments", (*Arguments)(nil)},
	{"arg", "arg", (*Arg)(nil)},
	{"keyword", "keyword", (*Keyword)(nil)},
	{"alias", "alias", (*Alias)(nil)},
	{"withitem", "withitem", (*WithItem)(nil)},
	{"match_case", "match_case", (*MatchCase)(nil)},

	{"MatchValue", "pattern", (*MatchValue)(nil)},
	{"MatchSingleton", "pattern", (*MatchSingleton)(nil)},
	{"MatchSequence", "pattern", (*MatchSequence)(nil)},
	{"MatchMapping", "pattern", (*MatchMapping)(nil)},
	{"MatchClass", "pattern", (*MatchClass)(nil)},
	{"MatchStar", "pattern", (*MatchStar)(nil)},
	{"MatchAs", "pattern", (*MatchAs)(nil)},
	{"MatchOr", "pattern", (*MatchOr)(nil)},

	{"TypeIgnore", "type_ignore", (*TypeIgnore)(nil)},

	{"TypeVar", "type_param", (*TypeVar)(nil)},
	{"ParamSpec", "type_param", (*ParamSpec)(nil)},
	{"TypeVarTuple", "type_param", (*TypeVarTuple)(nil)},
}

var (
	byTag    = map[string]*Schema{}
	byType   = map[reflect.Type]*Schema{}
	byEnum   = map[reflect.Type][]*Schema{}
	ordered  []*Schema
	locType  = reflect.TypeOf(Loc{})
	strType  = reflect.TypeOf("")
	intType  = reflect.TypeOf(0)
	constant = reflect.TypeOf((*ConstantValue)(nil)).Elem()

	interfaceBases = map[reflect.Type]string{
		reflect.TypeOf((*Mod)(nil)).Elem():       "mod",
		reflect.TypeOf((*Stmt)(nil)).Elem():      "stmt",
		reflect.TypeOf((*Expr)(nil)).Elem():      "expr",
		reflect.TypeOf((*Pattern)(nil)).Elem():   "pattern",
		reflect.TypeOf((*TypeParam)(nil)).Elem(): "type_param",
	}
	enumBases = map[reflect.Type]string{}
	nodeBases = map[reflect.Type]string{}
)

func init() {
	for _, v := range variants {
		t := reflect.TypeOf(v.typ)
		schema := &Schema{Tag: v.tag, Base: v.base, Type: t}
		if t.Kind() == reflect.Int {
			schema.Value = int(reflect.ValueOf(v.typ).Int())
			enumBases[t] = v.base
			byEnum[t] = append(byEnum[t], schema)
		} else {
			nodeBases[t] = v.base
			byType[t] = schema
		}
		byTag[v.tag] = schema
		ordered = append(ordered, schema)
	}
	for _, schema := range ordered {
		if schema.IsEnum() {
			continue
		}
		if err := schema.build(); err != nil {
			panic(err)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Tag < ordered[j].Tag })
}

func (s *Schema) build() error {
	structType := s.Type.Elem()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous && field.Type == locType {
			s.Located = true
			continue
		}
		tag, ok := field.Tag.Lookup("py")
		if !ok {
			continue
		}
		fieldSchema, err := newFieldSchema(field, tag)
		if err != nil {
			return fmt.Errorf("invalid schema %v.%v: %w", s.Tag, field.Name, err)
		}
		s.Fields = append(s.Fields, *fieldSchema)
	}
	return nil
}

func newFieldSchema(field reflect.StructField, tag string) (*FieldSchema, error) {
	parts := strings.Split(tag, ",")
	result := &FieldSchema{Name: parts[0], Index: field.Index, Type: field.Type}
	var optional, nullable bool
	for _, option := range parts[1:] {
		switch {
		case option == "optional":
			optional = true
		case option == "nullable":
			nullable = true
		case strings.HasPrefix(option, "since="):
			result.Since = strings.TrimPrefix(option, "since=")
		default:
			return nil, fmt.Errorf("unsupported option: %v", option)
		}
	}
	t := field.Type
	switch {
	case t == strType:
		result.Shape = ShapeIdentifier
	case t.Kind() == reflect.Ptr && t.Elem() == strType:
		result.Shape = ShapeOptIdentifier
	case t.Kind() == reflect.Ptr && t.Elem() == intType:
		result.Shape = ShapeOptInt
	case t == constant:
		result.Shape = ShapeConstant
	case enumBases[t] != "":
		result.Shape, result.Base = ShapeEnum, enumBases[t]
	case t == intType:
		result.Shape = ShapeInt
	case nodeBase(t) != "":
		result.Shape, result.Base = ShapeNode, nodeBase(t)
		if optional {
			result.Shape = ShapeOptNode
		}
	case t.Kind() == reflect.Slice:
		elem := t.Elem()
		switch {
		case elem == strType:
			result.Shape = ShapeSeqIdentifier
		case enumBases[elem] != "":
			result.Shape, result.Base = ShapeSeqEnum, enumBases[elem]
		case nodeBase(elem) != "":
			result.Shape, result.Base = ShapeSeq, nodeBase(elem)
			if nullable {
				result.Shape = ShapeSeqOpt
			}
		default:
			return nil, fmt.Errorf("unsupported element type: %v", elem)
		}
	default:
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
	return result, nil
}

func nodeBase(t reflect.Type) string {
	if base, ok := interfaceBases[t]; ok {
		return base
	}
	return nodeBases[t]
}

// Lookup returns the variant schema for a Python ast class name.
func Lookup(tag string) (*Schema, bool) {
	schema, ok := byTag[tag]
	return schema, ok
}

// SchemaOf returns the schema of a node or enumeration value.
func SchemaOf(v any) (*Schema, bool) {
	t := reflect.TypeOf(v)
	if schema, ok := byType[t]; ok {
		return schema, true
	}
	for _, schema := range byEnum[t] {
		if int(reflect.ValueOf(v).Int()) == schema.Value {
			return schema, true
		}
	}
	return nil, false
}

// TagOf returns the Python class name of a node or enumeration value.
func TagOf(v any) string {
	if schema, ok := SchemaOf(v); ok {
		return schema.Tag
	}
	return ""
}

// Schemas returns every variant sorted by tag.
func Schemas() []*Schema {
	result := make([]*Schema, len(ordered))
	copy(result, ordered)
	return result
}

// Accepts reports whether a variant may fill a field of the given Go type.
func (s *Schema) Accepts(t reflect.Type) bool {
	if s.IsEnum() {
		return s.Type == t
	}
	return s.Type.AssignableTo(t)
}
