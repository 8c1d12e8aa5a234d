// Package convert turns raw interpreter trees into typed syntax trees.
//
// Conversion is driven by the schema declared on the ast node types: every
// raw node is looked up by class name, each declared field is checked for
// presence and shape and converted depth-first. Any mismatch aborts the whole
// conversion with a single *Error carrying the path to the offending value.
package convert

import (
	"reflect"
	"strings"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/raw"
)

// Converter converts raw trees. It holds no per-call state and is safe for concurrent use.
type Converter struct {
	version          string
	ignoreUnexpected bool
}

// New creates a converter.
func New(opts ...Option) *Converter {
	ret := &Converter{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

var defaultConverter = New()

// Module converts a tree whose root is a Module with the default converter.
func Module(tree *raw.Tree) (*ast.Module, error) {
	return defaultConverter.Module(tree)
}

// Module converts a tree whose root must be a Module.
func (c *Converter) Module(tree *raw.Tree) (*ast.Module, error) {
	node, err := c.convertRoot(tree, moduleType, "Module")
	if err != nil {
		return nil, err
	}
	return node.(*ast.Module), nil
}

// Mod converts a tree whose root is any of Module, Interactive, Expression or FunctionType.
func (c *Converter) Mod(tree *raw.Tree) (ast.Mod, error) {
	node, err := c.convertRoot(tree, modType, "mod")
	if err != nil {
		return nil, err
	}
	return node.(ast.Mod), nil
}

// Node converts a tree rooted at any node variant.
func (c *Converter) Node(tree *raw.Tree) (ast.Node, error) {
	return c.convertRoot(tree, nodeType, "node")
}

var (
	moduleType = reflect.TypeOf((*ast.Module)(nil))
	modType    = reflect.TypeOf((*ast.Mod)(nil)).Elem()
	nodeType   = reflect.TypeOf((*ast.Node)(nil)).Elem()
)

func (c *Converter) convertRoot(tree *raw.Tree, target reflect.Type, expected string) (ast.Node, error) {
	s := &state{Converter: c, version: tree.Version}
	if s.version == "" {
		s.version = c.version
	}
	s.path = Path{{Index: -1}}
	if tree.Root == nil {
		return nil, s.fail(&Error{Kind: ShapeMismatch, Tag: "tree", Field: "root", Expected: expected, Actual: raw.Describe(nil)})
	}
	value, err := s.node(tree.Root, target, expected, "tree", "root")
	if err != nil {
		return nil, err
	}
	return value.Interface().(ast.Node), nil
}

type state struct {
	*Converter
	version string
	path    Path
}

func (s *state) fail(err *Error) *Error {
	err.Path = append(Path{}, s.path...)
	return err
}

func (s *state) push(field string, index int) {
	s.path = append(s.path, Step{Field: field, Index: index})
}

func (s *state) pop() {
	s.path = s.path[:len(s.path)-1]
}

// node converts n into a value assignable to target; parent and field name
// the enclosing node for category mismatches.
func (s *state) node(n *raw.Node, target reflect.Type, expected, parent, field string) (reflect.Value, error) {
	schema, ok := ast.Lookup(n.Type)
	if !ok {
		return reflect.Value{}, s.fail(&Error{Kind: UnknownNodeKind, Tag: n.Type})
	}
	if !schema.Accepts(target) {
		return reflect.Value{}, s.fail(&Error{Kind: ShapeMismatch, Tag: parent, Field: field, Expected: expected, Actual: raw.Describe(n)})
	}
	s.path[len(s.path)-1].Tag = n.Type
	if schema.IsEnum() {
		if len(n.Fields) > 0 {
			return reflect.Value{}, s.fail(&Error{Kind: UnexpectedField, Tag: n.Type, Field: n.Names()[0]})
		}
		return reflect.ValueOf(schema.Value).Convert(schema.Type), nil
	}
	ret := schema.New()
	elem := ret.Elem()
	for i := range schema.Fields {
		fieldSchema := &schema.Fields[i]
		value, present := n.Fields[fieldSchema.Name]
		if err := s.field(schema, fieldSchema, value, present, elem.FieldByIndex(fieldSchema.Index)); err != nil {
			return reflect.Value{}, err
		}
	}
	if err := s.checkUnexpected(schema, n); err != nil {
		return reflect.Value{}, err
	}
	if schema.Located {
		span, err := s.location(n)
		if err != nil {
			return reflect.Value{}, err
		}
		if span != nil {
			elem.FieldByName("Location").Set(reflect.ValueOf(span))
		}
	}
	return ret, nil
}

func (s *state) checkUnexpected(schema *ast.Schema, n *raw.Node) error {
	if s.ignoreUnexpected {
		return nil
	}
	for _, name := range n.Names() {
		if _, ok := schema.Field(name); ok {
			continue
		}
		if schema.Located && isAttribute(name) {
			continue
		}
		return s.fail(&Error{Kind: UnexpectedField, Tag: schema.Tag, Field: name})
	}
	return nil
}

func (s *state) field(schema *ast.Schema, field *ast.FieldSchema, value raw.Value, present bool, dest reflect.Value) error {
	if !present {
		if field.Shape.Optional() || !field.ExistsIn(s.version) {
			return nil
		}
		return s.fail(&Error{Kind: MissingField, Tag: schema.Tag, Field: field.Name})
	}
	s.push(field.Name, -1)
	defer s.pop()
	if _, isNull := value.(raw.Null); isNull {
		if field.Shape.Optional() {
			return nil
		}
		return s.mismatch(schema, field, value)
	}
	switch field.Shape {
	case ast.ShapeIdentifier, ast.ShapeOptIdentifier:
		text, ok := value.(raw.String)
		if !ok {
			return s.mismatch(schema, field, value)
		}
		setScalar(dest, reflect.ValueOf(string(text)))
	case ast.ShapeInt, ast.ShapeOptInt:
		number, ok := value.(raw.Int)
		if !ok {
			return s.mismatch(schema, field, value)
		}
		setScalar(dest, reflect.ValueOf(int(number)))
	case ast.ShapeConstant:
		literal, ok := value.(*raw.Literal)
		if !ok {
			return s.mismatch(schema, field, value)
		}
		constant, err := s.constant(schema, field, literal)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(constant))
	case ast.ShapeEnum, ast.ShapeNode, ast.ShapeOptNode:
		child, ok := value.(*raw.Node)
		if !ok {
			return s.mismatch(schema, field, value)
		}
		converted, err := s.node(child, field.Type, field.Base, schema.Tag, field.Name)
		if err != nil {
			return err
		}
		dest.Set(converted)
	default:
		return s.sequence(schema, field, value, dest)
	}
	return nil
}

func (s *state) sequence(schema *ast.Schema, field *ast.FieldSchema, value raw.Value, dest reflect.Value) error {
	list, ok := value.(raw.List)
	if !ok {
		return s.mismatch(schema, field, value)
	}
	result := reflect.MakeSlice(field.Type, len(list), len(list))
	elemType := field.Type.Elem()
	for i, item := range list {
		s.path[len(s.path)-1].Index = i
		switch actual := item.(type) {
		case raw.String:
			if field.Shape != ast.ShapeSeqIdentifier {
				return s.mismatch(schema, field, item)
			}
			result.Index(i).SetString(string(actual))
		case raw.Null:
			if field.Shape != ast.ShapeSeqOpt {
				return s.mismatch(schema, field, item)
			}
		case *raw.Node:
			if field.Shape == ast.ShapeSeqIdentifier {
				return s.mismatch(schema, field, item)
			}
			converted, err := s.node(actual, elemType, field.Base, schema.Tag, field.Name)
			if err != nil {
				return err
			}
			result.Index(i).Set(converted)
		default:
			return s.mismatch(schema, field, item)
		}
		s.path[len(s.path)-1].Tag = ""
	}
	dest.Set(result)
	return nil
}

func (s *state) mismatch(schema *ast.Schema, field *ast.FieldSchema, value raw.Value) error {
	expected := field.Expected()
	if field.Shape.Sequence() && s.path[len(s.path)-1].Index >= 0 {
		expected = strings.TrimSuffix(expected, "*")
	}
	return s.fail(&Error{Kind: ShapeMismatch, Tag: schema.Tag, Field: field.Name, Expected: expected, Actual: raw.Describe(value)})
}

// setScalar sets a string or int field, allocating the pointer of optional fields.
func setScalar(dest, value reflect.Value) {
	if dest.Kind() == reflect.Ptr {
		ptr := reflect.New(dest.Type().Elem())
		ptr.Elem().Set(value)
		dest.Set(ptr)
		return
	}
	dest.Set(value)
}
