package convert

import (
	"reflect"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/raw"
)

// ToRaw rebuilds the raw tree of a typed node through the node schema, the
// way an interpreter of the given version would produce it. Fields newer than
// version are left out; an empty version keeps every field. Optional values
// that are not set become null and located nodes with a span carry the four
// location attributes.
func ToRaw(node ast.Node, version string) *raw.Node {
	if node == nil {
		return nil
	}
	v := reflect.ValueOf(node)
	if v.IsNil() {
		return nil
	}
	return toRaw(v, version)
}

func toRaw(v reflect.Value, version string) *raw.Node {
	schema, ok := ast.SchemaOf(v.Interface())
	if !ok {
		return nil
	}
	if schema.IsEnum() {
		return &raw.Node{Type: schema.Tag, Fields: map[string]raw.Value{}}
	}
	ret := &raw.Node{Type: schema.Tag, Fields: make(map[string]raw.Value, len(schema.Fields)+len(attributes))}
	elem := v.Elem()
	for i := range schema.Fields {
		field := &schema.Fields[i]
		if !field.ExistsIn(version) {
			continue
		}
		ret.Fields[field.Name] = fieldToRaw(field, elem.FieldByIndex(field.Index), version)
	}
	if schema.Located {
		if span := v.Interface().(ast.Node).Span(); span != nil {
			ret.Fields["lineno"] = raw.Int(span.Lineno)
			ret.Fields["col_offset"] = raw.Int(span.ColOffset)
			ret.Fields["end_lineno"] = raw.Int(span.EndLineno)
			ret.Fields["end_col_offset"] = raw.Int(span.EndColOffset)
		}
	}
	return ret
}

func fieldToRaw(field *ast.FieldSchema, v reflect.Value, version string) raw.Value {
	switch field.Shape {
	case ast.ShapeIdentifier:
		return raw.String(v.String())
	case ast.ShapeInt:
		return raw.Int(v.Int())
	case ast.ShapeOptIdentifier:
		if v.IsNil() {
			return raw.Null{}
		}
		return raw.String(v.Elem().String())
	case ast.ShapeOptInt:
		if v.IsNil() {
			return raw.Null{}
		}
		return raw.Int(v.Elem().Int())
	case ast.ShapeConstant:
		if v.IsNil() {
			return raw.Null{}
		}
		return literalOf(v.Interface().(ast.ConstantValue))
	case ast.ShapeEnum, ast.ShapeNode, ast.ShapeOptNode:
		return valueToRaw(v, version)
	}
	list := make(raw.List, v.Len())
	for i := range list {
		item := v.Index(i)
		if field.Shape == ast.ShapeSeqIdentifier {
			list[i] = raw.String(item.String())
			continue
		}
		list[i] = valueToRaw(item, version)
	}
	return list
}

func valueToRaw(v reflect.Value, version string) raw.Value {
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) && v.IsNil() {
		return raw.Null{}
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return toRaw(v, version)
}

func literalOf(value ast.ConstantValue) *raw.Literal {
	literal := &raw.Literal{Kind: value.Kind()}
	switch actual := value.(type) {
	case ast.Int:
		literal.Value = string(actual)
	case ast.Float:
		literal.Value = actual.Repr()
	case ast.Complex:
		literal.Value = raw.Complex{Real: ast.Float(real(actual)).Repr(), Imag: ast.Float(imag(actual)).Repr()}
	case ast.Str:
		literal.Value = string(actual)
	case ast.Bytes:
		literal.Value = []byte(actual)
	case ast.Bool:
		literal.Value = bool(actual)
	}
	return literal
}
