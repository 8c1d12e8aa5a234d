package ast

import (
	"reflect"
	"strconv"
	"strings"
)

// DumpOptions controls Dump output.
type DumpOptions struct {
	// Indent, when not empty, pretty prints nested nodes one per line.
	Indent string
	// IncludeAttributes adds lineno, col_offset, end_lineno and end_col_offset.
	IncludeAttributes bool
}

// Dump renders the tree exactly like Python 3.12's ast.dump(node).
func Dump(n Node) string {
	return DumpWith(n, DumpOptions{})
}

// DumpWith renders the tree like ast.dump(node, indent=..., include_attributes=...).
func DumpWith(n Node, opts DumpOptions) string {
	d := &dumper{DumpOptions: opts}
	text, _ := d.format(reflect.ValueOf(n), 0)
	return text
}

type dumper struct {
	DumpOptions
}

var attributeNames = [...]string{"lineno", "col_offset", "end_lineno", "end_col_offset"}

// format returns the rendered value and whether it is simple enough to keep
// on one line with its siblings.
func (d *dumper) format(v reflect.Value, level int) (string, bool) {
	prefix, sep := "", ", "
	if d.Indent != "" {
		level++
		prefix = "\n" + strings.Repeat(d.Indent, level)
		sep = ",\n" + strings.Repeat(d.Indent, level)
	}
	if !v.IsValid() {
		return "None", true
	}
	if v.Kind() == reflect.Interface || (v.Kind() == reflect.Ptr && v.Type().Elem().Kind() != reflect.Struct) {
		if v.IsNil() {
			return "None", true
		}
		return d.format(v.Elem(), level-d.levelStep())
	}
	if value, ok := v.Interface().(ConstantValue); ok {
		return value.Repr(), true
	}
	if schema, ok := SchemaOf(v.Interface()); ok {
		if schema.IsEnum() {
			return schema.Tag + "()", true
		}
		if v.IsNil() {
			return "None", true
		}
		return d.formatNode(schema, v.Elem(), level, prefix, sep)
	}
	switch v.Kind() {
	case reflect.String:
		return strRepr(v.String()), true
	case reflect.Int:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Slice:
		if v.Len() == 0 {
			return "[]", true
		}
		items := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			items[i], _ = d.format(v.Index(i), level)
		}
		return "[" + prefix + strings.Join(items, sep) + "]", false
	}
	return "?", true
}

func (d *dumper) levelStep() int {
	if d.Indent != "" {
		return 1
	}
	return 0
}

func (d *dumper) formatNode(schema *Schema, v reflect.Value, level int, prefix, sep string) (string, bool) {
	var args []string
	allSimple := true
	for i := range schema.Fields {
		field := &schema.Fields[i]
		value := v.FieldByIndex(field.Index)
		if field.Shape.Optional() && value.IsNil() {
			continue
		}
		text, simple := d.format(value, level)
		allSimple = allSimple && simple
		args = append(args, field.Name+"="+text)
	}
	if d.IncludeAttributes && schema.Located {
		if span := v.Addr().Interface().(Node).Span(); span != nil {
			for i, value := range []int{span.Lineno, span.ColOffset, span.EndLineno, span.EndColOffset} {
				args = append(args, attributeNames[i]+"="+strconv.Itoa(value))
			}
		}
	}
	if allSimple && len(args) <= 3 {
		return schema.Tag + "(" + strings.Join(args, ", ") + ")", len(args) == 0
	}
	return schema.Tag + "(" + prefix + strings.Join(args, sep) + ")", false
}
