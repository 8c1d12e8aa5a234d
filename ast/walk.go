package ast

import "reflect"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree depth-first in field order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree depth-first; f is called for every node and
// with nil after the children of a node; returning false skips the children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children returns the direct child nodes of node in field order; nil
// entries of optional fields and sequences are skipped.
func Children(node Node) []Node {
	schema, ok := SchemaOf(node)
	if !ok {
		return nil
	}
	v := reflect.ValueOf(node)
	if v.IsNil() {
		return nil
	}
	v = v.Elem()
	var result []Node
	for i := range schema.Fields {
		field := &schema.Fields[i]
		value := v.FieldByIndex(field.Index)
		switch field.Shape {
		case ShapeNode, ShapeOptNode:
			if child, ok := asNode(value); ok {
				result = append(result, child)
			}
		case ShapeSeq, ShapeSeqOpt:
			for j := 0; j < value.Len(); j++ {
				if child, ok := asNode(value.Index(j)); ok {
					result = append(result, child)
				}
			}
		}
	}
	return result
}

func asNode(v reflect.Value) (Node, bool) {
	if v.IsNil() {
		return nil, false
	}
	node, ok := v.Interface().(Node)
	return node, ok
}
