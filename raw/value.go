// Package raw holds the dynamically typed syntax tree produced by the Python
// interpreter before conversion. It performs no semantic validation.
package raw

import (
	"fmt"
	"sort"
)

// Value is a raw field value: String, Int, Null, *Node, List or *Literal.
type Value interface {
	rawValue()
}

type (
	// String is an identifier or string field.
	String string
	// Int is an integer field such as a location attribute.
	Int int
	// Null is an explicit null field.
	Null struct{}
	// List is a sequence field.
	List []Value
)

// Node is a raw node: its interpreter class name and its fields. A field
// missing from Fields is absent, which differs from Null.
type Node struct {
	Type   string
	Fields map[string]Value
}

// Literal is an interpreter tagged constant. Value forms per kind:
// int and float hold the decimal or repr text, complex holds a Complex, str
// holds a string (WTF-8 when the literal carries lone surrogates), bytes holds []byte, bool holds a bool, None and Ellipsis
// hold nil. Unknown kinds keep the decoded value verbatim.
type Literal struct {
	Kind  string
	Value any
}

// Complex is the payload of a complex literal, both parts in float repr text.
type Complex struct {
	Real string `json:"real" yaml:"real"`
	Imag string `json:"imag" yaml:"imag"`
}

// Tree is a raw module together with the version of the interpreter that produced it.
type Tree struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Root    *Node  `json:"tree" yaml:"tree"`
}

func (String) rawValue()   {}
func (Int) rawValue()      {}
func (Null) rawValue()     {}
func (List) rawValue()     {}
func (*Node) rawValue()    {}
func (*Literal) rawValue() {}

// NewNode returns a node of the given type with fields set from name, value pairs.
func NewNode(typeName string, pairs ...any) *Node {
	node := &Node{Type: typeName, Fields: make(map[string]Value, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		node.Fields[pairs[i].(string)] = pairs[i+1].(Value)
	}
	return node
}

// Field returns the named field and whether it is present.
func (n *Node) Field(name string) (Value, bool) {
	v, ok := n.Fields[name]
	return v, ok
}

// Names returns the field names in sorted order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.Fields))
	for name := range n.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return clone(n).(*Node)
}

func clone(v Value) Value {
	switch actual := v.(type) {
	case *Node:
		result := &Node{Type: actual.Type, Fields: make(map[string]Value, len(actual.Fields))}
		for name, field := range actual.Fields {
			result.Fields[name] = clone(field)
		}
		return result
	case List:
		result := make(List, len(actual))
		for i, item := range actual {
			result[i] = clone(item)
		}
		return result
	case *Literal:
		literal := *actual
		if data, ok := actual.Value.([]byte); ok {
			literal.Value = append([]byte{}, data...)
		}
		return &literal
	}
	return v
}

// Describe names the shape of a value for diagnostics, for example "list" or "node Name".
func Describe(v Value) string {
	switch actual := v.(type) {
	case nil:
		return "absent"
	case String:
		return "identifier"
	case Int:
		return "int"
	case Null:
		return "null"
	case List:
		return "list"
	case *Node:
		return "node " + actual.Type
	case *Literal:
		return "constant " + actual.Kind
	}
	return fmt.Sprintf("%T", v)
}
