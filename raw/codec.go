package raw

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	typeKey  = "_type"
	constKey = "_const"
	valueKey = "value"
	wtf8Key  = "wtf8"
)

// DecodeJSON decodes a {"version": ..., "tree": ...} document.
func DecodeJSON(data []byte) (*Tree, error) {
	tree := &Tree{}
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("failed to decode raw tree: %w", err)
	}
	if tree.Root == nil {
		return nil, fmt.Errorf("failed to decode raw tree: missing tree")
	}
	return tree, nil
}

// DecodeYAML decodes a raw tree fixture written in YAML.
func DecodeYAML(data []byte) (*Tree, error) {
	tree := &Tree{}
	if err := yaml.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("failed to decode raw tree: %w", err)
	}
	if tree.Root == nil {
		return nil, fmt.Errorf("failed to decode raw tree: missing tree")
	}
	return tree, nil
}

// UnmarshalJSON decodes the interpreter wire format of a node.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var plain any
	if err := decoder.Decode(&plain); err != nil {
		return err
	}
	return n.fromPlain(plain)
}

// MarshalJSON encodes the node in the interpreter wire format with sorted keys.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(Plain(n))
}

// UnmarshalYAML decodes a node written in YAML.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var plain any
	if err := value.Decode(&plain); err != nil {
		return err
	}
	return n.fromPlain(plain)
}

// MarshalYAML encodes the node with the same layout as the wire format.
func (n *Node) MarshalYAML() (any, error) {
	return Plain(n), nil
}

func (n *Node) fromPlain(plain any) error {
	value, err := FromPlain(plain)
	if err != nil {
		return err
	}
	node, ok := value.(*Node)
	if !ok {
		return fmt.Errorf("expected node, but had %v", Describe(value))
	}
	*n = *node
	return nil
}

// FromPlain converts a generically decoded JSON or YAML value into a raw value.
func FromPlain(plain any) (Value, error) {
	switch actual := plain.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(actual), nil
	case int:
		return Int(actual), nil
	case int64:
		return Int(actual), nil
	case uint64:
		return Int(actual), nil
	case float64:
		if actual != math.Trunc(actual) {
			return nil, fmt.Errorf("unexpected number %v outside constant", actual)
		}
		return Int(actual), nil
	case json.Number:
		v, err := strconv.Atoi(actual.String())
		if err != nil {
			return nil, fmt.Errorf("unexpected number %v outside constant", actual)
		}
		return Int(v), nil
	case []any:
		result := make(List, len(actual))
		for i, item := range actual {
			value, err := FromPlain(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			result[i] = value
		}
		return result, nil
	case map[string]any:
		if _, ok := actual[constKey]; ok {
			return literalFromPlain(actual)
		}
		return nodeFromPlain(actual)
	}
	return nil, fmt.Errorf("unexpected %T value outside constant", plain)
}

func nodeFromPlain(fields map[string]any) (*Node, error) {
	typeName, ok := fields[typeKey].(string)
	if !ok {
		return nil, fmt.Errorf("object without %v", typeKey)
	}
	node := &Node{Type: typeName, Fields: make(map[string]Value, len(fields)-1)}
	for name, item := range fields {
		if name == typeKey {
			continue
		}
		value, err := FromPlain(item)
		if err != nil {
			return nil, fmt.Errorf("%v.%v: %w", typeName, name, err)
		}
		node.Fields[name] = value
	}
	return node, nil
}

func literalFromPlain(fields map[string]any) (*Literal, error) {
	kind, ok := fields[constKey].(string)
	if !ok {
		return nil, fmt.Errorf("invalid %v: %v", constKey, fields[constKey])
	}
	payload := fields[valueKey]
	literal := &Literal{Kind: kind}
	var err error
	switch kind {
	case "int", "float":
		literal.Value, err = numberText(payload)
	case "complex":
		parts, ok := payload.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid complex constant: %v", payload)
		}
		value := Complex{}
		if value.Real, err = numberText(parts["real"]); err == nil {
			value.Imag, err = numberText(parts["imag"])
		}
		literal.Value = value
	case "str":
		text, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("invalid str constant: %v", payload)
		}
		literal.Value = text
		if encoded, ok := fields[wtf8Key].(string); ok {
			var data []byte
			if data, err = base64.StdEncoding.DecodeString(encoded); err == nil {
				literal.Value = string(data)
			}
		}
	case "bytes":
		text, ok := payload.(string)
		if !ok {
			return nil, fmt.Errorf("invalid bytes constant: %v", payload)
		}
		literal.Value, err = base64.StdEncoding.DecodeString(text)
	case "bool":
		flag, ok := payload.(bool)
		if !ok {
			return nil, fmt.Errorf("invalid bool constant: %v", payload)
		}
		literal.Value = flag
	case "None", "Ellipsis":
	default:
		literal.Value = payload
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %v constant: %w", kind, err)
	}
	return literal, nil
}

func numberText(v any) (string, error) {
	switch actual := v.(type) {
	case string:
		return actual, nil
	case json.Number:
		return actual.String(), nil
	case int:
		return strconv.Itoa(actual), nil
	case int64:
		return strconv.FormatInt(actual, 10), nil
	case uint64:
		return strconv.FormatUint(actual, 10), nil
	case float64:
		return strconv.FormatFloat(actual, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("expected number, but had %T", v)
}

// Plain converts a raw value into maps, slices and scalars for generic encoders.
func Plain(v Value) any {
	switch actual := v.(type) {
	case String:
		return string(actual)
	case Int:
		return int(actual)
	case List:
		result := make([]any, len(actual))
		for i, item := range actual {
			result[i] = Plain(item)
		}
		return result
	case *Node:
		result := make(map[string]any, len(actual.Fields)+1)
		result[typeKey] = actual.Type
		for name, field := range actual.Fields {
			result[name] = Plain(field)
		}
		return result
	case *Literal:
		result := map[string]any{constKey: actual.Kind}
		switch payload := actual.Value.(type) {
		case nil:
		case []byte:
			result[valueKey] = base64.StdEncoding.EncodeToString(payload)
		case Complex:
			result[valueKey] = map[string]any{"real": payload.Real, "imag": payload.Imag}
		case string:
			result[valueKey] = payload
			if !utf8.ValidString(payload) {
				result[valueKey] = strings.ToValidUTF8(payload, "?")
				result[wtf8Key] = base64.StdEncoding.EncodeToString([]byte(payload))
			}
		default:
			result[valueKey] = payload
		}
		return result
	}
	return nil
}
