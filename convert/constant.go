package convert

import (
	"math/big"
	"strconv"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/raw"
)

func (s *state) constant(schema *ast.Schema, field *ast.FieldSchema, literal *raw.Literal) (ast.ConstantValue, error) {
	invalid := func() error {
		return s.fail(&Error{Kind: ShapeMismatch, Tag: schema.Tag, Field: field.Name, Expected: literal.Kind + " payload", Actual: describePayload(literal.Value)})
	}
	switch literal.Kind {
	case ast.KindInt:
		text, ok := literal.Value.(string)
		if !ok {
			return nil, invalid()
		}
		value, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, invalid()
		}
		return ast.Int(value.String()), nil
	case ast.KindFloat:
		text, ok := literal.Value.(string)
		if !ok {
			return nil, invalid()
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, invalid()
		}
		return ast.Float(value), nil
	case ast.KindComplex:
		parts, ok := literal.Value.(raw.Complex)
		if !ok {
			return nil, invalid()
		}
		re, err := strconv.ParseFloat(parts.Real, 64)
		if err != nil {
			return nil, invalid()
		}
		im, err := strconv.ParseFloat(parts.Imag, 64)
		if err != nil {
			return nil, invalid()
		}
		return ast.Complex(complex(re, im)), nil
	case ast.KindStr:
		text, ok := literal.Value.(string)
		if !ok {
			return nil, invalid()
		}
		return ast.Str(text), nil
	case ast.KindBytes:
		data, ok := literal.Value.([]byte)
		if !ok {
			return nil, invalid()
		}
		return ast.Bytes(append([]byte{}, data...)), nil
	case ast.KindBool:
		flag, ok := literal.Value.(bool)
		if !ok {
			return nil, invalid()
		}
		return ast.Bool(flag), nil
	case ast.KindNone:
		return ast.None{}, nil
	case ast.KindEllipsis:
		return ast.Ellipsis{}, nil
	}
	return nil, s.fail(&Error{Kind: UnsupportedConstantKind, Tag: schema.Tag, Field: field.Name, Actual: literal.Kind})
}

func describePayload(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []byte:
		return "bytes"
	case bool:
		return "bool"
	case raw.Complex:
		return "complex"
	}
	return "unknown payload"
}
