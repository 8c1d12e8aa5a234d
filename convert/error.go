package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a conversion failure.
type Kind int

const (
	UnknownNodeKind Kind = iota + 1
	MissingField
	ShapeMismatch
	UnexpectedField
	LocationError
	UnsupportedConstantKind
)

var (
	ErrUnknownNodeKind         = errors.New("unknown node kind")
	ErrMissingField            = errors.New("missing field")
	ErrShapeMismatch           = errors.New("shape mismatch")
	ErrUnexpectedField         = errors.New("unexpected field")
	ErrLocation                = errors.New("invalid location")
	ErrUnsupportedConstantKind = errors.New("unsupported constant kind")
)

var kindErrors = map[Kind]error{
	UnknownNodeKind:         ErrUnknownNodeKind,
	MissingField:            ErrMissingField,
	ShapeMismatch:           ErrShapeMismatch,
	UnexpectedField:         ErrUnexpectedField,
	LocationError:           ErrLocation,
	UnsupportedConstantKind: ErrUnsupportedConstantKind,
}

var kindNames = map[Kind]string{
	UnknownNodeKind:         "UnknownNodeKind",
	MissingField:            "MissingField",
	ShapeMismatch:           "ShapeMismatch",
	UnexpectedField:         "UnexpectedField",
	LocationError:           "LocationError",
	UnsupportedConstantKind: "UnsupportedConstantKind",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Step is one hop from the root towards the failing value.
type Step struct {
	// Field is the Python field name, empty for the root.
	Field string
	// Index is the position within a sequence field, -1 otherwise.
	Index int
	// Tag is the class of the node reached by the step, empty when the value is not a node.
	Tag string
}

// Path is the chain of steps from the root node.
type Path []Step

// String renders the path as Module.body[0]<Assign>.value<BinOp>.left.
func (p Path) String() string {
	builder := strings.Builder{}
	for i, step := range p {
		if i == 0 && step.Field == "" {
			builder.WriteString(step.Tag)
			continue
		}
		builder.WriteByte('.')
		builder.WriteString(step.Field)
		if step.Index >= 0 {
			builder.WriteByte('[')
			builder.WriteString(strconv.Itoa(step.Index))
			builder.WriteByte(']')
		}
		if step.Tag != "" {
			builder.WriteByte('<')
			builder.WriteString(step.Tag)
			builder.WriteByte('>')
		}
	}
	return builder.String()
}

// Error reports a structural mismatch between the raw tree and the node schema.
type Error struct {
	Kind Kind
	Path Path
	// Tag is the class of the node being converted, or the unknown class for UnknownNodeKind.
	Tag string
	// Field is the offending field, empty when the node itself is at fault.
	Field string
	// Expected and Actual describe the mismatch for ShapeMismatch and LocationError.
	Expected string
	Actual   string
}

func (e *Error) Error() string {
	var message string
	switch e.Kind {
	case UnknownNodeKind:
		message = fmt.Sprintf("unknown node kind %q", e.Tag)
	case MissingField:
		message = fmt.Sprintf("missing field %v.%v", e.Tag, e.Field)
	case ShapeMismatch:
		message = fmt.Sprintf("shape mismatch %v.%v: expected %v, but had %v", e.Tag, e.Field, e.Expected, e.Actual)
	case UnexpectedField:
		message = fmt.Sprintf("unexpected field %v.%v", e.Tag, e.Field)
	case LocationError:
		message = fmt.Sprintf("invalid location of %v: %v", e.Tag, e.Actual)
	case UnsupportedConstantKind:
		message = fmt.Sprintf("unsupported constant kind %q", e.Actual)
	default:
		message = e.Kind.String()
	}
	if len(e.Path) == 0 {
		return message
	}
	return message + " at " + e.Path.String()
}

// Unwrap returns the sentinel error of the kind.
func (e *Error) Unwrap() error {
	return kindErrors[e.Kind]
}
