package convert

import (
	"fmt"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/raw"
)

var attributes = [...]string{"lineno", "col_offset", "end_lineno", "end_col_offset"}

func isAttribute(name string) bool {
	for _, attribute := range attributes {
		if attribute == name {
			return true
		}
	}
	return false
}

// location reads the source attributes of n: all four absent or null give
// a nil span, all four integers give a span whose end is not before its start.
func (s *state) location(n *raw.Node) (*ast.Span, error) {
	var values [len(attributes)]int
	present := 0
	for i, name := range attributes {
		switch actual := n.Fields[name].(type) {
		case nil, raw.Null:
		case raw.Int:
			values[i] = int(actual)
			present++
		default:
			return nil, s.fail(&Error{Kind: LocationError, Tag: n.Type, Field: name, Expected: "int", Actual: fmt.Sprintf("%v is %v", name, raw.Describe(actual))})
		}
	}
	switch present {
	case 0:
		return nil, nil
	case len(attributes):
	default:
		return nil, s.fail(&Error{Kind: LocationError, Tag: n.Type, Expected: "all attributes", Actual: fmt.Sprintf("%d of %d attributes", present, len(attributes))})
	}
	span := &ast.Span{Lineno: values[0], ColOffset: values[1], EndLineno: values[2], EndColOffset: values[3]}
	if !span.Ordered() {
		return nil, s.fail(&Error{Kind: LocationError, Tag: n.Type, Expected: "end not before start", Actual: "span " + span.String()})
	}
	return span, nil
}
