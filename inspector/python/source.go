package python

import (
	"bytes"
	"strings"

	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/inspector/graph"
)

// source maps interpreter line/column positions to byte offsets.
type source struct {
	data  []byte
	lines []int // byte offset of each line start
}

func newSource(data []byte) *source {
	ret := &source{data: data, lines: []int{0}}
	for i, b := range data {
		if b == '\n' {
			ret.lines = append(ret.lines, i+1)
		}
	}
	return ret
}

// offset returns the byte offset of a 1-based line and a 0-based byte column.
func (s *source) offset(line, col int) int {
	if line < 1 {
		return 0
	}
	if line > len(s.lines) {
		return len(s.data)
	}
	return min(s.lines[line-1]+col, len(s.data))
}

// text returns the source text of a node, empty when it has no location.
func (s *source) text(node ast.Node) string {
	if node == nil {
		return ""
	}
	span := node.Span()
	if span == nil {
		return ""
	}
	return string(s.data[s.offset(span.Lineno, span.ColOffset):s.offset(span.EndLineno, span.EndColOffset)])
}

// expr returns the source text of an expression with continuation lines joined.
func (s *source) expr(node ast.Node) string {
	text := s.text(node)
	if !strings.ContainsRune(text, '\n') {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}

func (s *source) location(node ast.Node) *graph.Location {
	if node == nil || node.Span() == nil {
		return nil
	}
	span := node.Span()
	return s.between(span.Lineno, s.offset(span.Lineno, span.ColOffset), span.EndLineno, s.offset(span.EndLineno, span.EndColOffset))
}

func (s *source) between(line, start, endLine, end int) *graph.Location {
	return &graph.Location{
		Raw:     string(s.data[start:end]),
		Start:   start,
		End:     end,
		Line:    line,
		EndLine: endLine,
	}
}

// decorated returns the location of a definition including its decorators.
func (s *source) decorated(node ast.Node, decorators []ast.Expr) *graph.Location {
	ret := s.location(node)
	if ret == nil || len(decorators) == 0 {
		return ret
	}
	first := decorators[0].Span()
	if first == nil {
		return ret
	}
	start := s.at(first.Lineno, s.offset(first.Lineno, first.ColOffset))
	return s.between(first.Lineno, start, ret.EndLine, ret.End)
}

// at moves offset back to the '@' that precedes a decorator expression.
func (s *source) at(line, offset int) int {
	lineStart := s.offset(line, 0)
	if idx := bytes.LastIndexByte(s.data[lineStart:offset], '@'); idx != -1 {
		return lineStart + idx
	}
	return offset
}

// block returns the location spanning a statement list.
func (s *source) block(body []ast.Stmt) *graph.LocationNode {
	if len(body) == 0 {
		return nil
	}
	first, last := body[0].Span(), body[len(body)-1].Span()
	if first == nil || last == nil {
		return nil
	}
	location := s.between(first.Lineno, s.offset(first.Lineno, first.ColOffset), last.EndLineno, s.offset(last.EndLineno, last.EndColOffset))
	return &graph.LocationNode{Text: location.Raw, Location: *location}
}
