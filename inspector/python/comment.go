package python

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/pyast/inspector/graph"
)

// comment is a "#" comment found by tree-sitter.
type comment struct {
	text       string
	start, end int
	// standalone is set when only whitespace precedes the comment on its line.
	standalone bool
}

// comments indexes source comments by 1-based line; the interpreter tree does not carry them.
type comments map[int]*comment

func extractComments(ctx context.Context, src []byte) (comments, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}
	ret := comments{}
	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		if node.Type() == "comment" {
			start := int(node.StartByte())
			lineStart := start - int(node.StartPoint().Column)
			ret[int(node.StartPoint().Row)+1] = &comment{
				text:       cleanCommentMarker(node.Content(src)),
				start:      start,
				end:        int(node.EndByte()),
				standalone: strings.TrimSpace(string(src[lineStart:start])) == "",
			}
			return
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i))
		}
	}
	visit(tree.RootNode())
	return ret, nil
}

// leading returns the block of standalone comments directly above line.
func (c comments) leading(src *source, line int) *graph.LocationNode {
	first := line
	for c[first-1] != nil && c[first-1].standalone {
		first--
	}
	if first == line {
		return nil
	}
	var lines []string
	for l := first; l < line; l++ {
		lines = append(lines, c[l].text)
	}
	location := src.between(first, c[first].start, line-1, c[line-1].end)
	return &graph.LocationNode{Text: strings.Join(lines, "\n"), Location: *location}
}

// trailing returns the comment that ends line after code, empty when there is none.
func (c comments) trailing(line int) string {
	if found := c[line]; found != nil && !found.standalone {
		return found.text
	}
	return ""
}

func cleanCommentMarker(text string) string {
	text = strings.TrimPrefix(strings.TrimSpace(text), "#")
	return strings.TrimSpace(text)
}
