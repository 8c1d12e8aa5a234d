package ast

import (
	"strings"
	"unicode"
)

// GetDocstring returns the docstring of a body: the value of a leading
// expression statement holding a str constant. When clean is true the text
// is normalized like Python's inspect.cleandoc.
func GetDocstring(body []Stmt, clean bool) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	stmt, ok := body[0].(*ExprStmt)
	if !ok {
		return "", false
	}
	constant, ok := stmt.Value.(*Constant)
	if !ok {
		return "", false
	}
	text, ok := constant.Value.(Str)
	if !ok {
		return "", false
	}
	if clean {
		return CleanDoc(string(text)), true
	}
	return string(text), true
}

func (n *FunctionDef) Docstring() (string, bool)      { return GetDocstring(n.Body, true) }
func (n *AsyncFunctionDef) Docstring() (string, bool) { return GetDocstring(n.Body, true) }
func (n *ClassDef) Docstring() (string, bool)         { return GetDocstring(n.Body, true) }

// CleanDoc removes the indentation common to all lines but the first, strips
// the first line and drops leading and trailing blank lines.
func CleanDoc(doc string) string {
	lines := strings.Split(expandTabs(doc, 8), "\n")
	margin := -1
	for _, line := range lines[1:] {
		content := len(strings.TrimLeftFunc(line, unicode.IsSpace))
		if content == 0 {
			continue
		}
		if indent := len(line) - content; margin == -1 || indent < margin {
			margin = indent
		}
	}
	lines[0] = strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = ""
			}
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	builder := strings.Builder{}
	column := 0
	for _, r := range s {
		switch r {
		case '\t':
			spaces := size - column%size
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		case '\n', '\r':
			builder.WriteRune(r)
			column = 0
		default:
			builder.WriteRune(r)
			column++
		}
	}
	return builder.String()
}
