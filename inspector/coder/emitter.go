package coder

import (
	"fmt"
	"strings"

	"github.com/viant/pyast/inspector/graph"
)

// Emitter renders a module of the graph back to Python source
type Emitter struct {
	// Stub renders declarations with "..." bodies, the way .pyi files are written.
	Stub   bool
	Indent string
}

type writer struct {
	*Emitter
	builder strings.Builder
}

// Emit renders file; declarations are grouped by kind, so the original
// statement order is not kept.
func (e *Emitter) Emit(file *graph.File) ([]byte, error) {
	w := &writer{Emitter: e}
	if w.Indent == "" {
		w.Indent = "    "
	}
	if file.Docstring != "" {
		w.docstring(file.Docstring, 0)
	}
	if len(file.Imports) > 0 {
		w.separate(1)
		for _, imp := range file.Imports {
			w.line(0, imp.Statement())
		}
	}
	if len(file.Constants) > 0 {
		w.separate(1)
		for _, constant := range file.Constants {
			w.line(0, w.binding(constant.Name, constant.Type, constant.Value))
		}
	}
	if len(file.Variables) > 0 {
		w.separate(1)
		for _, variable := range file.Variables {
			w.line(0, w.binding(variable.Name, variable.Type, variable.Value))
		}
	}
	for _, typ := range file.Types {
		w.separate(2)
		if err := w.typ(typ, 0); err != nil {
			return nil, fmt.Errorf("failed to emit %v: %w", file.Path, err)
		}
	}
	for _, function := range file.Functions {
		w.separate(2)
		if err := w.function(function, 0); err != nil {
			return nil, fmt.Errorf("failed to emit %v: %w", file.Path, err)
		}
	}
	return []byte(w.builder.String()), nil
}

func (w *writer) typ(typ *graph.Type, level int) error {
	if typ.Name == "" {
		return fmt.Errorf("type without a name")
	}
	for _, decorator := range typ.Decorators {
		w.line(level, "@"+decorator)
	}
	header := typ.Name + typeParams(typ.TypeParams)
	if typ.Kind == graph.KindAlias {
		w.line(level, "type "+header+" = "+typ.Value)
		return nil
	}
	bases := append([]string{}, typ.Extends...)
	if typ.Metaclass != "" {
		bases = append(bases, "metaclass="+typ.Metaclass)
	}
	if len(bases) > 0 {
		header += "(" + strings.Join(bases, ", ") + ")"
	}
	w.line(level, "class "+header+":")
	empty := true
	if typ.Docstring != "" {
		w.docstring(typ.Docstring, level+1)
		empty = false
	}
	for _, field := range typ.Fields {
		if !w.Stub && !field.IsClassVar {
			continue
		}
		w.line(level+1, w.binding(field.Name, field.Type, field.Value))
		empty = false
	}
	for _, method := range typ.Methods {
		if !empty {
			w.separate(1)
		}
		if err := w.function(method, level+1); err != nil {
			return fmt.Errorf("%v: %w", typ.Name, err)
		}
		empty = false
	}
	for _, nested := range typ.Nested {
		if !empty {
			w.separate(1)
		}
		if err := w.typ(nested, level+1); err != nil {
			return fmt.Errorf("%v: %w", typ.Name, err)
		}
		empty = false
	}
	if empty {
		w.line(level+1, "...")
	}
	return nil
}

func (w *writer) function(fn *graph.Function, level int) error {
	if fn.Name == "" {
		return fmt.Errorf("function without a name")
	}
	for _, decorator := range fn.Decorators {
		w.line(level, "@"+decorator)
	}
	signature := fn.Signature
	if signature == "" {
		signature = fn.BuildSignature()
	}
	header := "def " + signature
	if fn.IsAsync {
		header = "async def " + strings.TrimPrefix(signature, "async ")
	}
	w.line(level, header+":")
	if !w.Stub && fn.Body != nil && strings.TrimSpace(fn.Body.Text) != "" {
		for _, line := range reindent(fn.Body.Text) {
			w.line(level+1, line)
		}
		return nil
	}
	if fn.Docstring != "" {
		w.docstring(fn.Docstring, level+1)
	}
	w.line(level+1, "...")
	return nil
}

// binding renders an assignment; stubs keep annotations and drop annotated values.
func (w *writer) binding(name, typeName, value string) string {
	switch {
	case typeName != "" && (value == "" || w.Stub):
		return name + ": " + typeName
	case typeName != "":
		return name + ": " + typeName + " = " + value
	case value == "" || w.Stub && strings.Contains(value, "\n"):
		return name + " = ..."
	}
	return name + " = " + value
}

func (w *writer) docstring(doc string, level int) {
	doc = strings.ReplaceAll(doc, `"""`, `\"\"\"`)
	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		w.line(level, `"""`+doc+`"""`)
		return
	}
	w.line(level, `"""`+lines[0])
	for _, line := range lines[1:] {
		w.line(level, line)
	}
	w.line(level, `"""`)
}

// separate ends the output with n empty lines unless it is empty.
func (w *writer) separate(n int) {
	text := w.builder.String()
	if text == "" {
		return
	}
	have := len(text) - len(strings.TrimRight(text, "\n")) - 1
	for ; have < n; have++ {
		w.builder.WriteString("\n")
	}
}

func (w *writer) line(level int, text string) {
	if text != "" {
		w.builder.WriteString(strings.Repeat(w.Indent, level))
		w.builder.WriteString(text)
	}
	w.builder.WriteString("\n")
}

func typeParams(params []*graph.TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	items := make([]string, len(params))
	for i, param := range params {
		items[i] = param.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// reindent strips the indentation that a source block keeps on its
// continuation lines; the first line starts at the statement.
func reindent(text string) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	common := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		width := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || width < common {
			common = width
		}
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		if common > 0 {
			lines[i] = lines[i][common:]
		}
	}
	return lines
}
