package pyast_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/convert"
	"github.com/viant/pyast/interpreter"
	"github.com/viant/pyast/raw"
	"golang.org/x/tools/txtar"
)

func located(node *raw.Node, lineno, col, endLineno, endCol int) *raw.Node {
	node.Fields["lineno"] = raw.Int(lineno)
	node.Fields["col_offset"] = raw.Int(col)
	node.Fields["end_lineno"] = raw.Int(endLineno)
	node.Fields["end_col_offset"] = raw.Int(endCol)
	return node
}

func constant(kind string, value any, lineno, col, endLineno, endCol int) *raw.Node {
	return located(raw.NewNode("Constant", "value", &raw.Literal{Kind: kind, Value: value}, "kind", raw.Null{}), lineno, col, endLineno, endCol)
}

// fakeRunner answers with fixed responses keyed by source text.
func fakeRunner(responses map[string]*interpreter.Response) interpreter.Runner {
	return interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		response, ok := responses[string(request.Source)]
		if !ok {
			return nil, errors.New("interpreter unavailable")
		}
		return response, nil
	})
}

func treeResponse(root *raw.Node) *interpreter.Response {
	return &interpreter.Response{Version: "3.12.1", Tree: &raw.Tree{Version: "3.12.1", Root: root}}
}

func TestParser_Parse(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	text := "def f(:\n"
	assign := raw.NewNode("Module",
		"body", raw.List{located(raw.NewNode("Assign",
			"targets", raw.List{located(raw.NewNode("Name", "id", raw.String("x"), "ctx", raw.NewNode("Store")), 1, 0, 1, 1)},
			"value", located(raw.NewNode("BinOp",
				"left", constant("int", "1", 1, 4, 1, 5),
				"op", raw.NewNode("Add"),
				"right", constant("int", "2", 1, 8, 1, 9)), 1, 4, 1, 9),
			"type_comment", raw.Null{}), 1, 0, 1, 9)},
		"type_ignores", raw.List{})
	docstring := raw.NewNode("Module",
		"body", raw.List{located(raw.NewNode("Expr", "value", constant("str", "  Doc.\n    More.\n", 1, 0, 3, 3)), 1, 0, 3, 3)},
		"type_ignores", raw.List{})
	walrus := raw.NewNode("Module",
		"body", raw.List{located(raw.NewNode("Expr", "value", located(raw.NewNode("Walrus"), 1, 0, 1, 6)), 1, 0, 1, 6)},
		"type_ignores", raw.List{})

	parser := pyast.New(pyast.WithRunner(fakeRunner(map[string]*interpreter.Response{
		"x = 1 + 2": treeResponse(assign),
		"doc":       treeResponse(docstring),
		"x := y":    treeResponse(walrus),
		"def f(:": {Version: "3.12.1", Syntax: &interpreter.SyntaxReport{
			Type: "SyntaxError", Message: "invalid syntax", Line: intPtr(1), Offset: intPtr(7), EndLine: intPtr(1), EndOffset: intPtr(8), Text: &text,
		}},
		"a\x00b": {Version: "3.11.2", Syntax: &interpreter.SyntaxReport{
			Type: "ValueError", Message: "source code string cannot contain null bytes",
		}},
		"broken": {Version: "3.12.1"},
	})))

	t.Run("assignment", func(t *testing.T) {
		module, err := parser.Parse(context.Background(), []byte("x = 1 + 2"), "example")
		require.NoError(t, err)
		assert.Equal(t, "example", module.Name)
		assert.Nil(t, module.Docstring)
		assign := module.Body[0].(*ast.Assign)
		assert.Equal(t, "x", assign.Targets[0].(*ast.Name).Id)
		binOp := assign.Value.(*ast.BinOp)
		assert.Equal(t, ast.Int("1"), binOp.Left.(*ast.Constant).Value)
		assert.Equal(t, ast.Add, binOp.Op)
		assert.Equal(t, ast.Int("2"), binOp.Right.(*ast.Constant).Value)
		assert.Equal(t, "Module(body=[Assign(targets=[Name(id='x', ctx=Store())], value=BinOp(left=Constant(value=1), op=Add(), right=Constant(value=2)))], type_ignores=[])", ast.Dump(module))
	})

	t.Run("docstring", func(t *testing.T) {
		module, err := parser.Parse(context.Background(), []byte("doc"), "documented")
		require.NoError(t, err)
		require.NotNil(t, module.Docstring)
		assert.Equal(t, "  Doc.\n    More.\n", *module.Docstring)
	})

	t.Run("syntax error", func(t *testing.T) {
		module, err := parser.Parse(context.Background(), []byte("def f(:"), "broken")
		assert.Nil(t, module)
		syntaxErr := &pyast.SyntaxError{}
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, &pyast.SyntaxError{Module: "broken", Type: "SyntaxError", Message: "invalid syntax", Line: 1, Column: 6, EndLine: 1, EndColumn: 7, Text: text}, syntaxErr)
		assert.Equal(t, "syntax error in broken at 1:6: invalid syntax", err.Error())
	})

	t.Run("rejected before parsing", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), []byte("a\x00b"), "nul")
		syntaxErr := &pyast.SyntaxError{}
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "ValueError", syntaxErr.Type)
		assert.Zero(t, syntaxErr.Line)
		assert.Equal(t, "syntax error in nul: source code string cannot contain null bytes", err.Error())
	})

	t.Run("unknown node kind", func(t *testing.T) {
		module, err := parser.Parse(context.Background(), []byte("x := y"), "future")
		assert.Nil(t, module)
		conversionErr := &pyast.ConversionError{}
		require.True(t, errors.As(err, &conversionErr))
		assert.Equal(t, "future", conversionErr.Module)
		assert.Equal(t, convert.UnknownNodeKind, conversionErr.Err.Kind)
		assert.Equal(t, "Walrus", conversionErr.Err.Tag)
		assert.Equal(t, "Module.body[0]<Expr>.value", conversionErr.Err.Path.String())
		assert.ErrorIs(t, err, convert.ErrUnknownNodeKind)
	})

	t.Run("runner failure", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), []byte("unknown"), "m")
		assert.EqualError(t, err, "failed to parse m: interpreter unavailable")
	})

	t.Run("malformed response", func(t *testing.T) {
		_, err := parser.Parse(context.Background(), []byte("broken"), "m")
		assert.ErrorIs(t, err, interpreter.ErrMalformedResponse)
	})
}

func TestParser_ParseMode(t *testing.T) {
	expression := raw.NewNode("Expression", "body", located(raw.NewNode("Name", "id", raw.String("a"), "ctx", raw.NewNode("Load")), 1, 0, 1, 1))
	parser := pyast.New(pyast.WithRunner(interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		if request.Mode != interpreter.ModeEval {
			return treeResponse(raw.NewNode("Module", "body", raw.List{}, "type_ignores", raw.List{})), nil
		}
		return treeResponse(expression), nil
	})))

	parsed, err := parser.ParseExpression(context.Background(), []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "a", parsed.Body.(*ast.Name).Id)

	mod, err := parser.ParseMode(context.Background(), []byte(""), "pkg/__init__.py", "")
	require.NoError(t, err)
	assert.Equal(t, "pkg", mod.(*ast.Module).Name)

	_, err = parser.ParseMode(context.Background(), []byte("a"), "a.py", interpreter.ModeSingle)
	assert.EqualError(t, err, "unexpected Module root for single mode")
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		location string
		expect   string
	}{
		{"util.py", "util"},
		{"/src/app/models.py", "models"},
		{"file:///src/app/stubs.pyi", "stubs"},
		{"/src/app/__init__.py", "app"},
		{"script", "script"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.expect, pyast.ModuleName(tt.location))
		})
	}
}

func TestParser_Interpreter(t *testing.T) {
	if _, err := exec.LookPath(interpreter.DefaultPython); err != nil {
		t.Skipf("%v not available: %v", interpreter.DefaultPython, err)
	}
	config := pyast.DefaultConfig()
	config.Cache.Enabled = true
	parser := pyast.New(pyast.WithConfig(config))
	version, err := interpreter.NewProcess(config.Python).Version(context.Background())
	require.NoError(t, err)
	if !ast.SupportedVersion(version) {
		t.Skipf("unsupported interpreter version %v", version)
	}

	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	for _, file := range files {
		archive, err := txtar.ParseFile(file)
		require.NoError(t, err)
		var source, dump string
		for _, f := range archive.Files {
			switch f.Name {
			case "source.py":
				source = string(f.Data)
			case "dump.txt":
				dump = strings.TrimRight(string(f.Data), "\n")
			}
		}
		t.Run(filepath.Base(file), func(t *testing.T) {
			module, err := parser.Parse(context.Background(), []byte(source), "fixture")
			require.NoError(t, err)
			assert.Equal(t, dump, ast.DumpWith(module, ast.DumpOptions{Indent: "  "}))
		})
	}

	_, err = parser.Parse(context.Background(), []byte("def f(:\n"), "broken")
	syntaxErr := &pyast.SyntaxError{}
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Line)
	assert.Equal(t, 6, syntaxErr.Column)
	assert.Equal(t, "def f(:\n", syntaxErr.Text)
	assert.Equal(t, "SyntaxError", syntaxErr.Type)

	module, err := parser.Parse(context.Background(), []byte("x = 0x"+strings.Repeat("f", 4000)), "digits")
	require.NoError(t, err)
	expect := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 16000), big.NewInt(1))
	value := module.Body[0].(*ast.Assign).Value.(*ast.Constant).Value.(ast.Int)
	assert.Equal(t, expect.String(), value.Big().String())

	module, err = parser.Parse(context.Background(), []byte(`x = "\ud800"`), "surrogate")
	require.NoError(t, err)
	assert.Equal(t, ast.Str("\xed\xa0\x80"), module.Body[0].(*ast.Assign).Value.(*ast.Constant).Value)
}

func TestParser_ParseFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "models.py")
	require.NoError(t, os.WriteFile(location, []byte("pass"), 0o644))
	parser := pyast.New(pyast.WithRunner(interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		assert.Equal(t, "pass", string(request.Source))
		return treeResponse(raw.NewNode("Module", "body", raw.List{located(raw.NewNode("Pass"), 1, 0, 1, 4)}, "type_ignores", raw.List{})), nil
	})))
	module, err := parser.ParseFile(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "models", module.Name)
	assert.IsType(t, &ast.Pass{}, module.Body[0])

	_, err = parser.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}
