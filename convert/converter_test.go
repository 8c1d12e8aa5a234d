package convert_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/convert"
	"github.com/viant/pyast/raw"
	"golang.org/x/tools/txtar"
)

type fixture struct {
	name   string
	source string
	tree   *raw.Tree
	dump   string
}

func loadFixtures(t *testing.T) []*fixture {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	var result []*fixture
	for _, file := range files {
		archive, err := txtar.ParseFile(file)
		require.NoError(t, err)
		item := &fixture{name: strings.TrimSuffix(filepath.Base(file), ".txtar")}
		for _, f := range archive.Files {
			switch f.Name {
			case "source.py":
				item.source = string(f.Data)
			case "tree.json":
				item.tree, err = raw.DecodeJSON(f.Data)
				require.NoError(t, err, file)
			case "dump.txt":
				item.dump = strings.TrimRight(string(f.Data), "\n")
			}
		}
		result = append(result, item)
	}
	return result
}

func loadFixture(t *testing.T, name string) *fixture {
	for _, item := range loadFixtures(t) {
		if item.name == name {
			return item
		}
	}
	t.Fatalf("fixture not found: %v", name)
	return nil
}

func TestConverter_Fixtures(t *testing.T) {
	converter := convert.New()
	for _, item := range loadFixtures(t) {
		t.Run(item.name, func(t *testing.T) {
			mod, err := converter.Mod(item.tree)
			require.NoError(t, err)
			assert.Equal(t, item.dump, ast.DumpWith(mod, ast.DumpOptions{Indent: "  "}))
			assert.Equal(t, item.tree.Root, convert.ToRaw(mod, item.tree.Version))
		})
	}
}

func TestConverter_Exhaustive(t *testing.T) {
	covered := map[string]bool{}
	converter := convert.New()
	for _, item := range loadFixtures(t) {
		_, err := converter.Mod(item.tree)
		require.NoError(t, err, item.name)
		for _, node := range rawNodes(item.tree.Root) {
			covered[node.Type] = true
		}
	}
	for _, schema := range ast.Schemas() {
		assert.True(t, covered[schema.Tag], "no fixture for %v", schema.Tag)
	}
}

func TestConverter_Assign(t *testing.T) {
	item := loadFixture(t, "assign")
	module, err := convert.Module(item.tree)
	require.NoError(t, err)
	expect := &ast.Module{
		Body: []ast.Stmt{
			&ast.Assign{
				Loc:     ast.At(1, 0, 1, 9),
				Targets: []ast.Expr{&ast.Name{Loc: ast.At(1, 0, 1, 1), Id: "x", Ctx: ast.Store}},
				Value: &ast.BinOp{
					Loc:   ast.At(1, 4, 1, 9),
					Left:  &ast.Constant{Loc: ast.At(1, 4, 1, 5), Value: ast.Int("1")},
					Op:    ast.Add,
					Right: &ast.Constant{Loc: ast.At(1, 8, 1, 9), Value: ast.Int("2")},
				},
			},
		},
		TypeIgnores: []*ast.TypeIgnore{},
	}
	if diff := cmp.Diff(expect, module); diff != "" {
		t.Errorf("unexpected module (-want +got):\n%s", diff)
	}
}

func TestConverter_Deterministic(t *testing.T) {
	converter := convert.New()
	for _, item := range loadFixtures(t) {
		first, err := converter.Mod(item.tree)
		require.NoError(t, err)
		second, err := converter.Mod(item.tree)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%v: conversion is not deterministic:\n%s", item.name, diff)
		}
	}
}

func TestConverter_MissingField(t *testing.T) {
	converter := convert.New()
	for _, name := range []string{"assign", "functions", "match", "type_params"} {
		item := loadFixture(t, name)
		nodes := rawNodes(item.tree.Root)
		for i, node := range nodes {
			schema, ok := ast.Lookup(node.Type)
			require.True(t, ok, node.Type)
			for _, field := range schema.Fields {
				if field.Shape.Optional() {
					continue
				}
				tree := &raw.Tree{Version: item.tree.Version, Root: item.tree.Root.Clone()}
				delete(rawNodes(tree.Root)[i].Fields, field.Name)
				_, err := converter.Mod(tree)
				actual := &convert.Error{}
				require.True(t, errors.As(err, &actual), "%v: %v.%v", name, node.Type, field.Name)
				assert.Equal(t, convert.MissingField, actual.Kind)
				assert.Equal(t, node.Type, actual.Tag)
				assert.Equal(t, field.Name, actual.Field)
				assert.ErrorIs(t, err, convert.ErrMissingField)
			}
		}
	}
}

func TestConverter_VersionGatedField(t *testing.T) {
	item := loadFixture(t, "functions")
	tree := &raw.Tree{Version: "3.11.7", Root: item.tree.Root.Clone()}
	for _, node := range rawNodes(tree.Root) {
		delete(node.Fields, "type_params")
	}
	module, err := convert.Module(tree)
	require.NoError(t, err)
	assert.Nil(t, module.Body[0].(*ast.FunctionDef).TypeParams)
	assert.Equal(t, tree.Root, convert.ToRaw(module, tree.Version))

	tree.Version = "3.12.0"
	_, err = convert.Module(tree)
	assert.ErrorIs(t, err, convert.ErrMissingField)
	assert.Contains(t, err.Error(), "type_params")

	tree.Version = ""
	_, err = convert.New(convert.WithVersion("3.10")).Module(tree)
	assert.NoError(t, err)
}

func TestConverter_Errors(t *testing.T) {
	assignValue := func(root *raw.Node) *raw.Node {
		return root.Fields["body"].(raw.List)[0].(*raw.Node)
	}
	binOp := func(root *raw.Node) *raw.Node {
		return assignValue(root).Fields["value"].(*raw.Node)
	}
	tests := []struct {
		name     string
		mutate   func(root *raw.Node)
		kind     convert.Kind
		sentinel error
		tag      string
		field    string
		expected string
		actual   string
		path     string
	}{
		{
			name:     "unknown node kind",
			mutate:   func(root *raw.Node) { assignValue(root).Fields["value"] = raw.NewNode("Walrus") },
			kind:     convert.UnknownNodeKind,
			sentinel: convert.ErrUnknownNodeKind,
			tag:      "Walrus",
			path:     "Module.body[0]<Assign>.value",
		},
		{
			name:     "unknown nested kind",
			mutate:   func(root *raw.Node) { binOp(root).Fields["op"] = raw.NewNode("Walrus") },
			kind:     convert.UnknownNodeKind,
			sentinel: convert.ErrUnknownNodeKind,
			tag:      "Walrus",
			path:     "Module.body[0]<Assign>.value<BinOp>.op",
		},
		{
			name: "identifier expected",
			mutate: func(root *raw.Node) {
				assignValue(root).Fields["targets"].(raw.List)[0].(*raw.Node).Fields["id"] = raw.Int(1)
			},
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "Name",
			field:    "id",
			expected: "identifier",
			actual:   "int",
			path:     "Module.body[0]<Assign>.targets[0]<Name>.id",
		},
		{
			name: "sequence expected",
			mutate: func(root *raw.Node) {
				assign := assignValue(root)
				assign.Fields["targets"] = assign.Fields["targets"].(raw.List)[0]
			},
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "Assign",
			field:    "targets",
			expected: "expr*",
			actual:   "node Name",
			path:     "Module.body[0]<Assign>.targets",
		},
		{
			name:     "statement in expression position",
			mutate:   func(root *raw.Node) { binOp(root).Fields["left"] = raw.NewNode("Pass") },
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "BinOp",
			field:    "left",
			expected: "expr",
			actual:   "node Pass",
			path:     "Module.body[0]<Assign>.value<BinOp>.left",
		},
		{
			name:     "expression in statement list",
			mutate:   func(root *raw.Node) { root.Fields["body"] = raw.List{binOp(root)} },
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "Module",
			field:    "body",
			expected: "stmt",
			actual:   "node BinOp",
			path:     "Module.body[0]",
		},
		{
			name:     "wrong enumeration",
			mutate:   func(root *raw.Node) { binOp(root).Fields["op"] = raw.NewNode("Load") },
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "BinOp",
			field:    "op",
			expected: "operator",
			actual:   "node Load",
			path:     "Module.body[0]<Assign>.value<BinOp>.op",
		},
		{
			name:     "null required node",
			mutate:   func(root *raw.Node) { binOp(root).Fields["left"] = raw.Null{} },
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "BinOp",
			field:    "left",
			expected: "expr",
			actual:   "null",
			path:     "Module.body[0]<Assign>.value<BinOp>.left",
		},
		{
			name:     "null in non nullable sequence",
			mutate:   func(root *raw.Node) { assignValue(root).Fields["targets"] = raw.List{raw.Null{}} },
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "Assign",
			field:    "targets",
			expected: "expr",
			actual:   "null",
			path:     "Module.body[0]<Assign>.targets[0]",
		},
		{
			name:     "unexpected field",
			mutate:   func(root *raw.Node) { binOp(root).Fields["precedence"] = raw.Int(3) },
			kind:     convert.UnexpectedField,
			sentinel: convert.ErrUnexpectedField,
			tag:      "BinOp",
			field:    "precedence",
			path:     "Module.body[0]<Assign>.value<BinOp>",
		},
		{
			name:     "attributes on unlocated node",
			mutate:   func(root *raw.Node) { root.Fields["lineno"] = raw.Int(1) },
			kind:     convert.UnexpectedField,
			sentinel: convert.ErrUnexpectedField,
			tag:      "Module",
			field:    "lineno",
			path:     "Module",
		},
		{
			name:     "payload on enumeration",
			mutate:   func(root *raw.Node) { binOp(root).Fields["op"].(*raw.Node).Fields["symbol"] = raw.String("+") },
			kind:     convert.UnexpectedField,
			sentinel: convert.ErrUnexpectedField,
			tag:      "Add",
			field:    "symbol",
			path:     "Module.body[0]<Assign>.value<BinOp>.op<Add>",
		},
		{
			name:     "partial location",
			mutate:   func(root *raw.Node) { delete(binOp(root).Fields, "end_col_offset") },
			kind:     convert.LocationError,
			sentinel: convert.ErrLocation,
			tag:      "BinOp",
			expected: "all attributes",
			actual:   "3 of 4 attributes",
			path:     "Module.body[0]<Assign>.value<BinOp>",
		},
		{
			name: "end before start",
			mutate: func(root *raw.Node) {
				binOp(root).Fields["end_lineno"] = raw.Int(1)
				binOp(root).Fields["end_col_offset"] = raw.Int(2)
			},
			kind:     convert.LocationError,
			sentinel: convert.ErrLocation,
			tag:      "BinOp",
			expected: "end not before start",
			actual:   "span 1:4-1:2",
			path:     "Module.body[0]<Assign>.value<BinOp>",
		},
		{
			name: "unsupported constant kind",
			mutate: func(root *raw.Node) {
				binOp(root).Fields["left"].(*raw.Node).Fields["value"] = &raw.Literal{Kind: "frozenset", Value: "frozenset()"}
			},
			kind:     convert.UnsupportedConstantKind,
			sentinel: convert.ErrUnsupportedConstantKind,
			tag:      "Constant",
			field:    "value",
			actual:   "frozenset",
			path:     "Module.body[0]<Assign>.value<BinOp>.left<Constant>.value",
		},
		{
			name: "invalid int payload",
			mutate: func(root *raw.Node) {
				binOp(root).Fields["left"].(*raw.Node).Fields["value"] = &raw.Literal{Kind: "int", Value: "one"}
			},
			kind:     convert.ShapeMismatch,
			sentinel: convert.ErrShapeMismatch,
			tag:      "Constant",
			field:    "value",
			expected: "int payload",
			actual:   "string",
			path:     "Module.body[0]<Assign>.value<BinOp>.left<Constant>.value",
		},
	}

	item := loadFixture(t, "assign")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := &raw.Tree{Version: item.tree.Version, Root: item.tree.Root.Clone()}
			tt.mutate(tree.Root)
			module, err := convert.New().Module(tree)
			assert.Nil(t, module)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			actual := &convert.Error{}
			require.True(t, errors.As(err, &actual))
			assert.Equal(t, tt.kind, actual.Kind)
			assert.Equal(t, tt.tag, actual.Tag)
			assert.Equal(t, tt.field, actual.Field)
			assert.Equal(t, tt.expected, actual.Expected)
			assert.Equal(t, tt.actual, actual.Actual)
			assert.Equal(t, tt.path, actual.Path.String())
		})
	}
}

func TestConverter_Location(t *testing.T) {
	item := loadFixture(t, "assign")
	tree := &raw.Tree{Version: item.tree.Version, Root: item.tree.Root.Clone()}
	for _, node := range rawNodes(tree.Root) {
		if node.Type == "Name" {
			for _, name := range []string{"lineno", "col_offset", "end_lineno", "end_col_offset"} {
				node.Fields[name] = raw.Null{}
			}
		}
		if node.Type == "BinOp" {
			for _, name := range []string{"lineno", "col_offset", "end_lineno", "end_col_offset"} {
				delete(node.Fields, name)
			}
		}
	}
	module, err := convert.Module(tree)
	require.NoError(t, err)
	assign := module.Body[0].(*ast.Assign)
	assert.Nil(t, assign.Targets[0].Span())
	assert.Nil(t, assign.Value.Span())
	assert.Equal(t, &ast.Span{Lineno: 1, ColOffset: 0, EndLineno: 1, EndColOffset: 9}, assign.Span())

	for _, item := range loadFixtures(t) {
		mod, err := convert.New().Mod(item.tree)
		require.NoError(t, err)
		ast.Inspect(mod, func(n ast.Node) bool {
			if n != nil && n.Span() != nil {
				assert.True(t, n.Span().Ordered(), "%v %v", ast.TagOf(n), n.Span())
			}
			return true
		})
	}
}

func TestConverter_IgnoreUnexpected(t *testing.T) {
	item := loadFixture(t, "assign")
	tree := &raw.Tree{Version: item.tree.Version, Root: item.tree.Root.Clone()}
	tree.Root.Fields["future"] = raw.List{}
	_, err := convert.New().Module(tree)
	assert.ErrorIs(t, err, convert.ErrUnexpectedField)
	_, err = convert.New(convert.WithIgnoreUnexpected(true)).Module(tree)
	assert.NoError(t, err)
}

func TestConverter_Roots(t *testing.T) {
	expression := loadFixture(t, "expression")
	_, err := convert.Module(expression.tree)
	actual := &convert.Error{}
	require.True(t, errors.As(err, &actual))
	assert.Equal(t, convert.ShapeMismatch, actual.Kind)
	assert.Equal(t, "Module", actual.Expected)
	assert.Equal(t, "node Expression", actual.Actual)

	mod, err := convert.New().Mod(expression.tree)
	require.NoError(t, err)
	assert.IsType(t, &ast.Expression{}, mod)

	node, err := convert.New().Node(&raw.Tree{Root: raw.NewNode("Name",
		"id", raw.String("x"), "ctx", raw.NewNode("Load"))})
	require.NoError(t, err)
	assert.Equal(t, &ast.Name{Id: "x", Ctx: ast.Load}, node)

	_, err = convert.New().Node(&raw.Tree{Root: raw.NewNode("Load")})
	assert.ErrorIs(t, err, convert.ErrShapeMismatch)

	_, err = convert.New().Node(&raw.Tree{})
	assert.ErrorIs(t, err, convert.ErrShapeMismatch)
}

func TestConverter_Constants(t *testing.T) {
	item := loadFixture(t, "constants")
	module, err := convert.Module(item.tree)
	require.NoError(t, err)
	tuple := module.Body[0].(*ast.Assign).Value.(*ast.Tuple)
	var values []ast.ConstantValue
	for _, elt := range tuple.Elts {
		values = append(values, elt.(*ast.Constant).Value)
	}
	assert.Equal(t, []ast.ConstantValue{
		ast.Int("123456789012345678901234567890"),
		ast.Float(1.5),
		ast.Float(1e16),
		ast.Complex(2i),
		ast.Complex(3.5i),
		ast.Str("text"),
		ast.Str("unicode"),
		ast.Bytes("\x00bytes'"),
		ast.Bool(true),
		ast.Bool(false),
		ast.None{},
		ast.Ellipsis{},
	}, values)
	assert.Equal(t, "u", *tuple.Elts[6].(*ast.Constant).Kind)
}

func TestConverter_LoneSurrogate(t *testing.T) {
	item := loadFixture(t, "surrogates")
	module, err := convert.Module(item.tree)
	require.NoError(t, err)
	value := module.Body[0].(*ast.Assign).Value.(*ast.Constant).Value
	assert.Equal(t, ast.Str("\xed\xa0\x80 and \xed\xbf\xbf"), value)
	assert.Equal(t, `'\ud800 and \udfff'`, value.Repr())
}

func TestError_Error(t *testing.T) {
	err := &convert.Error{
		Kind:  convert.MissingField,
		Tag:   "BinOp",
		Field: "left",
		Path:  convert.Path{{Index: -1, Tag: "Module"}, {Field: "body", Index: 0, Tag: "Assign"}, {Field: "value", Index: -1, Tag: "BinOp"}},
	}
	assert.Equal(t, "missing field BinOp.left at Module.body[0]<Assign>.value<BinOp>", err.Error())
	assert.Equal(t, "MissingField", convert.MissingField.String())
}

// rawNodes lists the nodes of a raw tree depth-first in sorted field order.
func rawNodes(root *raw.Node) []*raw.Node {
	var result []*raw.Node
	var visit func(v raw.Value)
	visit = func(v raw.Value) {
		switch actual := v.(type) {
		case *raw.Node:
			result = append(result, actual)
			for _, name := range actual.Names() {
				visit(actual.Fields[name])
			}
		case raw.List:
			for _, item := range actual {
				visit(item)
			}
		}
	}
	visit(root)
	return result
}
