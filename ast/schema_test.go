package ast_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast/ast"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		tag     string
		base    string
		located bool
		fields  string
	}{
		{tag: "Module", base: "mod", fields: "Module(stmt* body, type_ignore* type_ignores)"},
		{tag: "Expr", base: "stmt", located: true, fields: "Expr(expr value)"},
		{tag: "FunctionDef", base: "stmt", located: true, fields: "FunctionDef(identifier name, arguments args, stmt* body, expr* decorator_list, expr? returns, identifier? type_comment, type_param* type_params)"},
		{tag: "ImportFrom", base: "stmt", located: true, fields: "ImportFrom(identifier? module, alias* names, int? level)"},
		{tag: "Global", base: "stmt", located: true, fields: "Global(identifier* names)"},
		{tag: "Dict", base: "expr", located: true, fields: "Dict(expr?* keys, expr* values)"},
		{tag: "Compare", base: "expr", located: true, fields: "Compare(expr left, cmpop* ops, expr* comparators)"},
		{tag: "Constant", base: "expr", located: true, fields: "Constant(constant value, identifier? kind)"},
		{tag: "Name", base: "expr", located: true, fields: "Name(identifier id, expr_context ctx)"},
		{tag: "arguments", base: "arguments", fields: "arguments(arg* posonlyargs, arg* args, arg? vararg, arg* kwonlyargs, expr?* kw_defaults, arg? kwarg, expr* defaults)"},
		{tag: "comprehension", base: "comprehension", fields: "comprehension(expr target, expr iter, expr* ifs, int is_async)"},
		{tag: "MatchSingleton", base: "pattern", located: true, fields: "MatchSingleton(constant value)"},
		{tag: "TypeIgnore", base: "type_ignore", fields: "TypeIgnore(int lineno, identifier tag)"},
		{tag: "Pass", base: "stmt", located: true, fields: "Pass"},
		{tag: "Mod", base: "operator", fields: "Mod"},
		{tag: "Load", base: "expr_context", fields: "Load"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			schema, ok := ast.Lookup(tt.tag)
			require.True(t, ok)
			assert.Equal(t, tt.tag, schema.Tag)
			assert.Equal(t, tt.base, schema.Base)
			assert.Equal(t, tt.located, schema.Located)
			assert.Equal(t, tt.fields, schema.String())
		})
	}

	_, ok := ast.Lookup("Walrus")
	assert.False(t, ok)
}

func TestSchemas(t *testing.T) {
	schemas := ast.Schemas()
	assert.Len(t, schemas, 111)
	seen := map[string]bool{}
	for i, schema := range schemas {
		assert.False(t, seen[schema.Tag], schema.Tag)
		seen[schema.Tag] = true
		if i > 0 {
			assert.Less(t, schemas[i-1].Tag, schema.Tag)
		}
		if schema.IsEnum() {
			assert.Empty(t, schema.Fields)
			assert.False(t, schema.New().IsValid())
			continue
		}
		node := schema.New().Interface()
		assert.Equal(t, schema.Tag, ast.TagOf(node))
		_, isNode := node.(ast.Node)
		assert.True(t, isNode, schema.Tag)
	}
}

func TestSchemaOf_Enum(t *testing.T) {
	tests := []struct {
		value  any
		expect string
	}{
		{ast.Store, "Store"},
		{ast.Modulo, "Mod"},
		{ast.FloorDiv, "FloorDiv"},
		{ast.USub, "USub"},
		{ast.NotIn, "NotIn"},
		{ast.Or, "Or"},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, ast.TagOf(tt.value))
			assert.Equal(t, tt.expect, fmt.Sprint(tt.value))
		})
	}
}

func TestSchema_Accepts(t *testing.T) {
	exprType := reflect.TypeOf((*ast.Expr)(nil)).Elem()
	stmtType := reflect.TypeOf((*ast.Stmt)(nil)).Elem()

	name, _ := ast.Lookup("Name")
	assert.True(t, name.Accepts(exprType))
	assert.False(t, name.Accepts(stmtType))

	exprStmt, _ := ast.Lookup("Expr")
	assert.True(t, exprStmt.Accepts(stmtType))
	assert.False(t, exprStmt.Accepts(exprType))

	add, _ := ast.Lookup("Add")
	assert.True(t, add.Accepts(reflect.TypeOf(ast.Sub)))
	assert.False(t, add.Accepts(reflect.TypeOf(ast.Load)))
}

func TestFieldSchema_ExistsIn(t *testing.T) {
	functionDef, _ := ast.Lookup("FunctionDef")
	typeParams, ok := functionDef.Field("type_params")
	require.True(t, ok)
	assert.False(t, typeParams.ExistsIn("3.11.4"))
	assert.True(t, typeParams.ExistsIn("3.12.0"))
	assert.True(t, typeParams.ExistsIn(""))

	typeVar, _ := ast.Lookup("TypeVar")
	defaultValue, _ := typeVar.Field("default_value")
	assert.False(t, defaultValue.ExistsIn("3.12.3"))
	assert.True(t, defaultValue.ExistsIn("3.13.0"))
}
