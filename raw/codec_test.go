package raw_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast/raw"
	"gopkg.in/yaml.v3"
)

func assignTree() *raw.Node {
	at := func(node *raw.Node, lineno, col, endLineno, endCol int) *raw.Node {
		node.Fields["lineno"] = raw.Int(lineno)
		node.Fields["col_offset"] = raw.Int(col)
		node.Fields["end_lineno"] = raw.Int(endLineno)
		node.Fields["end_col_offset"] = raw.Int(endCol)
		return node
	}
	return raw.NewNode("Module",
		"body", raw.List{
			at(raw.NewNode("Assign",
				"targets", raw.List{at(raw.NewNode("Name", "id", raw.String("x"), "ctx", raw.NewNode("Store")), 1, 0, 1, 1)},
				"value", at(raw.NewNode("BinOp",
					"left", at(raw.NewNode("Constant", "value", &raw.Literal{Kind: "int", Value: "1"}, "kind", raw.Null{}), 1, 4, 1, 5),
					"op", raw.NewNode("Add"),
					"right", at(raw.NewNode("Constant", "value", &raw.Literal{Kind: "int", Value: "2"}, "kind", raw.Null{}), 1, 8, 1, 9),
				), 1, 4, 1, 9),
				"type_comment", raw.Null{},
			), 1, 0, 1, 9),
		},
		"type_ignores", raw.List{},
	)
}

const assignJSON = `{"version": "3.12.1", "tree": {"_type": "Module", "body": [{"_type": "Assign", "targets": [{"_type": "Name", "id": "x", "ctx": {"_type": "Store"}, "lineno": 1, "col_offset": 0, "end_lineno": 1, "end_col_offset": 1}], "value": {"_type": "BinOp", "left": {"_type": "Constant", "value": {"_const": "int", "value": "1"}, "kind": null, "lineno": 1, "col_offset": 4, "end_lineno": 1, "end_col_offset": 5}, "op": {"_type": "Add"}, "right": {"_type": "Constant", "value": {"_const": "int", "value": "2"}, "kind": null, "lineno": 1, "col_offset": 8, "end_lineno": 1, "end_col_offset": 9}, "lineno": 1, "col_offset": 4, "end_lineno": 1, "end_col_offset": 9}, "type_comment": null, "lineno": 1, "col_offset": 0, "end_lineno": 1, "end_col_offset": 9}], "type_ignores": []}}`

func TestDecodeJSON(t *testing.T) {
	tree, err := raw.DecodeJSON([]byte(assignJSON))
	require.NoError(t, err)
	assert.Equal(t, "3.12.1", tree.Version)
	assert.Equal(t, assignTree(), tree.Root)
}

func TestDecodeYAML(t *testing.T) {
	data, err := yaml.Marshal(&raw.Tree{Version: "3.12.1", Root: assignTree()})
	require.NoError(t, err)
	tree, err := raw.DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, assignTree(), tree.Root)
}

func TestNode_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(&raw.Tree{Version: "3.12.1", Root: assignTree()})
	require.NoError(t, err)
	tree, err := raw.DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, assignTree(), tree.Root)

	data, err = json.Marshal(raw.NewNode("Name", "id", raw.String("x"), "ctx", raw.NewNode("Load")))
	require.NoError(t, err)
	assert.Equal(t, `{"_type":"Name","ctx":{"_type":"Load"},"id":"x"}`, string(data))
}

func TestPlain_LoneSurrogate(t *testing.T) {
	literal := &raw.Literal{Kind: "str", Value: "a\xed\xa0\x80"}
	data, err := json.Marshal(raw.NewNode("Constant", "value", literal))
	require.NoError(t, err)
	assert.Equal(t, `{"_type":"Constant","value":{"_const":"str","value":"a?","wtf8":"Ye2ggA=="}}`, string(data))

	node := &raw.Node{}
	require.NoError(t, json.Unmarshal(data, node))
	assert.Equal(t, literal, node.Fields["value"])
}

func TestFromPlain_Literal(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		expect *raw.Literal
		hasErr bool
	}{
		{name: "int", json: `{"_const":"int","value":"123456789012345678901234567890"}`, expect: &raw.Literal{Kind: "int", Value: "123456789012345678901234567890"}},
		{name: "int number", json: `{"_const":"int","value":42}`, expect: &raw.Literal{Kind: "int", Value: "42"}},
		{name: "float", json: `{"_const":"float","value":"1e+16"}`, expect: &raw.Literal{Kind: "float", Value: "1e+16"}},
		{name: "complex", json: `{"_const":"complex","value":{"real":"0.0","imag":"1.5"}}`, expect: &raw.Literal{Kind: "complex", Value: raw.Complex{Real: "0.0", Imag: "1.5"}}},
		{name: "str", json: `{"_const":"str","value":"a\nb"}`, expect: &raw.Literal{Kind: "str", Value: "a\nb"}},
		{name: "str lone surrogate", json: `{"_const":"str","value":"\ud800","wtf8":"7aCA"}`, expect: &raw.Literal{Kind: "str", Value: "\xed\xa0\x80"}},
		{name: "invalid wtf8", json: `{"_const":"str","value":"?","wtf8":"!!"}`, hasErr: true},
		{name: "bytes", json: `{"_const":"bytes","value":"AP8="}`, expect: &raw.Literal{Kind: "bytes", Value: []byte{0x00, 0xff}}},
		{name: "bool", json: `{"_const":"bool","value":true}`, expect: &raw.Literal{Kind: "bool", Value: true}},
		{name: "None", json: `{"_const":"None","value":null}`, expect: &raw.Literal{Kind: "None"}},
		{name: "Ellipsis", json: `{"_const":"Ellipsis"}`, expect: &raw.Literal{Kind: "Ellipsis"}},
		{name: "unknown kind", json: `{"_const":"frozenset","value":["a"]}`, expect: &raw.Literal{Kind: "frozenset", Value: []any{"a"}}},
		{name: "invalid bytes", json: `{"_const":"bytes","value":"!!"}`, hasErr: true},
		{name: "invalid bool", json: `{"_const":"bool","value":"yes"}`, hasErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var plain any
			require.NoError(t, json.Unmarshal([]byte(tt.json), &plain))
			value, err := raw.FromPlain(plain)
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, value)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "missing tree", json: `{"version":"3.12.0"}`},
		{name: "object without type", json: `{"tree":{"body":[]}}`},
		{name: "fractional number", json: `{"tree":{"_type":"Module","lineno":1.5}}`},
		{name: "bare bool", json: `{"tree":{"_type":"Module","body":true}}`},
		{name: "constant root", json: `{"tree":{"_const":"int","value":"1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := raw.DecodeJSON([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "absent", raw.Describe(nil))
	assert.Equal(t, "null", raw.Describe(raw.Null{}))
	assert.Equal(t, "list", raw.Describe(raw.List{}))
	assert.Equal(t, "node Name", raw.Describe(raw.NewNode("Name")))
	assert.Equal(t, "constant str", raw.Describe(&raw.Literal{Kind: "str"}))
}

func TestNode_Clone(t *testing.T) {
	original := assignTree()
	copied := original.Clone()
	assert.Equal(t, original, copied)
	copied.Fields["body"].(raw.List)[0].(*raw.Node).Type = "AugAssign"
	assert.Equal(t, "Assign", original.Fields["body"].(raw.List)[0].(*raw.Node).Type)
}
