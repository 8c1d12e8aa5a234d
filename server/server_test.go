package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/pyast"
	"github.com/viant/pyast/interpreter"
	"github.com/viant/pyast/raw"
	"github.com/viant/pyast/server"
)

func located(node *raw.Node, lineno, col, endLineno, endCol int) *raw.Node {
	node.Fields["lineno"] = raw.Int(lineno)
	node.Fields["col_offset"] = raw.Int(col)
	node.Fields["end_lineno"] = raw.Int(endLineno)
	node.Fields["end_col_offset"] = raw.Int(endCol)
	return node
}

func testServer(t *testing.T) *httptest.Server {
	intPtr := func(v int) *int { return &v }
	assign := raw.NewNode("Module",
		"body", raw.List{located(raw.NewNode("Assign",
			"targets", raw.List{located(raw.NewNode("Name", "id", raw.String("x"), "ctx", raw.NewNode("Store")), 1, 0, 1, 1)},
			"value", located(raw.NewNode("Constant", "value", &raw.Literal{Kind: "int", Value: "1"}, "kind", raw.Null{}), 1, 4, 1, 5),
			"type_comment", raw.Null{}), 1, 0, 1, 5)},
		"type_ignores", raw.List{})
	walrus := raw.NewNode("Module",
		"body", raw.List{located(raw.NewNode("Expr", "value", located(raw.NewNode("Walrus"), 1, 0, 1, 6)), 1, 0, 1, 6)},
		"type_ignores", raw.List{})
	runner := interpreter.RunnerFunc(func(ctx context.Context, request *interpreter.Request) (*interpreter.Response, error) {
		switch string(request.Source) {
		case "x = 1":
			return &interpreter.Response{Version: "3.12.4", Tree: &raw.Tree{Version: "3.12.4", Root: assign}}, nil
		case "x := y":
			return &interpreter.Response{Version: "3.12.4", Tree: &raw.Tree{Version: "3.12.4", Root: walrus}}, nil
		case "def f(:":
			return &interpreter.Response{Version: "3.12.4", Syntax: &interpreter.SyntaxReport{
				Type: "SyntaxError", Message: "invalid syntax", Line: intPtr(1), Offset: intPtr(7),
			}}, nil
		case "typed":
			if !request.TypeComments {
				return nil, errors.New("type comments disabled")
			}
			return &interpreter.Response{Version: "3.12.4", Tree: &raw.Tree{Version: "3.12.4", Root: raw.NewNode("Module", "body", raw.List{}, "type_ignores", raw.List{})}}, nil
		}
		return nil, errors.New("interpreter unavailable")
	})
	service := server.NewParserService(pyast.New(pyast.WithRunner(runner)), nil)
	srv := httptest.NewServer(server.New(":0", service, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestParserService_Parse(t *testing.T) {
	srv := testServer(t)
	client := connect.NewClient[server.ParseRequest, server.ParseResponse](http.DefaultClient, srv.URL+server.ParseProcedure, connect.WithCodec(&server.Codec{}))
	ctx := context.Background()

	t.Run("tree", func(t *testing.T) {
		res, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "x = 1", Filename: "m.py", Dump: true}))
		require.NoError(t, err)
		assert.Nil(t, res.Msg.Error)
		assert.Equal(t, "3.12.4", res.Msg.Version)
		require.NotNil(t, res.Msg.Tree)
		assert.Equal(t, "Module", res.Msg.Tree.Type)
		body, ok := res.Msg.Tree.Fields["body"].(raw.List)
		require.True(t, ok)
		require.Len(t, body, 1)
		assert.Equal(t, "Assign", body[0].(*raw.Node).Type)
		assert.Equal(t, "Module(body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=1))], type_ignores=[])", res.Msg.Dump)
	})

	t.Run("syntax error", func(t *testing.T) {
		res, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "def f(:"}))
		require.NoError(t, err)
		assert.Nil(t, res.Msg.Tree)
		assert.Equal(t, &server.ParseError{Kind: server.SyntaxErrorKind, Message: "invalid syntax", Line: 1, Column: 6, Cause: "SyntaxError"}, res.Msg.Error)
	})

	t.Run("conversion error", func(t *testing.T) {
		res, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "x := y"}))
		require.NoError(t, err)
		require.NotNil(t, res.Msg.Error)
		assert.Equal(t, server.ConversionErrorKind, res.Msg.Error.Kind)
		assert.Equal(t, "UnknownNodeKind", res.Msg.Error.Cause)
		assert.Equal(t, "Module.body[0]<Expr>.value", res.Msg.Error.Path)
	})

	t.Run("type comments", func(t *testing.T) {
		res, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "typed", TypeComments: true}))
		require.NoError(t, err)
		assert.Nil(t, res.Msg.Error)
		_, err = client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "typed"}))
		assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "x = 1", Mode: "statement"}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("interpreter failure", func(t *testing.T) {
		_, err := client.CallUnary(ctx, connect.NewRequest(&server.ParseRequest{Source: "??"}))
		assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	})
}

func TestParserService_Inspect(t *testing.T) {
	srv := testServer(t)
	client := connect.NewClient[server.InspectRequest, server.InspectResponse](http.DefaultClient, srv.URL+server.InspectProcedure, connect.WithCodec(&server.Codec{}))
	ctx := context.Background()

	res, err := client.CallUnary(ctx, connect.NewRequest(&server.InspectRequest{Source: "x = 1", Documents: true}))
	require.NoError(t, err)
	require.NotNil(t, res.Msg.File)
	require.Len(t, res.Msg.File.Variables, 1)
	assert.Equal(t, "x", res.Msg.File.Variables[0].Name)
	assert.NotEmpty(t, res.Msg.Documents)

	res, err = client.CallUnary(ctx, connect.NewRequest(&server.InspectRequest{Source: "def f(:"}))
	require.NoError(t, err)
	require.NotNil(t, res.Msg.Error)
	assert.Equal(t, server.SyntaxErrorKind, res.Msg.Error.Kind)
}

func TestHandler_Health(t *testing.T) {
	srv := testServer(t)
	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}
