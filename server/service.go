// Package server exposes the parser over Connect RPC.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/viant/pyast"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/inspector/python"
	"github.com/viant/pyast/interpreter"
)

const defaultFilename = "<unknown>"

// ParserService implements the Connect RPC ParserService
type ParserService struct {
	parser *pyast.Parser
	// typeComments shares the runner of parser and keeps type comments.
	typeComments *pyast.Parser
	inspector    *python.Inspector
	logger       *slog.Logger
}

// NewParserService creates a ParserService; a nil parser uses pyast.New().
func NewParserService(parser *pyast.Parser, logger *slog.Logger) *ParserService {
	if parser == nil {
		parser = pyast.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	ret := &ParserService{
		parser:       parser,
		typeComments: parser,
		inspector:    python.NewInspector(graph.DefaultConfig(), parser),
		logger:       logger,
	}
	if !parser.Config().TypeComments {
		config := *parser.Config()
		config.TypeComments = true
		ret.typeComments = pyast.New(pyast.WithConfig(&config), pyast.WithRunner(parser.Runner()), pyast.WithLogger(logger))
	}
	return ret
}

// Parse handles the Parse RPC method
func (s *ParserService) Parse(
	ctx context.Context,
	req *connect.Request[ParseRequest],
) (*connect.Response[ParseResponse], error) {
	msg := req.Msg
	mode := interpreter.Mode(msg.Mode)
	if mode != "" && !mode.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported mode: %q", msg.Mode))
	}
	filename := msg.Filename
	if filename == "" {
		filename = defaultFilename
	}
	parser := s.parser
	if msg.TypeComments {
		parser = s.typeComments
	}

	tree, mod, err := parser.ParseRaw(ctx, []byte(msg.Source), filename, mode)
	if err != nil {
		if parseErr := toParseError(err); parseErr != nil {
			s.logger.Debug("parse rejected", "filename", filename, "kind", parseErr.Kind, "message", parseErr.Message)
			return connect.NewResponse(&ParseResponse{Error: parseErr}), nil
		}
		return nil, toConnectError(err)
	}
	response := &ParseResponse{Version: tree.Version, Tree: tree.Root}
	if msg.Dump {
		response.Dump = ast.DumpWith(mod, ast.DumpOptions{Indent: msg.Indent})
	}
	return connect.NewResponse(response), nil
}

// Inspect handles the Inspect RPC method
func (s *ParserService) Inspect(
	ctx context.Context,
	req *connect.Request[InspectRequest],
) (*connect.Response[InspectResponse], error) {
	file, err := s.inspector.InspectSource(ctx, []byte(req.Msg.Source))
	if err != nil {
		if parseErr := toParseError(err); parseErr != nil {
			return connect.NewResponse(&InspectResponse{Error: parseErr}), nil
		}
		return nil, toConnectError(err)
	}
	response := &InspectResponse{File: file}
	if req.Msg.Documents {
		response.Documents = file.Documents("")
	}
	return connect.NewResponse(response), nil
}

// toParseError returns the structured form of a syntax or conversion error, nil for any other error.
func toParseError(err error) *ParseError {
	var syntaxErr *pyast.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Kind:      SyntaxErrorKind,
			Message:   syntaxErr.Message,
			Line:      syntaxErr.Line,
			Column:    syntaxErr.Column,
			EndLine:   syntaxErr.EndLine,
			EndColumn: syntaxErr.EndColumn,
			Text:      syntaxErr.Text,
			Cause:     syntaxErr.Type,
		}
	}
	var conversionErr *pyast.ConversionError
	if errors.As(err, &conversionErr) {
		return &ParseError{
			Kind:    ConversionErrorKind,
			Message: conversionErr.Err.Error(),
			Path:    conversionErr.Err.Path.String(),
			Cause:   conversionErr.Err.Kind.String(),
		}
	}
	return nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// Codec implements a plain JSON codec for the service messages
type Codec struct{}

func (c *Codec) Name() string {
	return "json"
}

func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
