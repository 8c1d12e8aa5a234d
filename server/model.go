package server

import (
	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/raw"
)

// ParseRequest represents a request to parse Python source
type ParseRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
	// Mode is exec, eval, single or func_type; empty uses the parser default.
	Mode         string `json:"mode,omitempty"`
	TypeComments bool   `json:"typeComments,omitempty"`
	// Dump adds the ast.dump rendering of the typed tree.
	Dump bool `json:"dump,omitempty"`
	// Indent is passed to the dump rendering.
	Indent string `json:"indent,omitempty"`
}

// ParseResponse holds either the raw tree or the error of a parse.
type ParseResponse struct {
	Version string      `json:"version,omitempty"`
	Tree    *raw.Node   `json:"tree,omitempty"`
	Dump    string      `json:"dump,omitempty"`
	Error   *ParseError `json:"error,omitempty"`
}

// ParseError kinds
const (
	SyntaxErrorKind     = "syntax"
	ConversionErrorKind = "conversion"
)

// ParseError represents a syntax or conversion error
type ParseError struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
	Text      string `json:"text,omitempty"`
	// Path locates the offending raw value of a conversion error.
	Path string `json:"path,omitempty"`
	// Cause is the conversion error kind, or the interpreter exception class of a syntax error.
	Cause string `json:"cause,omitempty"`
}

// InspectRequest represents a request to inspect one Python module
type InspectRequest struct {
	Source string `json:"source"`
	// Documents adds the documents of the inspected module.
	Documents bool `json:"documents,omitempty"`
}

// InspectResponse holds the declarations of the inspected module
type InspectResponse struct {
	File      *graph.File     `json:"file,omitempty"`
	Documents graph.Documents `json:"documents,omitempty"`
	Error     *ParseError     `json:"error,omitempty"`
}
