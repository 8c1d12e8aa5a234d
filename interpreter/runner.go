// Package interpreter runs an external Python interpreter that parses source
// code with its ast module and reports the raw tree.
package interpreter

import (
	"context"

	"github.com/viant/pyast/raw"
)

// Mode is the grammar start symbol passed to ast.parse.
type Mode string

const (
	ModeExec     Mode = "exec"
	ModeEval     Mode = "eval"
	ModeSingle   Mode = "single"
	ModeFuncType Mode = "func_type"
)

// Valid reports whether m is one of the ast.parse modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeExec, ModeEval, ModeSingle, ModeFuncType:
		return true
	}
	return false
}

// Request describes one source text to parse.
type Request struct {
	Source   []byte
	Filename string
	// Mode defaults to ModeExec.
	Mode Mode
	// TypeComments asks the interpreter to keep type comments and type: ignore markers.
	TypeComments bool
}

// SyntaxReport is the syntax error raised by the interpreter. Line numbers are
// 1-based; offsets are the interpreter's 1-based column offsets.
type SyntaxReport struct {
	Type      string  `json:"type"`
	Message   string  `json:"msg"`
	Line      *int    `json:"lineno,omitempty"`
	Offset    *int    `json:"offset,omitempty"`
	EndLine   *int    `json:"end_lineno,omitempty"`
	EndOffset *int    `json:"end_offset,omitempty"`
	Text      *string `json:"text,omitempty"`
}

// Response holds either the raw tree or the syntax error of a request.
type Response struct {
	Version string
	Tree    *raw.Tree
	Syntax  *SyntaxReport
}

// Runner parses source text into a raw tree.
type Runner interface {
	Dump(ctx context.Context, request *Request) (*Response, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, request *Request) (*Response, error)

// Dump calls f(ctx, request).
func (f RunnerFunc) Dump(ctx context.Context, request *Request) (*Response, error) {
	return f(ctx, request)
}
