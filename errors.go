package pyast

import (
	"fmt"

	"github.com/viant/pyast/convert"
	"github.com/viant/pyast/interpreter"
)

// SyntaxError is a syntax error reported by the interpreter. Line numbers
// are 1-based and columns 0-based like ast.Span; zero values mean the
// interpreter did not report the position. Type is the interpreter's
// exception class, ValueError when the source was rejected before parsing.
type SyntaxError struct {
	Module    string
	Type      string
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Text      string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("syntax error in %v: %v", e.Module, e.Message)
	}
	return fmt.Sprintf("syntax error in %v at %d:%d: %v", e.Module, e.Line, e.Column, e.Message)
}

func newSyntaxError(module string, report *interpreter.SyntaxReport) *SyntaxError {
	ret := &SyntaxError{Module: module, Type: report.Type, Message: report.Message}
	if report.Line != nil {
		ret.Line = *report.Line
	}
	if report.Offset != nil && *report.Offset > 0 {
		ret.Column = *report.Offset - 1
	}
	if report.EndLine != nil {
		ret.EndLine = *report.EndLine
	}
	if report.EndOffset != nil && *report.EndOffset > 0 {
		ret.EndColumn = *report.EndOffset - 1
	}
	if report.Text != nil {
		ret.Text = *report.Text
	}
	return ret
}

// ConversionError reports a raw tree that does not match the node schema.
type ConversionError struct {
	Module string
	Err    *convert.Error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %v: %v", e.Module, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
