package interpreter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/pyast/raw"
)

// ErrMalformedResponse is returned when the interpreter output is neither a tree nor a syntax error.
var ErrMalformedResponse = errors.New("malformed interpreter response")

type envelope struct {
	Version string        `json:"version"`
	Tree    *raw.Node     `json:"tree,omitempty"`
	Error   *SyntaxReport `json:"error,omitempty"`
}

// DecodeResponse decodes the JSON envelope written by the dump script.
func DecodeResponse(data []byte) (*Response, error) {
	output := &envelope{}
	if err := json.Unmarshal(data, output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	response := &Response{Version: output.Version}
	switch {
	case output.Error != nil:
		response.Syntax = output.Error
	case output.Tree != nil:
		response.Tree = &raw.Tree{Version: output.Version, Root: output.Tree}
	default:
		return nil, fmt.Errorf("%w: neither tree nor error", ErrMalformedResponse)
	}
	return response, nil
}

// EncodeResponse encodes a response in the dump script envelope.
func EncodeResponse(response *Response) ([]byte, error) {
	output := &envelope{Version: response.Version, Error: response.Syntax}
	if response.Tree != nil {
		output.Tree = response.Tree.Root
	}
	return json.Marshal(output)
}
