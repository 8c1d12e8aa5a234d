package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sanity-io/litter"
	"github.com/viant/pyast"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/interpreter"
	"gopkg.in/yaml.v3"
)

func cmdParse(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := fs.String("format", "dump", "output format: dump, json, yaml or go")
	mode := fs.String("mode", "", "parse mode: exec, eval, single or func_type")
	indent := fs.Int("indent", 0, "dump indentation, zero renders one line")
	attributes := fs.Bool("attributes", false, "include location attributes in the dump")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(a.stderr, "usage: %s parse [flags] [file|-]\n", appName)
		return 2
	}
	location := "-"
	if fs.NArg() == 1 {
		location = fs.Arg(0)
	}
	source, filename, err := a.read(ctx, location)
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
		return 1
	}
	tree, mod, err := a.parser.ParseRaw(ctx, source, filename, interpreter.Mode(*mode))
	if err != nil {
		a.reportError(err)
		return 1
	}
	var output []byte
	switch strings.ToLower(*format) {
	case "dump":
		opts := ast.DumpOptions{IncludeAttributes: *attributes}
		if *indent > 0 {
			opts.Indent = strings.Repeat(" ", *indent)
		}
		output = []byte(ast.DumpWith(mod, opts))
	case "json":
		output, err = json.MarshalIndent(tree, "", "  ")
	case "yaml":
		output, err = yaml.Marshal(tree)
	case "go":
		output = []byte(goDump(mod))
	default:
		fmt.Fprintf(a.stderr, "%s: unsupported format %q\n", appName, *format)
		return 2
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
		return 1
	}
	a.stdout.Write(output)
	if len(output) > 0 && output[len(output)-1] != '\n' {
		fmt.Fprintln(a.stdout)
	}
	return 0
}

// goDump renders the typed tree as Go literals.
func goDump(node ast.Node) string {
	options := litter.Options{
		HidePrivateFields: true,
		HideZeroValues:    true,
		Separator:         " ",
	}
	return options.Sdump(node)
}

// read loads source from a file URL, or from stdin for "-".
func (a *app) read(ctx context.Context, location string) ([]byte, string, error) {
	if location == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := a.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %v: %w", location, err)
	}
	return data, location, nil
}

// reportError prints a parse failure, pointing at the offending column of a syntax error.
func (a *app) reportError(err error) {
	var syntaxErr *pyast.SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Text != "" {
		fmt.Fprintln(a.stderr, red(err.Error()))
		text := strings.TrimRight(syntaxErr.Text, "\n")
		fmt.Fprintf(a.stderr, "    %s\n", text)
		if syntaxErr.Column <= len(text) {
			fmt.Fprintf(a.stderr, "    %s^\n", strings.Repeat(" ", syntaxErr.Column))
		}
		return
	}
	if errors.As(err, &syntaxErr) && syntaxErr.Type != "" && syntaxErr.Type != "SyntaxError" {
		fmt.Fprintf(a.stderr, "%s (%s)\n", red(err.Error()), syntaxErr.Type)
		return
	}
	var conversionErr *pyast.ConversionError
	if errors.As(err, &conversionErr) {
		fmt.Fprintf(a.stderr, "%s (%s)\n", red(err.Error()), conversionErr.Err.Kind)
		return
	}
	fmt.Fprintln(a.stderr, red(err.Error()))
}
