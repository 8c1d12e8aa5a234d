// Package pyast parses Python 3 source code into a typed syntax tree.
//
// Parsing is delegated to an external Python interpreter through the
// interpreter package; the raw tree it reports is converted by the convert
// package into the closed node types of the ast package.
//
//	module, err := pyast.Parse(ctx, []byte("x = 1 + 2"), "example")
package pyast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/convert"
	"github.com/viant/pyast/interpreter"
	"github.com/viant/pyast/raw"
)

// Parser parses source text with an interpreter and converts the result.
// It is safe for concurrent use.
type Parser struct {
	config     *Config
	runner     interpreter.Runner
	converter  *convert.Converter
	convertOpt []convert.Option
	logger     *slog.Logger
	fs         afs.Service
}

// Option configures a Parser.
type Option func(p *Parser)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(p *Parser) {
		if config != nil {
			p.config = config
		}
	}
}

// WithRunner replaces the interpreter process built from the configuration.
func WithRunner(runner interpreter.Runner) Option {
	return func(p *Parser) {
		p.runner = runner
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithConvertOptions configures the converter.
func WithConvertOptions(opts ...convert.Option) Option {
	return func(p *Parser) {
		p.convertOpt = append(p.convertOpt, opts...)
	}
}

// WithFS sets the storage service used by ParseFile.
func WithFS(fs afs.Service) Option {
	return func(p *Parser) {
		p.fs = fs
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	ret := &Parser{config: DefaultConfig(), logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.runner == nil {
		ret.runner = interpreter.NewProcess(ret.config.Python,
			interpreter.WithTimeout(ret.config.Timeout),
			interpreter.WithMaxProcesses(ret.config.MaxProcesses),
			interpreter.WithLogger(ret.logger))
		if ret.config.Cache.Enabled {
			ret.runner = interpreter.NewCache(ret.runner, ret.config.Cache.MaxEntries, ret.logger)
		}
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.converter = convert.New(ret.convertOpt...)
	return ret
}

// Runner returns the interpreter runner.
func (p *Parser) Runner() interpreter.Runner {
	return p.runner
}

// Config returns the parser configuration.
func (p *Parser) Config() *Config {
	return p.config
}

var (
	defaultParser     *Parser
	defaultParserOnce sync.Once
)

// Parse parses a module with a parser using DefaultConfig.
func Parse(ctx context.Context, source []byte, moduleName string) (*ast.Module, error) {
	defaultParserOnce.Do(func() {
		defaultParser = New()
	})
	return defaultParser.Parse(ctx, source, moduleName)
}

// Parse parses a module. moduleName is recorded on the result and used in errors.
// A syntax error yields *SyntaxError and a tree that does not match the node
// schema yields *ConversionError; no partial tree is returned.
func (p *Parser) Parse(ctx context.Context, source []byte, moduleName string) (*ast.Module, error) {
	tree, err := p.dump(ctx, source, moduleName, interpreter.ModeExec)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	module, err := p.converter.Module(tree)
	if err != nil {
		return nil, p.conversionError(moduleName, err)
	}
	module.Name = moduleName
	if doc, ok := ast.GetDocstring(module.Body, false); ok {
		module.Docstring = &doc
	}
	p.logger.Debug("converted module", "module", moduleName, "statements", len(module.Body), "elapsed", time.Since(started))
	return module, nil
}

// ParseExpression parses a single expression in eval mode.
func (p *Parser) ParseExpression(ctx context.Context, source []byte) (*ast.Expression, error) {
	mod, err := p.ParseMode(ctx, source, "<expression>", interpreter.ModeEval)
	if err != nil {
		return nil, err
	}
	return mod.(*ast.Expression), nil
}

// ParseMode parses source with the given mode; an empty mode uses the configured one.
func (p *Parser) ParseMode(ctx context.Context, source []byte, filename string, mode interpreter.Mode) (ast.Mod, error) {
	_, mod, err := p.ParseRaw(ctx, source, filename, mode)
	return mod, err
}

// ParseRaw parses source like ParseMode and also returns the raw tree the
// interpreter reported.
func (p *Parser) ParseRaw(ctx context.Context, source []byte, filename string, mode interpreter.Mode) (*raw.Tree, ast.Mod, error) {
	if mode == "" {
		mode = interpreter.Mode(p.config.Mode)
	}
	if mode == "" {
		mode = interpreter.ModeExec
	}
	tree, err := p.dump(ctx, source, filename, mode)
	if err != nil {
		return nil, nil, err
	}
	mod, err := p.converter.Mod(tree)
	if err != nil {
		return nil, nil, p.conversionError(filename, err)
	}
	if rootModes[ast.TagOf(mod)] != mode {
		return nil, nil, fmt.Errorf("unexpected %v root for %v mode", ast.TagOf(mod), mode)
	}
	if module, ok := mod.(*ast.Module); ok {
		module.Name = ModuleName(filename)
		if doc, ok := ast.GetDocstring(module.Body, false); ok {
			module.Docstring = &doc
		}
	}
	return tree, mod, nil
}

var rootModes = map[string]interpreter.Mode{
	"Module":       interpreter.ModeExec,
	"Expression":   interpreter.ModeEval,
	"Interactive":  interpreter.ModeSingle,
	"FunctionType": interpreter.ModeFuncType,
}

// ParseFile reads and parses a module from URL; the module name is derived from the file path.
func (p *Parser) ParseFile(ctx context.Context, URL string) (*ast.Module, error) {
	source, err := p.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return p.Parse(ctx, source, ModuleName(URL))
}

// ModuleName derives a module name from a file path: the base name without
// extension, or the directory name for a package __init__ file.
func ModuleName(location string) string {
	location = strings.TrimRight(location, "/")
	name := path.Base(location)
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".py"), ".pyi")
	if name == "__init__" {
		return path.Base(path.Dir(location))
	}
	return name
}

func (p *Parser) dump(ctx context.Context, source []byte, name string, mode interpreter.Mode) (*raw.Tree, error) {
	response, err := p.runner.Dump(ctx, &interpreter.Request{
		Source:       source,
		Filename:     name,
		Mode:         mode,
		TypeComments: p.config.TypeComments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", name, err)
	}
	if response.Syntax != nil {
		syntaxErr := newSyntaxError(name, response.Syntax)
		p.logger.Debug("syntax error", "module", name, "line", syntaxErr.Line, "column", syntaxErr.Column, "message", syntaxErr.Message)
		return nil, syntaxErr
	}
	if response.Tree == nil {
		return nil, fmt.Errorf("failed to parse %v: %w", name, interpreter.ErrMalformedResponse)
	}
	return response.Tree, nil
}

func (p *Parser) conversionError(name string, err error) error {
	var convertErr *convert.Error
	if errors.As(err, &convertErr) {
		p.logger.Warn("conversion failed", "module", name, "kind", convertErr.Kind.String(), "path", convertErr.Path.String())
		return &ConversionError{Module: name, Err: convertErr}
	}
	return fmt.Errorf("failed to convert %v: %w", name, err)
}
