// Package python extracts the declarations of Python modules into the graph model.
package python

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/pyast"
	"github.com/viant/pyast/inspector/graph"
)

// Inspector provides functionality to inspect Python code and extract type information
type Inspector struct {
	config *graph.Config
	parser *pyast.Parser
	fs     afs.Service
}

// NewInspector creates an Inspector; a nil parser uses pyast.New().
func NewInspector(config *graph.Config, parser *pyast.Parser) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	if parser == nil {
		parser = pyast.New()
	}
	return &Inspector{
		config: config,
		parser: parser,
		fs:     afs.New(),
	}
}

const defaultFilename = "source.py"

// InspectSource parses Python source code from a byte slice and extracts declarations
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*graph.File, error) {
	return i.inspect(ctx, src, defaultFilename, pyast.ModuleName(defaultFilename))
}

// InspectFile reads a Python module from URL and extracts declarations
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, src, URL, pyast.ModuleName(URL))
}

func (i *Inspector) inspect(ctx context.Context, src []byte, filename, importPath string) (*graph.File, error) {
	module, err := i.parser.Parse(ctx, src, importPath)
	if err != nil {
		return nil, err
	}
	notes, err := extractComments(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", filename, err)
	}
	file := &graph.File{
		Name:       path.Base(filename),
		Path:       filename,
		ImportPath: importPath,
		Package:    packageOf(filename, importPath),
	}
	file.Hash, _ = graph.Hash(src)
	b := &builder{config: i.config, src: newSource(src), notes: notes, file: file}
	b.module(module)
	return file, nil
}

// packageOf returns the package of a dotted module name; an __init__ module is its own package.
func packageOf(filename, importPath string) string {
	if strings.TrimSuffix(path.Base(filename), path.Ext(filename)) == "__init__" {
		return importPath
	}
	if idx := strings.LastIndexByte(importPath, '.'); idx != -1 {
		return importPath[:idx]
	}
	return ""
}

// isExported reports whether a name is public: no leading underscore, or a dunder name.
func isExported(name string) bool {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return true
	}
	return !strings.HasPrefix(name, "_")
}

func (b *builder) include(name string) bool {
	return b.config.IncludePrivate || isExported(name)
}
