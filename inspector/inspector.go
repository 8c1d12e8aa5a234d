package inspector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/pyast"
	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/inspector/python"
	"github.com/viant/pyast/inspector/repository"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts type information
	InspectSource(ctx context.Context, src []byte) (*graph.File, error)

	// InspectFile parses a source file and extracts type information
	InspectFile(ctx context.Context, URL string) (*graph.File, error)

	// InspectPackage inspects a package directory and extracts all type information
	InspectPackage(ctx context.Context, URL string) (*graph.Package, error)

	// InspectProject inspects a project directory and extracts all type information
	InspectProject(ctx context.Context, location string) (*graph.Project, error)
}

// Factory creates appropriate inspectors based on file type
type Factory struct {
	config *graph.Config
	parser *pyast.Parser
}

// NewFactory creates a new inspector factory with the given config; a nil
// parser uses pyast.New().
func NewFactory(config *graph.Config, parser *pyast.Parser) *Factory {
	if config == nil {
		config = &graph.Config{
			IncludePrivate:    true,
			SkipTests:         true,
			RecursivePackages: true,
		}
	}
	if parser == nil {
		parser = pyast.New()
	}
	return &Factory{
		config: config,
		parser: parser,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".py", ".pyi":
		return python.NewInspector(f.config, f.parser), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, filename string) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, filename)
}

// InspectPackage is a convenience method that inspects the modules of a package directory
func (f *Factory) InspectPackage(ctx context.Context, packagePath string) (*graph.Package, error) {
	return python.NewInspector(f.config, f.parser).InspectPackage(ctx, packagePath)
}

// InspectProject inspects a detected project
func (f *Factory) InspectProject(ctx context.Context, project *repository.Project) (*graph.Project, error) {
	switch project.Type {
	case "python", "git", "unknown":
		return python.NewInspector(f.config, f.parser).InspectProject(ctx, project.RootPath)
	}
	return nil, fmt.Errorf("unsupported project type: %s", project.Type)
}
