package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs/url"
	"github.com/viant/pyast/inspector"
	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/inspector/repository"
	"gopkg.in/yaml.v3"
)

func cmdInspect(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := fs.String("format", "json", "output format: json or yaml")
	documents := fs.Bool("documents", false, "print documents instead of declarations")
	asPackage := fs.Bool("package", false, "inspect a single package directory")
	private := fs.Bool("private", false, "include private declarations")
	tests := fs.Bool("tests", false, "include test modules")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(a.stderr, "usage: %s inspect [flags] <path>\n", appName)
		return 2
	}
	location := url.Path(fs.Arg(0))
	info, err := os.Stat(location)
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
		return 1
	}
	config := &graph.Config{
		IncludePrivate:    *private,
		SkipTests:         !*tests,
		RecursivePackages: true,
	}
	factory := inspector.NewFactory(config, a.parser)

	var result interface{}
	switch {
	case !info.IsDir():
		file, err := factory.InspectFile(ctx, location)
		if err != nil {
			a.reportError(err)
			return 1
		}
		result = file
		if *documents {
			result = file.Documents("")
		}
	case *asPackage:
		pkg, err := factory.InspectPackage(ctx, location)
		if err != nil {
			a.reportError(err)
			return 1
		}
		result = pkg
		if *documents {
			project := &graph.Project{Packages: []*graph.Package{pkg}}
			result = project.CreateDocuments(pkg.ImportPath)
		}
	default:
		detected, err := repository.New().DetectProject(ctx, location)
		if err != nil {
			fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
			return 1
		}
		a.logger.Debug("detected project", "name", detected.Name, "type", detected.Type, "root", detected.RootPath)
		project, err := factory.InspectProject(ctx, detected)
		if err != nil {
			a.reportError(err)
			return 1
		}
		result = project
		if *documents {
			result = project.CreateDocuments("")
		}
	}

	var output []byte
	switch strings.ToLower(*format) {
	case "json":
		output, err = json.MarshalIndent(result, "", "  ")
	case "yaml":
		output, err = yaml.Marshal(result)
	default:
		fmt.Fprintf(a.stderr, "%s: unsupported format %q\n", appName, *format)
		return 2
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", appName, err)
		return 1
	}
	a.stdout.Write(output)
	fmt.Fprintln(a.stdout)
	return 0
}
