package python

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/pyast/inspector/graph"
	"golang.org/x/sync/errgroup"
)

var skipDirs = map[string]bool{
	"__pycache__":   true,
	"node_modules":  true,
	"site-packages": true,
	"venv":          true,
	"build":         true,
	"dist":          true,
}

// packageDir lists the files of one directory relative to the walked root.
type packageDir struct {
	URL     string
	rel     string
	sources []string
	assets  []string
}

// InspectPackage inspects the modules of a single directory
func (i *Inspector) InspectPackage(ctx context.Context, URL string) (*graph.Package, error) {
	dirs, err := i.scan(ctx, URL, false)
	if err != nil {
		return nil, err
	}
	dir := dirs[""]
	if dir == nil || len(dir.sources) == 0 {
		return nil, fmt.Errorf("no Python files found in package: %s", URL)
	}
	importPath := ""
	if hasInit(dir.sources) {
		importPath = path.Base(strings.TrimRight(URL, "/"))
	}
	return i.inspectPackage(ctx, dir, importPath)
}

// InspectPackages inspects every directory with Python modules under root
func (i *Inspector) InspectPackages(ctx context.Context, root string) ([]*graph.Package, error) {
	dirs, err := i.scan(ctx, root, i.config.RecursivePackages)
	if err != nil {
		return nil, err
	}
	var rels []string
	for rel, dir := range dirs {
		if len(dir.sources) > 0 {
			rels = append(rels, rel)
		}
	}
	sort.Strings(rels)
	var packages []*graph.Package
	for _, rel := range rels {
		pkg, err := i.inspectPackage(ctx, dirs[rel], strings.ReplaceAll(rel, "/", "."))
		if err != nil {
			return nil, fmt.Errorf("error inspecting package in %s: %w", rel, err)
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

// scan groups the files under root by directory.
func (i *Inspector) scan(ctx context.Context, root string, recursive bool) (map[string]*packageDir, error) {
	dirs := map[string]*packageDir{}
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			name := info.Name()
			return recursive && !strings.HasPrefix(name, ".") && !skipDirs[name], nil
		}
		parent = strings.Trim(parent, "/")
		dir, ok := dirs[parent]
		if !ok {
			dir = &packageDir{URL: url.Join(baseURL, parent), rel: parent}
			dirs[parent] = dir
		}
		name := info.Name()
		switch {
		case !isSource(name):
			if !i.config.SkipAsset {
				dir.assets = append(dir.assets, name)
			}
		case i.config.SkipTests && isTest(name):
		default:
			dir.sources = append(dir.sources, name)
		}
		return true, nil
	}
	if err := i.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("error walking package directories: %w", err)
	}
	return dirs, nil
}

// inspectPackage parses the modules of dir concurrently.
func (i *Inspector) inspectPackage(ctx context.Context, dir *packageDir, importPath string) (*graph.Package, error) {
	sort.Strings(dir.sources)
	sort.Strings(dir.assets)
	pkg := &graph.Package{ImportPath: importPath, Name: path.Base(strings.ReplaceAll(importPath, ".", "/"))}
	if importPath == "" {
		pkg.Name = ""
	}
	files := make([]*graph.File, len(dir.sources))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(i.concurrency())
	for idx, name := range dir.sources {
		idx, name := idx, name
		group.Go(func() error {
			URL := url.Join(dir.URL, name)
			src, err := i.fs.DownloadWithURL(ctx, URL)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", URL, err)
			}
			file, err := i.inspect(ctx, src, URL, moduleImportPath(importPath, name))
			if err != nil {
				return fmt.Errorf("failed to inspect file %s: %w", URL, err)
			}
			files[idx] = file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	pkg.FileSet = files
	for _, name := range dir.assets {
		URL := url.Join(dir.URL, name)
		content, err := i.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset %s: %w", URL, err)
		}
		pkg.Assets = append(pkg.Assets, &graph.Asset{Name: name, Path: URL, ImportPath: importPath, Content: content})
	}
	return pkg, nil
}

func (i *Inspector) concurrency() int {
	if limit := i.parser.Config().MaxProcesses; limit > 0 {
		return limit
	}
	return runtime.NumCPU()
}

// moduleImportPath joins a package import path and a module file name.
func moduleImportPath(pkg, name string) string {
	module := strings.TrimSuffix(strings.TrimSuffix(name, ".py"), ".pyi")
	switch {
	case module == "__init__":
		return pkg
	case pkg == "":
		return module
	}
	return pkg + "." + module
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".pyi")
}

func isTest(name string) bool {
	return strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py") || name == "conftest.py"
}

func hasInit(names []string) bool {
	for _, name := range names {
		if name == "__init__.py" || name == "__init__.pyi" {
			return true
		}
	}
	return false
}
