// Package coder edits an inspected Python project and writes its modules back.
package coder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/pyast/inspector"
	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/inspector/repository"
)

// Coder creates and removes packages, modules, classes and their members.
// Edited modules are rendered with an Emitter, so a project can be reduced to
// selected declarations or extended before it is stored.
type Coder struct {
	Project *graph.Project
	Emitter *Emitter
	factory *inspector.Factory
	fs      afs.Service
}

// NewCoder creates a Coder; a nil factory uses inspector.NewFactory(nil, nil).
func NewCoder(project *graph.Project, factory *inspector.Factory) *Coder {
	if project == nil {
		project = &graph.Project{}
	}
	if factory == nil {
		factory = inspector.NewFactory(nil, nil)
	}
	return &Coder{
		Project: project,
		Emitter: &Emitter{},
		factory: factory,
		fs:      afs.New(),
	}
}

// CreatePackage creates a package; importPath is dotted, name defaults to its last part
func (c *Coder) CreatePackage(name, importPath string) *graph.Package {
	if name == "" {
		name = importPath[strings.LastIndex(importPath, ".")+1:]
	}
	pkg := &graph.Package{Name: name, ImportPath: importPath}
	c.Project.AddPackage(pkg)
	return pkg
}

// RemovePackage removes a package by import path
func (c *Coder) RemovePackage(importPath string) bool {
	return c.Project.RemovePackage(importPath)
}

// CreateFile creates a module in the package; its path follows the import path
func (c *Coder) CreateFile(importPath, fileName string) (*graph.File, error) {
	pkg := c.Project.GetPackage(importPath)
	if pkg == nil {
		return nil, fmt.Errorf("package %s not found", importPath)
	}
	if !strings.HasSuffix(fileName, ".py") && !strings.HasSuffix(fileName, ".pyi") {
		return nil, fmt.Errorf("invalid module file name: %s", fileName)
	}
	module := strings.TrimSuffix(strings.TrimSuffix(fileName, ".pyi"), ".py")
	ret := &graph.File{
		Name:       fileName,
		Path:       path.Join(strings.ReplaceAll(importPath, ".", "/"), fileName),
		Package:    importPath,
		ImportPath: joinImport(importPath, module),
	}
	if module == "__init__" {
		ret.ImportPath = importPath
	}
	pkg.AddFile(ret)
	return ret, nil
}

// RemoveFile removes a module from the package by file name
func (c *Coder) RemoveFile(importPath, fileName string) bool {
	pkg := c.Project.GetPackage(importPath)
	if pkg == nil {
		return false
	}
	for i, f := range pkg.FileSet {
		if f.Name == fileName {
			pkg.FileSet = append(pkg.FileSet[:i], pkg.FileSet[i+1:]...)
			pkg.IndexTypes()
			return true
		}
	}
	return false
}

// CreateType creates a class in the module
func (c *Coder) CreateType(importPath, fileName, typeName string, kind graph.Kind, extends ...string) (*graph.Type, error) {
	f, err := c.file(importPath, fileName)
	if err != nil {
		return nil, err
	}
	if f.LookupType(typeName) != nil {
		return nil, fmt.Errorf("type %s already exists in %s", typeName, fileName)
	}
	if kind == "" {
		kind = graph.KindClass
	}
	ret := &graph.Type{
		Name:        typeName,
		Kind:        kind,
		Package:     f.Package,
		PackagePath: f.ImportPath,
		IsExported:  !strings.HasPrefix(typeName, "_"),
		Extends:     extends,
	}
	if kind == graph.KindDataclass {
		ret.Decorators = []string{"dataclass"}
	}
	f.Types = append(f.Types, ret)
	f.IndexTypes()
	c.Project.GetPackage(importPath).IndexTypes()
	return ret, nil
}

// RemoveType removes a class from the module
func (c *Coder) RemoveType(importPath, fileName, typeName string) bool {
	f, err := c.file(importPath, fileName)
	if err != nil {
		return false
	}
	for i, t := range f.Types {
		if t.Name == typeName {
			f.Types = append(f.Types[:i], f.Types[i+1:]...)
			f.IndexTypes()
			c.Project.GetPackage(importPath).IndexTypes()
			return true
		}
	}
	return false
}

// CreateField adds a class attribute declared in the class body
func (c *Coder) CreateField(importPath, fileName, typeName, fieldName, fieldType, value string) (*graph.Field, error) {
	typ, err := c.typ(importPath, fileName, typeName)
	if err != nil {
		return nil, err
	}
	if typ.LookupField(fieldName) != nil {
		return nil, fmt.Errorf("field %s already exists in %s", fieldName, typeName)
	}
	ret := &graph.Field{
		Name:       fieldName,
		Type:       fieldType,
		Value:      value,
		IsExported: !strings.HasPrefix(fieldName, "_"),
		IsClassVar: true,
	}
	typ.AddField(ret)
	return ret, nil
}

// RemoveField removes a class attribute
func (c *Coder) RemoveField(importPath, fileName, typeName, fieldName string) bool {
	typ, err := c.typ(importPath, fileName, typeName)
	if err != nil {
		return false
	}
	return typ.RemoveField(fieldName)
}

// CreateMethod adds a method; parameters include the receiver
func (c *Coder) CreateMethod(importPath, fileName, typeName, methodName string, parameters []*graph.Parameter, results []*graph.Parameter, body string) (*graph.Function, error) {
	typ, err := c.typ(importPath, fileName, typeName)
	if err != nil {
		return nil, err
	}
	ret := newFunction(methodName, parameters, results, body)
	ret.Receiver = typeName
	ret.IsConstructor = methodName == "__init__" || methodName == "__new__"
	typ.AddMethod(ret)
	return ret, nil
}

// RemoveMethod removes a method from the class
func (c *Coder) RemoveMethod(importPath, fileName, typeName, methodName string) bool {
	typ, err := c.typ(importPath, fileName, typeName)
	if err != nil {
		return false
	}
	return typ.RemoveMethod(methodName)
}

// CreateFunction adds a module level function
func (c *Coder) CreateFunction(importPath, fileName, functionName string, parameters []*graph.Parameter, results []*graph.Parameter, body string) (*graph.Function, error) {
	f, err := c.file(importPath, fileName)
	if err != nil {
		return nil, err
	}
	ret := newFunction(functionName, parameters, results, body)
	f.Functions = append(f.Functions, ret)
	f.IndexFunctions()
	return ret, nil
}

// RemoveFunction removes a module level function
func (c *Coder) RemoveFunction(importPath, fileName, functionName string) bool {
	f, err := c.file(importPath, fileName)
	if err != nil {
		return false
	}
	for i, fn := range f.Functions {
		if fn.Name == functionName {
			f.Functions = append(f.Functions[:i], f.Functions[i+1:]...)
			f.IndexFunctions()
			return true
		}
	}
	return false
}

// LoadProject detects and inspects the project at location
func (c *Coder) LoadProject(ctx context.Context, location string) error {
	detected, err := repository.New().DetectProject(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to detect project: %w", err)
	}
	project, err := c.factory.InspectProject(ctx, detected)
	if err != nil {
		return fmt.Errorf("failed to inspect project: %w", err)
	}
	if project.Name == "" {
		project.Name = detected.Name
	}
	c.Project = project
	return nil
}

// StoreProject renders every module with the Emitter and uploads it with the
// package assets under URL; stub modules get the .pyi extension.
func (c *Coder) StoreProject(ctx context.Context, URL string) error {
	if c.Project == nil {
		return fmt.Errorf("no project to store")
	}
	for _, pkg := range c.Project.Packages {
		for _, f := range pkg.FileSet {
			content, err := c.Emitter.Emit(f)
			if err != nil {
				return err
			}
			location := f.Path
			if c.Emitter.Stub {
				location = strings.TrimSuffix(location, ".py")
				if !strings.HasSuffix(location, ".pyi") {
					location += ".pyi"
				}
			}
			if err = c.upload(ctx, url.Join(URL, location), content); err != nil {
				return err
			}
		}
		for _, asset := range pkg.Assets {
			if len(asset.Content) == 0 {
				continue
			}
			if err := c.upload(ctx, url.Join(URL, asset.Path), asset.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Coder) upload(ctx context.Context, URL string, content []byte) error {
	if err := c.fs.Upload(ctx, URL, os.FileMode(0o644), bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to store %s: %w", URL, err)
	}
	return nil
}

func (c *Coder) file(importPath, fileName string) (*graph.File, error) {
	pkg := c.Project.GetPackage(importPath)
	if pkg == nil {
		return nil, fmt.Errorf("package %s not found", importPath)
	}
	for _, f := range pkg.FileSet {
		if f.Name == fileName {
			return f, nil
		}
	}
	return nil, fmt.Errorf("file %s not found in package %s", fileName, importPath)
}

func (c *Coder) typ(importPath, fileName, typeName string) (*graph.Type, error) {
	f, err := c.file(importPath, fileName)
	if err != nil {
		return nil, err
	}
	typ := f.LookupType(typeName)
	if typ == nil {
		return nil, fmt.Errorf("type %s not found in file %s", typeName, fileName)
	}
	return typ, nil
}

func newFunction(name string, parameters, results []*graph.Parameter, body string) *graph.Function {
	ret := &graph.Function{
		Name:       name,
		Parameters: parameters,
		Results:    results,
		IsExported: !strings.HasPrefix(name, "_") || strings.HasSuffix(name, "__"),
	}
	if body != "" {
		ret.Body = &graph.LocationNode{Text: body}
		ret.Hash, _ = graph.Hash([]byte(body))
	}
	ret.Signature = ret.BuildSignature()
	return ret
}

func joinImport(pkg, module string) string {
	if pkg == "" {
		return module
	}
	return pkg + "." + module
}
