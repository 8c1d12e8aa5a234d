package graph

import (
	"path/filepath"
	"strings"

	"github.com/viant/afs/url"
)

// Project represents a Python project with multiple packages
type Project struct {
	Name          string
	Type          string
	RootPath      string
	RepositoryURL string
	Packages      []*Package
	packageMap    map[string]int
}

// GetPackage retrieves a package by its dotted import path
func (p *Project) GetPackage(importPath string) *Package {
	if p.packageMap == nil {
		p.packageMap = indexNames(len(p.Packages), func(i int) string { return p.Packages[i].ImportPath })
	}
	if idx, ok := p.packageMap[importPath]; ok && idx < len(p.Packages) {
		return p.Packages[idx]
	}
	return nil
}

// AddPackage adds a package to the project
func (p *Project) AddPackage(pkg *Package) {
	p.Packages = append(p.Packages, pkg)
	p.packageMap = nil
}

// RemovePackage removes a package by its dotted import path
func (p *Project) RemovePackage(importPath string) bool {
	for i, pkg := range p.Packages {
		if pkg.ImportPath == importPath {
			p.Packages = append(p.Packages[:i], p.Packages[i+1:]...)
			p.packageMap = nil
			return true
		}
	}
	return false
}

// Init makes file and asset paths relative to the project root and fills
// missing package names on declared types.
func (p *Project) Init() {
	p.packageMap = nil
	if p.RootPath == "" {
		return
	}
	for _, pkg := range p.Packages {
		for _, asset := range pkg.Assets {
			asset.Name = filepath.Base(asset.Path)
			asset.Path = p.relative(asset.Path)
		}
		for _, file := range pkg.FileSet {
			if file.Package == "" {
				file.Package = pkg.ImportPath
			}
			if file.Path != "" {
				file.Name = filepath.Base(file.Path)
				file.Path = p.relative(file.Path)
			}
			for _, t := range file.Types {
				if t.Package == "" {
					t.Package = pkg.ImportPath
					t.PackagePath = file.ImportPath
				}
			}
		}
	}
}

func (p *Project) relative(location string) string {
	root := url.Path(p.RootPath)
	location = url.Path(location)
	if rel, err := filepath.Rel(root, location); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return location
}
