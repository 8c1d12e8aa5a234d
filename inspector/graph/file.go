package graph

// File represents a Python module with its classes and symbols
type File struct {
	Name       string      // File name
	Path       string      // File path
	Package    string      // Dotted package name
	ImportPath string      // Dotted module name
	Docstring  string      // Module docstring
	Types      []*Type     // Classes declared in this module
	Constants  []*Constant // Upper case module level names
	Variables  []*Variable // Other module level names
	Functions  []*Function // Module level functions
	Imports    []Import    // Imports used in this module
	Hash       uint64      // Hash of the source

	functionMap map[string]int
	variableMap map[string]int
	constantMap map[string]int
	typeMap     map[string]int
}

// Import represents one imported name. For "from m import x as y" Path is
// "m", Symbol is "x" and Name is "y"; relative imports keep their leading dots.
type Import struct {
	Name   string // Local binding; the module path for an unaliased plain import
	Path   string // Module path
	Symbol string // Imported symbol, empty for plain imports
}

// Package represents a Python package directory with its modules
type Package struct {
	Name       string
	ImportPath string
	FileSet    []*File  // Modules that are part of this package
	Assets     []*Asset // Non Python files associated with this package

	typeMap map[string][]int
}

// LookupMethod returns the named method of a class declared anywhere in the package.
func (p *Package) LookupMethod(typeName, methodName string) *Function {
	if len(p.typeMap) == 0 {
		p.IndexTypes()
	}
	for _, idx := range p.typeMap[typeName] {
		file := p.FileSet[idx]
		if file == nil {
			continue
		}
		if typ := file.LookupType(typeName); typ != nil {
			if method := typ.LookupMethod(methodName); method != nil {
				return method
			}
		}
	}
	return nil
}

func (p *Package) AddFile(file *File) {
	p.FileSet = append(p.FileSet, file)
	p.typeMap = nil
}

func (p *Package) IndexTypes() {
	p.typeMap = make(map[string][]int)
	for i, file := range p.FileSet {
		if file == nil {
			continue
		}
		for _, typ := range file.Types {
			if typ == nil {
				continue
			}
			p.typeMap[typ.Name] = append(p.typeMap[typ.Name], i)
		}
	}
}

// LookupFunction retrieves a function by name from the file
func (f *File) LookupFunction(name string) *Function {
	if len(f.functionMap) != len(f.Functions) {
		f.IndexFunctions()
	}
	if idx, ok := f.functionMap[name]; ok && idx < len(f.Functions) {
		return f.Functions[idx]
	}
	return nil
}

// HasFunction checks if a function with the given name exists in the file
func (f *File) HasFunction(name string) bool {
	return f.LookupFunction(name) != nil
}

// LookupType retrieves a class by name from the file
func (f *File) LookupType(name string) *Type {
	if len(f.typeMap) != len(f.Types) {
		f.IndexTypes()
	}
	if idx, ok := f.typeMap[name]; ok && idx < len(f.Types) {
		return f.Types[idx]
	}
	return nil
}

// LookupVariable retrieves a variable by name from the file
func (f *File) LookupVariable(name string) *Variable {
	if len(f.variableMap) != len(f.Variables) {
		f.variableMap = indexNames(len(f.Variables), func(i int) string { return f.Variables[i].Name })
	}
	if idx, ok := f.variableMap[name]; ok && idx < len(f.Variables) {
		return f.Variables[idx]
	}
	return nil
}

// LookupConstant retrieves a constant by name from the file
func (f *File) LookupConstant(name string) *Constant {
	if len(f.constantMap) != len(f.Constants) {
		f.constantMap = indexNames(len(f.Constants), func(i int) string { return f.Constants[i].Name })
	}
	if idx, ok := f.constantMap[name]; ok && idx < len(f.Constants) {
		return f.Constants[idx]
	}
	return nil
}

func (f *File) IndexFunctions() {
	f.functionMap = indexNames(len(f.Functions), func(i int) string { return f.Functions[i].Name })
}

func (f *File) IndexTypes() {
	f.typeMap = indexNames(len(f.Types), func(i int) string { return f.Types[i].Name })
}

// indexNames maps each name to its last position; a redefinition shadows earlier ones.
func indexNames(count int, name func(i int) string) map[string]int {
	ret := make(map[string]int, count)
	for i := 0; i < count; i++ {
		ret[name(i)] = i
	}
	return ret
}

type Asset struct {
	Name       string
	Path       string
	ImportPath string
	Content    []byte
}
