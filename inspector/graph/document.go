package graph

import (
	"strconv"
	"strings"
)

const chunkSize = 8192 - 256

// DocumentKind indicates the type of code element that the document represents
type DocumentKind string

const (
	KindConstant   DocumentKind = "Constant"
	KindVariable   DocumentKind = "Variable"
	KindFileFunc   DocumentKind = "Function" // Module level function
	KindType       DocumentKind = "Type"     // Class or type alias
	KindTypeMethod DocumentKind = "Method"
	KindTypeField  DocumentKind = "Field"
	KindAsset      DocumentKind = "Asset"
	KindModule     DocumentKind = "Module" // Module docstring and imports
)

// Document represents a code element with its metadata for vector embedding
type Document struct {
	ID        string       `json:"id" yaml:"id"`
	Kind      DocumentKind `json:"kind" yaml:"kind"`
	Project   string       `json:"project" yaml:"project"`
	Path      string       `json:"path" yaml:"path"`
	Package   string       `json:"package" yaml:"package"`
	Name      string       `json:"name" yaml:"name"`
	Type      string       `json:"type" yaml:"type"` // Owning class for fields and methods
	Hash      uint64       `json:"hash" yaml:"hash"`
	Signature string       `json:"signature" yaml:"signature"`
	Content   string       `json:"content" yaml:"content"`
	Part      int          `json:"part" yaml:"part"` // Part number for large documents
}

type Documents []*Document

// Append adds doc, splitting content larger than one chunk.
func (d *Documents) Append(doc *Document) {
	if doc.Hash == 0 {
		doc.Hash = doc.HashContent()
	}
	if len(doc.Content) > chunkSize {
		*d = append(*d, SplitDocument(doc)...)
		return
	}
	*d = append(*d, doc)
}

func (d Documents) Size() int {
	size := 0
	for _, doc := range d {
		if doc == nil {
			continue
		}
		size += doc.Size()
	}
	return size
}

// SplitDocument splits a large document into chunks of 8k - 256 bytes.
func SplitDocument(doc *Document) Documents {
	content := doc.Content
	n := len(content)
	if n <= chunkSize {
		doc.Part = 0
		return Documents{doc}
	}
	var docs Documents
	for i, start := 0, 0; start < n; i++ {
		end := min(start+chunkSize, n)
		chunk := &Document{
			Kind:      doc.Kind,
			Project:   doc.Project,
			Package:   doc.Package,
			Path:      doc.Path,
			Name:      doc.Name,
			Type:      doc.Type,
			Signature: doc.Signature,
			Content:   content[start:end],
			Part:      i + 1,
		}
		chunk.Hash = chunk.HashContent()
		docs = append(docs, chunk)
		start = end
	}
	return docs
}

func (d *Document) Size() int {
	size := len(d.Content) + len(d.Type) + len(d.Signature) + len(d.Path)
	if d.Kind == KindType {
		size += len(d.Name)
	}
	return size + 20 //keys in meta
}

// FilterBySize returns the leading documents that fit within totalSize.
func (d Documents) FilterBySize(totalSize int) Documents {
	size := 0
	var result Documents
	for _, doc := range d {
		if doc == nil {
			continue
		}
		size += doc.Size()
		if size >= totalSize {
			break
		}
		result = append(result, doc)
	}
	return result
}

func (d *Document) GetID() string {
	if d.ID != "" {
		return d.ID
	}
	builder := strings.Builder{}
	builder.WriteString(string(d.Kind))
	builder.WriteString(":")
	builder.WriteString(d.Path)
	builder.WriteString(":")
	if d.Type != "" {
		builder.WriteString(d.Type)
		builder.WriteString(".")
	}
	if d.Signature != "" {
		builder.WriteString(d.Signature)
	} else {
		builder.WriteString(d.Name)
	}
	if d.Part > 0 {
		builder.WriteString(":")
		builder.WriteString(strconv.Itoa(d.Part))
	}
	d.ID = builder.String()
	return d.ID
}

// HashContent generates content hash
func (d *Document) HashContent() uint64 {
	hash, _ := Hash([]byte(d.Content))
	return hash
}

// CreateDocuments creates one document per declaration of the packages whose
// import path starts with pkgPath; an empty pkgPath selects every package.
func (p *Project) CreateDocuments(pkgPath string) Documents {
	var documents Documents
	for _, pkg := range p.Packages {
		if pkgPath != "" && !strings.HasPrefix(pkg.ImportPath, pkgPath) {
			continue
		}
		for _, asset := range pkg.Assets {
			if len(asset.Content) > 16*1024 {
				continue
			}
			documents.Append(&Document{
				Kind:    KindAsset,
				Project: p.Name,
				Package: pkg.ImportPath,
				Name:    asset.Name,
				Path:    asset.Path,
				Content: string(asset.Content),
			})
		}
		for _, file := range pkg.FileSet {
			documents = append(documents, file.Documents(p.Name)...)
		}
	}
	return documents
}

// Documents creates one document per declaration of the module.
func (f *File) Documents(project string) Documents {
	var documents Documents
	newDocument := func(kind DocumentKind, name, content string) *Document {
		return &Document{Kind: kind, Project: project, Package: f.Package, Path: f.Path, Name: name, Content: content}
	}
	if f.Docstring != "" || len(f.Imports) > 0 {
		builder := strings.Builder{}
		if f.Docstring != "" {
			builder.WriteString(f.Docstring)
			builder.WriteString("\n\n")
		}
		for _, imp := range f.Imports {
			builder.WriteString(imp.Statement())
			builder.WriteString("\n")
		}
		documents.Append(newDocument(KindModule, f.ImportPath, builder.String()))
	}
	for _, constant := range f.Constants {
		content := constant.Value
		if constant.Location != nil {
			content = constant.Location.Raw
		}
		doc := newDocument(KindConstant, constant.Name, content)
		doc.Signature = constant.Type
		documents.Append(doc)
	}
	for _, variable := range f.Variables {
		content := variable.Value
		if variable.Location != nil {
			content = variable.Location.Raw
		}
		doc := newDocument(KindVariable, variable.Name, content)
		doc.Signature = variable.Type
		documents.Append(doc)
	}
	for _, function := range f.Functions {
		doc := newDocument(KindFileFunc, function.Name, function.Content())
		doc.Signature = function.Signature
		documents.Append(doc)
	}
	var appendType func(aType *Type)
	appendType = func(aType *Type) {
		documents.Append(newDocument(KindType, aType.Name, aType.Content()))
		for _, field := range aType.Fields {
			if field.Location == nil {
				continue
			}
			doc := newDocument(KindTypeField, field.Name, field.Content())
			doc.Type = aType.Name
			documents.Append(doc)
		}
		for _, method := range aType.Methods {
			doc := newDocument(KindTypeMethod, method.Name, method.Content())
			doc.Type = aType.Name
			doc.Signature = method.Signature
			documents.Append(doc)
		}
		for _, nested := range aType.Nested {
			appendType(nested)
		}
	}
	for _, aType := range f.Types {
		appendType(aType)
	}
	return documents
}

// Statement renders the import as Python source.
func (i Import) Statement() string {
	if i.Symbol == "" {
		if i.Name != "" && i.Name != i.Path {
			return "import " + i.Path + " as " + i.Name
		}
		return "import " + i.Path
	}
	if i.Name != "" && i.Name != i.Symbol {
		return "from " + i.Path + " import " + i.Symbol + " as " + i.Name
	}
	return "from " + i.Path + " import " + i.Symbol
}
