package repository

// Repository is the version controlled tree holding a project.
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected Python project
type Project struct {
	RootPath     string // Project root directory
	Type         string // Marker derived type: python or git
	Marker       string // Marker file that identified the root
	Name         string // Name of the project (extracted from config files)
	Version      string // Declared version, empty when unknown
	RelativePath string // Path from project root to the specified file
}
