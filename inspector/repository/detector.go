package repository

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"gopkg.in/ini.v1"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"pyproject.toml",
			"setup.py",
			"setup.cfg",
			"requirements.txt",
			"Pipfile",
			".git",
		},
		fs: afs.New(),
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, startDir, err := d.start(filePath)
	if err != nil {
		return nil, err
	}
	rootPath, marker := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Marker = marker
		info.Type = determineProjectType(marker)
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name, info.Version = d.extractProjectName(ctx, info.RootPath, marker)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(ctx context.Context, filePath string) (*Repository, error) {
	_, startDir, err := d.start(filePath)
	if err != nil {
		return nil, err
	}
	info, err := d.DetectProject(ctx, filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := findGitRoot(startDir); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: extractGitOrigin(gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

// start returns the absolute path and the directory the search starts from.
func (d *Detector) start(filePath string) (string, string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return "", "", err
	}
	if !fileInfo.IsDir() {
		return absPath, filepath.Dir(absPath), nil
	}
	return absPath, absPath, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, marker
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

var setupKeyword = regexp.MustCompile(`\b(name|version)\s*=\s*["']([^"']+)["']`)

// pyProject holds the pyproject.toml tables carrying distribution metadata.
type pyProject struct {
	Project metadata `toml:"project"`
	Tool    struct {
		Poetry metadata `toml:"poetry"`
	} `toml:"tool"`
}

type metadata struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// extractProjectName reads the name and version from the project metadata,
// falling back to the git remote or the directory name.
func (d *Detector) extractProjectName(ctx context.Context, rootPath, marker string) (string, string) {
	var name, version string
	read := func(file string) []byte {
		data, _ := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, file))
		return data
	}
	for _, file := range []string{"pyproject.toml", "setup.cfg", "setup.py"} {
		data := read(file)
		if len(data) == 0 {
			continue
		}
		switch file {
		case "pyproject.toml":
			name, version = pyProjectMetadata(data)
		case "setup.cfg":
			name, version = setupConfigMetadata(data)
		case "setup.py":
			name, version = keywords(data, setupKeyword)
		}
		if name != "" {
			return name, version
		}
	}
	if marker == ".git" {
		return extractGitProjectName(rootPath), ""
	}
	return filepath.Base(rootPath), ""
}

// pyProjectMetadata reads [project] (PEP 621) or [tool.poetry] metadata.
func pyProjectMetadata(data []byte) (string, string) {
	project := &pyProject{}
	if _, err := toml.Decode(string(data), project); err != nil {
		return "", ""
	}
	for _, candidate := range []metadata{project.Project, project.Tool.Poetry} {
		if candidate.Name != "" {
			return candidate.Name, candidate.Version
		}
	}
	return "", ""
}

// setupConfigMetadata reads name and version from the [metadata] section of setup.cfg.
func setupConfigMetadata(data []byte) (string, string) {
	cfg, err := ini.Load(data)
	if err != nil {
		return "", ""
	}
	section := cfg.Section("metadata")
	return section.Key("name").String(), section.Key("version").String()
}

func keywords(data []byte, option *regexp.Regexp) (string, string) {
	var name, version string
	for _, match := range option.FindAllSubmatch(data, -1) {
		value := string(bytes.TrimSpace(match[2]))
		switch string(match[1]) {
		case "name":
			if name == "" {
				name = value
			}
		case "version":
			if version == "" {
				version = value
			}
		}
	}
	return name, version
}

func extractGitProjectName(gitRoot string) string {
	if origin := extractGitOrigin(gitRoot); origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		if idx := strings.LastIndexAny(origin, "/:"); idx != -1 && idx+1 < len(origin) {
			return origin[idx+1:]
		}
	}
	return filepath.Base(gitRoot)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "pyproject.toml", "setup.py", "setup.cfg", "requirements.txt", "Pipfile":
		return "python"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
