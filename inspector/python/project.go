package python

import (
	"context"

	"github.com/viant/pyast/inspector/graph"
	"github.com/viant/pyast/inspector/repository"
)

// InspectProject detects the project containing location and inspects all of its packages
func (i *Inspector) InspectProject(ctx context.Context, location string) (*graph.Project, error) {
	project := &graph.Project{Type: "python", RootPath: location}
	if repo, err := repository.New().DetectRepository(ctx, location); err == nil {
		project.RepositoryURL = repo.Origin
		if repo.Info != nil {
			project.Name = repo.Info.Name
			project.Type = repo.Info.Type
			project.RootPath = repo.Info.RootPath
		}
	}
	var err error
	if project.Packages, err = i.InspectPackages(ctx, project.RootPath); err != nil {
		return nil, err
	}
	project.Init()
	return project, nil
}
