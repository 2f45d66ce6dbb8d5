package api

import (
	"context"
	"encoding/json"
	"strings"
)

// Project is one research project, identified by its storage path.
type Project struct {
	ID   string
	Name string
	Path string
}

// Projects lists the caller's projects. The backend returns raw storage
// paths shaped like users/<user>/<project>/...; the project name is the
// third segment, de-duplicated across paths.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	body, err := c.postJSON(ctx, "/v1/services/get_existing_projects", struct{}{})
	if err != nil {
		return nil, err
	}

	var paths []string
	if err := json.Unmarshal(body, &paths); err != nil {
		return nil, shapeErr("project listing was not an array of paths")
	}
	return projectsFromPaths(paths), nil
}

func projectsFromPaths(paths []string) []Project {
	seen := make(map[string]bool)
	var projects []Project
	for _, p := range paths {
		if p == "" {
			continue
		}
		parts := strings.Split(p, "/")
		if len(parts) < 3 || parts[2] == "" {
			continue
		}
		name := parts[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		projects = append(projects, Project{ID: p, Name: name, Path: p})
	}
	return projects
}

type createProjectRequest struct {
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationErr("project name is required")
	}
	_, err := c.postJSON(ctx, "/v1/services/create_new_project", createProjectRequest{
		ProjectName:        name,
		ProjectDescription: description,
	})
	return err
}
