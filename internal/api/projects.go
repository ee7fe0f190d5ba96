package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects", in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}
