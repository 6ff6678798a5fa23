package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// ProjectResource wraps the /projects endpoints. It is stateless.
type ProjectResource struct {
	t *transport
}

func projectPath(id string) string {
	return "/projects/" + url.PathEscape(id)
}

// List returns every project visible to the API key.
func (p *ProjectResource) List(ctx context.Context) (any, error) {
	out, err := p.t.getJSON(ctx, "/projects")
	if err != nil {
		return nil, fail("Failed to list projects", err)
	}
	return out, nil
}

// Get returns a single project.
func (p *ProjectResource) Get(ctx context.Context, projectID string) (any, error) {
	out, err := p.t.getJSON(ctx, projectPath(projectID))
	if err != nil {
		return nil, fail("Failed to get project", err)
	}
	return out, nil
}

// Create creates a project from data and returns the server's response.
func (p *ProjectResource) Create(ctx context.Context, data Object) (any, error) {
	out, err := p.t.sendJSON(ctx, http.MethodPost, "/projects", data)
	if err != nil {
		return nil, fail("Failed to create project", err)
	}
	return out, nil
}

// Update replaces a project's attributes with data.
func (p *ProjectResource) Update(ctx context.Context, projectID string, data Object) (any, error) {
	out, err := p.t.sendJSON(ctx, http.MethodPut, projectPath(projectID), data)
	if err != nil {
		return nil, fail("Failed to update project", err)
	}
	return out, nil
}

// Delete removes a project. It reports true on any 2xx response; the
// response body is discarded.
func (p *ProjectResource) Delete(ctx context.Context, projectID string) (bool, error) {
	if err := p.t.remove(ctx, projectPath(projectID)); err != nil {
		return false, fail("Failed to delete project", err)
	}
	return true, nil
}
