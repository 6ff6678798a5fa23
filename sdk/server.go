package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// ServerResource wraps the servers of a single project. The project id is
// fixed at construction and prefixes every path.
type ServerResource struct {
	t         *transport
	projectID string
}

// ProjectID returns the project this resource is scoped to.
func (s *ServerResource) ProjectID() string {
	return s.projectID
}

func (s *ServerResource) basePath() string {
	return projectPath(s.projectID) + "/servers"
}

func (s *ServerResource) serverPath(serverID string) string {
	return s.basePath() + "/" + url.PathEscape(serverID)
}

// List returns the servers of the project.
func (s *ServerResource) List(ctx context.Context) (any, error) {
	out, err := s.t.getJSON(ctx, s.basePath())
	if err != nil {
		return nil, fail("Failed to list servers", err)
	}
	return out, nil
}

// Get returns a single server.
func (s *ServerResource) Get(ctx context.Context, serverID string) (any, error) {
	out, err := s.t.getJSON(ctx, s.serverPath(serverID))
	if err != nil {
		return nil, fail("Failed to get server", err)
	}
	return out, nil
}

// Create adds a server to the project.
func (s *ServerResource) Create(ctx context.Context, data Object) (any, error) {
	out, err := s.t.sendJSON(ctx, http.MethodPost, s.basePath(), data)
	if err != nil {
		return nil, fail("Failed to create server", err)
	}
	return out, nil
}

// Update replaces a server's attributes with data.
func (s *ServerResource) Update(ctx context.Context, serverID string, data Object) (any, error) {
	out, err := s.t.sendJSON(ctx, http.MethodPut, s.serverPath(serverID), data)
	if err != nil {
		return nil, fail("Failed to update server", err)
	}
	return out, nil
}

// Delete removes a server, reporting true on any 2xx response.
func (s *ServerResource) Delete(ctx context.Context, serverID string) (bool, error) {
	if err := s.t.remove(ctx, s.serverPath(serverID)); err != nil {
		return false, fail("Failed to delete server", err)
	}
	return true, nil
}

// CheckStatus fetches the current status record of a server.
func (s *ServerResource) CheckStatus(ctx context.Context, serverID string) (any, error) {
	out, err := s.t.getJSON(ctx, s.serverPath(serverID)+"/status")
	if err != nil {
		return nil, fail("Failed to check server status", err)
	}
	return out, nil
}
