// Package apitest provides a fake QuickDeployer API for command tests.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/config"
	"quickdeployer/qd/internal/session"
)

// APIKey is the key commands send when running against a Server.
const APIKey = "test-api-key"

// Request is a request received by the fake API, with the /api prefix
// removed from Path.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

// Server is a fake API routed by "METHOD /path" keys.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a fake API. Unrouted requests get a 404 with a JSON body.
func NewServer(t *testing.T, routes map[string]http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		path := strings.TrimPrefix(r.URL.EscapedPath(), "/api")

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          path,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()

		if h, ok := routes[r.Method+" "+path]; ok {
			h(w, r)
			return
		}
		Respond(http.StatusNotFound, `{"message":"not found"}`)(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// BaseURI returns the base URI commands should use.
func (s *Server) BaseURI() string { return s.URL + "/api" }

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Respond returns a handler that writes status and a JSON body.
func Respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Setup points commands at s: base URI and API key via the environment, an
// empty temp config file, an in-memory key store and audit disabled.
func Setup(t *testing.T, s *Server) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	session.SetStore(auth.NewMockStore())
	t.Cleanup(session.ResetStore)

	t.Setenv(session.EnvBaseURI, s.BaseURI())
	t.Setenv(auth.EnvAPIKey, APIKey)
	t.Setenv(auditlog.EnvDisable, "1")
}
