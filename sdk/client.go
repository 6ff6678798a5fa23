// Package sdk is a Go client for the QuickDeployer deployment-management API.
//
// The client exposes projects and servers as thin resource wrappers. Every
// operation issues exactly one HTTP request and returns the decoded JSON body
// unchanged; payloads are untyped and left for the caller to interpret.
//
//	client := sdk.New(apiKey)
//	projects, err := client.Projects().List(ctx)
//	status, err := client.Servers("project-123").CheckStatus(ctx, "server-456")
package sdk

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DefaultBaseURI is the API endpoint used when no base URI is configured.
const DefaultBaseURI = "https://staging.quickdeployer.com/api"

// Object is an untyped JSON object used as a create/update request body.
type Object = map[string]any

// Config holds the immutable settings a Client was built with.
type Config struct {
	APIKey  string
	BaseURI string
}

// Option configures a Client at construction time.
type Option func(*options)

type options struct {
	baseURI    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

// WithBaseURI overrides DefaultBaseURI. An empty value keeps the default.
func WithBaseURI(uri string) Option {
	return func(o *options) {
		if strings.TrimSpace(uri) != "" {
			o.baseURI = uri
		}
	}
}

// WithHTTPClient supplies the underlying HTTP client. Its timeout, transport,
// and connection pool settings apply unmodified.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger enables per-request debug logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// Client is the entry point to the API. It owns the shared transport that
// every resource wrapper borrows. A Client is safe for concurrent use.
type Client struct {
	config    Config
	transport *transport
}

// New builds a Client for the given API key. No request is made here; an
// invalid key only surfaces when a resource operation fails.
func New(apiKey string, opts ...Option) *Client {
	o := options{
		baseURI:    DefaultBaseURI,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Config{APIKey: apiKey, BaseURI: o.baseURI}
	return &Client{
		config:    cfg,
		transport: newTransport(cfg, o.httpClient, o.logger, o.userAgent),
	}
}

// Config returns the settings the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// Projects returns a wrapper for the /projects endpoints.
func (c *Client) Projects() *ProjectResource {
	return &ProjectResource{t: c.transport}
}

// Servers returns a wrapper for the servers of one project. Every call made
// through it is scoped under projectID; use another Servers call to switch.
func (c *Client) Servers(projectID string) *ServerResource {
	return &ServerResource{t: c.transport, projectID: projectID}
}

// GetProjects is shorthand for c.Projects().List(ctx).
func (c *Client) GetProjects(ctx context.Context) (any, error) {
	return c.Projects().List(ctx)
}
