// Package session turns global CLI flags, environment variables, the config
// file and the keychain into a ready-to-use SDK client.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/config"
	"quickdeployer/qd/internal/logging"
	"quickdeployer/qd/internal/util"
	"quickdeployer/qd/sdk"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// EnvBaseURI overrides the configured base URI.
const EnvBaseURI = "QUICKDEPLOYER_BASE_URI"

const userAgent = "qd-cli"

var (
	storeMu       sync.Mutex
	storeOverride auth.Store
)

// SetStore replaces the keychain store. Intended for testing.
func SetStore(s auth.Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	storeOverride = s
}

// ResetStore restores the OS keychain store. Intended for testing.
func ResetStore() { SetStore(nil) }

// Store returns the auth store commands should use.
func Store() auth.Store {
	storeMu.Lock()
	defer storeMu.Unlock()
	if storeOverride != nil {
		return storeOverride
	}
	return auth.DefaultStore()
}

// BaseURI resolves the API base URI: --base-uri, then QUICKDEPLOYER_BASE_URI,
// then the config file, then sdk.DefaultBaseURI.
func BaseURI(cmd *cobra.Command) (string, error) {
	if v := flagString(cmd, "base-uri"); v != "" {
		return strings.TrimRight(v, "/"), nil
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURI)); v != "" {
		return strings.TrimRight(v, "/"), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.BaseURI != "" {
		return cfg.BaseURI, nil
	}
	return sdk.DefaultBaseURI, nil
}

// NewClient builds an SDK client for the resolved base URI and API key.
func NewClient(cmd *cobra.Command) (*sdk.Client, error) {
	baseURI, err := BaseURI(cmd)
	if err != nil {
		return nil, err
	}

	key, _, err := auth.Resolve(Store(), baseURI)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return nil, fmt.Errorf("no API key for %s: run 'qd auth login' or set %s", auth.HostKey(baseURI), auth.EnvAPIKey)
		}
		return nil, fmt.Errorf("failed to read API key: %w", err)
	}

	logger := Logger(cmd)
	logger.Debug("client configured", zap.String("base_uri", baseURI))

	return sdk.New(key,
		sdk.WithBaseURI(baseURI),
		sdk.WithLogger(logger),
		sdk.WithUserAgent(userAgent),
	), nil
}

// Annotate attaches audit metadata for the resource a command acts on. The
// API host is taken from client.
func Annotate(cmd *cobra.Command, client *sdk.Client, meta auditlog.Metadata) {
	meta.APIHost = auth.HostKey(client.Config().BaseURI)
	cmd.SetContext(auditlog.WithMetadata(cmd.Context(), meta))
}

// Context returns the command context bounded by --timeout when it is set.
func Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil {
		if d, err := cmd.Flags().GetDuration("timeout"); err == nil && d > 0 {
			return context.WithTimeout(ctx, d)
		}
	}
	return context.WithCancel(ctx)
}

// Logger returns the logger attached to the command context.
func Logger(cmd *cobra.Command) *zap.Logger {
	return logging.FromContext(cmd.Context())
}

// ProjectID resolves the project a server command targets: --project, then
// the default-project config key.
func ProjectID(cmd *cobra.Command) (string, error) {
	id := flagString(cmd, "project")
	if id == "" {
		cfg, err := config.Load()
		if err != nil {
			return "", fmt.Errorf("failed to load config: %w", err)
		}
		id = cfg.DefaultProject
	}
	if id == "" {
		return "", fmt.Errorf("no project specified: use --project flag or set a default with 'qd config set default-project <id>'")
	}
	if err := util.ValidateResourceID("project", id); err != nil {
		return "", err
	}
	return id, nil
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}
