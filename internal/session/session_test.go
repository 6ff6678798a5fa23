package session

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/config"
	"quickdeployer/qd/sdk"

	"github.com/spf13/cobra"
)

func setupTestConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	if cfg != nil {
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
	}
	t.Setenv(EnvBaseURI, "")
	t.Setenv(auth.EnvAPIKey, "")
}

func newCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("base-uri", "", "")
	cmd.Flags().String("project", "", "")
	cmd.Flags().Duration("timeout", 0, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cmd.SetContext(context.Background())
	return cmd
}

func TestBaseURI_Precedence(t *testing.T) {
	setupTestConfig(t, &config.Config{BaseURI: "https://config.example.com/api"})

	if got, _ := BaseURI(newCmd(t)); got != "https://config.example.com/api" {
		t.Errorf("config: got %q", got)
	}

	t.Setenv(EnvBaseURI, "https://env.example.com/api/")
	if got, _ := BaseURI(newCmd(t)); got != "https://env.example.com/api" {
		t.Errorf("env: got %q", got)
	}

	if got, _ := BaseURI(newCmd(t, "--base-uri", "https://flag.example.com/api")); got != "https://flag.example.com/api" {
		t.Errorf("flag: got %q", got)
	}
}

func TestBaseURI_Default(t *testing.T) {
	setupTestConfig(t, nil)

	got, err := BaseURI(&cobra.Command{Use: "bare"})
	if err != nil {
		t.Fatalf("BaseURI: %v", err)
	}
	if got != sdk.DefaultBaseURI {
		t.Errorf("got %q, want %q", got, sdk.DefaultBaseURI)
	}
}

func TestNewClient_UsesStoredKey(t *testing.T) {
	setupTestConfig(t, nil)
	store := auth.NewMockStore()
	_ = store.SetToken("api.example.com", "stored-key")
	SetStore(store)
	t.Cleanup(ResetStore)

	client, err := NewClient(newCmd(t, "--base-uri", "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	cfg := client.Config()
	if cfg.APIKey != "stored-key" || cfg.BaseURI != "https://api.example.com/v1" {
		t.Errorf("unexpected client config: %+v", cfg)
	}
}

func TestNewClient_EnvKeyWins(t *testing.T) {
	setupTestConfig(t, nil)
	store := auth.NewMockStore()
	_ = store.SetToken("api.example.com", "stored-key")
	SetStore(store)
	t.Cleanup(ResetStore)
	t.Setenv(auth.EnvAPIKey, "env-key")

	client, err := NewClient(newCmd(t, "--base-uri", "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Config().APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", client.Config().APIKey)
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	setupTestConfig(t, nil)
	SetStore(auth.NewMockStore())
	t.Cleanup(ResetStore)

	_, err := NewClient(newCmd(t, "--base-uri", "https://api.example.com/v1"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "qd auth login") || !strings.Contains(err.Error(), "api.example.com") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProjectID(t *testing.T) {
	setupTestConfig(t, &config.Config{DefaultProject: "p-default"})

	if got, _ := ProjectID(newCmd(t)); got != "p-default" {
		t.Errorf("default: got %q", got)
	}
	if got, _ := ProjectID(newCmd(t, "--project", "p-flag")); got != "p-flag" {
		t.Errorf("flag: got %q", got)
	}
	if _, err := ProjectID(newCmd(t, "--project", "a/b")); err == nil {
		t.Error("expected error for id containing '/'")
	}
}

func TestProjectID_Missing(t *testing.T) {
	setupTestConfig(t, nil)

	_, err := ProjectID(newCmd(t))
	if err == nil || !strings.Contains(err.Error(), "no project specified") {
		t.Errorf("expected 'no project specified', got %v", err)
	}
}

func TestContext_Timeout(t *testing.T) {
	ctx, cancel := Context(newCmd(t, "--timeout", "5s"))
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > 5*time.Second {
		t.Errorf("unexpected deadline distance %v", remaining)
	}

	ctx, cancel = Context(newCmd(t))
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("expected no deadline without --timeout")
	}
}

func TestAnnotate(t *testing.T) {
	cmd := newCmd(t)
	client := sdk.New("k", sdk.WithBaseURI("https://API.example.com/api"))

	Annotate(cmd, client, auditlog.Metadata{ResourceType: "project", ResourceID: "7"})

	got := auditlog.MetadataFromContext(cmd.Context())
	want := auditlog.Metadata{APIHost: "api.example.com", ResourceType: "project", ResourceID: "7"}
	if got != want {
		t.Errorf("metadata = %+v, want %+v", got, want)
	}
}
