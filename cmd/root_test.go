package cmd

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"quickdeployer/qd/internal/apitest"
	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/database"
)

// setupAudit enables audit recording into a temp database.
func setupAudit(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qd.db")
	database.SetPath(path)
	t.Cleanup(database.ResetPath)
	t.Setenv(auditlog.EnvDisable, "")
	return path
}

func execRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := rootCmd()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	err = run(root, args)
	return outBuf.String(), errBuf.String(), err
}

func listAudit(t *testing.T, path string) []auditlog.AuditEntry {
	t.Helper()
	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	return entries
}

func TestMarkAudited(t *testing.T) {
	root := rootCmd()

	for _, path := range [][]string{
		{"project", "create"}, {"project", "update"}, {"project", "delete"},
		{"server", "create"}, {"server", "update"}, {"server", "delete"},
	} {
		c, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("Find(%v): %v", path, err)
		}
		if c.Annotations[auditAnnotation] != "true" {
			t.Errorf("%s should be audited", c.CommandPath())
		}
	}

	for _, path := range [][]string{{"project", "list"}, {"server", "status"}, {"audit", "list"}} {
		c, _, _ := root.Find(path)
		if c.Annotations[auditAnnotation] == "true" {
			t.Errorf("%s should not be audited", c.CommandPath())
		}
	}
}

func TestRun_RecordsSuccessfulDelete(t *testing.T) {
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"DELETE /projects/42/servers/7": apitest.Respond(http.StatusNoContent, ""),
	})
	apitest.Setup(t, srv)
	dbPath := setupAudit(t)

	stdout, _, err := execRoot(t, "server", "delete", "7", "--project", "42")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "Server 7 deleted successfully.") {
		t.Errorf("unexpected stdout: %s", stdout)
	}

	entries := listAudit(t, dbPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Command != "qd server delete" || got.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.ProjectID != "42" || got.ResourceType != "server" || got.ResourceID != "7" {
		t.Errorf("unexpected resource metadata: %+v", got)
	}
	if got.APIHost == "" {
		t.Error("expected API host to be recorded")
	}
}

func TestRun_RecordsFailedCreate(t *testing.T) {
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"POST /projects": apitest.Respond(http.StatusUnprocessableEntity, `{"message":"name taken"}`),
	})
	apitest.Setup(t, srv)
	dbPath := setupAudit(t)

	_, _, err := execRoot(t, "project", "create", "--data", `{"name":"secret"}`)
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to create project: ") {
		t.Fatalf("expected operation failure, got %v", err)
	}

	entries := listAudit(t, dbPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Outcome != auditlog.OutcomeError || !strings.Contains(got.Detail, "Failed to create project") {
		t.Errorf("unexpected entry: %+v", got)
	}
	if strings.Contains(got.Args, "secret") {
		t.Errorf("payload should be redacted, got args %q", got.Args)
	}
}

func TestRun_ReadOnlyCommandsNotRecorded(t *testing.T) {
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"GET /projects": apitest.Respond(http.StatusOK, `[]`),
	})
	apitest.Setup(t, srv)
	dbPath := setupAudit(t)

	if _, _, err := execRoot(t, "project", "list"); err != nil {
		t.Fatalf("run: %v", err)
	}

	if entries := listAudit(t, dbPath); len(entries) != 0 {
		t.Errorf("expected no audit entries, got %d", len(entries))
	}
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	srv := apitest.NewServer(t, nil)
	apitest.Setup(t, srv)

	stdout, _, err := execRoot(t, "--verbose", "config", "get", "--key", "log-level")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(stdout) != "not set" {
		t.Errorf("debug logging must not reach stdout, got: %q", stdout)
	}
}
