package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"quickdeployer/qd/internal/apitest"
)

func TestStatusCommand_Multiple(t *testing.T) {
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"GET /projects/42/servers/1/status": apitest.Respond(http.StatusOK, `{"status":"online"}`),
		"GET /projects/42/servers/2/status": apitest.Respond(http.StatusOK, `{"data":{"status":"offline"}}`),
	})
	apitest.Setup(t, srv)

	stdout, stderr := execServer(t, "status", "1", "2", "-p", "42")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), stdout)
	}
	if f := strings.Fields(lines[2]); f[0] != "1" || f[1] != "online" {
		t.Errorf("unexpected row for server 1: %v", f)
	}
	if f := strings.Fields(lines[3]); f[0] != "2" || f[1] != "offline" {
		t.Errorf("unexpected row for server 2: %v", f)
	}
}

func TestStatusCommand_PartialFailure(t *testing.T) {
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"GET /projects/42/servers/1/status": apitest.Respond(http.StatusOK, `{"status":"online"}`),
	})
	apitest.Setup(t, srv)

	stdout, stderr := execServer(t, "status", "1", "404", "-p", "42", "-o", "json")

	var results []statusResult
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != "online" || results[0].Error != "" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if !strings.HasPrefix(results[1].Error, "Failed to check server status: ") {
		t.Errorf("unexpected second result: %+v", results[1])
	}
	if !strings.Contains(stderr, "1 of 2 status checks failed") {
		t.Errorf("expected summary error, got: %s", stderr)
	}
}

func TestStatusCommand_Wait(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := apitest.NewServer(t, map[string]http.HandlerFunc{
		"GET /projects/42/servers/7/status": func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			status := "provisioning"
			if n >= 3 {
				status = "online"
			}
			apitest.Respond(http.StatusOK, `{"status":"`+status+`"}`)(w, r)
		},
	})
	apitest.Setup(t, srv)

	stdout, stderr := execServer(t, "status", "7", "-p", "42", "--wait", "ONLINE", "--interval", "1ms")

	if !strings.Contains(stderr, "7: provisioning") {
		t.Errorf("expected progress on stderr, got: %s", stderr)
	}
	if !strings.Contains(stdout, "online") {
		t.Errorf("expected final status, got: %s", stdout)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Errorf("expected 3 polls, got %d", calls)
	}
}

func TestStatusCommand_InvalidFlags(t *testing.T) {
	srv := apitest.NewServer(t, nil)
	apitest.Setup(t, srv)

	_, stderr := execServer(t, "status", "7", "-p", "42", "--concurrency", "0")
	if !strings.Contains(stderr, "--concurrency must be greater than 0") {
		t.Errorf("unexpected stderr: %s", stderr)
	}

	_, stderr = execServer(t, "status", "-p", "42")
	if !strings.Contains(stderr, "requires at least 1 arg") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

// fakeChecker returns queued responses in order, repeating the last one.
type fakeChecker struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     int
}

type fakeResponse struct {
	payload any
	err     error
}

func (f *fakeChecker) CheckStatus(_ context.Context, _ string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := min(f.calls, len(f.responses)-1)
	f.calls++
	return f.responses[i].payload, f.responses[i].err
}

func TestWaitForStatus_ToleratesTransientErrors(t *testing.T) {
	checker := &fakeChecker{responses: []fakeResponse{
		{err: errors.New("blip")},
		{err: errors.New("blip")},
		{payload: map[string]any{"status": "online"}},
	}}

	payload, err := waitForStatus(context.Background(), checker, "7", "online", time.Millisecond, io.Discard)
	if err != nil {
		t.Fatalf("waitForStatus: %v", err)
	}
	if payload == nil {
		t.Error("expected final payload")
	}
	if checker.calls != 3 {
		t.Errorf("expected 3 calls, got %d", checker.calls)
	}
}

func TestWaitForStatus_GivesUpAfterConsecutiveErrors(t *testing.T) {
	checker := &fakeChecker{responses: []fakeResponse{{err: errors.New("down")}}}

	_, err := waitForStatus(context.Background(), checker, "7", "online", time.Millisecond, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "after 3 consecutive failures") {
		t.Fatalf("expected consecutive failure error, got %v", err)
	}
	if checker.calls != maxTransientErrors {
		t.Errorf("expected %d calls, got %d", maxTransientErrors, checker.calls)
	}
}

func TestWaitForStatus_TimesOut(t *testing.T) {
	checker := &fakeChecker{responses: []fakeResponse{{payload: map[string]any{"status": "pending"}}}}

	_, err := waitForStatus(context.Background(), checker, "7", "online", time.Microsecond, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if checker.calls != maxPollAttempts {
		t.Errorf("expected %d calls, got %d", maxPollAttempts, checker.calls)
	}
}

func TestWaitForStatus_ContextCanceled(t *testing.T) {
	checker := &fakeChecker{responses: []fakeResponse{{payload: map[string]any{"status": "pending"}}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := waitForStatus(ctx, checker, "7", "online", time.Hour, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
