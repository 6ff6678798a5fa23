package server

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/sdk"
)

// defaultPollInterval is the delay between successive status checks.
const defaultPollInterval = 3 * time.Second

// maxPollAttempts caps how many times we poll before giving up.
const maxPollAttempts = 100

// maxTransientErrors is the number of consecutive failed checks allowed
// before the poll loop gives up.
const maxTransientErrors = 3

// statusChecker is the part of *sdk.ServerResource the poll loop needs.
type statusChecker interface {
	CheckStatus(ctx context.Context, serverID string) (any, error)
}

var _ statusChecker = (*sdk.ServerResource)(nil)

// waitForStatus polls CheckStatus until the reported status matches target
// (case-insensitive) and returns the last payload. Progress messages are
// written to w.
func waitForStatus(
	ctx context.Context,
	checker statusChecker,
	serverID string,
	target string,
	interval time.Duration,
	w io.Writer,
) (any, error) {
	var consecutiveErrors int
	last := ""

	for i := 0; i < maxPollAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}

		payload, err := checker.CheckStatus(ctx, serverID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			consecutiveErrors++
			if consecutiveErrors >= maxTransientErrors {
				return nil, fmt.Errorf("error polling server %s (after %d consecutive failures): %w", serverID, consecutiveErrors, err)
			}
			fmt.Fprintf(w, "  %s: transient error, retrying... (%d/%d)\n", serverID, consecutiveErrors, maxTransientErrors)
			continue
		}
		consecutiveErrors = 0

		status, _ := output.Field(payload, "status")
		if strings.EqualFold(status, target) {
			return payload, nil
		}

		if status != last {
			fmt.Fprintf(w, "  %s: %s\n", serverID, status)
			last = status
		}
	}

	return nil, fmt.Errorf("timed out waiting for server %s to reach %q status (%d polls)", serverID, target, maxPollAttempts)
}

// lockedWriter serialises writes from concurrent pollers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
