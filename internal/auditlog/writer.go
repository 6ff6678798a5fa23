package auditlog

import (
	"context"
	"os"
	"strings"
	"time"
)

// EnvDisable turns off audit recording when set to "1".
const EnvDisable = "QD_DISABLE_AUDIT"

// Disabled reports whether audit recording is switched off.
func Disabled() bool {
	return os.Getenv(EnvDisable) == "1"
}

// Record writes a best-effort audit entry for a finished command. Metadata
// comes from ctx. Errors opening the repository or saving are discarded so
// auditing never changes a command's outcome.
func Record(ctx context.Context, command string, args []string, cmdErr error, start time.Time) {
	if Disabled() {
		return
	}

	repo, err := Open()
	if err != nil {
		return
	}
	defer repo.Close()

	meta := MetadataFromContext(ctx)
	entry := &AuditEntry{
		Timestamp:    start.UTC(),
		Command:      command,
		Args:         strings.Join(SanitizeArgs(args), " "),
		APIHost:      meta.APIHost,
		ProjectID:    meta.ProjectID,
		ResourceType: meta.ResourceType,
		ResourceID:   meta.ResourceID,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if cmdErr != nil {
		entry.Outcome = OutcomeError
		entry.Detail = cmdErr.Error()
	} else {
		entry.Outcome = OutcomeSuccess
	}
	_ = repo.Save(entry)
}
