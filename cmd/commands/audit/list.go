package audit

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/output"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// maxDetailWidth truncates long error details in table output.
const maxDetailWidth = 60

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		Long: `List recent audit entries stored locally.

Examples:
  qd audit list
  qd audit list --limit 50
  qd audit list --command "qd server delete"
  qd audit list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("command")
	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.AuditEntry
	if filter = strings.TrimSpace(filter); filter != "" {
		entries, err = repo.ListByCommand(filter, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		if entries == nil {
			entries = []auditlog.AuditEntry{}
		}
		return output.JSON(cmd.OutOrStdout(), entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tCOMMAND\tOUTCOME\tDURATION\tHOST\tRESOURCE\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t-------\t--------\t----\t--------\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(entry.Timestamp),
			entry.Command,
			entry.Outcome,
			formatDuration(entry.DurationMs),
			orDash(entry.APIHost),
			formatResource(entry),
			orDash(truncate(entry.Detail, maxDetailWidth)),
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// formatResource renders "type:id", prefixed with the project for servers.
func formatResource(entry auditlog.AuditEntry) string {
	var b strings.Builder
	if entry.ProjectID != "" && entry.ResourceType != "project" {
		b.WriteString("project:" + entry.ProjectID + "/")
	}
	b.WriteString(entry.ResourceType)
	if entry.ResourceID != "" {
		if entry.ResourceType != "" {
			b.WriteString(":")
		}
		b.WriteString(entry.ResourceID)
	}
	return orDash(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
