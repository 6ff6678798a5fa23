package server

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"
	"quickdeployer/qd/internal/tui/styles"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// statusResult is the outcome of checking one server.
type statusResult struct {
	ID       string `json:"id"`
	Status   string `json:"status,omitempty"`
	Response any    `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <server-id>...",
		Short: "Check the status of one or more servers",
		Long: `Check the status of one or more servers. Several servers are checked
concurrently.

With --wait, each server is polled until it reports the given status.
Up to 3 consecutive failed checks are tolerated per server.

Examples:
  qd server status 7 --project 42
  qd server status 7 8 9 -o json
  qd server status 7 --wait online --interval 5s`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runStatus,
		SilenceUsage: true,
	}

	cmd.Flags().String("wait", "", "Poll until every server reports this status")
	cmd.Flags().Duration("interval", defaultPollInterval, "Delay between polls when --wait is set")
	cmd.Flags().Int("concurrency", 4, "Maximum number of servers checked at once")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	for _, id := range args {
		if err := util.ValidateResourceID("server", id); err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}
	wait, _ := cmd.Flags().GetString("wait")
	wait = strings.TrimSpace(wait)
	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		return fmt.Errorf("--interval must be greater than 0")
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		return fmt.Errorf("--concurrency must be greater than 0")
	}

	projectID, err := session.ProjectID(cmd)
	if err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}
	servers := client.Servers(projectID)
	logger := session.Logger(cmd)

	ctx, cancel := session.Context(cmd)
	defer cancel()

	progress := &lockedWriter{w: cmd.ErrOrStderr()}
	results := make([]statusResult, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range args {
		g.Go(func() error {
			results[i] = checkOne(gctx, servers, id, wait, interval, progress)
			logger.Debug("status checked",
				zap.String("server_id", id),
				zap.String("status", results[i].Status),
				zap.String("error", results[i].Error),
			)
			return nil
		})
	}
	_ = g.Wait()

	if format == output.FormatJSON {
		if err := output.JSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		printStatusTable(cmd.OutOrStdout(), results, output.IsTerminal(cmd.OutOrStdout()))
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d status checks failed", failed, len(results))
	}
	return nil
}

func checkOne(ctx context.Context, servers statusChecker, id, wait string, interval time.Duration, progress io.Writer) statusResult {
	var (
		payload any
		err     error
	)
	if wait != "" {
		payload, err = waitForStatus(ctx, servers, id, wait, interval, progress)
	} else {
		payload, err = servers.CheckStatus(ctx, id)
	}

	result := statusResult{ID: id}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Response = payload
	result.Status, _ = output.Field(payload, "status")
	return result
}

func printStatusTable(w io.Writer, results []statusResult, styled bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SERVER\tSTATUS\tERROR")
	fmt.Fprintln(tw, "------\t------\t-----")
	for _, r := range results {
		status := r.Status
		if status == "" {
			status = "-"
		} else if styled {
			status = styles.StatusIndicator(status)
		}
		errText := r.Error
		if errText == "" {
			errText = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, status, errText)
	}
	tw.Flush()
}
