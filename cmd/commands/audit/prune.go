package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"quickdeployer/qd/internal/auditlog"

	"github.com/spf13/cobra"
)

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries older than a duration",
		Long: `Delete audit entries older than a duration. Days are written with a "d"
suffix; anything else uses Go duration syntax.

Examples:
  qd audit prune --older-than 30d
  qd audit prune --older-than 72h`,
		Args:         cobra.NoArgs,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("older-than", "", "Remove entries older than this duration (e.g. 30d, 72h)")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("older-than")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("--older-than is required")
	}

	olderThan, err := parseDuration(raw)
	if err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	removed, err := repo.Prune(olderThan)
	if err != nil {
		return err
	}

	noun := "entries"
	if removed == 1 {
		noun = "entry"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d audit %s.\n", removed, noun)
	return nil
}

func parseDuration(input string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(input, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		if n < 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}
