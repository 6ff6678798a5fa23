package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/session"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is available",
		Long: `Show whether an API key is stored for the current API host and whether
QUICKDEPLOYER_API_KEY overrides it.

Example:
  qd auth status`,
		Args:         cobra.NoArgs,
		RunE:         runStatus,
		SilenceUsage: true,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	baseURI, err := session.BaseURI(cmd)
	if err != nil {
		return err
	}
	host := auth.HostKey(baseURI)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "API: %s\n", baseURI)

	_, err = session.Store().GetToken(host)
	switch {
	case err == nil:
		fmt.Fprintf(out, "%s: logged in\n", host)
	case errors.Is(err, auth.ErrTokenNotFound):
		fmt.Fprintf(out, "%s: not logged in\n", host)
	default:
		fmt.Fprintf(out, "%s: error (%v)\n", host, err)
	}

	if strings.TrimSpace(os.Getenv(auth.EnvAPIKey)) != "" {
		fmt.Fprintf(out, "%s is set and takes precedence\n", auth.EnvAPIKey)
	}
	return nil
}
