package auth

import (
	"errors"
	"fmt"

	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/session"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key for the current API host",
		Long: `Remove the API key stored in the local keychain for the current API host.

Example:
  qd auth logout`,
		Args:         cobra.NoArgs,
		RunE:         runLogout,
		SilenceUsage: true,
	}

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	baseURI, err := session.BaseURI(cmd)
	if err != nil {
		return err
	}
	host := auth.HostKey(baseURI)

	err = session.Store().DeleteToken(host)
	if errors.Is(err, auth.ErrTokenNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No API key stored for %s\n", host)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove API key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for %s\n", host)
	return nil
}
