package auth

import (
	"fmt"
	"os"
	"strings"

	"quickdeployer/qd/internal/auth"
	"quickdeployer/qd/internal/session"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key for the current API host",
		Long: `Store an API key in the local keychain for the API host selected by
--base-uri, QUICKDEPLOYER_BASE_URI or the base-uri config key.

Example:
  qd auth login
  qd auth login --base-uri https://app.quickdeployer.com/api`,
		Args:         cobra.NoArgs,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	baseURI, err := session.BaseURI(cmd)
	if err != nil {
		return err
	}
	host := auth.HostKey(baseURI)

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)
	if token == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no API key given: pass --token when stdin is not a terminal")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Enter API key for %s: ", host)
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(bytes))
	}

	if token == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := session.Store().SetToken(host, token); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s\n", host)
	return nil
}
