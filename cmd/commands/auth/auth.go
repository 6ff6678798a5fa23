package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage QuickDeployer API keys",
		Long: `Manage QuickDeployer API keys.

Keys are stored in the local keychain, one per API host. The
QUICKDEPLOYER_API_KEY environment variable takes precedence over a stored key.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}
