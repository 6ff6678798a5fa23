package config

import (
	"quickdeployer/qd/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage qd configuration",
		Long: "View and modify persistent qd settings.\n\n" +
			"Configuration is stored at ~/.config/quickdeployer/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
