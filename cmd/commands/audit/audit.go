package audit

import "github.com/spf13/cobra"

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the local audit trail",
		Long: "View a local record of qd create, update and delete commands and prune\n" +
			"old entries.\n\n" +
			"Audit history is stored locally in ~/.config/quickdeployer/qd.db.\n" +
			"Set QD_DISABLE_AUDIT=1 to stop recording.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
