package server

import (
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
)

// ShowCommand returns a cobra.Command that displays details for a single server.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <server-id>",
		Short: "Show details for a server",
		Long: `Display detailed information about a single server.

Examples:
  qd server show 7 --project 42
  qd server show 7 -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	serverID := args[0]
	if err := util.ValidateResourceID("server", serverID); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}

	projectID, err := session.ProjectID(cmd)
	if err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := session.Context(cmd)
	defer cancel()

	server, err := client.Servers(projectID).Get(ctx, serverID)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), server, format, false)
}
