package server

import (
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers in a project",
		Long: `List all servers in the selected project.

Examples:
  qd server list --project 42
  qd server list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	servers, err := client.Servers(projectID).List(ctx)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), servers, format, true)
}
