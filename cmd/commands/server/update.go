package server

import (
	"fmt"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
)

func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <server-id>",
		Short: "Update a server",
		Long: `Update a server with a JSON document and/or key=value fields.

Examples:
  qd server update 7 --project 42 --field name="Updated Server"
  qd server update 7 --data @changes.json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	addPayloadFlags(cmd)
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	body, err := readPayload(cmd)
	if err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}
	session.Annotate(cmd, client, auditlog.Metadata{ProjectID: projectID, ResourceType: "server", ResourceID: serverID})

	ctx, cancel := session.Context(cmd)
	defer cancel()

	server, err := client.Servers(projectID).Update(ctx, serverID, body)
	if err != nil {
		return err
	}

	if format == output.FormatTable {
		fmt.Fprintf(cmd.ErrOrStderr(), "Server %s updated.\n", serverID)
	}
	return output.Write(cmd.OutOrStdout(), server, format, false)
}
