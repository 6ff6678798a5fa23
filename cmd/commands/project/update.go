package project

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
		Use:   "update <project-id>",
		Short: "Update a project",
		Long: `Update a project with a JSON document and/or key=value fields.

Examples:
  qd project update 42 --field name="Renamed"
  qd project update 42 --data @changes.json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runUpdate,
		SilenceUsage: true,
	}

	addPayloadFlags(cmd)
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	projectID := args[0]
	if err := util.ValidateResourceID("project", projectID); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
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
	session.Annotate(cmd, client, auditlog.Metadata{ResourceType: "project", ResourceID: projectID})

	ctx, cancel := session.Context(cmd)
	defer cancel()

	project, err := client.Projects().Update(ctx, projectID, body)
	if err != nil {
		return err
	}

	if format == output.FormatTable {
		fmt.Fprintf(cmd.ErrOrStderr(), "Project %s updated.\n", projectID)
	}
	return output.Write(cmd.OutOrStdout(), project, format, false)
}
