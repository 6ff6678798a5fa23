package server

import (
	"fmt"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/payload"
	"quickdeployer/qd/internal/session"

	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a server in a project",
		Long: `Create a server from a JSON document and/or key=value fields.

Field values that parse as JSON keep their type; anything else is sent
as a string. Fields override keys from --data.

Examples:
  qd server create --project 42 --field name="Test Server"
  qd server create --project 42 --data '{"name":"web","ip_address":"203.0.113.10"}'
  qd server create --data @server.json -o json`,
		Args:         cobra.NoArgs,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	addPayloadFlags(cmd)
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// addPayloadFlags registers --data and --field on create and update commands.
func addPayloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "Request body as a JSON object, @file, or @- for stdin")
	cmd.Flags().StringArray("field", nil, "Request field as key=value (repeatable)")
}

func readPayload(cmd *cobra.Command) (map[string]any, error) {
	data, _ := cmd.Flags().GetString("data")
	fields, _ := cmd.Flags().GetStringArray("field")
	return payload.Build(data, fields, cmd.InOrStdin())
}

func runCreate(cmd *cobra.Command, args []string) error {
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
	session.Annotate(cmd, client, auditlog.Metadata{ProjectID: projectID, ResourceType: "server"})

	ctx, cancel := session.Context(cmd)
	defer cancel()

	server, err := client.Servers(projectID).Create(ctx, body)
	if err != nil {
		return err
	}

	id, _ := output.Field(server, "id")
	session.Annotate(cmd, client, auditlog.Metadata{ResourceID: id})

	if format == output.FormatTable {
		fmt.Fprintf(cmd.ErrOrStderr(), "Server created in project %s.\n", projectID)
	}
	return output.Write(cmd.OutOrStdout(), server, format, false)
}
