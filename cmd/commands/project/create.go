package project

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
		Short: "Create a project",
		Long: `Create a project from a JSON document and/or key=value fields.

Field values that parse as JSON keep their type; anything else is sent
as a string. Fields override keys from --data.

Examples:
  qd project create --field name="Test Project"
  qd project create --data '{"name":"Test Project","description":"demo"}'
  qd project create --data @project.json -o json`,
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

	body, err := readPayload(cmd)
	if err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}
	session.Annotate(cmd, client, auditlog.Metadata{ResourceType: "project"})

	ctx, cancel := session.Context(cmd)
	defer cancel()

	project, err := client.Projects().Create(ctx, body)
	if err != nil {
		return err
	}

	id, _ := output.Field(project, "id")
	session.Annotate(cmd, client, auditlog.Metadata{ResourceID: id})

	if format == output.FormatTable {
		fmt.Fprintln(cmd.ErrOrStderr(), "Project created.")
	}
	return output.Write(cmd.OutOrStdout(), project, format, false)
}
