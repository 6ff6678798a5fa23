package project

import (
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
)

// ShowCommand returns a cobra.Command that displays details for a single project.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show details for a project",
		Long: `Display detailed information about a single project.

Examples:
  qd project show 42
  qd project show 42 -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	projectID := args[0]
	if err := util.ValidateResourceID("project", projectID); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("output")
	if err := output.ValidateFormat(format); err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := session.Context(cmd)
	defer cancel()

	project, err := client.Projects().Get(ctx, projectID)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), project, format, false)
}
