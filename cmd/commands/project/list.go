package project

import (
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long: `List all projects visible to the API key.

Examples:
  qd project list
  qd project list -o json`,
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

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := session.Context(cmd)
	defer cancel()

	projects, err := client.Projects().List(ctx)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), projects, format, true)
}
