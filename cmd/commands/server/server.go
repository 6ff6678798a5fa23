package server

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "server",
		Aliases: []string{"servers"},
		Short:   "Manage servers inside a project",
		Long: `List, show, create, update and delete the servers of a project, and check
their status.

Every subcommand works on one project, taken from --project or the
default-project config key.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(StatusCommand())

	cmd.PersistentFlags().StringP("project", "p", "", "Project ID (overrides default-project)")

	return cmd
}
