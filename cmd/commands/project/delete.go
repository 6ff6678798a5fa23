package project

import (
	"errors"
	"fmt"
	"os"

	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/output"
	"quickdeployer/qd/internal/session"
	"quickdeployer/qd/internal/tui"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Long: `Delete a project. In a terminal you are asked to confirm first
and a spinner is shown while the request runs; --yes skips the prompt.

Example:
  qd project delete 42`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	projectID := args[0]
	if err := util.ValidateResourceID("project", projectID); err != nil {
		return err
	}

	client, err := session.NewClient(cmd)
	if err != nil {
		return err
	}
	session.Annotate(cmd, client, auditlog.Metadata{ResourceType: "project", ResourceID: projectID})

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && output.IsTerminal(cmd.ErrOrStderr())
	if yes, _ := cmd.Flags().GetBool("yes"); interactive && !yes {
		err := tui.Confirm(fmt.Sprintf("Delete project %s?", projectID), "This cannot be undone.")
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Project deletion cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	ctx, cancel := session.Context(cmd)
	defer cancel()

	remove := func() error {
		_, err := client.Projects().Delete(ctx, projectID)
		return err
	}

	if interactive {
		err = tui.RunWithSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Deleting project %s...", projectID), remove)
	} else {
		err = remove()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Project %s deleted successfully.\n", projectID)
	return nil
}
