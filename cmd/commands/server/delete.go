package server

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
		Use:   "delete <server-id>",
		Short: "Delete a server",
		Long: `Delete a server from a project. In a terminal a spinner is shown while the
request runs. A terminal session asks for confirmation first unless --yes
is given.

Example:
  qd server delete 7 --project 42`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	serverID := args[0]
	if err := util.ValidateResourceID("server", serverID); err != nil {
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
	session.Annotate(cmd, client, auditlog.Metadata{ProjectID: projectID, ResourceType: "server", ResourceID: serverID})

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && output.IsTerminal(cmd.ErrOrStderr())
	if yes, _ := cmd.Flags().GetBool("yes"); interactive && !yes {
		err := tui.Confirm(fmt.Sprintf("Delete server %s?", serverID), "This cannot be undone.")
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Server deletion cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	ctx, cancel := session.Context(cmd)
	defer cancel()

	remove := func() error {
		_, err := client.Servers(projectID).Delete(ctx, serverID)
		return err
	}

	if interactive {
		err = tui.RunWithSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Deleting server %s...", serverID), remove)
	} else {
		err = remove()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Server %s deleted successfully.\n", serverID)
	return nil
}
