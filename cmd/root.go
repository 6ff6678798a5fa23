package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"quickdeployer/qd/cmd/commands/audit"
	"quickdeployer/qd/cmd/commands/auth"
	cfgcmd "quickdeployer/qd/cmd/commands/config"
	"quickdeployer/qd/cmd/commands/project"
	"quickdeployer/qd/cmd/commands/server"
	"quickdeployer/qd/internal/auditlog"
	"quickdeployer/qd/internal/config"
	"quickdeployer/qd/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// auditAnnotation marks commands whose runs are written to the audit log.
const auditAnnotation = "audit"

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "qd",
		Short: "A CLI for managing QuickDeployer projects and servers",
		Long: `qd is a command-line client for the QuickDeployer API. It lists, creates,
updates and deletes projects and the servers inside them, and checks
server status.

Quick start:
  qd auth login                          # Store your API key
  qd project list                        # List all projects
  qd server list --project <id>          # List servers in a project
  qd server status <id> --project <id>   # Check a server's status`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: syncLogger,
	}

	cmd.PersistentFlags().String("base-uri", "", "QuickDeployer API base URI (overrides QUICKDEPLOYER_BASE_URI and config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().Duration("timeout", 0, "Abort API calls after this duration (0 = no limit)")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(project.NewCommand())
	cmd.AddCommand(server.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	markAudited(cmd)

	return cmd
}

// markAudited annotates every create, update and delete subcommand.
func markAudited(root *cobra.Command) {
	for _, group := range root.Commands() {
		for _, sub := range group.Commands() {
			switch sub.Name() {
			case "create", "update", "delete":
				if sub.Annotations == nil {
					sub.Annotations = map[string]string{}
				}
				sub.Annotations[auditAnnotation] = "true"
			}
		}
	}
}

// setupLogging builds the zap logger for this invocation and attaches it to
// the command context. --verbose wins over the log-level config key.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logging.DefaultLevel
	if cfg, err := config.Load(); err == nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}

	logger, err := logging.NewLogger(logging.Config{Level: level})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	logger.Debug("command started", zap.String("command", cmd.CommandPath()))
	return nil
}

func syncLogger(cmd *cobra.Command, args []string) {
	_ = logging.FromContext(cmd.Context()).Sync()
}

// run executes the command tree for args and records audited commands,
// including failed ones.
func run(root *cobra.Command, args []string) error {
	root.SetArgs(args)

	start := time.Now()
	executed, err := root.ExecuteC()
	if executed != nil && executed.Annotations[auditAnnotation] == "true" {
		auditlog.Record(executed.Context(), executed.CommandPath(), args, err, start)
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	root := rootCmd()
	if err := run(root, os.Args[1:]); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
