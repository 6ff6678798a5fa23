package config

import (
	"fmt"
	"strings"

	"quickdeployer/qd/internal/config"
	"quickdeployer/qd/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value. Pass an empty value to clear it.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  qd config set default-project 42\n" +
			"  qd config set base-uri https://app.quickdeployer.com/api\n" +
			"  qd config set log-level info",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(util.NormalizeKey(args[0]))
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	value := spec.Apply(cfg, args[1])
	if err := cfg.Save(); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", spec.Name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}
