package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/sysmod/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sysmod config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Long:  "Writes the current settings (file, environment and flags applied) to --config, or <data dir>/config.yaml.",
		Args:  exactArgs(0, "sysmod config init [--force]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = a.cfg.Path()
			}
			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			case err != nil && !errors.Is(err, os.ErrNotExist):
				return fmt.Errorf("stat config: %w", err)
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			ui.OK("wrote " + path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}
