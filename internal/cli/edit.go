package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/sysmod/internal/modules"
	"github.com/idilsaglam/sysmod/internal/tui"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		initial     string
		initialFile string
		importFile  string
		exportDir   string
		printOnExit bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit system message modules interactively",
		Long: `Open the module editor. The first module is seeded from --initial or
--initial-file; --import loads a system-modules.json instead.

Keys: a add, d delete, e rename, enter edit, space fold, c fold all,
K/J move, m grab/drop, p preview, x export, i import, y copy, q quit.`,
		Args: exactArgs(0, "sysmod edit [flags]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if initial != "" && initialFile != "" {
				return usagef("--initial and --initial-file are mutually exclusive")
			}
			if initialFile != "" {
				b, err := os.ReadFile(initialFile)
				if err != nil {
					return fmt.Errorf("read initial file: %w", err)
				}
				initial = string(b)
			}

			s := a.newStore(initial)
			if importFile != "" {
				if err := s.ImportFile(importFile); err != nil {
					return err
				}
			}
			if exportDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getwd: %w", err)
				}
				exportDir = wd
			}

			combined, err := tui.Run(s, tui.Options{ExportDir: exportDir, Logger: a.logger})
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			a.logger.Info("editor closed", zap.Int("modules", s.Len()), zap.Int("chars", s.Summary().Chars))
			if printOnExit {
				fmt.Fprintln(cmd.OutOrStdout(), combined)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&initial, "initial", "", "Seed text for the first module")
	f.StringVar(&initialFile, "initial-file", "", "Read seed text for the first module from a file")
	f.StringVar(&importFile, "import", "", "Start from a system-modules.json file")
	f.StringVar(&exportDir, "export-dir", "", "Directory for exported files (default: working dir)")
	f.BoolVar(&printOnExit, "print", false, "Print the combined system message on exit")
	return cmd
}

func (a *app) newStore(initial string) *modules.Store {
	return modules.New(initial,
		modules.WithLabels(a.cfg.ModuleLabels()),
		modules.WithLogger(a.logger),
	)
}
