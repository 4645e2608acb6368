package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/sysmod/internal/modules"
	"github.com/idilsaglam/sysmod/internal/ui"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		dir       string
		collapsed bool
		stdout    bool
	)
	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Bundle text files into a system-modules.json",
		Long:  "Create one module per text file, titled after the file name, in argument order.",
		Args:  minArgs(1, "sysmod export FILE... [--dir DIR]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.storeFromFiles(args, collapsed)
			if err != nil {
				return err
			}
			if stdout {
				return s.ExportTo(cmd.OutOrStdout())
			}
			p, err := s.WriteExportFile(dir)
			if err != nil {
				return err
			}
			a.logger.Debug("export written", zap.String("path", p), zap.Int("modules", s.Len()))
			ui.OK(fmt.Sprintf("exported %d modules to %s", s.Len(), p))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&dir, "dir", ".", "Output directory")
	f.BoolVar(&collapsed, "collapsed", false, "Mark every module collapsed")
	f.BoolVar(&stdout, "stdout", false, "Write the document to stdout instead of a file")
	return cmd
}

func (a *app) storeFromFiles(paths []string, collapsed bool) (*modules.Store, error) {
	s := a.newStore("")
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if i > 0 {
			s.Add()
		}
		s.SetTitle(i, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
		s.SetContent(i, string(b))
	}
	if collapsed && !s.AllCollapsed() {
		s.ToggleCollapseAll()
	}
	return s, nil
}
