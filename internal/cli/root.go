// Package cli implements the sysmod commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/sysmod/internal/config"
	"github.com/idilsaglam/sysmod/internal/ui"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage error.
const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

// usageError marks bad invocations so they exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// app is the state shared by subcommands after the root pre-run.
type app struct {
	configPath string
	dataDir    string
	theme      string
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(&app{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	ui.SetOutput(stdout, stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) || isCobraUsage(err) {
		ui.Hint("run `sysmod --help` to see usage")
		return exitUsage
	}
	return exitErr
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sysmod",
		Short: "Compose system prompts from reorderable modules",
		Long: `sysmod builds a model system message out of titled modules.

Modules are edited, folded and reordered in an interactive editor, combined
in order (blank modules skipped), and exchanged as system-modules.json files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: <data dir>/config.yaml)")
	pf.StringVar(&a.dataDir, "data-dir", "", "Data directory (default: $SYSMOD_DATA_DIR or ~/.sysmod)")
	pf.StringVar(&a.theme, "theme", "", "Output theme: classic, neon or mono")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newEditCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newPresetCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if a.noColor {
		cfg.NoColor = true
	}
	a.cfg = cfg

	ui.SetColorForcing(false, false)
	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetColorForcing(false, true)
	}

	// The editor owns the terminal, so it logs to a file instead of stderr.
	outputs := []string{"stderr"}
	if cmd.Name() == "edit" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		outputs = []string{cfg.LogPath()}
	}
	logger, err := newLogger(a.verbose, outputs)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("theme", cfg.Theme),
		zap.String("command", cmd.Name()))
	return nil
}

func newLogger(verbose bool, outputs []string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// isCobraUsage catches the usage failures cobra raises before any of our
// validators run.
func isCobraUsage(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command")
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
