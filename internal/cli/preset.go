package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/sysmod/internal/presets"
	"github.com/idilsaglam/sysmod/internal/ui"
)

func newPresetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Save and load named chat parameter presets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save NAME key=value...",
			Short: "Save parameters under NAME (replaces an existing preset)",
			Long:  "Values are parsed as JSON when possible (0.7, true, [\"a\"]) and kept as strings otherwise. The model key is never stored.",
			Args:  minArgs(1, "sysmod preset save NAME key=value..."),
			RunE: func(cmd *cobra.Command, args []string) error {
				values, err := parseAssignments(args[1:])
				if err != nil {
					return err
				}
				p, err := a.presets().Save(args[0], values)
				if err != nil {
					return presetErr(err)
				}
				ui.OK("saved preset " + p.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "load NAME",
			Short: "Print the parameters of a preset as JSON",
			Args:  exactArgs(1, "sysmod preset load NAME"),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.presets().Load(args[0])
				if err != nil {
					return presetErr(err)
				}
				b, err := json.MarshalIndent(p.Values, "", "  ")
				if err != nil {
					return fmt.Errorf("json marshal: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List preset names",
			Args:  exactArgs(0, "sysmod preset ls"),
			RunE: func(cmd *cobra.Command, args []string) error {
				names := a.presets().Names()
				if len(names) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.C(ui.Current().Muted, "no presets"))
					return nil
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm NAME",
			Short: "Delete a preset",
			Args:  exactArgs(1, "sysmod preset rm NAME"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.presets().Delete(args[0]); err != nil {
					return presetErr(err)
				}
				ui.OK("removed preset " + strings.TrimSpace(args[0]))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) presets() *presets.Manager {
	return presets.NewManager(a.cfg.PresetsPath(), a.logger)
}

// presetErr turns a blank name into a usage error.
func presetErr(err error) error {
	if errors.Is(err, presets.ErrEmptyName) {
		return usagef("preset name is empty")
	}
	return err
}

func parseAssignments(args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, kv := range args {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, usagef("expected key=value, got %q", kv)
		}
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			values[k] = parsed
		} else {
			values[k] = v
		}
	}
	return values, nil
}

