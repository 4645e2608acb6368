package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/sysmod/internal/modules"
	"github.com/idilsaglam/sysmod/internal/ui"
)

// copyText is swapped out in tests.
var copyText = clipboard.WriteAll

func newPreviewCmd(a *app) *cobra.Command {
	var (
		raw    bool
		copyIt bool
		budget int
	)
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Print the combined system message of a module file",
		Long:  "Import a system-modules.json (or a bare module array; - reads stdin) and print the combined message with its size.",
		Args:  exactArgs(1, "sysmod preview FILE"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newStore("")
			if err := importArg(s, args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			text := s.CombinedText()
			out := cmd.OutOrStdout()

			if sum := s.Summary(); budget > 0 && sum.Tokens > budget {
				ui.Warn(fmt.Sprintf("≈%d tokens exceeds the budget of %d", sum.Tokens, budget))
			}
			if raw {
				fmt.Fprintln(out, text)
			} else {
				ui.Panel(summaryLines(s, budget))
				fmt.Fprintln(out)
				fmt.Fprintln(out, text)
			}
			if copyIt {
				if err := copyText(text); err != nil {
					return fmt.Errorf("copy: %w", err)
				}
				ui.OK("copied to clipboard")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&raw, "raw", false, "Print only the combined message")
	f.BoolVar(&copyIt, "copy", false, "Also copy the combined message to the clipboard")
	f.IntVar(&budget, "budget", 0, "Show token usage against this budget")
	return cmd
}

func importArg(s *modules.Store, arg string, stdin io.Reader) error {
	if arg == "-" {
		return s.ImportReader(stdin)
	}
	if _, err := os.Stat(arg); err != nil {
		return fmt.Errorf("%w: %v", modules.ErrInvalidFormat, err)
	}
	return s.ImportFile(arg)
}

func summaryLines(s *modules.Store, budget int) []string {
	t := ui.Current()
	sum := s.Summary()
	header := fmt.Sprintf("%s  %s %d %s %s %d %s %s %d",
		ui.C(t.Title, "System message"),
		ui.C(t.Accent, "modules"), s.Len(), t.Sep,
		ui.C(t.Accent, "chars"), sum.Chars, t.Sep,
		ui.C(t.Accent, "≈tokens"), sum.Tokens,
	)
	lines := []string{header}
	if budget > 0 {
		color := t.Muted
		if sum.Tokens > budget {
			color = t.Warn
		}
		lines = append(lines, ui.C(color, ui.ProgressBar(sum.Tokens, budget, 28)))
	}
	lines = append(lines, "")
	for i, m := range s.Modules() {
		caret := t.SymExpanded
		if m.Collapsed {
			caret = t.SymCollapsed
		}
		size := modules.Summarize(m.Content).Chars
		line := fmt.Sprintf("%s %s %s", ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)), caret, ui.Truncate(s.DisplayTitle(m), 60))
		if size == 0 {
			line += " " + ui.C(t.Muted, "(empty)")
		} else {
			line += " " + ui.C(t.Muted, fmt.Sprintf("%d chars", size))
		}
		lines = append(lines, line)
	}
	return lines
}
