package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func visibleWidth(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders used/limit as a bar with percentage. Overflow fills the bar.
func ProgressBar(used, limit, width int) string {
	if limit <= 0 {
		limit = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(used) / float64(limit) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(used) / float64(limit) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	fmt.Fprint(stdout, PanelString(lines))
}

// PanelString is Panel without printing.
func PanelString(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := visibleWidth(ln); w > maxw {
			maxw = w
		}
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		pad := maxw - visibleWidth(ln)
		b.WriteString(t.V + " " + ln + strings.Repeat(" ", pad) + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// Truncate shortens s to max display cells, adding an ellipsis.
func Truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "…")
}
