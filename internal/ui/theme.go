package ui

import "strings"

// Theme bundles palette, symbols and box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Warn string
	SymCollapsed, SymExpanded                  string
	CornerTL, CornerTR, CornerBL, CornerBR     string
	H, V                                       string
	SymOK, SymFail, Sep                        string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Warn: fgYellow,
		SymCollapsed: "▸", SymExpanded: "▾",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymOK: symCheck, SymFail: symCross, Sep: "·",
	}
}

// SetTheme selects classic (default), neon or mono.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Warn: "\033[93m",
			SymCollapsed: "▶", SymExpanded: "▼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymOK: symCheck, SymFail: symCross, Sep: "·",
		}
	case "mono":
		disableColor = true
		current = Theme{
			SymCollapsed: "+", SymExpanded: "-",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymOK: "ok", SymFail: "error:", Sep: "|",
		}
	default:
		current = classic()
	}
}

// Current is what renderers need.
func Current() Theme { return current }
