package modules

import (
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/sysmod/internal/model"
)

// Separator joins module contents in the combined text.
const Separator = "\n\n"

// Summary is a size estimate of a combined text.
//
// Tokens is chars/4 rounded up. It is a rough budget hint for the preview,
// not the output of any model tokenizer.
type Summary struct {
	Chars  int
	Tokens int
}

// Combine joins the non-blank contents of ms in order.
func Combine(ms []model.Module) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, Separator)
}

// Summarize counts the characters of the trimmed text.
func Summarize(text string) Summary {
	chars := utf8.RuneCountInString(strings.TrimSpace(text))
	if chars == 0 {
		return Summary{}
	}
	return Summary{Chars: chars, Tokens: (chars + 3) / 4}
}

// AllCollapsed reports whether ms is non-empty and every module is collapsed.
func AllCollapsed(ms []model.Module) bool {
	if len(ms) == 0 {
		return false
	}
	for _, m := range ms {
		if !m.Collapsed {
			return false
		}
	}
	return true
}
