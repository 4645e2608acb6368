package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/sysmod/internal/model"
	"github.com/idilsaglam/sysmod/internal/modules"
	"github.com/idilsaglam/sysmod/internal/ui"
)

// listItem adapts a module to bubbles/list.Item.
type listItem struct {
	mod   model.Module
	title string // display title, with the untitled fallback applied
}

func (i listItem) FilterValue() string { return i.title }

// itemDelegate renders a module as a header line plus one line of content.
type itemDelegate struct {
	drag *modules.Drag
}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	caret := caretOpen
	if it.mod.Collapsed {
		caret = caretClosed
	}
	handle := mutedStyle.Render(dragHandle)
	if src, ok := d.drag.Source(); ok && src == index {
		handle = dropStyle.Render(grabbedMark)
	}
	title := it.title
	if it.mod.Collapsed {
		title = collapsedStyle.Render(title)
	}
	header := fmt.Sprintf("%s %s %s", handle, caret, title)

	prefix := "  "
	if tgt, ok := d.drag.Target(); ok && tgt == index && d.drag.Active() {
		prefix = dropStyle.Render("→ ")
	} else if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	body := ""
	if !it.mod.Collapsed {
		body = firstLine(it.mod.Content)
		if body == "" {
			body = mutedStyle.Render("(empty)")
		} else {
			width := m.Width() - len(contentIndent) - 2
			if width < 10 {
				width = 60
			}
			body = mutedStyle.Render(ui.Truncate(body, width))
		}
	}
	fmt.Fprintln(w, prefix+header)
	fmt.Fprint(w, contentIndent+body)
}

func firstLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			return t
		}
	}
	return ""
}
