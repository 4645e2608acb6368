// Package tui is the interactive module editor.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/sysmod/internal/modules"
)

const statusTTL = 3 * time.Second

type mode int

const (
	modeList mode = iota
	modeTitle
	modeContent
	modeImport
	modePreview
)

// Options configure the editor.
type Options struct {
	// ExportDir receives system-modules.json. Defaults to the working dir.
	ExportDir string
	// ImportDir is where the file picker starts. Defaults to ExportDir.
	ImportDir string
	Logger    *zap.Logger
	// Copy puts text on the clipboard; defaults to the system clipboard.
	Copy func(string) error
}

type clearStatusMsg struct{ seq int }

// Model is the Bubble Tea model over a module store.
type Model struct {
	store *modules.Store
	drag  *modules.Drag
	keys  keyMap
	log   *zap.Logger
	copy  func(string) error

	list list.Model
	ti   textinput.Model // title editor
	ta   textarea.Model  // content editor
	fp   filepicker.Model
	vp   viewport.Model

	mode      mode
	editIndex int
	exportDir string
	width     int
	height    int

	status    string
	statusErr bool
	statusSeq int
}

// New builds the editor over s.
func New(s *modules.Store, opt Options) Model {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Copy == nil {
		opt.Copy = clipboard.WriteAll
	}
	if opt.ExportDir == "" {
		opt.ExportDir = "."
	}
	if opt.ImportDir == "" {
		opt.ImportDir = opt.ExportDir
	}

	drag := modules.NewDrag(s)
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{drag: drag}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("module", "modules")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Module title..."
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Type system message here"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	fp := filepicker.New()
	fp.AllowedTypes = []string{".json"}
	fp.CurrentDirectory = opt.ImportDir
	fp.ShowPermissions = false

	m := Model{
		store:     s,
		drag:      drag,
		keys:      keys,
		log:       opt.Logger,
		copy:      opt.Copy,
		list:      l,
		ti:        ti,
		ta:        ta,
		fp:        fp,
		vp:        viewport.New(0, 0),
		exportDir: opt.ExportDir,
	}
	m.sync(0)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		m.fp, cmd = m.fp.Update(msg)
		return m, cmd
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil
	}

	switch m.mode {
	case modeTitle:
		return m.updateTitle(msg)
	case modeContent:
		return m.updateContent(msg)
	case modeImport:
		return m.updateImport(msg)
	case modePreview:
		return m.updatePreview(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	i := m.list.Index()
	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.Cancel):
		if m.drag.Active() {
			m.drag.Cancel()
			return m.notify("move cancelled", false)
		}
		return m, tea.Quit

	case key.Matches(km, m.keys.Add):
		m.drag.Cancel()
		m.store.Add()
		m.sync(m.store.Len() - 1)
		return m, nil

	case key.Matches(km, m.keys.Delete):
		cur, ok := m.store.At(i)
		if !ok || cur.Collapsed {
			return m, nil
		}
		if m.store.Delete(i) {
			m.drag.Cancel()
			if i >= m.store.Len() {
				i = m.store.Len() - 1
			}
			m.sync(i)
		}
		return m, nil

	case key.Matches(km, m.keys.EditTitle):
		cur, ok := m.store.At(i)
		if !ok {
			return m, nil
		}
		m.mode, m.editIndex = modeTitle, i
		m.ti.SetValue(cur.Title)
		m.ti.CursorEnd()
		return m, m.ti.Focus()

	case key.Matches(km, m.keys.EditContent):
		cur, ok := m.store.At(i)
		if !ok {
			return m, nil
		}
		if cur.Collapsed {
			m.store.ToggleCollapsed(i)
			m.sync(i)
		}
		m.mode, m.editIndex = modeContent, i
		m.ta.SetValue(cur.Content)
		return m, m.ta.Focus()

	case key.Matches(km, m.keys.Toggle):
		m.store.ToggleCollapsed(i)
		m.sync(i)
		return m, nil

	case key.Matches(km, m.keys.ToggleAll):
		m.store.ToggleCollapseAll()
		m.sync(i)
		return m, nil

	case key.Matches(km, m.keys.MoveUp):
		if m.store.MoveUp(i) {
			m.drag.Cancel()
			m.sync(i - 1)
		}
		return m, nil

	case key.Matches(km, m.keys.MoveDown):
		if m.store.MoveDown(i) {
			m.drag.Cancel()
			m.sync(i + 1)
		}
		return m, nil

	case key.Matches(km, m.keys.Grab):
		if !m.drag.Active() {
			m.drag.Begin(i)
			m.drag.Over(i)
			m.sync(i)
			return m.notify("moving: pick a position and press m", false)
		}
		if m.drag.Drop(i) {
			m.log.Debug("module dropped", zap.Int("to", i))
		}
		m.sync(i)
		return m, nil

	case key.Matches(km, m.keys.Preview):
		m.mode = modePreview
		m.vp.SetContent(m.store.CombinedText())
		m.vp.GotoTop()
		return m, nil

	case key.Matches(km, m.keys.Export):
		p, err := m.store.WriteExportFile(m.exportDir)
		if err != nil {
			m.log.Warn("export failed", zap.Error(err))
			return m.notify("export failed: "+err.Error(), true)
		}
		return m.notify("exported to "+p, false)

	case key.Matches(km, m.keys.Import):
		m.mode = modeImport
		return m, m.fp.Init()

	case key.Matches(km, m.keys.Copy):
		if err := m.copy(m.store.CombinedText()); err != nil {
			return m.notify("copy failed: "+err.Error(), true)
		}
		return m.notify("copied system message", false)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.drag.Active() {
		m.drag.Over(m.list.Index())
	}
	return m, cmd
}

func (m Model) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			m.store.SetTitle(m.editIndex, m.ti.Value())
			m.closeEditors()
			m.sync(m.editIndex)
			return m, nil
		case "esc":
			m.closeEditors()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateContent(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.store.SetContent(m.editIndex, m.ta.Value())
		m.closeEditors()
		m.sync(m.editIndex)
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "esc" || km.String() == "q") {
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)
	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.mode = modeList
		next, note := m.importPath(path)
		return next, tea.Batch(cmd, note)
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.mode = modeList
		return m.notify("not a JSON file: "+path, true)
	}
	return m, cmd
}

func (m Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q", "p":
			m.mode = modeList
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// importPath replaces the list with the file at path. A failed import keeps
// the current list.
func (m Model) importPath(path string) (Model, tea.Cmd) {
	m.drag.Cancel()
	if err := m.store.ImportFile(path); err != nil {
		m.log.Info("import rejected", zap.String("path", path), zap.Error(err))
		if !errors.Is(err, modules.ErrInvalidFormat) {
			return m.notify(err.Error(), true)
		}
		return m.notify("invalid module file", true)
	}
	m.log.Info("modules imported", zap.String("path", path), zap.Int("count", m.store.Len()))
	m.sync(0)
	return m.notify(fmt.Sprintf("imported %d modules", m.store.Len()), false)
}

// notify shows a transient status line.
func (m Model) notify(text string, isErr bool) (Model, tea.Cmd) {
	m.statusSeq++
	seq := m.statusSeq
	m.status, m.statusErr = text, isErr
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) closeEditors() {
	m.mode = modeList
	m.ti.SetValue("")
	m.ti.Blur()
	m.ta.Blur()
}

// sync rebuilds the list items from the store and selects cursor.
func (m *Model) sync(cursor int) {
	mods := m.store.Modules()
	items := make([]list.Item, 0, len(mods))
	for _, mod := range mods {
		items = append(items, listItem{mod: mod, title: m.store.DisplayTitle(mod)})
	}
	m.list.SetItems(items)
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	m.list.Select(cursor)

	sum := m.store.Summary()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("System message"),
		accentStyle.Render("chars"), sum.Chars,
		accentStyle.Render("≈tokens"), sum.Tokens,
	)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w-4, h-4)
	m.ti.Width = w - 10
	m.ta.SetWidth(w - 6)
	m.ta.SetHeight(max(h-10, 4))
	m.vp.Width = w - 6
	m.vp.Height = max(h-8, 4)
}

func (m Model) View() string {
	var content string
	switch m.mode {
	case modeTitle:
		content = m.list.View() + "\n" + frameStyle.Render("Rename module\n"+m.ti.View())
	case modeContent:
		cur, _ := m.store.At(m.editIndex)
		content = titleStyle.Render("Editing "+m.store.DisplayTitle(cur)) +
			mutedStyle.Render("  (esc to save)") + "\n" + m.ta.View()
	case modeImport:
		content = titleStyle.Render("Import modules") +
			mutedStyle.Render("  (enter to pick, esc to cancel)") + "\n" +
			mutedStyle.Render(m.fp.CurrentDirectory) + "\n" + m.fp.View()
	case modePreview:
		sum := m.store.Summary()
		content = fmt.Sprintf("%s  %s\n%s",
			titleStyle.Render("Preview"),
			mutedStyle.Render(fmt.Sprintf("chars %d · tokens %d", sum.Chars, sum.Tokens)),
			m.vp.View())
	default:
		content = m.list.View()
	}
	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return frameStyle.Render(strings.TrimRight(content, "\n"))
}

// Run starts the editor and returns the combined text when the user quits.
func Run(s *modules.Store, opt Options) (string, error) {
	p := tea.NewProgram(New(s, opt), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := final.(Model); ok {
		return fm.store.CombinedText(), nil
	}
	return s.CombinedText(), nil
}
