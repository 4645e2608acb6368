package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sysmod/internal/modules"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func newTestModel(t *testing.T, s *modules.Store) Model {
	t.Helper()
	m := New(s, Options{ExportDir: t.TempDir(), Copy: func(string) error { return nil }})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func titlesOf(s *modules.Store) []string {
	var out []string
	for _, mod := range s.Modules() {
		out = append(out, mod.Title)
	}
	return out
}

func TestAddSelectsNewModule(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("a"))

	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titlesOf(s))
	assert.Equal(t, 2, m.list.Index())
	assert.Len(t, m.list.Items(), 3)
}

func TestDeleteSkipsLastAndCollapsed(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("d"))
	assert.Equal(t, 1, s.Len())

	m = send(t, m, runes("a"), keySpace, runes("d"))
	assert.Equal(t, 2, s.Len(), "collapsed modules hide the delete control")

	m = send(t, m, keySpace, runes("d"))
	assert.Equal(t, []string{"Module 1"}, titlesOf(s))
	assert.Equal(t, 0, m.list.Index())
}

func TestRenameTrims(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("e"))
	require.Equal(t, modeTitle, m.mode)

	m.ti.SetValue("  Persona  ")
	m = send(t, m, keyEnter)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"Persona"}, titlesOf(s))
}

func TestRenameEscKeepsTitle(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("e"))
	m.ti.SetValue("nope")
	m = send(t, m, keyEsc)

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"Module 1"}, titlesOf(s))
}

func TestEditContentCommitsOnEsc(t *testing.T) {
	var pushed string
	s := modules.New("", modules.WithOnChange(func(v string) { pushed = v }))
	m := send(t, newTestModel(t, s), keyEnter)
	require.Equal(t, modeContent, m.mode)

	m = send(t, m, runes("Be concise."))
	m = send(t, m, keyEsc)

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Be concise.", s.CombinedText())
	assert.Equal(t, "Be concise.", pushed)
}

func TestEditContentExpandsCollapsed(t *testing.T) {
	s := modules.New("x")
	m := send(t, newTestModel(t, s), keySpace)
	require.True(t, s.AllCollapsed())

	send(t, m, keyEnter)
	assert.False(t, s.AllCollapsed())
}

func TestToggleAll(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("c"))
	assert.True(t, s.AllCollapsed())

	send(t, m, runes("c"))
	for _, mod := range s.Modules() {
		assert.False(t, mod.Collapsed)
	}
}

func TestMoveKeys(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("a"))
	require.Equal(t, 2, m.list.Index())

	m = send(t, m, runes("K"))
	assert.Equal(t, []string{"Module 1", "Module 3", "Module 2"}, titlesOf(s))
	assert.Equal(t, 1, m.list.Index())

	m = send(t, m, runes("J"), runes("J"))
	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titlesOf(s))
	assert.Equal(t, 2, m.list.Index())
}

func TestKeyboardDrag(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("a"), keyUp, keyUp)
	require.Equal(t, 0, m.list.Index())

	m = send(t, m, runes("m"))
	assert.True(t, m.drag.Active())

	m = send(t, m, keyDown, keyDown)
	tgt, ok := m.drag.Target()
	require.True(t, ok)
	assert.Equal(t, 2, tgt)
	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titlesOf(s), "hovering does not move")

	m = send(t, m, runes("m"))
	assert.False(t, m.drag.Active())
	assert.Equal(t, []string{"Module 2", "Module 3", "Module 1"}, titlesOf(s))
}

func TestReorderKeysEndDrag(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("a"), keyUp, keyUp)

	m = send(t, m, runes("m"), runes("J"))
	assert.False(t, m.drag.Active())
	assert.Equal(t, []string{"Module 2", "Module 1", "Module 3"}, titlesOf(s))

	m = send(t, m, keyDown, runes("m"))
	assert.Equal(t, []string{"Module 2", "Module 1", "Module 3"}, titlesOf(s), "m starts a new grab")
	src, ok := m.drag.Source()
	require.True(t, ok)
	assert.Equal(t, 2, src)
}

func TestDeleteAndAddEndDrag(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("a"), keyUp)
	require.Equal(t, 1, m.list.Index())

	m = send(t, m, runes("m"), keyUp, runes("d"))
	assert.False(t, m.drag.Active())
	assert.Equal(t, []string{"Module 2", "Module 3"}, titlesOf(s))

	m = send(t, m, runes("m"), runes("a"))
	assert.False(t, m.drag.Active())
	assert.Equal(t, []string{"Module 2", "Module 3", "Module 3"}, titlesOf(s))
}

func TestDragCancelWithEsc(t *testing.T) {
	s := modules.New("")
	m := send(t, newTestModel(t, s), runes("a"), runes("m"), keyUp)

	next, cmd := m.Update(keyEsc)
	m = next.(Model)
	assert.False(t, m.drag.Active())
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"Module 1", "Module 2"}, titlesOf(s))
}

func TestPreviewShowsCombined(t *testing.T) {
	s := modules.New("You are helpful.")
	m := send(t, newTestModel(t, s), runes("p"))
	require.Equal(t, modePreview, m.mode)
	assert.Contains(t, m.View(), "You are helpful.")
	assert.Contains(t, m.View(), "chars 16 · tokens 4")

	m = send(t, m, keyEsc)
	assert.Equal(t, modeList, m.mode)
}

func TestExportWritesFile(t *testing.T) {
	s := modules.New("body")
	m := newTestModel(t, s)
	m = send(t, m, runes("x"))

	_, err := os.Stat(filepath.Join(m.exportDir, modules.ExportFileName))
	require.NoError(t, err)
	assert.Contains(t, m.status, "exported to")
	assert.False(t, m.statusErr)
}

func TestImportPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"modules":[{"title":"A","content":"x"},{"title":"B"}]}`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`not json{`), 0o644))

	s := modules.New("keep")
	m := newTestModel(t, s)

	m, _ = m.importPath(bad)
	assert.True(t, m.statusErr)
	assert.Equal(t, "invalid module file", m.status)
	assert.Equal(t, "keep", s.CombinedText())

	m, _ = m.importPath(good)
	assert.False(t, m.statusErr)
	assert.Equal(t, "imported 2 modules", m.status)
	assert.Equal(t, []string{"A", "B"}, titlesOf(s))
	assert.Len(t, m.list.Items(), 2)
}

func TestImportModeEscReturns(t *testing.T) {
	m := send(t, newTestModel(t, modules.New("")), runes("i"))
	require.Equal(t, modeImport, m.mode)
	m = send(t, m, keyEsc)
	assert.Equal(t, modeList, m.mode)
}

func TestCopy(t *testing.T) {
	var copied string
	s := modules.New("abc")
	m := New(s, Options{ExportDir: t.TempDir(), Copy: func(v string) error { copied = v; return nil }})
	m = send(t, m, runes("y"))
	assert.Equal(t, "abc", copied)
	assert.Equal(t, "copied system message", m.status)

	m.copy = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, runes("y"))
	assert.True(t, m.statusErr)
}

func TestStatusClears(t *testing.T) {
	m := send(t, newTestModel(t, modules.New("abc")), runes("y"))
	require.NotEmpty(t, m.status)

	m = send(t, m, clearStatusMsg{seq: m.statusSeq - 1})
	assert.NotEmpty(t, m.status, "stale tick keeps newer status")

	m = send(t, m, clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestQuit(t *testing.T) {
	_, cmd := newTestModel(t, modules.New("")).Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewRendersUntitled(t *testing.T) {
	s := modules.New("first line\nsecond")
	s.SetTitle(0, "   ")
	m := newTestModel(t, s)
	v := m.View()
	assert.Contains(t, v, "Untitled")
	assert.Contains(t, v, "first line")
	assert.False(t, strings.Contains(v, "second"))
}
