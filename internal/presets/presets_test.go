package presets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(filepath.Join(t.TempDir(), FileName), nil)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return m
}

func TestListMissingFile(t *testing.T) {
	m := newTestManager(t)
	assert.Empty(t, m.List())
	assert.NotNil(t, m.List())
}

func TestListCorruptFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(p, []byte(`{"not":"a list"}`), 0o644))
	assert.Empty(t, NewManager(p, nil).List())
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)
	saved, err := m.Save("  precise ", map[string]any{
		"temperature": 0.1,
		"model":       "qwen",
		"seed":        nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "precise", saved.Name)
	assert.NotEmpty(t, saved.ID)

	got, err := m.Load("precise")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"temperature": 0.1}, got.Values)
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, got.UpdatedAt.Equal(saved.UpdatedAt))
}

func TestSaveReplacesInPlace(t *testing.T) {
	m := newTestManager(t)
	first, err := m.Save("a", map[string]any{"top_p": 0.5})
	require.NoError(t, err)
	_, err = m.Save("b", map[string]any{})
	require.NoError(t, err)
	again, err := m.Save("a", map[string]any{"top_p": 0.9})
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, 0.9, list[0].Values["top_p"])
	assert.Equal(t, first.ID, again.ID)
}

func TestEmptyName(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save("   ", nil)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = m.Load("")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, m.Delete(" "), ErrEmptyName)
}

func TestLoadMissing(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Load("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndNames(t *testing.T) {
	m := newTestManager(t)
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, err := m.Save(n, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Names())

	_, err := m.Save("zeta", map[string]any{"top_p": 0.9})
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Names(), "overwrite keeps position")

	require.NoError(t, m.Delete("mid"))
	assert.Equal(t, []string{"zeta", "alpha"}, m.Names())
	assert.ErrorIs(t, m.Delete("mid"), ErrNotFound)
}
