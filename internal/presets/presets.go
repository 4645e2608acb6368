// Package presets keeps named chat-parameter presets in a local JSON file.
package presets

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/idilsaglam/sysmod/internal/model"
	"github.com/idilsaglam/sysmod/internal/store/jsonstore"
)

// FileName is the preset file inside the data dir.
const FileName = "presets.json"

// excludedKeys never end up in a preset; the model is picked per session.
var excludedKeys = []string{"model"}

var (
	ErrEmptyName = errors.New("preset name is empty")
	ErrNotFound  = errors.New("preset not found")
)

// Manager loads and saves presets. It reads the file on every call so that
// separate invocations see each other's writes.
type Manager struct {
	path string
	log  *zap.Logger
	now  func() time.Time
}

// NewManager returns a manager backed by the file at path.
func NewManager(path string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{path: path, log: log, now: time.Now}
}

// List returns all presets in save order. Unreadable storage reads as empty.
func (m *Manager) List() []model.Preset {
	var out []model.Preset
	if _, err := jsonstore.Load(m.path, &out); err != nil {
		m.log.Warn("ignoring unreadable presets", zap.String("path", m.path), zap.Error(err))
		return []model.Preset{}
	}
	if out == nil {
		out = []model.Preset{}
	}
	return out
}

// Names returns preset names in save order, for completion.
func (m *Manager) Names() []string {
	ps := m.List()
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names
}

// Save stores values under name, replacing an existing preset of that name
// in place. The model key and nil values are dropped.
func (m *Manager) Save(name string, values map[string]any) (model.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Preset{}, ErrEmptyName
	}
	p := model.Preset{Name: name, Values: clean(values), UpdatedAt: m.now().UTC()}

	list := m.List()
	idx := find(list, name)
	if idx >= 0 {
		p.ID = list[idx].ID
		list[idx] = p
	} else {
		p.ID = ulid.Make().String()
		list = append(list, p)
	}
	if err := jsonstore.Save(m.path, list); err != nil {
		return model.Preset{}, fmt.Errorf("save presets: %w", err)
	}
	m.log.Debug("preset saved", zap.String("name", name), zap.Bool("replaced", idx >= 0))
	return p, nil
}

// Load returns the preset called name.
func (m *Manager) Load(name string) (model.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Preset{}, ErrEmptyName
	}
	list := m.List()
	idx := find(list, name)
	if idx < 0 {
		return model.Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return list[idx], nil
}

// Delete removes the preset called name.
func (m *Manager) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	list := m.List()
	idx := find(list, name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := jsonstore.Save(m.path, list); err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}

func find(list []model.Preset, name string) int {
	for i, p := range list {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func clean(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		out[k] = v
	}
	for _, k := range excludedKeys {
		delete(out, k)
	}
	return out
}
