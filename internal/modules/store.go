// Package modules holds the system-prompt module list: an ordered set of
// titled text blocks that combine into one system message.
package modules

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/sysmod/internal/model"
)

const idPrefix = "sys-module-"

// Labels are the display strings used when the store has to name a module.
type Labels struct {
	First    string // title of the seeded module
	New      string // base of generated titles, "<New> <n>"
	Untitled string // shown (and imported) when a title is blank
}

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{First: "Module 1", New: "Module", Untitled: "Untitled"}
}

// Option configures a Store.
type Option func(*Store)

// WithLabels overrides the generated-title labels. Empty fields keep their default.
func WithLabels(l Labels) Option {
	return func(s *Store) {
		if l.First != "" {
			s.labels.First = l.First
		}
		if l.New != "" {
			s.labels.New = l.New
		}
		if l.Untitled != "" {
			s.labels.Untitled = l.Untitled
		}
	}
}

// WithOnChange registers the consumer of the combined text. It is called
// synchronously after every mutation that can change or reorder content.
func WithOnChange(fn func(combined string)) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithLogger sets the logger used for debug tracing of mutations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the in-memory module list. It always holds at least one module.
// Not safe for concurrent use; callers drive it from one event loop.
type Store struct {
	items    []model.Module
	nextID   int
	labels   Labels
	onChange func(string)
	log      *zap.Logger
}

// New returns a store seeded with one module holding initial.
func New(initial string, opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		labels: DefaultLabels(),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.items = []model.Module{s.Create(s.labels.First, initial, false)}
	s.notify()
	return s
}

// Labels returns the labels in effect.
func (s *Store) Labels() Labels { return s.labels }

// Create allocates the next identity and returns a new, unattached module.
func (s *Store) Create(title, content string, collapsed bool) model.Module {
	id := idPrefix + strconv.Itoa(s.nextID)
	s.nextID++
	return model.Module{ID: id, Title: title, Content: content, Collapsed: collapsed}
}

// Len reports the number of modules.
func (s *Store) Len() int { return len(s.items) }

// At returns the module at i.
func (s *Store) At(i int) (model.Module, bool) {
	if !s.valid(i) {
		return model.Module{}, false
	}
	return s.items[i], true
}

// Modules returns a copy of the list in order.
func (s *Store) Modules() []model.Module {
	out := make([]model.Module, len(s.items))
	copy(out, s.items)
	return out
}

// DisplayTitle is the title to render for m.
func (s *Store) DisplayTitle(m model.Module) string {
	if m.Title == "" {
		return s.labels.Untitled
	}
	return m.Title
}

// Add appends an empty, expanded module named after its position.
func (s *Store) Add() model.Module {
	m := s.Create(s.labels.New+" "+strconv.Itoa(len(s.items)+1), "", false)
	s.items = append(s.items, m)
	s.log.Debug("module added", zap.String("id", m.ID), zap.Int("len", len(s.items)))
	s.notify()
	return m
}

// Delete removes the module at i. Deleting the last remaining module, or an
// index out of range, is ignored and reports false.
func (s *Store) Delete(i int) bool {
	if len(s.items) <= 1 || !s.valid(i) {
		return false
	}
	id := s.items[i].ID
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.log.Debug("module deleted", zap.String("id", id), zap.Int("len", len(s.items)))
	s.notify()
	return true
}

// Move takes the module at from and re-inserts it at to.
// Out-of-range positions are ignored and report false.
func (s *Store) Move(from, to int) bool {
	if !s.valid(from) || !s.valid(to) {
		return false
	}
	if from == to {
		return true
	}
	m := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]model.Module{m}, s.items[to:]...)...)
	s.log.Debug("module moved", zap.String("id", m.ID), zap.Int("from", from), zap.Int("to", to))
	s.notify()
	return true
}

// CanMoveUp reports whether the "move up" control is enabled for i.
func (s *Store) CanMoveUp(i int) bool { return s.valid(i) && i > 0 }

// CanMoveDown reports whether the "move down" control is enabled for i.
func (s *Store) CanMoveDown(i int) bool { return s.valid(i) && i < len(s.items)-1 }

// MoveUp swaps i with its predecessor.
func (s *Store) MoveUp(i int) bool { return s.Move(i, i-1) }

// MoveDown swaps i with its successor.
func (s *Store) MoveDown(i int) bool { return s.Move(i, i+1) }

// ToggleCollapsed flips the collapsed flag of i.
func (s *Store) ToggleCollapsed(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.items[i].Collapsed = !s.items[i].Collapsed
	return true
}

// ToggleCollapseAll expands everything when all modules are collapsed,
// otherwise collapses everything.
func (s *Store) ToggleCollapseAll() {
	target := !s.AllCollapsed()
	for i := range s.items {
		s.items[i].Collapsed = target
	}
}

// AllCollapsed reports whether every module is collapsed.
func (s *Store) AllCollapsed() bool { return AllCollapsed(s.items) }

// SetTitle stores the trimmed title of i.
func (s *Store) SetTitle(i int, v string) bool {
	if !s.valid(i) {
		return false
	}
	s.items[i].Title = strings.TrimSpace(v)
	return true
}

// SetContent stores v as the content of i, verbatim.
func (s *Store) SetContent(i int, v string) bool {
	if !s.valid(i) {
		return false
	}
	s.items[i].Content = v
	s.notify()
	return true
}

// CombinedText is the system message built from the list.
func (s *Store) CombinedText() string { return Combine(s.items) }

// Summary measures CombinedText.
func (s *Store) Summary() Summary { return Summarize(s.CombinedText()) }

// replace swaps in a freshly built list, restarting identities at 1.
func (s *Store) replace(entries []model.ModuleEntry) {
	s.nextID = 1
	next := make([]model.Module, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = s.labels.Untitled
		}
		next = append(next, s.Create(title, e.Content, e.Collapsed))
	}
	if len(next) == 0 {
		next = append(next, s.Create(s.labels.First, "", false))
	}
	s.items = next
	s.log.Debug("modules replaced", zap.Int("len", len(next)))
	s.notify()
}

func (s *Store) valid(i int) bool { return i >= 0 && i < len(s.items) }

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.CombinedText())
	}
}
