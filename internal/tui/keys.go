package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add         key.Binding
	Delete      key.Binding
	EditTitle   key.Binding
	EditContent key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Grab        key.Binding
	Preview     key.Binding
	Export      key.Binding
	Import      key.Binding
	Copy        key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		EditTitle:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		EditContent: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fold")),
		ToggleAll:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "fold all")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Grab:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "grab/drop")),
		Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Export:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Import:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Cancel:      key.NewBinding(key.WithKeys("esc")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.EditContent, k.Toggle, k.Grab, k.Preview}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{
		k.Add, k.Delete, k.EditTitle, k.EditContent, k.Toggle, k.ToggleAll,
		k.MoveUp, k.MoveDown, k.Grab, k.Preview, k.Export, k.Import, k.Copy,
	}
}
