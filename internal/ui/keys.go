package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings for the list and the add form. form selects
// which set the help view shows.
type keyMap struct {
	Add       key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	All       key.Binding
	Active    key.Binding
	Completed key.Binding
	Help      key.Binding
	Quit      key.Binding

	NextField key.Binding
	Submit    key.Binding
	Cancel    key.Binding

	form bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done/undo")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		All:       key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all")),
		Active:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "active")),
		Completed: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.form {
		return []key.Binding{k.NextField, k.Submit, k.Cancel}
	}
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	if k.form {
		return [][]key.Binding{{k.NextField, k.Submit, k.Cancel}}
	}
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down},
		{k.All, k.Active, k.Completed},
		{k.Help, k.Quit},
	}
}
