package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Refresh    key.Binding
	Reset      key.Binding
	Criteria   key.Binding
	Rerun      key.Binding
	ForceOK    key.Binding
	Cancel     key.Binding
	History    key.Binding
	Filter     key.Binding
	Search     key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	BatchJump  key.Binding
	ParentJump key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

var Keys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset criteria")),
	Criteria:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "search criteria")),
	Rerun:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rerun")),
	ForceOK:    key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "force OK")),
	Cancel:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cancel")),
	History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextPage:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
	PrevPage:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
	BatchJump:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "batch instance")),
	ParentJump: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "parent")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
}
