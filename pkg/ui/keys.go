package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Open                  key.Binding
	Mode                  key.Binding
	Group                 key.Binding
	Scope                 key.Binding
	Search                key.Binding
	Copy                  key.Binding
	Export                key.Binding
	Reload                key.Binding
	Top                   key.Binding
	Help                  key.Binding
	Back                  key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Mode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leveled/recursive")),
		Group:  key.NewBinding(key.WithKeys("g", " "), key.WithHelp("g", "toggle group")),
		Scope:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scope")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find person")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Top:    key.NewBinding(key.WithKeys("home", "t"), key.WithHelp("t", "top")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Mode, k.Group, k.Scope, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top},
		{k.Open, k.Group, k.Mode, k.Scope, k.Search},
		{k.Copy, k.Export, k.Reload, k.Help, k.Quit},
	}
}
