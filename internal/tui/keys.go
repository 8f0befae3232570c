package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Duration key.Binding
	Restart  key.Binding
	Again    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Duration: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "duration"),
	),
	Restart: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "restart"),
	),
	Again: key.NewBinding(
		key.WithKeys("enter", "ctrl+r"),
		key.WithHelp("enter", "try again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp implements help.KeyMap for the game screen.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Duration, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Duration, k.Restart, k.Quit},
		{k.Again},
	}
}

func (k keyMap) resultsHelp() []key.Binding {
	return []key.Binding{k.Again, k.Quit}
}
