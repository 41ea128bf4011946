package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Back    key.Binding
	Forward key.Binding
	Stop    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Repeat  key.Binding
	Next    key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Back, k.Forward, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Back, k.Forward, k.Stop},
		{k.Faster, k.Slower, k.Repeat},
		{k.Next, k.Theme, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Back:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
		Forward: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Stop:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "stop")),
		Faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Repeat:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next dataset")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
