package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	NextSub key.Binding
	PrevSub key.Binding
	Reroll  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev tab")),
		NextSub: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next section")),
		PrevSub: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev section")),
		Reroll:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new predictions")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.PrevSub, k.NextSub, k.Reroll, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
