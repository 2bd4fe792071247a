package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	primary key.Binding
	skip    key.Binding
	quit    key.Binding
}

var defaultKeymap = keymap{
	primary: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "set complete"),
	),
	skip: key.NewBinding(
		key.WithKeys("s", "esc"),
		key.WithHelp("s", "skip rest"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// restPrimary is the primary binding as shown while resting.
var restPrimary = key.NewBinding(
	key.WithKeys("enter", " "),
	key.WithHelp("enter", "skip rest"),
)
