package tui

import "github.com/charmbracelet/lipgloss"

// Style holds the styles used to render the player.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Working   lipgloss.Style
	Resting   lipgloss.Style
	Done      lipgloss.Style
}

func newStyle(darkTheme bool) Style {
	main := lipgloss.Color("#FFFDF5")
	secondary := lipgloss.Color("#B8B8B8")

	if !darkTheme {
		main = lipgloss.Color("#1A1A1A")
		secondary = lipgloss.Color("#555555")
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginRight(1).
		Foreground(lipgloss.Color("#FFFDF5"))

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(main),
		Secondary: lipgloss.NewStyle().Foreground(secondary),
		Hint:      lipgloss.NewStyle().Foreground(secondary).Italic(true),
		Working:   label.Background(lipgloss.Color("#F25D94")).SetString("SET"),
		Resting:   label.Background(lipgloss.Color("#0F9D58")).SetString("REST"),
		Done:      label.Background(lipgloss.Color("#4285F4")).SetString("DONE"),
	}
}
