package ui

import (
	"github.com/pterm/pterm"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}
