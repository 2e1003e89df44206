package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// VaultTheme contains the visual styles of the vault panel and its screens.
type VaultTheme struct {
	// Panel chrome
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Hint     lipgloss.Style

	// Passcode slots
	SlotEmpty  lipgloss.Style
	SlotFilled lipgloss.Style
	SlotActive lipgloss.Style

	// Unlocked game list
	Granted        lipgloss.Style
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuTag        lipgloss.Style

	// Game host
	GameTitle   lipgloss.Style
	InfoHeading lipgloss.Style
	InfoText    lipgloss.Style
	Help        lipgloss.Style
	Warning     lipgloss.Style
}

// DefaultVaultTheme returns the neon cyan theme of the vault.
func DefaultVaultTheme() VaultTheme {
	slot := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(3).
		Align(lipgloss.Center)

	return VaultTheme{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("37")). // Dim cyan
			Padding(1, 3),
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("116")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("73")).Italic(true),

		SlotEmpty:  slot.BorderForeground(lipgloss.Color("23")),
		SlotFilled: slot.BorderForeground(lipgloss.Color("30")).Foreground(lipgloss.Color("255")),
		SlotActive: slot.BorderForeground(lipgloss.Color("51")).Foreground(lipgloss.Color("255")).Bold(true),

		Granted:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
		MenuItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Background(lipgloss.Color("23")).Bold(true),
		MenuTag:        lipgloss.NewStyle().Foreground(lipgloss.Color("30")),

		GameTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true),
		InfoHeading: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).MarginBottom(1),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color("152")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
