package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/vault"
)

// VaultModel is the passcode panel and, once unlocked, the game picker.
type VaultModel struct {
	vault  *vault.Vault
	items  []registry.GameInfo
	cursor int
	width  int
	height int
	keys   VaultKeyMap
	help   help.Model
	theme  VaultTheme
	logger *log.Logger

	selected   *registry.GameInfo // Set when user picks a game
	openLedger bool               // Set when user asks for the run ledger
	quitting   bool
}

// NewVaultModel creates a locked vault listing every registered game.
func NewVaultModel(v *vault.Vault, width, height int, logger *log.Logger) VaultModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = width

	return VaultModel{
		vault:  v,
		items:  registry.List(),
		width:  width,
		height: height,
		keys:   DefaultVaultKeyMap(),
		help:   h,
		theme:  DefaultVaultTheme(),
		logger: logger,
	}
}

// Init initializes the vault model.
func (m VaultModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the vault.
func (m VaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.vault.Unlocked() {
			return m.handleListKey(msg)
		}
		return m.handleLockedKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleLockedKey feeds digits into the passcode slots.
func (m VaultModel) handleLockedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.lockedMode(true)

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Erase):
		m.vault.Backspace()
		return m, nil
	case key.Matches(msg, keys.Clear):
		m.vault.Clear()
		return m, nil
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}

	attempts := m.vault.Attempts()
	if m.vault.Enter(msg.Runes[0]) {
		m.logger.Info("vault unlocked", "attempts", attempts)
		m.cursor = 0
	} else if m.vault.Attempts() > attempts {
		m.logger.Warn("passcode rejected", "attempts", m.vault.Attempts())
	}
	return m, nil
}

// handleListKey navigates the unlocked game list.
func (m VaultModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.lockedMode(false)

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, keys.Ledger):
		m.openLedger = true

	case key.Matches(msg, keys.Back):
		// Closing the vault locks it again.
		m.vault.Clear()
		m.logger.Debug("vault closed")
	}

	return m, nil
}

// View renders the vault panel.
func (m VaultModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.vault.Unlocked() {
		body = m.listView()
	} else {
		body = m.lockedView()
	}

	panel := m.theme.Panel.Render(body)
	helpLine := m.theme.Help.Render(m.help.View(m.keys.lockedMode(!m.vault.Unlocked())))

	return lipgloss.Place(m.width, max(m.height-1, 0), lipgloss.Center, lipgloss.Center, panel) +
		"\n" + centerText(helpLine, m.width)
}

func (m VaultModel) lockedView() string {
	slots := m.vault.Slots()
	boxes := make([]string, len(slots))
	for i, d := range slots {
		style := m.theme.SlotEmpty
		text := " "
		if d != 0 {
			style = m.theme.SlotFilled
			text = string(d)
		}
		if i == m.vault.Active() {
			style = m.theme.SlotActive
		}
		boxes[i] = style.Render(text)
	}

	lines := []string{
		m.theme.Title.Render(m.vault.Title()),
		m.theme.Subtitle.Render("Enter passcode to access"),
		m.theme.Hint.Render(m.vault.Hint()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, interleave(boxes, " ")...),
	}
	if n := m.vault.Attempts(); n > 0 {
		lines = append(lines, "", m.theme.Warning.Render(fmt.Sprintf("Access denied (%d)", n)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m VaultModel) listView() string {
	lines := []string{
		m.theme.Granted.Render("✓ Access Granted"),
		m.theme.Subtitle.Render("Select a game to play"),
		m.theme.Hint.Render("Use keyboard controls only: Arrow keys or WASD"),
		"",
	}

	if len(m.items) == 0 {
		lines = append(lines, m.theme.Hint.Render("No games installed."))
	}

	const nameWidth = 24
	for i, item := range m.items {
		name := fmt.Sprintf("%-*s", nameWidth, item.Title)
		tag := m.theme.MenuTag.Render("Keyboard only")
		if i == m.cursor {
			lines = append(lines, m.theme.MenuItemActive.Render("> "+name)+" "+tag)
		} else {
			lines = append(lines, m.theme.MenuItemNormal.Render("  "+name)+" "+tag)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// interleave puts sep between consecutive items.
func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

// Selected returns the picked game, or nil if none.
func (m VaultModel) Selected() *registry.GameInfo {
	return m.selected
}

// WantsLedger returns true if user requested the run ledger.
func (m VaultModel) WantsLedger() bool {
	return m.openLedger
}

// IsQuitting returns true if user requested to quit.
func (m VaultModel) IsQuitting() bool {
	return m.quitting
}

// Unlocked reports whether the game list is showing.
func (m VaultModel) Unlocked() bool {
	return m.vault.Unlocked()
}

// clearRequests forgets a handled selection or ledger request.
func (m VaultModel) clearRequests() VaultModel {
	m.selected = nil
	m.openLedger = false
	return m
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
