package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-vault/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", runeKey(' '), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionNone, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionNone, true},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone, false},
		{"unbound rune", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestVaultKeysByMode(t *testing.T) {
	locked := DefaultVaultKeyMap().lockedMode(true)
	if !locked.Erase.Enabled() || locked.Select.Enabled() || locked.Back.Enabled() {
		t.Error("locked vault should only take passcode editing keys")
	}

	open := DefaultVaultKeyMap().lockedMode(false)
	if open.Erase.Enabled() || !open.Select.Enabled() || !open.Ledger.Enabled() {
		t.Error("unlocked vault should take list keys")
	}
	if !open.Quit.Enabled() || !locked.Quit.Enabled() {
		t.Error("quit must always be available")
	}
}
