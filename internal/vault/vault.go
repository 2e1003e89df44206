// Package vault implements the passcode gate in front of the game list.
// It holds only the entry state; the TUI draws it and forwards keys.
package vault

import (
	"strings"

	"github.com/vovakirdan/arcade-vault/internal/config"
)

// Vault is a row of single-digit slots compared against a passcode.
// It is not safe for concurrent use.
type Vault struct {
	cfg      config.VaultConfig
	digits   []rune // 0 marks an empty slot
	active   int
	unlocked bool
	attempts int
}

// New creates a locked vault with one slot per passcode digit.
func New(cfg config.VaultConfig) *Vault {
	return &Vault{
		cfg:    cfg,
		digits: make([]rune, len(cfg.Passcode)),
	}
}

// Enter writes d into the active slot and moves to the next one. The last
// slot is overwritten in place. It reports whether this entry unlocked the
// vault. Non-digits and input after unlocking are ignored.
func (v *Vault) Enter(d rune) bool {
	if v.unlocked || d < '0' || d > '9' {
		return false
	}

	v.digits[v.active] = d
	if v.active < len(v.digits)-1 {
		v.active++
	}

	if !v.complete() {
		return false
	}
	if v.Code() == v.cfg.Passcode {
		v.unlocked = true
		return true
	}
	v.attempts++
	return false
}

// Backspace clears the active slot if it holds a digit, otherwise it moves
// back one slot without touching it.
func (v *Vault) Backspace() {
	if v.unlocked {
		return
	}
	if v.digits[v.active] != 0 {
		v.digits[v.active] = 0
		return
	}
	if v.active > 0 {
		v.active--
	}
}

// Clear empties every slot and locks the vault again. The attempt counter
// survives.
func (v *Vault) Clear() {
	for i := range v.digits {
		v.digits[i] = 0
	}
	v.active = 0
	v.unlocked = false
}

func (v *Vault) complete() bool {
	for _, d := range v.digits {
		if d == 0 {
			return false
		}
	}
	return true
}

// Code returns the digits entered so far, skipping empty slots.
func (v *Vault) Code() string {
	var b strings.Builder
	for _, d := range v.digits {
		if d != 0 {
			b.WriteRune(d)
		}
	}
	return b.String()
}

// Slots returns a copy of the slots, with 0 for empty ones.
func (v *Vault) Slots() []rune {
	out := make([]rune, len(v.digits))
	copy(out, v.digits)
	return out
}

// Active returns the index of the slot the next digit goes into.
func (v *Vault) Active() int { return v.active }

// Unlocked reports whether the passcode was entered correctly.
func (v *Vault) Unlocked() bool { return v.unlocked }

// Attempts returns how many complete but wrong codes were entered.
func (v *Vault) Attempts() int { return v.attempts }

// Hint returns the hint shown under the slots.
func (v *Vault) Hint() string { return v.cfg.Hint }

// Title returns the vault's heading.
func (v *Vault) Title() string { return v.cfg.Title }
