package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-vault/internal/config"
	"github.com/vovakirdan/arcade-vault/internal/storage"
	"github.com/vovakirdan/arcade-vault/internal/vault"
)

func newSession(t *testing.T) SessionModel {
	t.Helper()
	ledger, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })

	v := vault.New(config.VaultConfig{Passcode: "2005", Hint: "the year", Title: "Hidden Arcade"})
	return NewSessionModel(v, ledger, testConfig(), "tester", nil)
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var nm tea.Model
		nm, cmd = m.Update(msg)
		sm, ok := nm.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", nm)
		}
		m = sm
	}
	return m, cmd
}

func typeCode(code string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(code))
	for _, r := range code {
		msgs = append(msgs, runeKey(r))
	}
	return msgs
}

func TestSessionStaysLockedOnWrongCode(t *testing.T) {
	m := newSession(t)

	m, _ = send(t, m, typeCode("1234")...)
	if m.vault.Unlocked() {
		t.Fatal("wrong code must not unlock")
	}
	if !strings.Contains(m.View(), "Access denied (1)") {
		t.Error("a rejected code should be reported")
	}

	// List keys do nothing while locked.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenVault {
		t.Error("a locked vault must not open games or the ledger")
	}
}

func TestSessionUnlockAndPlay(t *testing.T) {
	m := newSession(t)

	view := m.View()
	if !strings.Contains(view, "Hidden Arcade") || !strings.Contains(view, "the year") {
		t.Errorf("locked view should show title and hint:\n%s", view)
	}

	m, _ = send(t, m, typeCode("2005")...)
	if !m.vault.Unlocked() {
		t.Fatal("correct code should unlock")
	}
	view = m.View()
	if !strings.Contains(view, "Access Granted") || !strings.Contains(view, "Fake Game") || !strings.Contains(view, "Keyboard only") {
		t.Errorf("unlocked view should list games:\n%s", view)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil || cmd == nil {
		t.Fatal("enter should open the selected game")
	}

	m, cmd = send(t, m, cmd())
	if !m.gameModel.Mounted() || cmd == nil {
		t.Fatal("opening a game should mount it")
	}
	game := m.games["fake"].(*fakeGame)

	m, _ = send(t, m, FrameMsg{Seq: m.gameModel.seq})
	if game.steps != 1 {
		t.Errorf("steps = %d, expected 1", game.steps)
	}

	stale := FrameMsg{Seq: m.gameModel.seq}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenVault || m.gameModel != nil {
		t.Fatal("esc should close the game and return to the list")
	}
	if !m.vault.Unlocked() {
		t.Error("closing a game must keep the vault open")
	}

	m, _ = send(t, m, stale)
	if game.steps != 1 {
		t.Error("a closed game must not be stepped")
	}

	// Reopening reuses the instance, so the session high score survives.
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	if m.games["fake"] != game || game.resets != 2 {
		t.Errorf("reopening should remount the same game (resets=%d)", game.resets)
	}
}

func TestSessionReopenDropsOldFrames(t *testing.T) {
	m := newSession(t)
	m, _ = send(t, m, typeCode("2005")...)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	game := m.games["fake"].(*fakeGame)
	inFlight := FrameMsg{Seq: m.gameModel.seq}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	if m.gameModel.seq == inFlight.Seq {
		t.Fatalf("reopened game reuses loop seq %d", inFlight.Seq)
	}

	m, cmd = send(t, m, inFlight)
	if cmd != nil || game.steps != 0 {
		t.Fatalf("a frame of the closed game stepped the new one (steps=%d, rescheduled=%v)", game.steps, cmd != nil)
	}

	m, cmd = send(t, m, FrameMsg{Seq: m.gameModel.seq})
	if cmd == nil || game.steps != 1 {
		t.Error("the reopened game's own loop should keep running")
	}
}

func TestSessionLedger(t *testing.T) {
	m := newSession(t)
	m, _ = send(t, m, typeCode("2005")...)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenLedger {
		t.Fatal("tab should open the run ledger")
	}
	if !strings.Contains(m.View(), "No runs finished this session") {
		t.Errorf("empty ledger message missing:\n%s", m.View())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenVault || !m.vault.Unlocked() {
		t.Error("esc should return to the game list")
	}
}

func TestSessionLedgerShowsFinishedRun(t *testing.T) {
	m := newSession(t)
	m, _ = send(t, m, typeCode("2005")...)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())

	m.games["fake"].(*fakeGame).endOnStep = 1
	m, _ = send(t, m, FrameMsg{Seq: m.gameModel.seq})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyTab})

	view := m.View()
	if !strings.Contains(view, "Runs: 1") || !strings.Contains(view, "Best: 1") {
		t.Errorf("ledger should summarize the finished run:\n%s", view)
	}
}

func TestSessionCloseVaultLocks(t *testing.T) {
	m := newSession(t)
	m, _ = send(t, m, typeCode("2005")...)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.vault.Unlocked() {
		t.Fatal("closing the vault should lock it again")
	}
	if code := m.vault.vault.Code(); code != "" {
		t.Errorf("passcode should be cleared, got %q", code)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newSession(t)

	m, cmd := send(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit from the locked vault")
	}
	if m.View() != "" {
		t.Error("a quitting session renders nothing")
	}
}

func TestSessionResize(t *testing.T) {
	m := newSession(t)
	m, _ = send(t, m, typeCode("2005")...)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 90, Height: 33})
	if m.config.ScreenW != 90 || m.vault.width != 90 || m.gameModel.screen.Width() != 90 {
		t.Error("resize should reach the session, the vault and the game")
	}
}
