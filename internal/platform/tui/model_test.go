package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-vault/internal/core"
	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/storage"
)

// fakeGame counts calls and ends its run on a chosen step.
type fakeGame struct {
	resets    int
	steps     int
	handled   []core.Action
	endOnStep int
	state     core.GameState
	lastCfg   core.RuntimeConfig
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake Game" }
func (g *fakeGame) Description() string { return "A game used by tests." }
func (g *fakeGame) Controls() string { return "Any key" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.lastCfg = cfg
	g.state = core.GameState{HighScore: g.state.HighScore}
}

func (g *fakeGame) Handle(a core.Action) {
	g.handled = append(g.handled, a)
	switch a {
	case core.ActionPause:
		if !g.state.GameOver {
			g.state.Paused = !g.state.Paused
		}
	case core.ActionRestart:
		g.state = core.GameState{HighScore: g.state.HighScore}
	}
}

func (g *fakeGame) Step() core.StepResult {
	if !g.state.Running() {
		return core.StepResult{State: g.state}
	}
	g.steps++
	g.state.Score++
	if g.steps == g.endOnStep {
		g.state.GameOver = true
		g.state.HighScore = max(g.state.HighScore, g.state.Score)
		return core.StepResult{State: g.state, Ended: true}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "FAKE")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) RunStats() core.RunStats {
	return core.RunStats{Ticks: g.steps, Speed: 6.5}
}

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	gm, ok := nm.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", nm)
	}
	return gm, cmd
}

func mounted(t *testing.T, g *fakeGame, opts GameOptions) GameModel {
	t.Helper()
	m := NewGameModel(g, testConfig(), opts)
	msg := m.Init()()
	m, cmd := update(t, m, msg)
	if cmd == nil || !m.Mounted() {
		t.Fatal("mount should start the frame loop")
	}
	return m
}

func frame(m GameModel) FrameMsg {
	return FrameMsg{Seq: m.seq}
}

func TestMountResetsGame(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})

	if g.resets != 1 || !m.looping {
		t.Errorf("resets=%d looping=%v", g.resets, m.looping)
	}

	// A second mount request must not restart the run.
	m, cmd := update(t, m, mountMsg{})
	if cmd != nil || g.resets != 1 {
		t.Error("an already mounted game must not be mounted again")
	}
}

func TestFrameStepsAndReschedules(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})

	for i := 1; i <= 3; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, frame(m))
		if cmd == nil {
			t.Fatalf("frame %d should schedule the next one", i)
		}
		if g.steps != i {
			t.Fatalf("steps = %d, expected %d", g.steps, i)
		}
	}
}

func TestStaleFrameDropped(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})

	m, cmd := update(t, m, FrameMsg{Seq: m.seq - 1})
	if cmd != nil || g.steps != 0 {
		t.Error("a frame from an old loop must be ignored")
	}
}

func TestLoopStopsWhilePaused(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})
	oldSeq := m.seq

	m, cmd := update(t, m, runeKey(' '))
	if cmd != nil || !g.state.Paused {
		t.Fatal("pausing should not schedule anything")
	}

	// The frame already in flight sees the pause and ends the loop.
	m, cmd = update(t, m, frame(m))
	if cmd != nil || m.looping || g.steps != 0 {
		t.Fatalf("paused frame must not reschedule (looping=%v steps=%d)", m.looping, g.steps)
	}

	m, cmd = update(t, m, runeKey(' '))
	if cmd == nil || !m.looping || m.seq == oldSeq {
		t.Fatal("resuming should start a new loop")
	}

	m, _ = update(t, m, FrameMsg{Seq: oldSeq})
	if g.steps != 0 {
		t.Error("frames of the old loop must stay dead after resume")
	}
	m, _ = update(t, m, frame(m))
	if g.steps != 1 {
		t.Error("the new loop should step the game")
	}
}

func TestQuickPauseResumeKeepsOneLoop(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})
	seq := m.seq

	m, _ = update(t, m, runeKey(' '))
	m, cmd := update(t, m, runeKey(' '))
	if cmd != nil || m.seq != seq {
		t.Error("resume before the pending frame arrives must not start a second loop")
	}

	m, cmd = update(t, m, frame(m))
	if cmd == nil || g.steps != 1 {
		t.Error("the original loop should carry on")
	}
}

func TestRunOverRecordsAndStops(t *testing.T) {
	ledger, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer ledger.Close()

	g := &fakeGame{endOnStep: 2}
	m := mounted(t, g, GameOptions{Ledger: ledger})

	m, _ = update(t, m, frame(m))
	m, cmd := update(t, m, frame(m))
	if cmd != nil || m.looping {
		t.Fatal("a finished run must stop the loop")
	}

	runs, err := ledger.Runs("fake", 10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 2 || runs[0].Ticks != 2 || runs[0].Speed != 6.5 {
		t.Fatalf("unexpected ledger content: %+v", runs)
	}

	// Input other than reset does not revive the loop.
	m, cmd = update(t, m, runeKey('a'))
	if cmd != nil {
		t.Error("a finished run must not restart on movement")
	}

	m, cmd = update(t, m, runeKey('r'))
	if cmd == nil || !m.looping {
		t.Fatal("reset should restart the loop")
	}
	if g.state.GameOver || g.state.HighScore != 2 {
		t.Errorf("state after reset = %+v", g.state)
	}
}

func TestInfoUnmountsAndRemounts(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{Hosted: true})
	m, _ = update(t, m, frame(m))
	stale := frame(m)

	m, cmd := update(t, m, runeKey('i'))
	if cmd != nil || m.Mounted() || !m.showInfo {
		t.Fatal("showing info should unmount the game")
	}
	view := m.View()
	if !strings.Contains(view, "A game used by tests.") || !strings.Contains(view, "Any key") {
		t.Errorf("info view should show description and controls:\n%s", view)
	}

	m, _ = update(t, m, stale)
	m, _ = update(t, m, runeKey('a'))
	if g.steps != 1 || len(g.handled) != 0 {
		t.Fatal("an unmounted game must not be stepped or receive input")
	}

	m, cmd = update(t, m, runeKey('i'))
	if cmd == nil || !m.Mounted() || g.resets != 2 {
		t.Fatalf("hiding info should remount with a fresh run (resets=%d)", g.resets)
	}
}

func TestBackClosesHostedGame(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{Hosted: true})
	stale := frame(m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || !m.Closed() || m.Mounted() {
		t.Fatal("esc should close a hosted game without quitting")
	}

	m, cmd = update(t, m, stale)
	if cmd != nil || g.steps != 0 {
		t.Error("no frame may run after the game is closed")
	}
	if m.View() != "" {
		t.Error("a closed game renders nothing")
	}
}

func TestBackQuitsStandaloneGame(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})

	_, cmd := update(t, m, runeKey('b'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("closing a standalone game should quit the program")
	}
}

func TestQuit(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{Hosted: true})

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.Mounted() || cmd == nil {
		t.Fatal("q should unmount and quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHostedView(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{Hosted: true})

	if !g.lastCfg.HideControls {
		t.Error("hosted games should hide their own controls hint")
	}
	if m.screen.Height() != 28 {
		t.Errorf("hosted screen height = %d, expected 28", m.screen.Height())
	}

	view := m.View()
	if !strings.Contains(view, "Fake Game") || !strings.Contains(view, "FAKE") {
		t.Errorf("hosted view should show title and game:\n%s", view)
	}
}

func TestHostedViewShowsSessionBest(t *testing.T) {
	ledger, err := storage.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer ledger.Close()
	if _, err := ledger.RecordRun("fake", 7, 5, 100); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	g := &fakeGame{endOnStep: 9}
	m := mounted(t, g, GameOptions{Ledger: ledger, Hosted: true})
	if !strings.Contains(m.View(), "session best 7") {
		t.Errorf("mount should load the ledger best:\n%s", m.View())
	}

	for i := 0; i < 9; i++ {
		m, _ = update(t, m, frame(m))
	}
	if !strings.Contains(m.View(), "session best 9") {
		t.Errorf("a better run should raise the session best:\n%s", m.View())
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := mounted(t, g, GameOptions{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Error("resizing must not restart the run")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}
