package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-vault/internal/core"
	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/storage"
)

// mountMsg asks a GameModel to mount its game and start the frame loop.
type mountMsg struct{}

func mountCmd() tea.Msg { return mountMsg{} }

// GameOptions configures a GameModel.
type GameOptions struct {
	Ledger *storage.Ledger // Optional; finished runs are recorded here
	Logger *log.Logger     // Optional; defaults to a discarding logger
	Hosted bool            // Inside the vault: esc closes instead of quitting
}

// GameModel is the Bubble Tea model that hosts one game. It owns the frame
// loop: frames are scheduled one at a time, only while the game is mounted
// and its run is neither paused nor over.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	ledger *storage.Ledger
	logger *log.Logger
	config core.RuntimeConfig
	keys   *KeyMapper
	help   help.Model
	theme  VaultTheme
	hosted bool

	seq      int  // Current frame loop; frames carrying another seq are stale
	looping  bool // A frame of loop seq is pending
	mounted  bool
	showInfo bool
	state    core.GameState
	best     int // Best ledger score of this game, shown when hosted
	quitting bool
	closed   bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.HideControls = opts.Hosted

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		game:   game,
		ledger: opts.Ledger,
		logger: logger,
		config: cfg,
		keys:   NewKeyMapper(),
		help:   help.New(),
		theme:  DefaultVaultTheme(),
		hosted: opts.Hosted,
	}
	m.screen = core.NewScreen(m.screenSize())
	m.help.Width = cfg.ScreenW
	return m
}

// screenSize returns the area left to the game. Hosted games give up a title
// line and a help line.
func (m GameModel) screenSize() (int, int) {
	if m.hosted {
		return m.config.ScreenW, max(m.config.ScreenH-2, 0)
	}
	return m.config.ScreenW, m.config.ScreenH
}

// Init mounts the game on the first update.
func (m GameModel) Init() tea.Cmd {
	return mountCmd
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if m.mounted || m.showInfo || m.closed {
			return m, nil
		}
		return m, m.mount()

	case FrameMsg:
		return m.handleFrame(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(m.screenSize())
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// mount starts a fresh run and a new frame loop. Reset keeps the session
// high score of a game that was mounted before.
func (m *GameModel) mount() tea.Cmd {
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.mounted = true
	m.loadBest()
	m.logger.Debug("game mounted", "game", m.game.ID())
	return m.startLoop()
}

// unmount stops the frame loop. Any frame still in flight is dropped and the
// game is never stepped again until the next mount.
func (m *GameModel) unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.looping = false
	m.seq = nextLoopSeq()
	m.logger.Debug("game unmounted", "game", m.game.ID(), "score", m.state.Score)
}

func (m *GameModel) startLoop() tea.Cmd {
	m.seq = nextLoopSeq()
	m.looping = true
	return frameCmd(m.config.TickRate, m.seq)
}

// handleFrame runs one simulation tick and schedules the next one while the
// run is active.
func (m GameModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if !m.mounted || msg.Seq != m.seq {
		return m, nil
	}

	result := m.game.Step()
	m.state = result.State
	if result.Ended {
		m.recordRun()
	}

	if !m.state.Running() {
		m.looping = false
		return m, nil
	}
	return m, frameCmd(m.config.TickRate, m.seq)
}

// handleKey processes keyboard input. Game actions are applied immediately;
// the frame loop restarts when an action makes the run active again.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		m.unmount()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.unmount()
		m.closed = true
		if !m.hosted {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Info):
		if m.showInfo {
			m.showInfo = false
			return m, m.mount()
		}
		m.showInfo = true
		m.unmount()
		return m, nil
	}

	if !m.mounted {
		return m, nil
	}

	action, _ := m.keys.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}

	m.game.Handle(action)
	m.state = m.game.State()

	if !m.looping && m.state.Running() {
		return m, m.startLoop()
	}
	return m, nil
}

// recordRun logs a finished run and stores it in the session ledger.
// Ledger failures are logged, the game continues regardless.
func (m *GameModel) recordRun() {
	var stats core.RunStats
	if r, ok := m.game.(registry.StatsReporter); ok {
		stats = r.RunStats()
	}

	m.logger.Info("run over",
		"game", m.game.ID(),
		"score", m.state.Score,
		"high", m.state.HighScore,
		"speed", stats.Speed,
		"ticks", stats.Ticks,
	)

	if m.ledger == nil {
		return
	}
	if _, err := m.ledger.RecordRun(m.game.ID(), m.state.Score, stats.Speed, stats.Ticks); err != nil {
		m.logger.Warn("could not record run", "game", m.game.ID(), "error", err)
		return
	}
	m.loadBest()
}

func (m *GameModel) loadBest() {
	if m.ledger == nil {
		return
	}
	best, err := m.ledger.Best(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load session best", "game", m.game.ID(), "error", err)
		return
	}
	m.best = best
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.closed {
		return ""
	}

	if m.showInfo {
		return m.infoView()
	}

	m.game.Render(m.screen)
	if !m.hosted {
		return RenderScreen(m.screen)
	}

	title := m.game.Title()
	if m.ledger != nil {
		title = fmt.Sprintf("%s  ·  session best %d", title, m.best)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.GameTitle.Render(title),
		RenderScreen(m.screen),
		m.theme.Help.Render(m.help.View(m.keys.Keys())),
	)
}

// infoView shows the game's description and controls in place of the game.
func (m GameModel) infoView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.InfoHeading.Render(m.game.Title()),
		m.theme.InfoText.Render(m.game.Description()),
		"",
		m.theme.InfoHeading.Render("Controls"),
		m.theme.InfoText.Render(m.game.Controls()),
		"",
		m.theme.Help.Render("i: back to the game  ·  esc: close"),
	)
	panel := m.theme.Panel.Width(min(60, max(m.config.ScreenW-4, 20))).Render(body)
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// Mounted reports whether the game loop is attached.
func (m GameModel) Mounted() bool {
	return m.mounted
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Closed returns true if user closed the game.
func (m GameModel) Closed() bool {
	return m.closed
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, ledger *storage.Ledger, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, cfg, GameOptions{Ledger: ledger, Logger: logger})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
