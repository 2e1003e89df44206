package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-vault/internal/core"
	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/storage"
	"github.com/vovakirdan/arcade-vault/internal/vault"
)

type sessionScreen int

const (
	screenVault sessionScreen = iota
	screenGame
	screenLedger
)

// SessionModel manages the full vault session flow:
// locked vault -> game list -> game or run ledger -> game list.
// This is the top-level model for local and SSH sessions.
type SessionModel struct {
	ledger   *storage.Ledger
	logger   *log.Logger
	config   core.RuntimeConfig
	username string

	screen     sessionScreen
	vault      VaultModel
	gameModel  *GameModel
	ledgerView *LedgerModel
	games      map[string]registry.Game // One instance per game keeps its session high score
	lastGame   string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(v *vault.Vault, ledger *storage.Ledger, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if username != "" {
		logger = logger.With("user", username)
	}

	return SessionModel{
		ledger:   ledger,
		logger:   logger,
		config:   cfg,
		username: username,
		vault:    NewVaultModel(v, cfg.ScreenW, cfg.ScreenH, logger),
		games:    make(map[string]registry.Game),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.vault.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		if m.screen != screenVault {
			// Keep the vault in step so it is laid out right on return.
			v, _ := m.vault.Update(msg)
			m.vault = v.(VaultModel)
		}
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenLedger:
		return m.updateLedger(msg)
	default:
		return m.updateVault(msg)
	}
}

// updateVault handles updates while the vault panel is showing.
func (m SessionModel) updateVault(msg tea.Msg) (tea.Model, tea.Cmd) {
	newVault, cmd := m.vault.Update(msg)
	if vm, ok := newVault.(VaultModel); ok {
		m.vault = vm
	}

	if m.vault.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.vault.Selected(); selected != nil {
		m.vault = m.vault.clearRequests()
		return m.openGame(selected.ID)
	}

	if m.vault.WantsLedger() {
		m.vault = m.vault.clearRequests()
		lv := NewLedgerModel(m.ledger, m.lastGame, m.config.ScreenW, m.config.ScreenH, m.logger)
		m.ledgerView = &lv
		m.screen = screenLedger
		return m, lv.Init()
	}

	return m, cmd
}

// openGame mounts a game inside the vault.
func (m SessionModel) openGame(id string) (tea.Model, tea.Cmd) {
	game, ok := m.games[id]
	if !ok {
		var err error
		game, err = registry.Create(id)
		if err != nil {
			// Shouldn't happen since the vault only lists registered games
			m.logger.Error("cannot create game", "game", id, "error", err)
			return m, nil
		}
		m.games[id] = game
	}

	gm := NewGameModel(game, m.config, GameOptions{
		Ledger: m.ledger,
		Logger: m.logger,
		Hosted: true,
	})
	m.gameModel = &gm
	m.lastGame = id
	m.screen = screenGame
	m.logger.Info("game opened", "game", id)

	return m, gm.Init()
}

// updateGame handles updates while a game is open.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.Closed() {
		m.gameModel = nil
		m.screen = screenVault
		return m, nil
	}

	return m, cmd
}

// updateLedger handles updates while the run ledger is showing.
func (m SessionModel) updateLedger(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.ledgerView.Update(msg)
	if lv, ok := newModel.(LedgerModel); ok {
		m.ledgerView = &lv
	}

	if m.ledgerView.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.ledgerView.IsGoingBack() {
		m.ledgerView = nil
		m.screen = screenVault
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenLedger:
		return m.ledgerView.View()
	default:
		return m.vault.View()
	}
}

// RunVault starts a local vault session.
func RunVault(v *vault.Vault, ledger *storage.Ledger, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(v, ledger, cfg, "", logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
