package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-vault/internal/registry"
	"github.com/vovakirdan/arcade-vault/internal/storage"
)

const maxLedgerRuns = 100

// LedgerKeyMap defines the key bindings for the run ledger.
type LedgerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LedgerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LedgerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultLedgerKeyMap returns default key bindings.
func DefaultLedgerKeyMap() LedgerKeyMap {
	return LedgerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LedgerModel shows the runs finished during this session.
type LedgerModel struct {
	games      []registry.GameInfo
	gameCursor int
	ledger     *storage.Ledger
	logger     *log.Logger
	runs       []storage.Run
	stats      map[string]storage.GameStats
	table      table.Model
	help       help.Model
	keys       LedgerKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewLedgerModel creates a ledger view starting at the given game.
func NewLedgerModel(ledger *storage.Ledger, gameID string, width, height int, logger *log.Logger) LedgerModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := LedgerModel{
		games:  registry.List(),
		ledger: ledger,
		logger: logger,
		keys:   DefaultLedgerKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *LedgerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Speed", Width: 7},
		{Title: "Frames", Width: 8},
		{Title: "Time", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("37")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("51")).
		Background(lipgloss.Color("23")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload loads runs and summary stats from the ledger.
func (m *LedgerModel) reload() {
	m.runs = nil
	m.stats = make(map[string]storage.GameStats)

	if m.ledger != nil && len(m.games) > 0 {
		runs, err := m.ledger.Runs(m.games[m.gameCursor].ID, maxLedgerRuns)
		if err != nil {
			m.logger.Warn("could not load runs", "error", err)
		}
		m.runs = runs

		summary, err := m.ledger.Summary()
		if err != nil {
			m.logger.Warn("could not load run summary", "error", err)
		}
		for _, s := range summary {
			m.stats[s.GameID] = s
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", int(r.Speed*10)),
			fmt.Sprintf("%d", r.Ticks),
			r.RecordedAt.Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the ledger model.
func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m LedgerModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		MarginBottom(1)

	title := "SESSION RUNS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("SESSION RUNS - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.summaryLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("37")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.tableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m LedgerModel) summaryLine() string {
	if len(m.games) == 0 {
		return ""
	}
	s, ok := m.stats[m.games[m.gameCursor].ID]
	if !ok {
		return "No runs yet"
	}
	return fmt.Sprintf("Runs: %d   Best: %d   Avg: %.1f   Top speed: %d",
		s.Runs, s.Best, s.AvgScore, int(s.TopSpeed*10))
}

// tableContent renders the table or empty message.
func (m LedgerModel) tableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("No runs finished this session.\nScores are not kept once you leave.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the vault.
func (m LedgerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LedgerModel) IsQuitting() bool {
	return m.quitting
}
