package racer

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/arcade-vault/internal/config"
	"github.com/vovakirdan/arcade-vault/internal/core"
	"github.com/vovakirdan/arcade-vault/internal/registry"
)

// GameID is the registry id of the racer.
const GameID = "racer"

var (
	settingsMu  sync.RWMutex
	racerConfig = config.DefaultRacerConfig()
)

// SetConfig sets the configuration used by games created afterwards.
// The CLI calls it once after loading racer.yaml and applying a preset.
func SetConfig(cfg config.RacerConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	racerConfig = cfg
}

func currentConfig() config.RacerConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return racerConfig
}

// Game adapts the Engine to the registry.Game interface.
type Game struct {
	cfg     config.RacerConfig
	engine  *Engine
	runtime core.RuntimeConfig
}

// New creates a racer using the configuration set by SetConfig.
func New() *Game {
	return NewWithConfig(currentConfig())
}

// NewWithConfig creates a racer with an explicit configuration.
func NewWithConfig(cfg config.RacerConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Car Racing"
}

// Description returns the one-line pitch shown in the vault's info view.
func (g *Game) Description() string {
	return "Dodge oncoming traffic and survive as long as possible."
}

// Controls returns the key help shown in the vault's info view.
func (g *Game) Controls() string {
	return "Left/Right arrows or A/D to move, Space to pause, R to reset"
}

// Reset starts a new run. The first call seeds the engine; later calls keep
// the engine, and with it the session high score.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.engine == nil {
		g.engine = NewEngine(g.cfg, rand.New(rand.NewSource(runtime.Seed)))
		return
	}
	g.engine.Reset()
}

// Handle relays one input action into the engine. Space pauses a running
// game and resumes a paused one.
func (g *Game) Handle(a core.Action) {
	if g.engine == nil {
		return
	}
	switch a {
	case core.ActionLeft:
		g.engine.MoveLeft()
	case core.ActionRight:
		g.engine.MoveRight()
	case core.ActionPause:
		if g.engine.State().Paused {
			g.engine.Resume()
		} else {
			g.engine.Pause()
		}
	case core.ActionRestart:
		g.engine.Reset()
	}
}

// Step advances the game by one frame.
func (g *Game) Step() core.StepResult {
	if g.engine == nil {
		return core.StepResult{}
	}
	out := g.engine.Tick()
	return core.StepResult{
		State: g.engine.State(),
		Ended: out.Crashed,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return g.engine.State()
}

// RunStats reports progress of the current run for the run ledger.
func (g *Game) RunStats() core.RunStats {
	if g.engine == nil {
		return core.RunStats{}
	}
	return core.RunStats{Ticks: g.engine.Ticks(), Speed: g.engine.Speed()}
}
