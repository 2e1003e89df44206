package core

// RuntimeConfig contains configuration passed to games when they are mounted.
type RuntimeConfig struct {
	ScreenW      int   // Screen width in characters
	ScreenH      int   // Screen height in characters
	TickRate     int   // Frames per second of the host loop (default 60)
	Seed         int64 // RNG seed for deterministic gameplay
	HideControls bool  // Hosted by the vault, which shows controls itself
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the part of a game's state the platform cares about.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score of this session
	GameOver  bool // Whether the run has ended
	Paused    bool // Whether the run is paused
}

// Running reports whether the host should keep scheduling frames.
func (s GameState) Running() bool {
	return !s.GameOver && !s.Paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Ended bool // The run ended during this tick
}

// RunStats is optional per-run telemetry a game may report.
type RunStats struct {
	Ticks int     // Frames simulated in the run
	Speed float64 // Speed reached, in game units
}
